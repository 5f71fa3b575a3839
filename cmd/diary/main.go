package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"achievediary/cmd/diary/app"
	"achievediary/cmd/diary/ui"
	"achievediary/internal/api"
	"achievediary/internal/config"
	"achievediary/internal/identity"
	"achievediary/internal/logging"
	"achievediary/internal/panel"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiURL     string
	userID     int64
	timeout    time.Duration
	startRoute string

	// Logger
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "Achievements diary - record what you are proud of",
	Long: `diary is a terminal client for the achievements diary service.

Record achievements in eight life categories, browse them by category,
and follow the awards and level the service grants for them.

Run without arguments to open the interactive diary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive UI owns the terminal; it logs to files only.
		if cmd == cmd.Root() {
			return nil
		}

		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (or set "+config.EnvAPIURL+")")
	rootCmd.PersistentFlags().Int64Var(&userID, "user-id", 0, "Session user id (or set "+identity.EnvUserID+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-request timeout (default from config)")
	rootCmd.Flags().StringVar(&startRoute, "route", "/", "Initial location, e.g. /achievements or /achievement/12")

	rootCmd.AddCommand(listCmd, showCmd, createCmd, editCmd, deleteCmd)
	rootCmd.AddCommand(awardsCmd, whoamiCmd, routesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", userMessage(err))
		os.Exit(1)
	}
}

// userMessage turns a command error into the text shown to the user.
// Classified backend errors use the same wording as the interactive UI.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		logger.Debug("command failed", zap.Error(err))
		return panel.Message(apiErr)
	}
	return err.Error()
}

// =============================================================================
// SESSION
// =============================================================================

// session is what every command needs: configuration, a backend client and
// the resolved identity (nil when there is none).
type session struct {
	cfg      *config.Config
	client   *api.Client
	identity *identity.Identity
	baseDir  string
}

// openSession loads .env and the config file, applies flag overrides,
// starts category logging and resolves the identity.
func openSession(ctx context.Context) (*session, error) {
	baseDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	if err := config.LoadDotEnv(baseDir); err != nil {
		logger.Warn("failed to load .env", zap.Error(err))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if timeout > 0 {
		cfg.API.Timeout = timeout.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logging.Initialize(cfg.Logging.ToSettings(baseDir)); err != nil {
		logger.Warn("category logging disabled", zap.Error(err))
	}
	logging.Boot("diary starting (api=%s)", cfg.API.BaseURL)

	providers := []identity.Provider{identity.Env(), identity.Static(&cfg.Identity)}
	if userID > 0 {
		providers = append([]identity.Provider{identity.Static(&identity.Identity{ID: userID})}, providers...)
	}
	id := identity.Resolve(ctx, identity.Chain(providers...))
	if id == nil {
		logger.Debug("no session identity")
	} else {
		logger.Debug("session identity", zap.Int64("user_id", id.ID))
	}

	return &session{
		cfg:      cfg,
		client:   api.NewClient(cfg.API.BaseURL, api.WithTimeout(cfg.GetAPITimeout())),
		identity: id,
		baseDir:  baseDir,
	}, nil
}

func (s *session) styles() ui.Styles {
	return ui.NewStyles(ui.ThemeFor(s.cfg.UI.Theme))
}

// userID returns the session user or a missing-input error.
func (s *session) userID() (int64, error) {
	if s.identity == nil {
		return 0, api.MissingInput("user id")
	}
	return s.identity.ID, nil
}

// commandContext is cancelled on SIGINT/SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// =============================================================================
// INTERACTIVE
// =============================================================================

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	// Logging settings follow the config file while the UI is open.
	watcher, err := config.NewWatcher(configPath, s.baseDir, func(c *config.Config) {
		logging.Config("config reloaded (debug=%v)", c.Logging.DebugMode)
	})
	if err != nil {
		logging.ConfigWarn("config watcher unavailable: %v", err)
	} else if err := watcher.Start(ctx); err != nil {
		logging.ConfigWarn("not watching %s: %v", filepath.Dir(configPath), err)
		watcher.Stop()
	} else {
		defer watcher.Stop()
	}

	deps := app.Deps{
		Service:  s.client,
		Identity: s.identity,
		PageSize: s.cfg.UI.PageSize,
		Timeout:  s.cfg.GetAPITimeout(),
		Styles:   s.styles(),
		Markdown: s.cfg.UI.Markdown,
	}
	p := tea.NewProgram(app.New(deps, startRoute), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}
