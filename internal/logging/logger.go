// Package logging provides config-driven categorized file logging for the
// diary client. Each category writes to its own rotating file under the logs
// directory. When debug mode is off nothing is written at all, which keeps
// the terminal UI clean.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Category represents a log category/subsystem
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup and shutdown
	CategoryAPI      Category = "api"      // HTTP calls to the diary backend
	CategoryRouter   Category = "router"   // Panel navigation
	CategoryPanel    Category = "panel"    // Panel controller state transitions
	CategoryIdentity Category = "identity" // Session identity resolution
	CategoryConfig   Category = "config"   // Config loading and reloads
)

// AllCategories lists every category in a stable order.
var AllCategories = []Category{
	CategoryBoot,
	CategoryAPI,
	CategoryRouter,
	CategoryPanel,
	CategoryIdentity,
	CategoryConfig,
}

// Settings mirrors config.LoggingConfig to avoid an import cycle.
type Settings struct {
	DebugMode  bool
	Level      string // debug, info, warn, error
	Format     string // console, json
	Dir        string
	Categories map[string]bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger writes one category to one file. A Logger handle stays valid
// across Configure: its file and encoder are swapped underneath it.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
	base     *zap.Logger

	mu   sync.RWMutex
	core zapcore.Core
	sink *lumberjack.Logger
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	settings  Settings
	configMu  sync.RWMutex
	level     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Initialize applies settings and creates the logs directory when debug mode
// is on. Calling it again behaves like Configure.
func Initialize(s Settings) error {
	if s.DebugMode && s.Dir == "" {
		return fmt.Errorf("logs directory required in debug mode")
	}
	Configure(s)

	if !s.DebugMode {
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("=== diary logging initialized ===")
	boot.Info("Logs directory: %s", s.Dir)
	boot.Info("Log level: %s", level.Level())
	if len(s.Categories) == 0 {
		boot.Info("All categories enabled (no category filter)")
	} else {
		enabled := 0
		for cat, on := range s.Categories {
			if on {
				enabled++
			}
			boot.Debug("Category '%s': %v", cat, on)
		}
		boot.Info("Enabled categories: %d/%d", enabled, len(s.Categories))
	}
	return nil
}

// Configure swaps the active settings. Loggers already handed out keep
// working and write through the new settings from the next entry on.
func Configure(s Settings) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	configMu.Lock()
	settings = s
	configMu.Unlock()

	level.SetLevel(parseLevel(s.Level))
	for cat, l := range loggers {
		l.attach(s, categoryEnabled(s, cat))
	}
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsDebugMode returns whether logging is enabled at all.
func IsDebugMode() bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return settings.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return categoryEnabled(settings, category)
}

func categoryEnabled(s Settings, category Category) bool {
	if !s.DebugMode {
		return false
	}
	if s.Categories == nil {
		return true
	}
	enabled, exists := s.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) the logger for a category. Disabled categories
// write nothing.
func Get(category Category) *Logger {
	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	configMu.RLock()
	s := settings
	configMu.RUnlock()

	l := &Logger{category: category}
	l.base = zap.New(&swapCore{l: l})
	l.sugar = l.base.Sugar()
	l.attach(s, categoryEnabled(s, category))
	loggers[category] = l
	return l
}

// attach points l at a fresh file for s, or at nothing when disabled. The
// previous file is closed only once no entry can still be writing to it.
func (l *Logger) attach(s Settings, enabled bool) {
	var core zapcore.Core
	var sink *lumberjack.Logger
	if enabled {
		sink = &lumberjack.Logger{
			Filename:   filepath.Join(s.Dir, string(l.category)+".log"),
			MaxSize:    orDefault(s.MaxSizeMB, 10),
			MaxBackups: orDefault(s.MaxBackups, 3),
			MaxAge:     orDefault(s.MaxAgeDays, 14),
			Compress:   s.Compress,
		}
		core = zapcore.NewCore(newEncoder(s.Format), zapcore.AddSync(sink), level).
			With([]zapcore.Field{zap.String("cat", string(l.category))})
	}

	l.mu.Lock()
	oldCore, oldSink := l.core, l.sink
	l.core, l.sink = core, sink
	l.mu.Unlock()

	if oldCore != nil {
		_ = oldCore.Sync()
	}
	if oldSink != nil {
		_ = oldSink.Close()
	}
}

// active reports whether l currently has a file behind it.
func (l *Logger) active() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.core != nil
}

// swapCore routes entries to whatever core its Logger holds at write time.
type swapCore struct {
	l      *Logger
	fields []zapcore.Field
}

func (c *swapCore) Enabled(lvl zapcore.Level) bool {
	return level.Enabled(lvl) && c.l.active()
}

func (c *swapCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &swapCore{l: c.l, fields: merged}
}

func (c *swapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *swapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	c.l.mu.RLock()
	defer c.l.mu.RUnlock()
	if c.l.core == nil {
		return nil
	}
	if len(c.fields) == 0 {
		return c.l.core.Write(ent, fields)
	}
	return c.l.core.With(c.fields).Write(ent, fields)
}

func (c *swapCore) Sync() error {
	c.l.mu.RLock()
	defer c.l.mu.RUnlock()
	if c.l.core == nil {
		return nil
	}
	return c.l.core.Sync()
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == "json" {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

// Zap returns the structured logger for this category. Disabled categories
// return a no-op logger, never nil.
func (l *Logger) Zap() *zap.Logger {
	if l.base == nil {
		return zap.NewNop()
	}
	return l.base
}

// CloseAll flushes and closes all open log files (call at shutdown).
// Handles obtained earlier stop writing.
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		l.attach(Settings{}, false)
	}
	loggers = make(map[Category]*Logger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - no-ops when the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// APIDebug logs debug to the api category
func APIDebug(format string, args ...interface{}) {
	Get(CategoryAPI).Debug(format, args...)
}

// RouterDebug logs debug to the router category
func RouterDebug(format string, args ...interface{}) {
	Get(CategoryRouter).Debug(format, args...)
}

// Panel logs to the panel category
func Panel(format string, args ...interface{}) {
	Get(CategoryPanel).Info(format, args...)
}

// PanelDebug logs debug to the panel category
func PanelDebug(format string, args ...interface{}) {
	Get(CategoryPanel).Debug(format, args...)
}

// PanelError logs an error to the panel category
func PanelError(format string, args ...interface{}) {
	Get(CategoryPanel).Error(format, args...)
}

// Identity logs to the identity category
func Identity(format string, args ...interface{}) {
	Get(CategoryIdentity).Info(format, args...)
}

// IdentityWarn logs a warning to the identity category
func IdentityWarn(format string, args ...interface{}) {
	Get(CategoryIdentity).Warn(format, args...)
}

// Config logs to the config category
func Config(format string, args ...interface{}) {
	Get(CategoryConfig).Info(format, args...)
}

// ConfigWarn logs a warning to the config category
func ConfigWarn(format string, args ...interface{}) {
	Get(CategoryConfig).Warn(format, args...)
}
