// Package config loads the diary client's YAML configuration, applies
// environment overrides and watches the file for logging changes.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"achievediary/internal/identity"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file lives relative to the working
// directory.
const DefaultPath = ".diary/config.yaml"

// Config holds all diary client configuration.
type Config struct {
	Name string `yaml:"name"`

	// Backend connection
	API APIConfig `yaml:"api"`

	// Fallback identity for hosts that cannot inject one
	Identity identity.Identity `yaml:"identity"`

	UI UIConfig `yaml:"ui"`

	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the backend client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name: "diary",
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: "15s",
		},
		UI: *DefaultUIConfig(),
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			Dir:        ".diary/logs",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetAPITimeout returns the per-request timeout as a duration.
func (c *Config) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "light", "dark"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid api.base_url %q (expected http(s)://host[:port])", c.API.BaseURL)
	}
	if c.API.Timeout != "" {
		if d, err := time.ParseDuration(c.API.Timeout); err != nil || d <= 0 {
			return fmt.Errorf("invalid api.timeout %q", c.API.Timeout)
		}
	}
	if c.UI.PageSize < 1 || c.UI.PageSize > MaxPageSize {
		return fmt.Errorf("invalid ui.page_size %d (valid: 1-%d)", c.UI.PageSize, MaxPageSize)
	}

	validTheme := false
	for _, t := range ValidThemes {
		if strings.EqualFold(c.UI.Theme, t) {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}
	if c.Identity.ID < 0 {
		return fmt.Errorf("invalid identity.id %d", c.Identity.ID)
	}
	return nil
}
