package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"achievediary/internal/logging"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvAPIURL     = "DIARY_API_URL"
	EnvAPITimeout = "DIARY_API_TIMEOUT"
	EnvUserID     = "DIARY_USER_ID"
	EnvPageSize   = "DIARY_PAGE_SIZE"
	EnvTheme      = "DIARY_THEME"
	EnvDebug      = "DIARY_DEBUG"

	// envLegacyAPIURL is the web build's variable, honoured when
	// DIARY_API_URL is unset.
	envLegacyAPIURL = "VITE_API_URL"
)

// LoadDotEnv reads KEY=VALUE pairs from dir/.env into the process
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return err
	}
	logging.Config("loaded environment from %s", path)
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if u := os.Getenv(EnvAPIURL); u != "" {
		c.API.BaseURL = u
	} else if u := os.Getenv(envLegacyAPIURL); u != "" {
		c.API.BaseURL = u
	}
	if t := os.Getenv(EnvAPITimeout); t != "" {
		c.API.Timeout = t
	}

	if v := os.Getenv(EnvUserID); v != "" {
		if id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && id > 0 {
			c.Identity.ID = id
		} else {
			logging.ConfigWarn("ignoring %s=%q: not a positive integer", EnvUserID, v)
		}
	}

	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			c.UI.PageSize = n
		} else {
			logging.ConfigWarn("ignoring %s=%q", EnvPageSize, v)
		}
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}

	if v := os.Getenv(EnvDebug); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
}
