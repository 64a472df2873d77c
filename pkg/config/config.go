// Package config provides configuration management for the
// reconciliation service. It loads settings from environment variables
// and .env files, plus an optional YAML processing-settings file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultMaxUploadBytes = 10 << 20 // 10 MiB
	defaultDBDSN          = "file:recon?mode=memory&cache=shared"
)

// Config represents the application configuration.
type Config struct {
	Server     ServerConfig
	Processing ProcessingConfig
	LogLevel   string
}

// ServerConfig represents the HTTP server configuration.
type ServerConfig struct {
	Port           string
	MaxUploadBytes int64
	DBDSN          string
}

// ProcessingConfig tunes normalization and status analysis. The
// defaults in code carry the full behavior; the settings file only
// extends the accepted date formats or pins the analysis date.
type ProcessingConfig struct {
	ExtraDateFormats []string
	AsOf             *time.Time
}

// Load loads configuration from environment variables.
// It automatically loads a .env file from the current directory if
// available; a custom .env path can be passed instead. When
// SETTINGS_FILE points at a YAML settings file, its values are merged
// into the processing configuration.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	maxUpload, err := parseInt64Env("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", defaultPort),
			MaxUploadBytes: maxUpload,
			DBDSN:          getEnvOrDefault("RECON_DB", defaultDBDSN),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
	}

	if settingsPath := os.Getenv("SETTINGS_FILE"); settingsPath != "" {
		settings, err := LoadSettings(settingsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings file: %w", err)
		}
		if err := settings.apply(&config.Processing); err != nil {
			return nil, fmt.Errorf("invalid settings file %s: %w", settingsPath, err)
		}
	}

	return config, nil
}

// Validate validates the configuration. It checks that every value a
// component will consume is well formed.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Server.Port, err)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.Server.MaxUploadBytes)
	}
	if c.Server.DBDSN == "" {
		return fmt.Errorf("RECON_DB must not be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps the configured log level onto slog's levels.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseInt64Env parses an int64 from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseInt64Env(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}
