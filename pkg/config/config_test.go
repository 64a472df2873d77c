package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "LOG_LEVEL", "MAX_UPLOAD_BYTES", "RECON_DB", "SETTINGS_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, expected 8080", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadBytes != 10<<20 {
		t.Errorf("MaxUploadBytes = %d, expected %d", cfg.Server.MaxUploadBytes, 10<<20)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, expected info", cfg.LogLevel)
	}
	if cfg.Server.DBDSN == "" {
		t.Error("DBDSN should default to the in-memory DSN")
	}
	if cfg.Processing.AsOf != nil {
		t.Errorf("AsOf = %v, expected nil (today at request time)", cfg.Processing.AsOf)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, expected 9090", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadBytes != 1048576 {
		t.Errorf("MaxUploadBytes = %d, expected 1048576", cfg.Server.MaxUploadBytes)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, expected debug", cfg.LogLevel)
	}
}

func TestLoadBadUploadLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_UPLOAD_BYTES", "ten megabytes")

	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric MAX_UPLOAD_BYTES")
	}
}

func TestLoadSettingsFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "date_formats:\n  - \"02.01.2006\"\nas_of: \"2026-08-31\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}
	t.Setenv("SETTINGS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Processing.ExtraDateFormats) != 1 || cfg.Processing.ExtraDateFormats[0] != "02.01.2006" {
		t.Errorf("ExtraDateFormats = %v", cfg.Processing.ExtraDateFormats)
	}
	if cfg.Processing.AsOf == nil {
		t.Fatal("AsOf should be pinned by the settings file")
	}
	if got := cfg.Processing.AsOf.Format("2006-01-02"); got != "2026-08-31" {
		t.Errorf("AsOf = %s, expected 2026-08-31", got)
	}
}

func TestLoadSettingsUnknownKey(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("date_fromats: []\n"), 0o644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}
	t.Setenv("SETTINGS_FILE", path)

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown settings key")
	}
}

func TestLoadSettingsBadAsOf(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("as_of: \"31-08-2026\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}
	t.Setenv("SETTINGS_FILE", path)

	if _, err := Load(); err == nil {
		t.Error("expected error for as_of not in YYYY-MM-DD form")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = "http" }, true},
		{"zero upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }, true},
		{"empty dsn", func(c *Config) { c.Server.DBDSN = "" }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)

			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseAsOf(t *testing.T) {
	asOf, err := ParseAsOf("2024-03-10")
	if err != nil {
		t.Fatalf("ParseAsOf() error = %v", err)
	}
	if got := asOf.Format("2006-01-02"); got != "2024-03-10" {
		t.Errorf("ParseAsOf = %s, expected 2024-03-10", got)
	}

	if _, err := ParseAsOf("10-03-2024"); err == nil {
		t.Error("expected error for day-first as_of value")
	}
}
