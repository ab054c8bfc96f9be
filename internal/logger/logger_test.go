package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"garbage", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	defaults := DefaultConfig()
	if config.Level != defaults.Level || config.FilePath != defaults.FilePath {
		t.Errorf("missing file did not fall back to defaults: %+v", config)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	yaml := `
logging:
  level: DEBUG
  console_enabled: true
  file_enabled: true
  file_path: /tmp/out.log
  file_max_size_mb: 25
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want DEBUG", config.Level)
	}
	if !config.FileEnabled || config.FilePath != "/tmp/out.log" {
		t.Errorf("file settings not applied: %+v", config)
	}
	if config.FileMaxSizeMB != 25 {
		t.Errorf("FileMaxSizeMB = %d, want 25", config.FileMaxSizeMB)
	}
	if config.FileMaxBackups != DefaultConfig().FileMaxBackups {
		t.Errorf("unset field FileMaxBackups = %d, want default", config.FileMaxBackups)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_FILE_PATH", "/tmp/env.log")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want env override ERROR", config.Level)
	}
	if config.FilePath != "/tmp/env.log" {
		t.Errorf("FilePath = %q, want env override", config.FilePath)
	}
}
