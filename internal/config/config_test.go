package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/angaza/nexus-keycode-go/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if cfg.Full.Prefix != "*" {
		t.Errorf("Full.Prefix = %q, want %q", cfg.Full.Prefix, "*")
	}

	if cfg.Full.Suffix != "#" {
		t.Errorf("Full.Suffix = %q, want %q", cfg.Full.Suffix, "#")
	}

	if cfg.Full.Separator != " " {
		t.Errorf("Full.Separator = %q, want %q", cfg.Full.Separator, " ")
	}

	if cfg.Full.GroupLen != 3 {
		t.Errorf("Full.GroupLen = %d, want %d", cfg.Full.GroupLen, 3)
	}

	if cfg.Small.Prefix != "1" {
		t.Errorf("Small.Prefix = %q, want %q", cfg.Small.Prefix, "1")
	}

	if cfg.Small.GroupLen != 3 {
		t.Errorf("Small.GroupLen = %d, want %d", cfg.Small.GroupLen, 3)
	}

	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9100")
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}

	if err := config.Validate(cfg); err != nil {
		t.Errorf("DefaultConfig() failed validation: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	yamlContent := `
full:
  prefix: ">"
  suffix: "<"
  separator: "-"
  group_len: 4
small:
  prefix: "9"
  separator: ""
  group_len: 5
secret_key_file: "/etc/nexuskeycode/key.hex"
metrics:
  addr: ":9200"
  path: "/custom-metrics"
log:
  level: "debug"
  format: "text"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Full.Prefix != ">" {
		t.Errorf("Full.Prefix = %q, want %q", cfg.Full.Prefix, ">")
	}

	if cfg.Full.GroupLen != 4 {
		t.Errorf("Full.GroupLen = %d, want %d", cfg.Full.GroupLen, 4)
	}

	if cfg.Small.Prefix != "9" {
		t.Errorf("Small.Prefix = %q, want %q", cfg.Small.Prefix, "9")
	}

	if cfg.SecretKeyFile != "/etc/nexuskeycode/key.hex" {
		t.Errorf("SecretKeyFile = %q, want %q", cfg.SecretKeyFile, "/etc/nexuskeycode/key.hex")
	}

	if cfg.Metrics.Addr != ":9200" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9200")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	t.Parallel()

	yamlContent := `
full:
  prefix: "+"
log:
  level: "warn"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Full.Prefix != "+" {
		t.Errorf("Full.Prefix = %q, want %q", cfg.Full.Prefix, "+")
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}

	// Defaults should be preserved where not overridden.
	if cfg.Full.Suffix != "#" {
		t.Errorf("Full.Suffix = %q, want default %q", cfg.Full.Suffix, "#")
	}

	if cfg.Small.Prefix != "1" {
		t.Errorf("Small.Prefix = %q, want default %q", cfg.Small.Prefix, "1")
	}

	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want default %q", cfg.Metrics.Addr, ":9100")
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr error
	}{
		{
			name: "empty full prefix",
			modify: func(cfg *config.Config) {
				cfg.Full.Prefix = ""
			},
			wantErr: config.ErrEmptyFullPrefix,
		},
		{
			name: "empty small prefix",
			modify: func(cfg *config.Config) {
				cfg.Small.Prefix = ""
			},
			wantErr: config.ErrEmptySmallPrefix,
		},
		{
			name: "zero full group len",
			modify: func(cfg *config.Config) {
				cfg.Full.GroupLen = 0
			},
			wantErr: config.ErrInvalidFullGroupLen,
		},
		{
			name: "negative small group len",
			modify: func(cfg *config.Config) {
				cfg.Small.GroupLen = -1
			},
			wantErr: config.ErrInvalidSmallGroupLen,
		},
		{
			name: "empty metrics addr",
			modify: func(cfg *config.Config) {
				cfg.Metrics.Addr = ""
			},
			wantErr: config.ErrEmptyMetricsAddr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.modify(cfg)

			err := config.Validate(cfg)
			if err == nil {
				t.Fatal("Validate() returned nil, want error")
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "unknown", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := config.ParseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/path/config.yml")
	if err == nil {
		t.Fatal("Load() returned nil error for nonexistent file")
	}
}

// writeTemp creates a temporary YAML file and returns its path.
func writeTemp(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "nexuskeycodectl.yml")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	return path
}
