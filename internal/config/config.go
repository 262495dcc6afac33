// Package config manages the nexuskeycodectl/nexuskeycode-qa CLI layer's
// configuration using koanf/v2.
//
// It governs only the CLI and QA-generator surface: rendering defaults
// (prefix/suffix/separator/group length for each protocol), where to read
// the default secret key from, and the metrics listener address. The core
// codec packages (nexusprim, obscure, fullcode, smallcode, channelcmd,
// uartkey) take every parameter as an explicit function argument and never
// consult this package, per the library's no-global-state contract.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete nexuskeycodectl configuration.
type Config struct {
	Full          FullRenderConfig  `koanf:"full"`
	Small         SmallRenderConfig `koanf:"small"`
	SecretKeyFile string            `koanf:"secret_key_file"`
	Metrics       MetricsConfig     `koanf:"metrics"`
	Log           LogConfig         `koanf:"log"`
}

// FullRenderConfig holds the default rendering parameters for Full protocol
// keycodes: prefix, suffix, separator, and digit group length.
type FullRenderConfig struct {
	// Prefix is prepended to every rendered keycode.
	Prefix string `koanf:"prefix"`
	// Suffix is appended to every rendered keycode.
	Suffix string `koanf:"suffix"`
	// Separator joins consecutive digit groups.
	Separator string `koanf:"separator"`
	// GroupLen is the number of digits per group.
	GroupLen int `koanf:"group_len"`
}

// SmallRenderConfig holds the default rendering parameters for Small
// protocol keycodes: prefix, separator, and digit group length.
type SmallRenderConfig struct {
	// Prefix is the single-character prefix prepended to every rendered
	// keycode.
	Prefix string `koanf:"prefix"`
	// Separator joins consecutive digit groups.
	Separator string `koanf:"separator"`
	// GroupLen is the number of quaternary digits per group.
	GroupLen int `koanf:"group_len"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration for the
// nexuskeycode-qa batch generator.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g., ":9100").
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with the conventional keycode
// presentation: prefix "*"/suffix "#" for Full, prefix "1" for Small, space
// separator, group length 3 for both.
func DefaultConfig() *Config {
	return &Config{
		Full: FullRenderConfig{
			Prefix:    "*",
			Suffix:    "#",
			Separator: " ",
			GroupLen:  3,
		},
		Small: SmallRenderConfig{
			Prefix:    "1",
			Separator: " ",
			GroupLen:  3,
		},
		SecretKeyFile: "",
		Metrics: MetricsConfig{
			Addr: ":9100",
			Path: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for nexuskeycodectl
// configuration. Variables are named NEXUSKEYCODE_<section>_<key>, e.g.,
// NEXUSKEYCODE_FULL_PREFIX.
const envPrefix = "NEXUSKEYCODE_"

// Load reads configuration from a YAML file at path, overlays environment
// variable overrides (NEXUSKEYCODE_ prefix), and merges on top of
// DefaultConfig(). Missing fields inherit defaults.
//
// Environment variable mapping:
//
//	NEXUSKEYCODE_FULL_PREFIX      -> full.prefix
//	NEXUSKEYCODE_SMALL_PREFIX     -> small.prefix
//	NEXUSKEYCODE_SECRET_KEY_FILE  -> secret_key_file
//	NEXUSKEYCODE_METRICS_ADDR     -> metrics.addr
//	NEXUSKEYCODE_LOG_LEVEL        -> log.level
//
// Uses koanf/v2 with file + env providers and YAML parser.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config from %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

// envKeyMapper transforms NEXUSKEYCODE_FULL_PREFIX -> full.prefix. Strips
// the NEXUSKEYCODE_ prefix, lowercases, and replaces the first _ (the one
// after the section name) with ., so FULL_GROUP_LEN -> full.group_len. The
// top-level SECRET_KEY_FILE maps to secret_key_file unchanged.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	if s == "secret_key_file" {
		return s
	}
	return strings.Replace(s, "_", ".", 1)
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"full.prefix":     defaults.Full.Prefix,
		"full.suffix":     defaults.Full.Suffix,
		"full.separator":  defaults.Full.Separator,
		"full.group_len":  defaults.Full.GroupLen,
		"small.prefix":    defaults.Small.Prefix,
		"small.separator": defaults.Small.Separator,
		"small.group_len": defaults.Small.GroupLen,
		"secret_key_file": defaults.SecretKeyFile,
		"metrics.addr":    defaults.Metrics.Addr,
		"metrics.path":    defaults.Metrics.Path,
		"log.level":       defaults.Log.Level,
		"log.format":      defaults.Log.Format,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrEmptyFullPrefix indicates the Full protocol prefix is empty.
	ErrEmptyFullPrefix = errors.New("full.prefix must not be empty")

	// ErrEmptySmallPrefix indicates the Small protocol prefix is empty; a
	// non-empty single-character prefix is required.
	ErrEmptySmallPrefix = errors.New("small.prefix must not be empty")

	// ErrInvalidFullGroupLen indicates the Full group length is not positive.
	ErrInvalidFullGroupLen = errors.New("full.group_len must be >= 1")

	// ErrInvalidSmallGroupLen indicates the Small group length is not positive.
	ErrInvalidSmallGroupLen = errors.New("small.group_len must be >= 1")

	// ErrEmptyMetricsAddr indicates the metrics listen address is empty.
	ErrEmptyMetricsAddr = errors.New("metrics.addr must not be empty")
)

// Validate checks the configuration for logical errors.
// Returns the first validation error encountered.
func Validate(cfg *Config) error {
	if cfg.Full.Prefix == "" {
		return ErrEmptyFullPrefix
	}

	if cfg.Small.Prefix == "" {
		return ErrEmptySmallPrefix
	}

	if cfg.Full.GroupLen < 1 {
		return ErrInvalidFullGroupLen
	}

	if cfg.Small.GroupLen < 1 {
		return ErrInvalidSmallGroupLen
	}

	if cfg.Metrics.Addr == "" {
		return ErrEmptyMetricsAddr
	}

	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
//
// Recognized values: "debug", "info", "warn", "error" (case-insensitive).
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
