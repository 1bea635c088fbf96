// Package config handles configuration loading and validation for blue
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/iiroan/blue/internal/settings"
	"github.com/iiroan/blue/internal/storage"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BLUE_"

// Config represents the main configuration for blue
type Config struct {
	Log      LogConfig      `yaml:"log" env:", prefix=LOG_"`
	Storage  storage.Config `yaml:"storage" env:", prefix=STORAGE_"`
	Settings SettingsConfig `yaml:"settings" env:", prefix=SETTINGS_"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `yaml:"level" env:"LEVEL, overwrite"`
	NoColor    bool   `yaml:"no_color" env:"NO_COLOR, overwrite"`
	Timestamps bool   `yaml:"timestamps" env:"TIMESTAMPS, overwrite"`
}

// SettingsConfig holds settings store options
type SettingsConfig struct {
	Key          string        `yaml:"key" env:"KEY, overwrite"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT, overwrite"`
}

// Dir returns the per-user directory holding blue's config and data.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "blue")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Storage: storage.Config{
			Driver: storage.DriverFile,
			Path:   filepath.Join(Dir(), "store.yaml"),
			Redis: storage.RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "blue:",
			},
		},
		Settings: SettingsConfig{
			Key:          settings.DefaultKey,
			WriteTimeout: settings.DefaultWriteTimeout,
		},
	}
}

// Load loads configuration from a file and applies BLUE_* environment
// overrides. A missing file yields the defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	return LoadWith(ctx, path, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit environment source.
func LoadWith(ctx context.Context, path string, env envconfig.Lookuper) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, env),
	}); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.Settings.Key == "" {
		return fmt.Errorf("settings.key is required")
	}
	if c.Settings.WriteTimeout <= 0 {
		return fmt.Errorf("settings.write_timeout must be positive")
	}
	return c.Storage.Validate()
}
