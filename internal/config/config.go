// Package config handles resolving configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Log levels accepted in the log_level field.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Defaults for the list cache.
const (
	DefaultCacheTTL      = 10 * time.Hour
	DefaultCacheMaxBytes = 64 << 20 // 64 MiB
)

// envPrefix namespaces the environment variable overrides.
const envPrefix = "COOKBOOK_"

// Config is the resolved configuration of the cookbook service.
type Config struct {
	LogLevel       string `yaml:"log_level"`
	DevMode        bool   `yaml:"dev_mode"`
	Address        string `yaml:"address"`
	MetricsAddress string `yaml:"metrics_address,omitempty"`
	DBFilepath     string `yaml:"db_filepath"`
	Cache          Cache  `yaml:"cache"`
}

// Cache configures the recipe list cache. A zero TTL disables caching.
type Cache struct {
	TTL      time.Duration `yaml:"ttl"`
	MaxBytes int64         `yaml:"max_bytes"`
}

// Default returns a version of the config with all default values populated.
func Default() *Config {
	return &Config{
		LogLevel:   LogLevelInfo,
		Address:    "localhost:5000",
		DBFilepath: filepath.Join(xdg.DataHome, "cookbook", "db.sqlite"),
		Cache: Cache{
			TTL:      DefaultCacheTTL,
			MaxBytes: DefaultCacheMaxBytes,
		},
	}
}

// Load loads a YAML configuration file from a path, merges it over the
// defaults, applies COOKBOOK_* environment overrides and validates the result.
func Load(path string) (*Config, error) {
	bytes, err := os.ReadFile(path) //nolint:gosec // allow the config file to be loaded from anywhere
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err = yaml.Unmarshal(bytes, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	if err = cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate reports every invalid field of the config.
func (c *Config) Validate() error {
	var errs []error
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	if c.Address == "" {
		errs = append(errs, errors.New("address: must not be empty"))
	}
	if c.DBFilepath == "" {
		errs = append(errs, errors.New("db_filepath: must not be empty"))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, errors.New("cache.ttl: must not be negative"))
	}
	if c.Cache.MaxBytes <= 0 {
		errs = append(errs, errors.New("cache.max_bytes: must be positive"))
	}
	return errors.Join(errs...)
}

// SlogLevel returns the [slog.Level] of the configured log level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"LOG_LEVEL":       &c.LogLevel,
		"ADDRESS":         &c.Address,
		"METRICS_ADDRESS": &c.MetricsAddress,
		"DB_FILEPATH":     &c.DBFilepath,
	}
	for key, field := range strs {
		if val, ok := lookup(envPrefix + key); ok {
			*field = val
		}
	}
	if val, ok := lookup(envPrefix + "DEV_MODE"); ok {
		devMode, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%sDEV_MODE: %w", envPrefix, err)
		}
		c.DevMode = devMode
	}
	if val, ok := lookup(envPrefix + "CACHE_TTL"); ok {
		ttl, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("%sCACHE_TTL: %w", envPrefix, err)
		}
		c.Cache.TTL = ttl
	}
	return nil
}
