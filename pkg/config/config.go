// Package config holds the retry settings and loads them from the environment or YAML files.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvMaxRetries            = "CHAINSPEC_MAX_RETRIES"
	EnvShouldMeansEventually = "CHAINSPEC_SHOULD_MEANS_EVENTUALLY"
	EnvRetryInterval         = "CHAINSPEC_RETRY_INTERVAL"
)

// Defaults.
const (
	DefaultMaxRetries    = 5
	DefaultRetryInterval = 100 * time.Millisecond
)

// Config holds the settings of the retry engine.
type Config struct {
	// MaxRetries bounds the retry attempts of a failing eventual assertion.
	MaxRetries int `yaml:"max_retries"`
	// ShouldMeansEventually makes every should chain behave as shouldEventually.
	ShouldMeansEventually bool `yaml:"should_means_eventually"`
	// RetryInterval is the wait of the default delay before each attempt.
	RetryInterval time.Duration `yaml:"retry_interval"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxRetries:    DefaultMaxRetries,
		RetryInterval: DefaultRetryInterval,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries)
	}
	if c.RetryInterval < 0 {
		return fmt.Errorf("retry_interval must not be negative, got %s", c.RetryInterval)
	}
	return nil
}

// FromEnv overrides the defaults with environment variables.
// Invalid values are ignored with a warning and the default is kept.
func FromEnv(logger *slog.Logger) Config {
	return FromLookup(os.LookupEnv, logger)
}

// FromLookup is FromEnv with an injectable variable lookup.
func FromLookup(lookup func(string) (string, bool), logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg := Default()

	if val, ok := lookup(EnvMaxRetries); ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			cfg.MaxRetries = n
		} else {
			logger.Warn("ignoring invalid setting, keeping default",
				"var", EnvMaxRetries, "value", val, "default", cfg.MaxRetries)
		}
	}

	if val, ok := lookup(EnvShouldMeansEventually); ok && val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.ShouldMeansEventually = b
		} else {
			logger.Warn("ignoring invalid setting, keeping default",
				"var", EnvShouldMeansEventually, "value", val, "default", cfg.ShouldMeansEventually)
		}
	}

	if val, ok := lookup(EnvRetryInterval); ok && val != "" {
		if d, err := time.ParseDuration(val); err == nil && d >= 0 {
			cfg.RetryInterval = d
		} else {
			logger.Warn("ignoring invalid setting, keeping default",
				"var", EnvRetryInterval, "value", val, "default", cfg.RetryInterval)
		}
	}

	return cfg
}

// Overrides mirrors Config with optional fields so a document only overrides what it sets.
type Overrides struct {
	MaxRetries            *int    `yaml:"max_retries"`
	ShouldMeansEventually *bool   `yaml:"should_means_eventually"`
	RetryInterval         *string `yaml:"retry_interval"`
}

// Apply returns base with the set fields of o. Invalid values are ignored with a warning.
func (o Overrides) Apply(base Config, logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg := base
	if o.MaxRetries != nil {
		if *o.MaxRetries >= 0 {
			cfg.MaxRetries = *o.MaxRetries
		} else {
			logger.Warn("ignoring invalid setting, keeping default",
				"key", "max_retries", "value", *o.MaxRetries)
		}
	}
	if o.ShouldMeansEventually != nil {
		cfg.ShouldMeansEventually = *o.ShouldMeansEventually
	}
	if o.RetryInterval != nil {
		if d, err := time.ParseDuration(*o.RetryInterval); err == nil && d >= 0 {
			cfg.RetryInterval = d
		} else {
			logger.Warn("ignoring invalid setting, keeping default",
				"key", "retry_interval", "value", *o.RetryInterval)
		}
	}
	return cfg
}

// LoadFile reads a YAML configuration file on top of base.
// A missing file returns base unchanged. Invalid values are ignored with a warning.
func LoadFile(path string, base Config, logger *slog.Logger) (Config, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("failed to read config: %w", err)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return base, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return o.Apply(base, logger.With("file", path)), nil
}
