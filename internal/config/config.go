// Package config loads the runtime's options.
//
// Options come from an optional YAML file overlaid on the defaults.
// Absent keys keep their defaults, so a config file only needs to name
// what it changes.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/termflux/internal/synth"
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidPoolCapacity is returned for a negative pool capacity.
	ErrInvalidPoolCapacity = errors.New("pool capacity cannot be negative")

	// ErrInvalidLogLevel is returned for an unrecognized log level.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config holds the runtime options.
type Config struct {
	// PoolCapacity bounds each event class's free list. Zero means the
	// built-in default.
	PoolCapacity int `yaml:"pool_capacity"`

	// LegacyPrevention enables the returnValue fallback when detecting
	// pre-cancelled native events.
	LegacyPrevention bool `yaml:"legacy_prevention"`

	// LogLevel is the minimum level the runtime logs at
	// (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Mouse enables mouse reporting on the terminal.
	Mouse bool `yaml:"mouse"`

	// Paste enables bracketed-paste reporting on the terminal.
	Paste bool `yaml:"paste"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		PoolCapacity:     synth.DefaultPoolCapacity,
		LegacyPrevention: true,
		LogLevel:         "info",
		Mouse:            true,
		Paste:            true,
	}
}

// Load reads a YAML config file overlaid on the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads YAML configuration from r overlaid on the defaults.
func Parse(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	if c.PoolCapacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPoolCapacity, c.PoolCapacity)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
}

// ClassOptions translates the configuration into event-class options.
func (c Config) ClassOptions() []synth.ClassOption {
	var opts []synth.ClassOption
	if c.PoolCapacity > 0 {
		opts = append(opts, synth.WithPoolCapacity(c.PoolCapacity))
	}
	if !c.LegacyPrevention {
		opts = append(opts, synth.WithoutLegacyPrevention())
	}
	return opts
}
