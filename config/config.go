// Package config loads simulator settings from a TOML file. Every
// field has a working default, so the file and each of its keys are
// optional; Load layers the file over Default.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Config is the full simulator configuration.
type Config struct {
	// Listen is the optional TCP address of the line-command listener,
	// e.g. "127.0.0.1:7543". Empty disables the listener.
	Listen string `toml:"listen"`

	// Algorithm selects the routing variant activated at startup.
	Algorithm string `toml:"algorithm"`

	// Seed seeds the evaluation sampler and the startup algorithm.
	Seed int64 `toml:"seed"`

	// Progress enables evaluation progress output.
	Progress bool `toml:"progress"`

	// Export presets the graph export path used by the export command.
	Export string `toml:"export"`

	// HopLimit overrides the algorithm's default hop limit when positive.
	HopLimit int `toml:"hop_limit"`

	Log Log `toml:"log"`
}

// Log configures logging output and rotation.
type Log struct {
	// Level is a logrus level name ("debug", "info", "warn", "error").
	Level string `toml:"level"`

	// File is the optional log file path; empty logs to stderr. File
	// output rotates at MaxSizeMB keeping MaxBackups old files.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Algorithm: "random",
		Seed:      42,
		Log: Log{
			Level:      "info",
			MaxSizeMB:  20,
			MaxBackups: 3,
		},
	}
}

// Load reads the TOML file at path over the defaults and validates the
// result.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks field values that would otherwise fail deep inside
// startup.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log level %q: %w", c.Log.Level, err)
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("config: log max_size_mb must be positive, got %d", c.Log.MaxSizeMB)
	}

	return nil
}

// LogLevel returns the parsed logrus level; Validate must have passed.
func (c Config) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}

	return lvl
}
