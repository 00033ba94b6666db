// Package config loads tabstorm configuration from TOML and supports
// live reload of the few settings that are safe to change mid-session.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the tabstorm configuration.
type Config struct {
	// StaffWidth is the total character width of newly created staves.
	StaffWidth int `toml:"staff_width"`

	// TwelveTone appends the numeric pitch-class spelling to chord
	// analyses.
	TwelveTone bool `toml:"twelve_tone_spelling"`

	// Tuning names the startup tuning: "standard" or six
	// space-separated note names, high string first.
	Tuning string `toml:"tuning"`

	// PatternDir holds user Lua scripts that register extra chord
	// patterns.
	PatternDir string `toml:"pattern_dir"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StaffWidth: 77,
		Tuning:     "standard",
		LogLevel:   "info",
	}
}

// DefaultPath returns the user config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tabstorm", "tabstorm.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tabstorm", "tabstorm.toml")
}

// Load reads a config file over the defaults. A missing file is not an
// error; it yields the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.StaffWidth < 8 {
		return fmt.Errorf("staff_width %d too narrow for a prefix and one cell", c.StaffWidth)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}
