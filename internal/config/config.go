// Package config loads and validates the optional .outpost YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for server configuration.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultMaxOutput = 1 << 20 // 1 MiB per stream
	DefaultBinary    = "python3"
	DefaultHistory   = 20
)

// DefaultForecastDays is the forecast window applied when a request
// does not name one.
const DefaultForecastDays = 3

// defaultDaily is the fixed set of daily forecast variables requested
// when the caller does not name any. Exposed only through DailyVariables,
// which returns a copy, so the default set stays immutable.
var defaultDaily = [...]string{
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_sum",
	"windspeed_10m_max",
	"weathercode",
}

// Config holds the parsed .outpost configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version      int           `yaml:"version"`
	RawTimeout   string        `yaml:"timeout"`    // e.g. "10s", "1m"
	RawMaxOutput int           `yaml:"max_output"` // bytes, per stream
	Python       PythonConfig  `yaml:"python"`
	Weather      WeatherConfig `yaml:"weather"`
	History      HistoryConfig `yaml:"history"`
}

// PythonConfig controls how run_python invokes the interpreter.
type PythonConfig struct {
	Binary string `yaml:"binary"` // interpreter binary, resolved via PATH
}

// WeatherConfig controls the forecast upstream.
type WeatherConfig struct {
	URL          string   `yaml:"url"`           // base URL of the forecast API
	ForecastDays int      `yaml:"forecast_days"` // default window, 1-14
	Daily        []string `yaml:"daily"`         // default daily variables
}

// HistoryConfig controls the in-memory run history cache.
type HistoryConfig struct {
	Size int `yaml:"size"` // number of records kept in memory
}

// Timeout returns the configured execution timeout or the default.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return DefaultTimeout
}

// MaxOutputBytes returns the configured per-stream output cap or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// PythonBinary returns the configured interpreter binary or the default.
func (c *Config) PythonBinary() string {
	if c.Python.Binary != "" {
		return c.Python.Binary
	}
	return DefaultBinary
}

// ForecastDays returns the configured default forecast window or the default.
func (c *Config) ForecastDays() int {
	if c.Weather.ForecastDays >= 1 && c.Weather.ForecastDays <= 14 {
		return c.Weather.ForecastDays
	}
	return DefaultForecastDays
}

// DailyVariables returns a copy of the configured default daily
// variables, falling back to the built-in set.
func (c *Config) DailyVariables() []string {
	if len(c.Weather.Daily) > 0 {
		out := make([]string, len(c.Weather.Daily))
		copy(out, c.Weather.Daily)
		return out
	}
	out := make([]string, len(defaultDaily))
	copy(out, defaultDaily[:])
	return out
}

// HistorySize returns the configured history cache size or the default.
func (c *Config) HistorySize() int {
	if c.History.Size > 0 {
		return c.History.Size
	}
	return DefaultHistory
}

// Load reads the .outpost file from dir, walking upward until one is
// found. If no .outpost file exists, a default Config is returned.
func Load(dir string) (*Config, error) {
	path, err := findFile(dir)
	if err != nil {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// findFile walks upward from dir looking for a .outpost file.
func findFile(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, ".outpost")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf(".outpost not found")
		}
		dir = parent
	}
}
