// Package config reads runtime settings from the environment.
//
// Every setting has a default, so an empty environment is a valid
// configuration. Values that are present but malformed are reported as
// errors rather than silently replaced.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	EnvLogLevel     = "COLORING_PAGE_LOG_LEVEL"
	EnvDebounce     = "COLORING_PAGE_DEBOUNCE"
	EnvMaxDimension = "COLORING_PAGE_MAX_DIMENSION"
	EnvOutputDir    = "COLORING_PAGE_OUTPUT_DIR"
)

// Defaults applied when a variable is unset or empty.
const (
	DefaultDebounce  = 150 * time.Millisecond
	DefaultOutputDir = "."
)

// Config holds the server and CLI settings.
type Config struct {
	// LogLevel is "debug" for verbose logging; anything else is quiet.
	LogLevel string

	// Debounce is the quiet period after a parameter change before the
	// coloring page is re-rendered.
	Debounce time.Duration

	// MaxDimension downsizes opened images whose longer side exceeds it.
	// 0 disables resizing.
	MaxDimension int

	// OutputDir is where exports go when no path is given.
	OutputDir string
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Debounce:  DefaultDebounce,
		OutputDir: DefaultOutputDir,
	}
}

// FromEnv reads the configuration from the process environment.
func FromEnv() (*Config, error) {
	return Load(os.LookupEnv)
}

// Load reads the configuration through lookup, which has the signature of
// os.LookupEnv.
func Load(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg.LogLevel = strings.ToLower(get(EnvLogLevel))

	if v := get(EnvDebounce); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvDebounce, v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be positive", EnvDebounce, v)
		}
		cfg.Debounce = d
	}

	if v := get(EnvMaxDimension); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvMaxDimension, v, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid %s %q: must not be negative", EnvMaxDimension, v)
		}
		cfg.MaxDimension = n
	}

	if v := get(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}

	return cfg, nil
}
