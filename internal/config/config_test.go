package config

import (
	"strings"
	"testing"
	"time"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(env(nil))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Debounce != 150*time.Millisecond {
		t.Errorf("Debounce: got %v, want 150ms", cfg.Debounce)
	}
	if cfg.MaxDimension != 0 {
		t.Errorf("MaxDimension: got %d, want 0", cfg.MaxDimension)
	}
	if cfg.OutputDir != "." {
		t.Errorf("OutputDir: got %q, want .", cfg.OutputDir)
	}
	if cfg.Debug() {
		t.Error("Debug should be off by default")
	}
}

func TestLoad_Values(t *testing.T) {
	cfg, err := Load(env(map[string]string{
		EnvLogLevel:     " DEBUG ",
		EnvDebounce:     "300ms",
		EnvMaxDimension: "1024",
		EnvOutputDir:    "/tmp/pages",
	}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Debug() {
		t.Errorf("Debug: got false for log level %q", cfg.LogLevel)
	}
	if cfg.Debounce != 300*time.Millisecond {
		t.Errorf("Debounce: got %v, want 300ms", cfg.Debounce)
	}
	if cfg.MaxDimension != 1024 {
		t.Errorf("MaxDimension: got %d, want 1024", cfg.MaxDimension)
	}
	if cfg.OutputDir != "/tmp/pages" {
		t.Errorf("OutputDir: got %q", cfg.OutputDir)
	}
}

func TestLoad_EmptyValuesKeepDefaults(t *testing.T) {
	cfg, err := Load(env(map[string]string{
		EnvDebounce:  "",
		EnvOutputDir: "  ",
	}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Debounce != DefaultDebounce {
		t.Errorf("Debounce: got %v", cfg.Debounce)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir: got %q", cfg.OutputDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"debounce not a duration", EnvDebounce, "fast"},
		{"debounce zero", EnvDebounce, "0s"},
		{"debounce negative", EnvDebounce, "-1s"},
		{"max dimension not a number", EnvMaxDimension, "big"},
		{"max dimension negative", EnvMaxDimension, "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(env(map[string]string{tt.key: tt.val}))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q does not name %s", err, tt.key)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvMaxDimension, "640")
	t.Setenv(EnvDebounce, "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.MaxDimension != 640 {
		t.Errorf("MaxDimension: got %d, want 640", cfg.MaxDimension)
	}
}
