package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".outpost"), []byte("version: 1\ntimeout: 30s\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", cfg.Timeout())
	}
}

func TestLoad_FromSubdirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".outpost"), []byte("version: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(sub)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != 2 {
		t.Errorf("Version = %d, want 2", cfg.Version)
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Defaults apply with no file present.
	if cfg.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", cfg.Timeout(), DefaultTimeout)
	}
	if cfg.PythonBinary() != DefaultBinary {
		t.Errorf("PythonBinary() = %q, want %q", cfg.PythonBinary(), DefaultBinary)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".outpost"), []byte("timeout: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.MaxOutputBytes(); got != DefaultMaxOutput {
		t.Errorf("MaxOutputBytes() = %d, want %d", got, DefaultMaxOutput)
	}
	if got := cfg.ForecastDays(); got != DefaultForecastDays {
		t.Errorf("ForecastDays() = %d, want %d", got, DefaultForecastDays)
	}
	if got := cfg.HistorySize(); got != DefaultHistory {
		t.Errorf("HistorySize() = %d, want %d", got, DefaultHistory)
	}
	daily := cfg.DailyVariables()
	if len(daily) != 5 {
		t.Fatalf("len(DailyVariables()) = %d, want 5", len(daily))
	}
	// Mutating the returned slice must not leak into the defaults.
	daily[0] = "mutated"
	if cfg.DailyVariables()[0] == "mutated" {
		t.Error("DailyVariables() returned shared backing storage")
	}
}

func TestConfig_InvalidTimeoutFallsBack(t *testing.T) {
	cfg := &Config{RawTimeout: "not-a-duration"}
	if cfg.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v, want default %v", cfg.Timeout(), DefaultTimeout)
	}
}

func TestConfig_ForecastDaysOutOfRange(t *testing.T) {
	cfg := &Config{Weather: WeatherConfig{ForecastDays: 30}}
	if cfg.ForecastDays() != DefaultForecastDays {
		t.Errorf("ForecastDays() = %d, want default %d", cfg.ForecastDays(), DefaultForecastDays)
	}
}
