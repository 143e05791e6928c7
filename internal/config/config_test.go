package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wesleyorama2/logbench/internal/bench"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.TotalMessages != DefaultTotalMessages {
		t.Errorf("TotalMessages = %d, want %d", cfg.TotalMessages, DefaultTotalMessages)
	}
	if cfg.WarmupMessages != DefaultWarmupMessages {
		t.Errorf("WarmupMessages = %d, want %d", cfg.WarmupMessages, DefaultWarmupMessages)
	}
	if cfg.TimeoutSec != DefaultTimeoutSec {
		t.Errorf("TimeoutSec = %d, want %d", cfg.TimeoutSec, DefaultTimeoutSec)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	doc := `
totalMessages: 5000
backends: [slog]
producers: [2, 8]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TotalMessages != 5000 {
		t.Errorf("TotalMessages = %d, want 5000", cfg.TotalMessages)
	}
	if len(cfg.Backends) != 1 || cfg.Backends[0] != "slog" {
		t.Errorf("Backends = %v, want [slog]", cfg.Backends)
	}
	if len(cfg.Producers) != 2 || cfg.Producers[0] != 2 || cfg.Producers[1] != 8 {
		t.Errorf("Producers = %v, want [2 8]", cfg.Producers)
	}
	// Absent fields keep their defaults.
	if cfg.WarmupMessages != DefaultWarmupMessages {
		t.Errorf("WarmupMessages = %d, want default %d", cfg.WarmupMessages, DefaultWarmupMessages)
	}
	if len(cfg.Sinks) != 2 {
		t.Errorf("Sinks = %v, want both defaults", cfg.Sinks)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load of a missing file did not error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvTotal, "12345")
	t.Setenv(EnvWarmup, "10")
	t.Setenv(EnvTimeout, "0")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.TotalMessages != 12345 {
		t.Errorf("TotalMessages = %d, want 12345", cfg.TotalMessages)
	}
	if cfg.WarmupMessages != 10 {
		t.Errorf("WarmupMessages = %d, want 10", cfg.WarmupMessages)
	}
	if cfg.TimeoutSec != 0 {
		t.Errorf("TimeoutSec = %d, want 0", cfg.TimeoutSec)
	}
	if cfg.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0 (watchdog disabled)", cfg.Timeout())
	}
}

func TestApplyEnv_Malformed(t *testing.T) {
	t.Setenv(EnvTotal, "not-a-number")
	cfg := Default()
	if err := cfg.ApplyEnv(); err == nil {
		t.Fatal("malformed env value did not error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative total", func(c *Config) { c.TotalMessages = -1 }},
		{"negative warmup", func(c *Config) { c.WarmupMessages = -1 }},
		{"negative timeout", func(c *Config) { c.TimeoutSec = -1 }},
		{"empty output", func(c *Config) { c.Output = "" }},
		{"no backends", func(c *Config) { c.Backends = nil }},
		{"empty axis", func(c *Config) { c.Producers = nil }},
		{"unknown sink", func(c *Config) { c.Sinks = []string{"pipe"} }},
		{"negative producers", func(c *Config) { c.Producers = []int{4, -1} }},
		{"negative size", func(c *Config) { c.MessageSizes = []int{-8} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("Validate accepted an invalid config")
			}
		})
	}
}

func TestMatrix(t *testing.T) {
	cfg := Default()
	cfg.Sinks = []string{"discard"}
	m := cfg.Matrix()

	if m.Total != cfg.TotalMessages || m.Warmup != cfg.WarmupMessages {
		t.Errorf("matrix totals = %d/%d, want %d/%d", m.Total, m.Warmup, cfg.TotalMessages, cfg.WarmupMessages)
	}
	if len(m.Sinks) != 1 || m.Sinks[0] != bench.SinkDiscard {
		t.Errorf("Sinks = %v, want [discard]", m.Sinks)
	}
	if m.Cells() != len(cfg.AsyncModes)*1*len(cfg.Producers)*len(cfg.MessageSizes) {
		t.Errorf("Cells() = %d", m.Cells())
	}
}
