// Package config assembles the benchmark run configuration from built-in
// defaults, an optional YAML file and environment overrides, in that
// order of precedence (later wins).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/logbench/internal/bench"
)

// Defaults for the per-scenario totals and the run-wide watchdog.
const (
	DefaultTotalMessages  = 200000
	DefaultWarmupMessages = 4096
	DefaultTimeoutSec     = 600
	DefaultOutput         = "results/latency.csv"
)

// Environment overrides recognized by ApplyEnv.
const (
	EnvTotal   = "LOGBENCH_TOTAL"
	EnvWarmup  = "LOGBENCH_WARMUP"
	EnvTimeout = "LOGBENCH_TIMEOUT_SEC"
)

// Config is the fully resolved benchmark configuration.
//
// Example YAML:
//
//	totalMessages: 50000
//	warmupMessages: 1024
//	backends: [slog]
//	sinks: [discard]
//	producers: [1, 8]
//	messageSizes: [200]
type Config struct {
	// TotalMessages is the message count of each measured pass.
	TotalMessages int `yaml:"totalMessages"`

	// WarmupMessages is the message count of each warm-up pass.
	WarmupMessages int `yaml:"warmupMessages"`

	// TimeoutSec is the watchdog budget for the whole matrix in seconds;
	// 0 disables the watchdog.
	TimeoutSec int `yaml:"timeoutSec"`

	// Output is the results CSV path.
	Output string `yaml:"output"`

	// Matrix axes.
	Backends     []string `yaml:"backends"`
	AsyncModes   []bool   `yaml:"asyncModes"`
	Sinks        []string `yaml:"sinks"`
	Producers    []int    `yaml:"producers"`
	MessageSizes []int    `yaml:"messageSizes"`
}

// Default returns the built-in configuration and matrix.
func Default() *Config {
	return &Config{
		TotalMessages:  DefaultTotalMessages,
		WarmupMessages: DefaultWarmupMessages,
		TimeoutSec:     DefaultTimeoutSec,
		Output:         DefaultOutput,
		Backends:       []string{"slog", "simp-lee"},
		AsyncModes:     []bool{false, true},
		Sinks:          []string{string(bench.SinkDiscard), string(bench.SinkFile)},
		Producers:      []int{1, 4, 16},
		MessageSizes:   []int{40, 200, 1024},
	}
}

// Load reads a YAML config file and merges it over the defaults: fields
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv applies the recognized environment overrides. A set but
// malformed value is an error rather than a silent fallback.
func (c *Config) ApplyEnv() error {
	if err := envInt(EnvTotal, &c.TotalMessages); err != nil {
		return err
	}
	if err := envInt(EnvWarmup, &c.WarmupMessages); err != nil {
		return err
	}
	return envInt(EnvTimeout, &c.TimeoutSec)
}

func envInt(name string, dst *int) error {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", name, v, err)
	}
	*dst = n
	return nil
}

// Validate checks totals and matrix axes. Backend names are resolved by
// the CLI, not here.
func (c *Config) Validate() error {
	if c.TotalMessages < 0 {
		return fmt.Errorf("totalMessages must be >= 0, got %d", c.TotalMessages)
	}
	if c.WarmupMessages < 0 {
		return fmt.Errorf("warmupMessages must be >= 0, got %d", c.WarmupMessages)
	}
	if c.TimeoutSec < 0 {
		return fmt.Errorf("timeoutSec must be >= 0, got %d", c.TimeoutSec)
	}
	if c.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if len(c.Backends) == 0 {
		return fmt.Errorf("at least one backend is required")
	}
	if len(c.AsyncModes) == 0 || len(c.Sinks) == 0 || len(c.Producers) == 0 || len(c.MessageSizes) == 0 {
		return fmt.Errorf("every matrix axis needs at least one value")
	}
	for _, s := range c.Sinks {
		switch bench.SinkKind(s) {
		case bench.SinkDiscard, bench.SinkFile:
		default:
			return fmt.Errorf("unknown sink kind %q", s)
		}
	}
	for _, p := range c.Producers {
		if p < 0 {
			return fmt.Errorf("producer count must be >= 0, got %d", p)
		}
	}
	for _, s := range c.MessageSizes {
		if s < 0 {
			return fmt.Errorf("message size must be >= 0, got %d", s)
		}
	}
	return nil
}

// Timeout returns the watchdog budget as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Matrix converts the configured axes into the driver's matrix.
func (c *Config) Matrix() bench.Matrix {
	sinks := make([]bench.SinkKind, len(c.Sinks))
	for i, s := range c.Sinks {
		sinks[i] = bench.SinkKind(s)
	}
	return bench.Matrix{
		AsyncModes:   append([]bool(nil), c.AsyncModes...),
		Sinks:        sinks,
		Producers:    append([]int(nil), c.Producers...),
		MessageSizes: append([]int(nil), c.MessageSizes...),
		Total:        c.TotalMessages,
		Warmup:       c.WarmupMessages,
	}
}
