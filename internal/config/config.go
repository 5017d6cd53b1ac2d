// Package config holds the workload profile for the packed-stress harness.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Workload WorkloadConfig `toml:"workload"`
	Report   ReportConfig   `toml:"report"`
	Logging  LoggingConfig  `toml:"logging"`
}

type WorkloadConfig struct {
	Capacity  int           `toml:"capacity"`
	Prefill   float64       `toml:"prefill"` // fraction of capacity appended before the run (0.0-1.0)
	Duration  time.Duration `toml:"duration"`
	Ops       int64         `toml:"ops"` // stop after this many operations, 0 = run for Duration
	BatchSize int           `toml:"batch_size"`
	Seed      uint64        `toml:"seed"`
	Verify    bool          `toml:"verify"`
	Weights   OpWeights     `toml:"weights"`
}

// OpWeights are relative frequencies of each operation kind.
type OpWeights struct {
	Append  int `toml:"append"`
	Remove  int `toml:"remove"`
	Set     int `toml:"set"`
	Assign  int `toml:"assign"`
	Iterate int `toml:"iterate"`
}

// Total returns the sum of all weights.
func (w OpWeights) Total() int {
	return w.Append + w.Remove + w.Set + w.Assign + w.Iterate
}

type ReportConfig struct {
	GCPauseMetrics bool `toml:"gc_pause_metrics"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML profile from path on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Workload: WorkloadConfig{
			Capacity:  10000,
			Prefill:   0.5,
			Duration:  10 * time.Second,
			BatchSize: 1024,
			Seed:      1,
			Weights: OpWeights{
				Append:  4,
				Remove:  4,
				Set:     2,
				Assign:  2,
				Iterate: 1,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports the first setting that cannot drive a workload.
func (c *Config) Validate() error {
	w := c.Workload
	switch {
	case w.Capacity <= 0:
		return fmt.Errorf("workload.capacity must be positive, got %d", w.Capacity)
	case w.Prefill < 0 || w.Prefill > 1:
		return fmt.Errorf("workload.prefill must be in [0, 1], got %g", w.Prefill)
	case w.BatchSize <= 0:
		return fmt.Errorf("workload.batch_size must be positive, got %d", w.BatchSize)
	case w.Ops < 0:
		return fmt.Errorf("workload.ops must not be negative, got %d", w.Ops)
	case w.Ops == 0 && w.Duration <= 0:
		return errors.New("workload needs either a positive duration or an ops budget")
	}

	ws := w.Weights
	if ws.Append < 0 || ws.Remove < 0 || ws.Set < 0 || ws.Assign < 0 || ws.Iterate < 0 {
		return fmt.Errorf("workload.weights must not be negative: %+v", ws)
	}
	if ws.Total() == 0 {
		return errors.New("workload.weights are all zero")
	}
	return nil
}
