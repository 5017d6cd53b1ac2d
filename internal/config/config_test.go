package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stress.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[workload]
capacity = 64
duration = "250ms"
verify = true

[workload.weights]
append = 1
remove = 0
set = 0
assign = 0
iterate = 0

[logging]
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Workload.Capacity)
	assert.Equal(t, 250*time.Millisecond, cfg.Workload.Duration)
	assert.True(t, cfg.Workload.Verify)
	assert.Equal(t, OpWeights{Append: 1}, cfg.Workload.Weights)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Untouched keys keep their defaults.
	assert.Equal(t, 1024, cfg.Workload.BatchSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "[workload\ncapacity = ")
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		want   string
	}{
		{"zero capacity", func(c *Config) { c.Workload.Capacity = 0 }, "workload.capacity must be positive, got 0"},
		{"prefill above one", func(c *Config) { c.Workload.Prefill = 1.5 }, "workload.prefill must be in [0, 1], got 1.5"},
		{"zero batch", func(c *Config) { c.Workload.BatchSize = 0 }, "workload.batch_size must be positive, got 0"},
		{"negative ops", func(c *Config) { c.Workload.Ops = -1 }, "workload.ops must not be negative, got -1"},
		{"no stop condition", func(c *Config) { c.Workload.Duration = 0 }, "workload needs either a positive duration or an ops budget"},
		{"all weights zero", func(c *Config) { c.Workload.Weights = OpWeights{} }, "workload.weights are all zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.EqualError(t, cfg.Validate(), tt.want)
		})
	}
}
