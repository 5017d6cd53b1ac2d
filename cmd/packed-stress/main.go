package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/plus3/packedarray/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "packed-stress:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	w := cfg.Workload
	logger.Info("starting packed array stress test",
		zap.Int("capacity", w.Capacity),
		zap.Duration("duration", w.Duration),
		zap.Int64("ops", w.Ops),
		zap.Uint64("seed", w.Seed),
		zap.Bool("verify", w.Verify))

	// 1. Setup the runner and populate the array
	runner := NewRunner(w, logger)
	runner.Prefill()
	prefilled := runner.Len()
	logger.Info("population complete", zap.Int("live", prefilled))

	// 2. Run the workload
	report := &Report{
		Duration:       w.Duration,
		OpsBudget:      w.Ops,
		Capacity:       w.Capacity,
		Prefilled:      prefilled,
		BatchSize:      w.BatchSize,
		Seed:           w.Seed,
		Verified:       w.Verify,
		GCPauseMetrics: cfg.Report.GCPauseMetrics,
		BatchTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx := context.Background()
	if w.Ops == 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Duration)
		defer cancel()
	}

	startTime := time.Now()
	if err := runner.Run(ctx, &report.BatchTime); err != nil {
		logger.Error("verification failed", zap.Error(err))
		return fmt.Errorf("run workload: %w", err)
	}
	report.TotalTime = time.Since(startTime)

	if err := runner.Verify(); err != nil {
		logger.Error("final verification failed", zap.Error(err))
		return fmt.Errorf("verify: %w", err)
	}

	report.Ops = runner.Counts()
	report.FinalLive = runner.Len()
	report.BatchTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished",
		zap.Int64("ops", report.Ops.Total()),
		zap.Int64("checksum", runner.Checksum()),
		zap.Duration("elapsed", report.TotalTime))

	// 3. Generate the report
	if err := report.Generate(out); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	return nil
}

// parseConfig loads the optional TOML profile and applies command-line
// overrides on top of it. Only flags given explicitly override the file.
func parseConfig(args []string) (*config.Config, error) {
	fs := pflag.NewFlagSet("packed-stress", pflag.ContinueOnError)

	defaults := config.Default()
	configPath := fs.StringP("config", "c", "", "Path to a TOML workload profile.")
	duration := fs.DurationP("duration", "d", defaults.Workload.Duration, "The total duration the test should run for.")
	ops := fs.Int64("ops", defaults.Workload.Ops, "Stop after this many operations instead of after --duration.")
	capacity := fs.IntP("capacity", "n", defaults.Workload.Capacity, "Fixed capacity of the packed array.")
	prefill := fs.Float64("prefill", defaults.Workload.Prefill, "Fraction of capacity filled before the run.")
	seed := fs.Uint64("seed", defaults.Workload.Seed, "Random seed for the workload.")
	verify := fs.Bool("verify", defaults.Workload.Verify, "Check the array against a shadow map after every batch.")
	gcPauseMetrics := fs.Bool("gc-pause-metrics", defaults.Report.GCPauseMetrics, "Enable detailed GC pause metrics in the report.")
	logLevel := fs.String("log-level", defaults.Logging.Level, "Log level (debug, info, warn, error).")
	logFormat := fs.String("log-format", defaults.Logging.Format, "Log format (console or json).")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if fs.Changed("duration") {
		cfg.Workload.Duration = *duration
	}
	if fs.Changed("ops") {
		cfg.Workload.Ops = *ops
	}
	if fs.Changed("capacity") {
		cfg.Workload.Capacity = *capacity
	}
	if fs.Changed("prefill") {
		cfg.Workload.Prefill = *prefill
	}
	if fs.Changed("seed") {
		cfg.Workload.Seed = *seed
	}
	if fs.Changed("verify") {
		cfg.Workload.Verify = *verify
	}
	if fs.Changed("gc-pause-metrics") {
		cfg.Report.GCPauseMetrics = *gcPauseMetrics
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = *logLevel
	}
	if fs.Changed("log-format") {
		cfg.Logging.Format = *logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
