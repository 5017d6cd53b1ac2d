package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	OpsBudget int64
	Capacity  int
	Prefilled int
	BatchSize int
	Seed      uint64
	Verified  bool

	// Results
	Ops            OpCounts
	FinalLive      int
	TotalTime      time.Duration
	BatchTime      Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// OpsPerSecond is the overall throughput of the run.
func (r *Report) OpsPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.Ops.Total()) / r.TotalTime.Seconds()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Packed Array Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}{{if .OpsBudget}} (ops budget {{.OpsBudget}}){{end}}
- **Capacity:** {{.Capacity}}
- **Prefilled Elements:** {{.Prefilled}}
- **Batch Size:** {{.BatchSize}}
- **Seed:** {{.Seed}}
- **Verified Against Shadow:** {{.Verified}}

## Operations
- **Append:** {{.Ops.Append}}
- **Remove:** {{.Ops.Remove}}
- **Set (new index):** {{.Ops.SetNew}}
- **Set (overwrite):** {{.Ops.SetOverwrite}}
- **Assign:** {{.Ops.Assign}}
- **Iterate:** {{.Ops.Iterate}}
- **Total Operations:** {{.Ops.Total}}

## Performance Results
- **Total Test Time:** {{.TotalTime}}
- **Throughput:** {{printf "%.0f" .OpsPerSecond}} ops/s
- **Final Live Elements:** {{.FinalLive}} / {{.Capacity}}
- **Batch Time:**
  - **Avg:** {{.BatchTime.Avg}}
  - **Min:** {{.BatchTime.Min}}
  - **Max:** {{.BatchTime.Max}}

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{nsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"nsub": func(a, b uint64) uint64 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
