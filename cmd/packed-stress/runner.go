package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"

	"github.com/plus3/packedarray/internal/config"
	"github.com/plus3/packedarray/packed"
)

type opKind int

const (
	opAppend opKind = iota
	opRemove
	opSet
	opAssign
	opIterate
)

// OpCounts tallies executed operations by kind.
type OpCounts struct {
	Append       int64
	Remove       int64
	SetNew       int64
	SetOverwrite int64
	Assign       int64
	Iterate      int64
}

func (c OpCounts) Total() int64 {
	return c.Append + c.Remove + c.SetNew + c.SetOverwrite + c.Assign + c.Iterate
}

// Runner drives a random workload against a packed array. When verification
// is enabled every mutation is mirrored into shadow, an index -> value map
// the array is checked against after each batch.
type Runner struct {
	cfg    config.WorkloadConfig
	log    *zap.Logger
	rng    *rand.Rand
	array  *packed.Array[int64]
	shadow *intmap.Map[int, int64]

	counts   OpCounts
	next     int64
	checksum int64
}

func NewRunner(cfg config.WorkloadConfig, log *zap.Logger) *Runner {
	r := &Runner{
		cfg:   cfg,
		log:   log,
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		array: packed.New[int64](cfg.Capacity),
	}
	if cfg.Verify {
		r.shadow = intmap.New[int, int64](cfg.Capacity)
	}
	return r
}

// Prefill appends elements until the configured fraction of capacity is live.
func (r *Runner) Prefill() {
	target := int(float64(r.cfg.Capacity) * r.cfg.Prefill)
	for r.array.Len() < target {
		r.append()
	}
	r.log.Debug("prefilled array", zap.Int("live", r.array.Len()), zap.Int("capacity", r.cfg.Capacity))
}

// Run executes batches until ctx is done or the ops budget is spent, recording
// the duration of every batch into stats. Prefill does not count against the
// budget.
func (r *Runner) Run(ctx context.Context, stats *Stats) error {
	var batches, done int64
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n := r.cfg.BatchSize
		if r.cfg.Ops > 0 {
			remaining := r.cfg.Ops - done
			if remaining <= 0 {
				return nil
			}
			n = int(min(int64(n), remaining))
		}

		start := time.Now()
		for range n {
			r.Step()
		}
		stats.Samples = append(stats.Samples, time.Since(start))
		batches++
		done += int64(n)

		if r.shadow != nil {
			if err := r.Verify(); err != nil {
				return fmt.Errorf("batch %d: %w", batches, err)
			}
		}
		if batches%1000 == 0 {
			r.log.Debug("progress",
				zap.Int64("batches", batches),
				zap.Int64("ops", done),
				zap.Int("live", r.array.Len()))
		}
	}
}

// Step performs a single randomly chosen operation. Operations that cannot
// run in the current state fall back to one that can: appending to a full
// array removes instead, removing from an empty one appends.
func (r *Runner) Step() {
	switch r.pick() {
	case opAppend:
		if r.array.Full() {
			r.remove()
		} else {
			r.append()
		}
	case opRemove:
		if r.array.Len() == 0 {
			r.append()
		} else {
			r.remove()
		}
	case opSet:
		r.set()
	case opAssign:
		if r.array.Len() == 0 {
			r.append()
		} else {
			r.assign()
		}
	case opIterate:
		r.iterate()
	}
}

// Verify checks the array's bookkeeping and compares its contents with the
// shadow map.
func (r *Runner) Verify() error {
	if err := r.array.Validate(); err != nil {
		return err
	}
	if r.shadow == nil {
		return nil
	}
	if r.shadow.Len() != r.array.Len() {
		return fmt.Errorf("live count mismatch: array %d, shadow %d", r.array.Len(), r.shadow.Len())
	}
	for index, v := range r.array.All() {
		want, ok := r.shadow.Get(index)
		if !ok {
			return fmt.Errorf("index %d is live in the array but not in the shadow", index)
		}
		if want != v {
			return fmt.Errorf("index %d holds %d, want %d", index, v, want)
		}
	}
	return nil
}

func (r *Runner) Counts() OpCounts {
	return r.counts
}

// Checksum folds the sums observed by every iterate operation, so runs with
// the same seed and config can be compared.
func (r *Runner) Checksum() int64 {
	return r.checksum
}

func (r *Runner) Len() int {
	return r.array.Len()
}

func (r *Runner) pick() opKind {
	w := r.cfg.Weights
	n := r.rng.IntN(w.Total())
	for kind, weight := range []int{w.Append, w.Remove, w.Set, w.Assign, w.Iterate} {
		if n < weight {
			return opKind(kind)
		}
		n -= weight
	}
	return opIterate
}

func (r *Runner) value() int64 {
	r.next++
	return r.next
}

func (r *Runner) append() {
	v := r.value()
	index := r.array.Append(v)
	if r.shadow != nil {
		r.shadow.Put(index, v)
	}
	r.counts.Append++
}

func (r *Runner) remove() {
	index := r.array.IndexAt(r.rng.IntN(r.array.Len()))
	r.array.Remove(index)
	if r.shadow != nil {
		r.shadow.Del(index)
	}
	r.counts.Remove++
}

func (r *Runner) set() {
	index := r.rng.IntN(r.array.Cap())
	if r.array.Has(index) {
		r.counts.SetOverwrite++
	} else {
		r.counts.SetNew++
	}

	v := r.value()
	r.array.Set(index, v)
	if r.shadow != nil {
		r.shadow.Put(index, v)
	}
}

func (r *Runner) assign() {
	index := r.array.IndexAt(r.rng.IntN(r.array.Len()))
	v := r.value()
	r.array.Assign(index, v)
	if r.shadow != nil {
		r.shadow.Put(index, v)
	}
	r.counts.Assign++
}

func (r *Runner) iterate() {
	var sum int64
	for v := range r.array.Values() {
		sum += v
	}
	r.checksum ^= sum
	r.counts.Iterate++
}
