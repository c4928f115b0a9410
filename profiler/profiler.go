// Package profiler - lightweight timing statistics for transform operations.
//
// The service exists partly as a profiling target, so every /process call is
// timed and aggregated here. The tracker is safe for concurrent use by the
// request handlers and is cheap enough to leave enabled unconditionally;
// deeper CPU/heap inspection is delegated to the pprof endpoints the server
// mounts in debug mode.
package profiler

import (
	"runtime"
	"sync"
	"time"
)

// Tracker aggregates per-operation wall-clock timings.
type Tracker struct {
	mu         sync.RWMutex
	operations map[string]*timing
	startTime  time.Time
}

// timing holds the running statistics for one operation name.
type timing struct {
	count int64
	total time.Duration
	min   time.Duration
	max   time.Duration
}

// OperationStats is the exported snapshot of one operation's timings.
type OperationStats struct {
	// Count is the number of completed invocations.
	Count int64 `json:"count"`
	// TotalMs is the cumulative wall-clock time in milliseconds.
	TotalMs float64 `json:"total_ms"`
	// AvgMs is TotalMs / Count.
	AvgMs float64 `json:"avg_ms"`
	// MinMs is the fastest invocation in milliseconds.
	MinMs float64 `json:"min_ms"`
	// MaxMs is the slowest invocation in milliseconds.
	MaxMs float64 `json:"max_ms"`
}

// Stats is a point-in-time snapshot of the tracker plus a few runtime
// figures useful when eyeballing a profiling run.
type Stats struct {
	// UptimeSeconds is the time since the tracker was created.
	UptimeSeconds float64 `json:"uptime_seconds"`
	// Goroutines is the current goroutine count.
	Goroutines int `json:"goroutines"`
	// HeapAllocBytes is the current heap allocation.
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	// Operations maps operation name to its timing statistics.
	Operations map[string]OperationStats `json:"operations"`
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		operations: make(map[string]*timing),
		startTime:  time.Now(),
	}
}

// StartOperation begins timing one invocation of the named operation.
//
// Returns:
// - A function to call when the operation completes; it records the elapsed
//   time and returns it.
//
// Example:
//
//	done := tracker.StartOperation("blur")
//	out, err := transforms.Dispatch("blur", buf)
//	elapsed := done()
func (t *Tracker) StartOperation(name string) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		elapsed := time.Since(start)
		t.record(name, elapsed)
		return elapsed
	}
}

// record folds one completed invocation into the running statistics.
func (t *Tracker) record(name string, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	op, ok := t.operations[name]
	if !ok {
		op = &timing{min: elapsed, max: elapsed}
		t.operations[name] = op
	}

	op.count++
	op.total += elapsed
	if elapsed < op.min {
		op.min = elapsed
	}
	if elapsed > op.max {
		op.max = elapsed
	}
}

// Snapshot returns the current statistics. The returned maps are copies and
// safe to hand to an encoder while requests keep arriving.
func (t *Tracker) Snapshot() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	ops := make(map[string]OperationStats, len(t.operations))
	for name, op := range t.operations {
		ops[name] = OperationStats{
			Count:   op.count,
			TotalMs: float64(op.total) / float64(time.Millisecond),
			AvgMs:   float64(op.total) / float64(op.count) / float64(time.Millisecond),
			MinMs:   float64(op.min) / float64(time.Millisecond),
			MaxMs:   float64(op.max) / float64(time.Millisecond),
		}
	}

	return Stats{
		UptimeSeconds:  time.Since(t.startTime).Seconds(),
		Goroutines:     runtime.NumGoroutine(),
		HeapAllocBytes: mem.HeapAlloc,
		Operations:     ops,
	}
}
