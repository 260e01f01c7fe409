package metrics

import (
	"sync"
	"sync/atomic"
)

// MetricKey is a strongly typed metric identifier.
type MetricKey string

// Metric keys (centralized)
const (
	// Store
	MemoKeys            MetricKey = "memo_keys"
	MemoizeTotal        MetricKey = "memo_memoize_total"
	RetrieveTotal       MetricKey = "memo_retrieve_total"
	RetrieveMissesTotal MetricKey = "memo_retrieve_misses_total"
	ForgetRunsTotal     MetricKey = "memo_forget_runs_total"
	ForgottenTotal      MetricKey = "memo_forgotten_total"

	// Remapping
	RemapHitsTotal        MetricKey = "memo_remap_hits_total"
	RemapPassthroughTotal MetricKey = "memo_remap_passthrough_total"
)

// Registry holds the counters of a single store.
type Registry struct {
	mu       sync.RWMutex
	counters map[MetricKey]*atomic.Int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]*atomic.Int64),
	}
}

// Inc increments a metric by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Add moves a metric by delta, which may be negative for gauges such as MemoKeys.
func (r *Registry) Add(key MetricKey, delta int64) {
	if delta == 0 {
		return
	}
	r.counter(key).Add(delta)
}

// Load returns the current value of a metric, zero if it was never touched.
func (r *Registry) Load(key MetricKey) int64 {
	r.mu.RLock()
	c, ok := r.counters[key]
	r.mu.RUnlock()

	if !ok {
		return 0
	}
	return c.Load()
}

// counter returns the counter for key, creating it on first use.
func (r *Registry) counter(key MetricKey) *atomic.Int64 {
	r.mu.RLock()
	c, ok := r.counters[key]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have won the race.
	if c, ok = r.counters[key]; ok {
		return c
	}
	c = new(atomic.Int64)
	r.counters[key] = c
	return c
}
