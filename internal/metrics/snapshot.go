package metrics

// Snapshot returns a copy of all metrics keyed by name.
// Mutating the result does not affect the registry.
func (r *Registry) Snapshot() map[string]int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64, len(r.counters))
	for key, c := range r.counters {
		out[string(key)] = c.Load()
	}
	return out
}
