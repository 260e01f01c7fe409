package memo

import (
	"memo-cache/internal/metrics"

	"github.com/samber/mo"
)

// Remapper is a view over a Store that substitutes keys found in its Table
// before delegating. Keys not in the table pass through unchanged.
//
// The remapper keeps no entries of its own: concurrency and expiry are the
// backing store's. Several remappers may share one store.
type Remapper[T any] struct {
	store *Store[T]
	table Table
}

// NewRemapper returns a remapper over store. The table is copied, so later
// changes to the caller's map have no effect.
func NewRemapper[T any](store *Store[T], table Table) *Remapper[T] {
	return &Remapper[T]{
		store: store,
		table: table.clone(),
	}
}

// Resolve returns the key the backing store sees for key. Exactly one
// substitution is made, even if the target is itself an alias.
func (r *Remapper[T]) Resolve(key string) string {
	if target, ok := r.table.Lookup(key); ok {
		return target
	}
	return key
}

// resolve is Resolve plus the remap counters.
func (r *Remapper[T]) resolve(key string) string {
	target, ok := r.table.Lookup(key)
	if !ok {
		r.store.metrics.Inc(metrics.RemapPassthroughTotal)
		return key
	}
	r.store.metrics.Inc(metrics.RemapHitsTotal)
	return target
}

// Memoize stores value under the resolved key.
func (r *Remapper[T]) Memoize(key string, value T) {
	r.store.Memoize(r.resolve(key), value)
}

// Retrieve reads the resolved key from the backing store.
func (r *Remapper[T]) Retrieve(key string) mo.Option[T] {
	return r.store.Retrieve(r.resolve(key))
}

// RetrieveOrDefault reads the resolved key, falling back to T's default.
func (r *Remapper[T]) RetrieveOrDefault(key string) T {
	return r.store.RetrieveOrDefault(r.resolve(key))
}

// Forget sweeps the backing store. Aliasing has no bearing on expiry.
func (r *Remapper[T]) Forget() int {
	return r.store.Forget()
}

// Store returns the backing store.
func (r *Remapper[T]) Store() *Store[T] {
	return r.store
}
