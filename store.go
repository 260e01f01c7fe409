package memo

import (
	"sync"
	"time"

	"memo-cache/internal/logs"
	"memo-cache/internal/metrics"

	"github.com/samber/mo"
)

// Store is a concurrency-safe map from string keys to timestamped values.
//
// Reads share a read lock; Memoize and Forget take the write lock. Entries
// are never removed on read: an expired entry stays visible to Retrieve
// until Forget sweeps it.
type Store[T any] struct {
	mu        sync.RWMutex
	data      map[string]entry[T]
	retention time.Duration
	clock     Clock
	metrics   *metrics.Registry
	logger    *logs.Logger
}

// NewStore creates a store whose entries are swept once retention has
// passed since they were last memoized. Zero or negative retention makes
// every entry eligible as soon as the clock moves past its insertion time.
func NewStore[T any](retention time.Duration, opts ...Option) *Store[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	logger := logs.NewLogger(o.logCapacity, o.logLevel)
	if o.sink != nil {
		logger.WithSink(o.sink)
	}

	return &Store[T]{
		data:      make(map[string]entry[T]),
		retention: retention,
		clock:     o.clock,
		metrics:   metrics.NewRegistry(),
		logger:    logger,
	}
}

// Memoize inserts or overwrites key, resetting its age.
func (s *Store[T]) Memoize(key string, value T) {
	value = duplicate(value)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Inc(metrics.MemoizeTotal)
	if _, exists := s.data[key]; !exists {
		s.metrics.Inc(metrics.MemoKeys)
	}

	s.data[key] = entry[T]{
		value:      value,
		insertedAt: s.clock.Now(),
	}
}

// Retrieve returns a copy of the value stored under key, expired or not.
// It returns None if the key was never memoized or has been forgotten.
func (s *Store[T]) Retrieve(key string) mo.Option[T] {
	s.metrics.Inc(metrics.RetrieveTotal)

	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		s.metrics.Inc(metrics.RetrieveMissesTotal)
		return mo.None[T]()
	}
	return mo.Some(duplicate(e.value))
}

// RetrieveOrDefault is Retrieve with a fallback to T's default: Default()
// when T implements Defaulter, the zero value otherwise.
func (s *Store[T]) RetrieveOrDefault(key string) T {
	return s.Retrieve(key).OrElse(defaultValue[T]())
}

// Forget removes every entry whose retention has strictly passed.
//
// The current time is read once, before the write lock is taken, and every
// entry is judged against it. Memoize calls racing with a sweep block until
// it finishes and are not seen by it. Forget returns the number of entries
// removed.
func (s *Store[T]) Forget() int {
	now := s.clock.Now()
	removed := 0

	s.mu.Lock()
	for key, e := range s.data {
		if e.expired(now, s.retention) {
			delete(s.data, key)
			removed++
		}
	}
	remaining := len(s.data)
	s.mu.Unlock()

	s.metrics.Inc(metrics.ForgetRunsTotal)
	s.metrics.Add(metrics.ForgottenTotal, int64(removed))
	s.metrics.Add(metrics.MemoKeys, -int64(removed))

	if removed > 0 {
		s.logger.Info("forgot expired entries", "removed", removed, "remaining", remaining)
	} else {
		s.logger.Debug("nothing to forget", "remaining", remaining)
	}
	return removed
}

// Len returns the number of entries, expired ones included.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Retention returns the retention the store was created with.
func (s *Store[T]) Retention() time.Duration {
	return s.retention
}

// Stats returns a snapshot of the store's counters, including those
// recorded by remappers over it.
func (s *Store[T]) Stats() map[string]int64 {
	return s.metrics.Snapshot()
}
