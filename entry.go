package memo

import "time"

// entry is a stored value paired with the time it was last memoized.
type entry[T any] struct {
	value      T
	insertedAt time.Time
}

// expired reports whether the entry's retention has strictly passed at now.
// An entry exactly at its deadline is not expired.
func (e entry[T]) expired(now time.Time, retention time.Duration) bool {
	return now.After(e.insertedAt.Add(retention))
}
