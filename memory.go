// Package memo is an in-memory memoization cache. Entries carry the time they
// were last written and become eligible for removal once a fixed retention
// has passed. Removal only happens when Forget is called; until then expired
// entries remain readable.
//
// A Remapper gives a second view over a Store in which some keys are
// substituted with configured aliases before reaching the store.
package memo

import "github.com/samber/mo"

// Memory is the contract shared by Store and Remapper.
type Memory[T any] interface {
	Memoize(key string, value T)
	Retrieve(key string) mo.Option[T]
	Forget() int
}

// DefaultMemory adds a retrieval that falls back to the value type's default.
type DefaultMemory[T any] interface {
	Memory[T]
	RetrieveOrDefault(key string) T
}

// Cloner is implemented by value types that must be deep-copied when they
// cross the store boundary, such as types wrapping slices or maps.
type Cloner[T any] interface {
	Clone() T
}

// Defaulter is implemented by value types whose default is not their zero
// value. Default is called on the zero value of T, so for a pointer T it
// runs on a nil receiver and must not dereference it, or RetrieveOrDefault
// panics on a missing key.
type Defaulter[T any] interface {
	Default() T
}

var (
	_ DefaultMemory[int] = (*Store[int])(nil)
	_ DefaultMemory[int] = (*Remapper[int])(nil)
)

func duplicate[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

func defaultValue[T any]() T {
	var zero T
	if d, ok := any(zero).(Defaulter[T]); ok {
		return d.Default()
	}
	return zero
}
