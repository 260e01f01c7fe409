package memo

import (
	"log/slog"
	"time"

	"memo-cache/internal/logs"

	"github.com/jonboulle/clockwork"
)

// Clock is the time source used to stamp and sweep entries.
// clockwork.Clock satisfies it.
type Clock interface {
	Now() time.Time
}

// Option configures a Store.
type Option func(*options)

type options struct {
	clock       Clock
	sink        *slog.Logger
	logLevel    logs.Level
	logCapacity int
}

func defaultOptions() options {
	return options{
		clock:       clockwork.NewRealClock(),
		logLevel:    logs.INFO,
		logCapacity: defaultLogCapacity,
	}
}

// WithClock replaces the wall clock. A nil clock is ignored.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger mirrors the store's log entries to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.sink = l
	}
}

// WithLogLevel sets the minimum level the store records.
func WithLogLevel(level slog.Level) Option {
	return withLevel(logs.FromSlog(level))
}

// WithLogCapacity bounds how many recent log entries the store keeps.
func WithLogCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.logCapacity = n
		}
	}
}

func withLevel(level logs.Level) Option {
	return func(o *options) {
		o.logLevel = level
	}
}
