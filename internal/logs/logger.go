package logs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	DEBUG Level = "DEBUG"
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
)

// levelPriority orders levels, higher is more severe.
var levelPriority = map[Level]int{
	DEBUG: 1,
	INFO:  2,
	WARN:  3,
	ERROR: 4,
}

var slogLevels = map[Level]slog.Level{
	DEBUG: slog.LevelDebug,
	INFO:  slog.LevelInfo,
	WARN:  slog.LevelWarn,
	ERROR: slog.LevelError,
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelPriority[level]; !ok {
		return "", fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// FromSlog maps a slog level onto the nearest Level at or below it.
func FromSlog(level slog.Level) Level {
	switch {
	case level >= slog.LevelError:
		return ERROR
	case level >= slog.LevelWarn:
		return WARN
	case level >= slog.LevelInfo:
		return INFO
	default:
		return DEBUG
	}
}

type Entry struct {
	TimeStamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Attrs     []any     `json:"attrs,omitempty"`
}

// Logger keeps the most recent entries in memory and optionally mirrors
// them to a slog.Logger.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
	maxSize int
	level   Level
	sink    *slog.Logger
}

// level: minimum level to record.
//
// maxSize: maximum number of entries kept in memory.
func NewLogger(maxSize int, level Level) *Logger {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Logger{
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
		level:   level,
	}
}

// WithSink mirrors every recorded entry to sink. It must be called before
// the logger is shared.
func (l *Logger) WithSink(sink *slog.Logger) *Logger {
	l.sink = sink
	return l
}

// log applies level filtering and ring buffer behavior.
// args are slog-style key/value pairs.
func (l *Logger) log(level Level, msg string, args ...any) {
	if levelPriority[level] < levelPriority[l.level] {
		return
	}

	l.mu.Lock()
	if len(l.entries) >= l.maxSize {
		// drop the oldest entry
		l.entries = l.entries[1:]
	}
	l.entries = append(l.entries, Entry{
		TimeStamp: time.Now(),
		Level:     level,
		Message:   msg,
		Attrs:     append([]any(nil), args...),
	})
	l.mu.Unlock()

	if l.sink != nil {
		l.sink.Log(context.Background(), slogLevels[level], msg, args...)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(DEBUG, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(INFO, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(WARN, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(ERROR, msg, args...)
}

// GetLast returns up to n of the most recent entries, oldest first.
func (l *Logger) GetLast(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	if n <= 0 {
		return []Entry{}
	}

	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}
