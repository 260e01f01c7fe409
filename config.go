package memo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"memo-cache/internal/logs"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRetention is the retention of DefaultConfig.
	DefaultRetention   = 5 * time.Minute
	defaultLogCapacity = 1000
)

// Config describes a store and the remapper over it.
type Config struct {
	Retention time.Duration
	Aliases   Table
	Log       LogConfig
}

// LogConfig sets how much the store logs and how many entries it keeps.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Capacity is how many recent entries the store keeps in memory.
	Capacity int
}

// fileConfig is the YAML shape. Pointers tell omitted fields from zero ones.
type fileConfig struct {
	Retention *time.Duration `yaml:"retention"`
	Aliases   Table          `yaml:"aliases"`
	Log       struct {
		Level    *string `yaml:"level"`
		Capacity *int    `yaml:"capacity"`
	} `yaml:"log"`
}

// DefaultConfig returns a 5 minute retention, no aliases and INFO logging.
func DefaultConfig() Config {
	return Config{
		Retention: DefaultRetention,
		Log: LogConfig{
			Level:    string(logs.INFO),
			Capacity: defaultLogCapacity,
		},
	}
}

// ParseConfig decodes YAML such as
//
//	retention: 90s
//	aliases:
//	  user: user:v2
//	log:
//	  level: debug
//
// Omitted fields keep their DefaultConfig values. Unknown fields are an error.
func ParseConfig(data []byte) (Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := DefaultConfig()
	if fc.Retention != nil {
		cfg.Retention = *fc.Retention
	}
	cfg.Aliases = fc.Aliases
	if fc.Log.Level != nil {
		cfg.Log.Level = *fc.Log.Level
	}
	if fc.Log.Capacity != nil {
		cfg.Log.Capacity = *fc.Log.Capacity
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the alias table and log settings.
func (c Config) Validate() error {
	if err := c.Aliases.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := logs.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Log.Capacity <= 0 {
		return fmt.Errorf("invalid config: log capacity must be positive, got %d", c.Log.Capacity)
	}
	return nil
}

// Options converts the log settings into store options.
// Settings that fail validation are skipped.
func (c Config) Options() []Option {
	opts := []Option{WithLogCapacity(c.Log.Capacity)}
	if level, err := logs.ParseLevel(c.Log.Level); err == nil {
		opts = append(opts, withLevel(level))
	}
	return opts
}

// NewFromConfig validates cfg and builds a store and a remapper over it.
// opts are applied after the ones derived from cfg.
func NewFromConfig[T any](cfg Config, opts ...Option) (*Store[T], *Remapper[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	store := NewStore[T](cfg.Retention, append(cfg.Options(), opts...)...)
	return store, NewRemapper(store, cfg.Aliases), nil
}
