package memo

import (
	"errors"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// ErrEmptyAlias is returned when an alias table maps from or to an empty key.
var ErrEmptyAlias = errors.New("empty alias key or target")

// Table maps alias keys to the real keys they stand for.
type Table map[string]string

// Lookup returns the real key for alias, if one is configured.
func (t Table) Lookup(alias string) (string, bool) {
	target, ok := t[alias]
	return target, ok
}

// Validate rejects empty aliases and empty targets. Cycles and aliases that
// point at other aliases are allowed; resolution never follows them.
func (t Table) Validate() error {
	for alias, target := range t {
		if alias == "" || target == "" {
			return fmt.Errorf("%w: %q -> %q", ErrEmptyAlias, alias, target)
		}
	}
	return nil
}

// ParseTable decodes a YAML mapping of alias to real key.
// Duplicate aliases are rejected by the decoder.
func ParseTable(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse alias table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t Table) clone() Table {
	return maps.Clone(t)
}
