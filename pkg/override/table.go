package override

import (
	"errors"
	"fmt"
	"slices"
)

var ErrDuplicateKey = errors.New("duplicate override key")

// Table is the sorted, immutable set of overrides for a seed.
type Table struct {
	entries []Override
}

// NewTable copies and sorts overrides. Zero keys are skipped and duplicate
// keys are rejected.
func NewTable(overrides []Override) (*Table, error) {
	entries := make([]Override, 0, len(overrides))
	for _, o := range overrides {
		if o.Key.IsZero() {
			continue
		}
		entries = append(entries, o)
	}

	slices.SortStableFunc(entries, func(a, b Override) int {
		return Compare(a.Key, b.Key)
	})

	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key == entries[i].Key {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, entries[i].Key)
		}
	}

	return &Table{entries: entries}, nil
}

// NewTableFromSentinel reads overrides until the first zero key.
func NewTableFromSentinel(overrides []Override) (*Table, error) {
	n := slices.IndexFunc(overrides, func(o Override) bool { return o.Key.IsZero() })
	if n < 0 {
		n = len(overrides)
	}
	return NewTable(overrides[:n])
}

// Len returns the number of overrides in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// All returns the overrides in key order.
func (t *Table) All() []Override {
	return slices.Clone(t.entries)
}

// Lookup binary searches for key, returning the empty Override when absent.
func (t *Table) Lookup(key Key) Override {
	if key.IsZero() {
		return Override{}
	}

	i, ok := slices.BinarySearchFunc(t.entries, key, func(o Override, k Key) int {
		return Compare(o.Key, k)
	})
	if !ok {
		return Override{}
	}
	return t.entries[i]
}
