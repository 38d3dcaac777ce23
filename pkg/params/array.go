package params

import (
	"maps"
	"slices"
)

// Array is a mutable string-keyed parameter dictionary owned by an assembly.
// It is not safe for concurrent mutation; expansions work on a Snapshot.
type Array struct {
	values map[string]any
}

// New creates an Array from the given values. The map is copied.
func New(values map[string]any) *Array {
	a := &Array{values: make(map[string]any, len(values))}
	for k, v := range values {
		a.values[k] = cloneValue(v)
	}
	return a
}

// Insert sets key to value, replacing any previous value.
func (a *Array) Insert(key string, value any) *Array {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	a.values[key] = cloneValue(value)
	return a
}

// Lookup returns the value stored under key and whether it was present.
func (a *Array) Lookup(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[key]
	return v, ok
}

// Exists reports whether key is present.
func (a *Array) Exists(key string) bool {
	_, ok := a.Lookup(key)
	return ok
}

// Remove deletes key.
func (a *Array) Remove(key string) {
	if a != nil {
		delete(a.values, key)
	}
}

// Keys returns the keys in sorted order.
func (a *Array) Keys() []string {
	if a == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(a.values))
}

// Len returns the number of keys.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	if a == nil {
		return New(nil)
	}
	return New(a.values)
}

// Freeze returns an immutable snapshot of the current values.
func (a *Array) Freeze() *Snapshot {
	if a == nil {
		return &Snapshot{values: map[string]any{}}
	}
	return &Snapshot{values: a.Clone().values}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []float64:
		return slices.Clone(t)
	case []float32:
		return slices.Clone(t)
	case []string:
		return slices.Clone(t)
	case []int:
		return slices.Clone(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
