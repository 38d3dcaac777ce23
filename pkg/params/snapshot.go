package params

import (
	"fmt"
	"strings"

	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// Snapshot is a read-only view of an Array captured once per expansion.
// It is safe for concurrent reads.
type Snapshot struct {
	values map[string]any
}

// Lookup returns the raw value stored under key and whether it was present.
func (s *Snapshot) Lookup(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Exists reports whether key is present.
func (s *Snapshot) Exists(key string) bool {
	_, ok := s.values[key]
	return ok
}

// LookupString returns the value under key rendered as a string.
// The boolean is false when the key is absent or cannot be rendered.
func (s *Snapshot) LookupString(key string) (string, bool) {
	v, ok := s.values[key]
	if !ok {
		return "", false
	}
	str, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return str, true
}

// String returns the value under key as a string, or def when absent.
func (s *Snapshot) String(key, def string) string {
	if str, ok := s.LookupString(key); ok {
		return str
	}
	return def
}

// Float returns the value under key as a float32, or def when absent or not numeric.
func (s *Snapshot) Float(key string, def float32) float32 {
	v, ok := s.values[key]
	if !ok {
		return def
	}
	if str, isStr := v.(string); isStr {
		v = strings.TrimSpace(str)
	}
	f, err := cast.ToFloat32E(v)
	if err != nil {
		return def
	}
	return f
}

// Bool returns the value under key parsed as a boolean, or def when absent or unparsable.
func (s *Snapshot) Bool(key string, def bool) bool {
	v, ok := s.values[key]
	if !ok {
		return def
	}
	if str, isStr := v.(string); isStr {
		b, ok := ParseBool(str)
		if !ok {
			return def
		}
		return b
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// Required returns the string under key or an error wrapping domain.ErrMissingParameter.
func (s *Snapshot) Required(key string) (string, error) {
	str, ok := s.LookupString(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrMissingParameter, key)
	}
	return str, nil
}

// Keys returns the keys in sorted order.
func (s *Snapshot) Keys() []string {
	return New(s.values).Keys()
}

// Decode maps the snapshot onto out, which must be a pointer to a struct or map.
// Field names are matched case-insensitively, or through `mapstructure` tags.
func (s *Snapshot) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(s.values); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	return nil
}

// ParseBool parses the boolean spellings accepted in parameter strings:
// true/false, on/off, yes/no and 1/0, case-insensitively.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "yes", "1":
		return true, true
	case "false", "off", "no", "0":
		return false, true
	}
	return false, false
}
