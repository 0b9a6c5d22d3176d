package config

import (
	"fmt"
	"math"
)

// RuleConfig is one rule's option table. Keys are stored normalised (see
// NormalizeKey); lookups normalise the requested key as well.
type RuleConfig map[string]any

// Has reports whether key is set.
func (rc RuleConfig) Has(key string) bool {
	_, ok := rc[NormalizeKey(key)]
	return ok
}

// Int returns an integer option, or def when the key is absent.
func (rc RuleConfig) Int(key string, def int) (int, error) {
	value, ok := rc[NormalizeKey(key)]
	if !ok {
		return def, nil
	}

	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return def, invalidValue(key, "integer", value)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return def, invalidValue(key, "integer", value)
		}
		return int(v), nil
	default:
		return def, invalidValue(key, "integer", value)
	}
}

// Bool returns a boolean option, or def when the key is absent.
func (rc RuleConfig) Bool(key string, def bool) (bool, error) {
	value, ok := rc[NormalizeKey(key)]
	if !ok {
		return def, nil
	}
	b, isBool := value.(bool)
	if !isBool {
		return def, invalidValue(key, "boolean", value)
	}
	return b, nil
}

// String returns a string option, or def when the key is absent.
func (rc RuleConfig) String(key, def string) (string, error) {
	value, ok := rc[NormalizeKey(key)]
	if !ok {
		return def, nil
	}
	s, isString := value.(string)
	if !isString {
		return def, invalidValue(key, "string", value)
	}
	return s, nil
}

// StringSlice returns a list option, or def when the key is absent.
// A single string is accepted as a one-element list.
func (rc RuleConfig) StringSlice(key string, def []string) ([]string, error) {
	value, ok := rc[NormalizeKey(key)]
	if !ok {
		return def, nil
	}

	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, isString := item.(string)
			if !isString {
				return def, invalidValue(key, "list of strings", value)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return def, invalidValue(key, "list of strings", value)
	}
}

func invalidValue(key, want string, got any) error {
	return &Error{
		Key: NormalizeKey(key),
		Err: fmt.Errorf("%w: expected %s, got %T", ErrInvalidValue, want, got),
	}
}
