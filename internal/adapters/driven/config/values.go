// Package config holds what the configuration stores share: dot-notation
// values with typed accessors. The file subpackage persists them as TOML.
package config

import "strings"

// Values maps dot-notation keys ("api.rate_limit") to decoded values.
// Decoders disagree on numeric and slice types (TOML yields int64 and
// []any, Go callers store int and []string), so the accessors accept both.
type Values map[string]any

// String returns the value of key if it is a string, else "".
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Int returns the value of key as an int. Floats are truncated.
func (v Values) Int(key string) int {
	switch n := v[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Float returns the value of key as a float64. Integers are converted.
func (v Values) Float(key string) float64 {
	switch n := v[key].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// Bool returns the value of key if it is a bool, else false.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// StringSlice returns the string elements of a list value, or nil.
func (v Values) StringSlice(key string) []string {
	switch list := v[key].(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Flatten turns nested tables into dot-notation keys:
// {"a": {"b": 1}} becomes {"a.b": 1}.
func Flatten(tables map[string]any) Values {
	out := make(Values)
	flattenInto(out, tables, "")
	return out
}

func flattenInto(out Values, tables map[string]any, prefix string) {
	for key, value := range tables {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(out, nested, key)
			continue
		}
		out[key] = value
	}
}

// Nest is the inverse of Flatten. A scalar and a table cannot share a
// key; the table wins.
func (v Values) Nest() map[string]any {
	root := make(map[string]any)
	for key, value := range v {
		parts := strings.Split(key, ".")
		table := root
		for _, part := range parts[:len(parts)-1] {
			next, ok := table[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				table[part] = next
			}
			table = next
		}
		leaf := parts[len(parts)-1]
		if _, isTable := table[leaf].(map[string]any); !isTable {
			table[leaf] = value
		}
	}
	return root
}
