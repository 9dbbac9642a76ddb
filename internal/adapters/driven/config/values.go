// Package config holds the flattened settings map shared by the ConfigStore
// adapters and the conversions between it and nested TOML tables.
package config

import (
	"sort"
	"strings"
	"time"
)

// Values maps dot separated keys to decoded TOML scalars.
// It is not safe for concurrent use; stores guard it with their own lock.
type Values map[string]any

// String returns the value at key if it is a string.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Int accepts TOML's int64 as well as Go ints set programmatically.
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

// Float accepts integers so that rate_limit = 5 and rate_limit = 5.0 agree.
func (v Values) Float(key string) float64 {
	switch n := v[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// Bool returns the value at key if it is a boolean.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// Duration parses "300ms" style strings; bare integers count as milliseconds.
func (v Values) Duration(key string) time.Duration {
	switch d := v[key].(type) {
	case time.Duration:
		return d
	case int:
		return time.Duration(d) * time.Millisecond
	case int64:
		return time.Duration(d) * time.Millisecond
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0
		}
		return parsed
	}
	return 0
}

// StringMap collects the string values below prefix keyed by their remainder.
func (v Values) StringMap(prefix string) map[string]string {
	prefix = strings.TrimSuffix(prefix, ".") + "."
	out := make(map[string]string)
	for key, val := range v {
		rest, found := strings.CutPrefix(key, prefix)
		if !found {
			continue
		}
		if s, ok := val.(string); ok {
			out[rest] = s
		}
	}
	return out
}

// Keys returns every key, sorted.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone copies the map so a store can hand out or replace it safely.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, val := range v {
		out[key] = val
	}
	return out
}

// Flatten turns decoded TOML tables into dotted keys:
// {"widget": {"debounce": "300ms"}} becomes {"widget.debounce": "300ms"}.
func Flatten(tables map[string]any) Values {
	out := make(Values)
	flattenInto(out, tables, "")
	return out
}

func flattenInto(out Values, tables map[string]any, prefix string) {
	for key, val := range tables {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := val.(map[string]any); ok {
			flattenInto(out, nested, key)
			continue
		}
		out[key] = val
	}
}

// Nest is the inverse of Flatten. When a key is both a scalar and the
// prefix of a deeper key, the scalar is kept and the deeper key dropped.
func (v Values) Nest() map[string]any {
	keys := v.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return strings.Count(keys[i], ".") < strings.Count(keys[j], ".")
	})

	root := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		if table := tableFor(root, parts[:len(parts)-1]); table != nil {
			table[parts[len(parts)-1]] = v[key]
		}
	}
	return root
}

// tableFor walks or creates the tables along path. It returns nil when a
// scalar already sits somewhere on the path.
func tableFor(root map[string]any, path []string) map[string]any {
	node := root
	for _, part := range path {
		next, exists := node[part]
		if !exists {
			child := make(map[string]any)
			node[part] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return nil
		}
		node = child
	}
	return node
}
