// Package object reads and writes nested map[string]any values through
// dotted accessor strings such as "user.address.city".
//
// Slices ([]any) are traversed with numeric segments: "tags.0".
package object

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Separator splits accessor strings into segments.
const Separator = "."

// Get returns the value at accessor. The second result is false when any
// segment is missing.
func Get(obj map[string]any, accessor string) (any, bool) {
	if obj == nil {
		return nil, false
	}
	var cur any = obj
	for _, segment := range strings.Split(accessor, Separator) {
		next, ok := child(cur, segment)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func child(v any, segment string) (any, bool) {
	switch container := v.(type) {
	case map[string]any:
		next, ok := container[segment]
		return next, ok
	case []any:
		i, err := strconv.Atoi(segment)
		if err != nil || i < 0 || i >= len(container) {
			return nil, false
		}
		return container[i], true
	default:
		return nil, false
	}
}

// Set stores value at accessor, creating intermediate maps as needed. An
// intermediate value that is not a map is replaced by one.
func Set(obj map[string]any, accessor string, value any) {
	if obj == nil {
		return
	}
	segments := strings.Split(accessor, Separator)
	last := segments[len(segments)-1]

	cur := obj
	for _, segment := range segments[:len(segments)-1] {
		next, ok := cur[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[segment] = next
		}
		cur = next
	}
	cur[last] = value
}

// Flatten returns a single-level map whose keys are the accessors of every
// leaf value in obj.
func Flatten(obj map[string]any) map[string]any {
	result := make(map[string]any)
	flatten(result, "", obj)
	return result
}

func flatten(result map[string]any, prefix string, v any) {
	switch container := v.(type) {
	case map[string]any:
		for k, item := range container {
			flatten(result, join(prefix, k), item)
		}
	case []any:
		for i, item := range container {
			flatten(result, join(prefix, strconv.Itoa(i)), item)
		}
	default:
		if prefix != "" {
			result[prefix] = v
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + Separator + key
}

// GetMany returns the values of the given accessors keyed by accessor.
// Missing accessors are left out. Without accessors it returns Flatten(obj).
func GetMany(obj map[string]any, accessors ...string) map[string]any {
	if len(accessors) == 0 {
		return Flatten(obj)
	}
	result := make(map[string]any, len(accessors))
	for _, accessor := range accessors {
		if v, ok := Get(obj, accessor); ok {
			result[accessor] = v
		}
	}
	return result
}

// Expand is the inverse of Flatten: it builds a nested map from accessor
// keys.
func Expand(flat map[string]any) map[string]any {
	result := make(map[string]any, len(flat))
	for _, k := range sortedKeys(flat) {
		Set(result, k, flat[k])
	}
	return result
}

// sortedKeys orders shallower accessors first so "a.b" overrides a scalar "a".
func sortedKeys(m map[string]any) []string {
	return slices.SortedFunc(maps.Keys(m), func(a, b string) int {
		if c := cmp.Compare(strings.Count(a, Separator), strings.Count(b, Separator)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}
