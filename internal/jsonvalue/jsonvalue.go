// Package jsonvalue holds the loosely-typed JSON value representation shared
// by games, agents, and the subprocess transport, along with the structural
// equality and cloning helpers built on top of it.
package jsonvalue

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Value is the representation a game state or move takes throughout the
// arena: whatever encoding/json produces when unmarshaling into `any`
// (map[string]any, []any, float64, string, bool, or nil).
type Value = any

// Equal reports whether a and b are structurally equal, treating numeric
// values as equal whenever they represent the same number regardless of Go
// kind. This matters because a move built in-process as an int must compare
// equal to the same move after it has round-tripped through a subprocess
// agent's JSON decoder, where it comes back as a float64.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64, int, int64:
		an, aok := asFloat(a)
		bn, bok := asFloat(b)
		return aok && bok && an == bn
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, present := bv[k]
			if !present || !Equal(v, bvv) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("jsonvalue.Equal: unsupported type %T", a))
	}
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Clone returns a deep copy of v, safe to hand to a caller that may mutate
// nested maps or slices without affecting the original.
func Clone(v Value) Value {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Clone(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = Clone(vv)
		}
		return out
	default:
		return t
	}
}

// Canonical marshals v to JSON with object keys sorted, matching the
// sort_keys=True convention used throughout the match log format.
func Canonical(v Value) ([]byte, error) {
	return json.Marshal(sortKeys(v))
}

// sortKeys recursively rebuilds maps and slices, visiting map keys in sorted
// order. The result is still a plain map[string]any; the stable output comes
// from json.Marshal, which already sorts map[string]any keys. Retained as a
// hook point in case a future value type needs explicit key ordering beyond
// what encoding/json already guarantees.
func sortKeys(v Value) Value {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(t))
		for _, k := range keys {
			out[k] = sortKeys(t[k])
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = sortKeys(vv)
		}
		return out
	default:
		return t
	}
}
