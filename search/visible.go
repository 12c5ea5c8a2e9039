package search

import (
	"encoding/json"
	"strconv"
)

// Visible reports whether any key or leaf value of tree matches marker, at any
// depth. Array indices are positions, not data, and are never matched. Values
// that are not plain decoded JSON (structs, typed slices) are normalised
// through JSON first so they are walked the same way.
func Visible(tree any, marker *Marker) bool {
	if marker == nil {
		return false
	}
	return walk(tree, marker)
}

func walk(node any, marker *Marker) bool {
	switch v := node.(type) {
	case map[string]any:
		for key, value := range v {
			if marker.MatchString(key) || walk(value, marker) {
				return true
			}
		}
		return false
	case []any:
		for _, value := range v {
			if walk(value, marker) {
				return true
			}
		}
		return false
	case nil, string, bool, float64, json.Number:
		return marker.MatchString(LeafString(v))
	default:
		switch n := Normalize(v).(type) {
		case map[string]any, []any:
			return walk(n, marker)
		default:
			return marker.MatchString(LeafString(n))
		}
	}
}

// LeafString is the text a scalar is matched against: null for nil, JSON for
// anything that is not a plain scalar.
func LeafString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Normalize converts v into plain decoded JSON (maps, slices and scalars).
// Values that do not survive a JSON round trip are returned as is.
func Normalize(v any) any {
	switch v.(type) {
	case nil, string, bool, float64, json.Number, map[string]any, []any:
		return v
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
