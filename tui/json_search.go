package tui

import (
	"github.com/pb33f/netlogs/search"
)

// countMatches returns how many keys and leaf values of tree match marker.
// Array indices are not counted, the same way the list search ignores them.
func countMatches(tree any, marker *search.Marker) int {
	if marker == nil {
		return 0
	}
	switch v := search.Normalize(tree).(type) {
	case map[string]any:
		count := 0
		for key, value := range v {
			if marker.MatchString(key) {
				count++
			}
			count += countMatches(value, marker)
		}
		return count
	case []any:
		count := 0
		for _, element := range v {
			count += countMatches(element, marker)
		}
		return count
	default:
		if marker.MatchString(search.LeafString(v)) {
			return 1
		}
		return 0
	}
}

// pruneTree returns a copy of tree holding only the branches that lead to a
// match. A matching key keeps its whole subtree. The second result is false
// when nothing matched.
func pruneTree(tree any, marker *search.Marker) (any, bool) {
	if marker == nil {
		return tree, true
	}

	switch v := search.Normalize(tree).(type) {
	case map[string]any:
		filtered := make(map[string]any)
		for key, value := range v {
			if marker.MatchString(key) {
				filtered[key] = value
				continue
			}
			if child, ok := pruneTree(value, marker); ok {
				filtered[key] = child
			}
		}
		return filtered, len(filtered) > 0

	case []any:
		var filtered []any
		for _, element := range v {
			if child, ok := pruneTree(element, marker); ok {
				filtered = append(filtered, child)
			}
		}
		return filtered, len(filtered) > 0

	default:
		return v, marker.MatchString(search.LeafString(v))
	}
}
