package search

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// PathFilter is a field level filter. It selects values with a JSONPath
// expression and passes when any selected value matches the marker, or when
// anything is selected at all if no marker is set.
type PathFilter struct {
	source string
	path   jp.Expr
	marker *Marker
}

// NewPathFilter parses path. The value is compiled as plain text.
func NewPathFilter(path, value string) (*PathFilter, error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid json path %q: %w", path, err)
	}

	f := &PathFilter{source: path, path: expr}
	if value != "" {
		marker, err := NewMarker(value, PlainText)
		if err != nil {
			return nil, err
		}
		f.marker = marker
	}
	return f, nil
}

// Match evaluates the filter against tree.
func (f *PathFilter) Match(tree any) bool {
	results := f.path.Get(Normalize(tree))
	if len(results) == 0 {
		return false
	}
	if f.marker == nil {
		return true
	}
	for _, result := range results {
		if walk(result, f.marker) {
			return true
		}
	}
	return false
}

func (f *PathFilter) String() string {
	return f.source
}
