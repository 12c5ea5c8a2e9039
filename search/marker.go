package search

import (
	"fmt"
	"regexp"
)

// Mode defines how a search value is turned into a marker.
type Mode int

const (
	PlainText Mode = iota
	Regex
)

func (m Mode) String() string {
	if m == Regex {
		return "regex"
	}
	return "plain"
}

// Marker is the compiled, case-insensitive pattern derived from a search value.
type Marker struct {
	mode    Mode
	pattern string
	regex   *regexp.Regexp
}

// NewMarker compiles value. Plain text values are quoted so regex meta
// characters match literally.
func NewMarker(value string, mode Mode) (*Marker, error) {
	pattern := value
	if mode == PlainText {
		pattern = regexp.QuoteMeta(value)
	}

	regex, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}

	return &Marker{
		mode:    mode,
		pattern: value,
		regex:   regex,
	}, nil
}

// MatchString reports whether s contains a match.
func (m *Marker) MatchString(s string) bool {
	if m == nil {
		return false
	}
	return m.regex.MatchString(s)
}

// FindAllIndex returns the byte ranges of every match in s, for highlighting.
func (m *Marker) FindAllIndex(s string) [][]int {
	if m == nil {
		return nil
	}
	return m.regex.FindAllStringIndex(s, -1)
}

func (m *Marker) Mode() Mode {
	return m.mode
}

func (m *Marker) String() string {
	return m.pattern
}
