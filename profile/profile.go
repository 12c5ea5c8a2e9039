// Package profile classifies captured HTTP exchanges and extracts their display
// fields. A Profile is a stateless set of functions over a HAR entry; the Registry
// picks the first profile whose matcher accepts the entry and falls back to Default.
package profile

import (
	"github.com/pb33f/netlogs/har"
)

// Profile extracts display fields from a captured request/response pair.
// Implementations must be pure: the same entry always yields the same values,
// and malformed bodies degrade to empty values instead of failing.
type Profile interface {
	// Name is the human readable name of the exchange.
	Name(entry *har.Entry) string

	// Tag is the short category label, such as the HTTP method or "GQL".
	Tag(entry *har.Entry) string

	// Params is the structured request payload.
	Params(entry *har.Entry) any

	// Result is the structured response payload parsed from content.
	Result(entry *har.Entry, content string) any

	// Meta is an auxiliary metadata tree, nil when there is none.
	Meta(entry *har.Entry) any

	// IsError reports whether the exchange failed.
	IsError(entry *har.Entry) bool

	// ShouldShow allows a profile to suppress an exchange entirely.
	ShouldShow(entry *har.Entry) bool
}

// Matcher decides if a profile applies, given the default parse of the request
// params, the response result and the raw response text.
type Matcher func(params, result any, resultText string) bool

// Rule pairs a matcher with the profile it selects.
type Rule struct {
	Name    string
	Matches Matcher
	Profile Profile
}

// emptyValue is the degraded value for bodies that are absent or not JSON.
func emptyValue() map[string]any {
	return map[string]any{}
}
