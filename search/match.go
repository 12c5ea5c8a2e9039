package search

import "strings"

// Match is the visibility predicate shared by every item kind. The filter value
// must be a substring of name. When a search is configured, params or content
// must also contain a match. Content must already be unwrapped to its raw form.
func Match(name string, params, content any, cfg Config) bool {
	byFilterValue := cfg.FilterValue == "" || strings.Contains(name, cfg.FilterValue)
	if !cfg.HasSearch() {
		return byFilterValue
	}
	return byFilterValue && (Visible(params, cfg.Marker) || Visible(content, cfg.Marker))
}
