// Package search decides whether a log item is visible for a user query. A
// query is a free text marker matched deeply against params and content, and a
// filter value matched against the item name.
package search

// Config describes a single filter pass. It is built fresh for every pass and
// never persisted.
type Config struct {
	SearchValue string
	Marker      *Marker
	FilterValue string
}

// NewConfig compiles searchValue with mode and returns a ready config. An empty
// searchValue leaves the marker unset.
func NewConfig(searchValue string, mode Mode, filterValue string) (Config, error) {
	cfg := Config{
		SearchValue: searchValue,
		FilterValue: filterValue,
	}
	if searchValue == "" {
		return cfg, nil
	}
	marker, err := NewMarker(searchValue, mode)
	if err != nil {
		return cfg, err
	}
	cfg.Marker = marker
	return cfg, nil
}

// HasSearch is true when both the search value and its marker are present.
func (c Config) HasSearch() bool {
	return c.SearchValue != "" && c.Marker != nil
}

// IsEmpty reports whether the config filters nothing.
func (c Config) IsEmpty() bool {
	return !c.HasSearch() && c.FilterValue == ""
}
