package item

import (
	"log/slog"

	"github.com/pb33f/netlogs/search"
)

// Filter shows or hides items.
type Filter interface {
	ShouldShow(it *Item) bool
	IsActive() bool
}

// SearchFilter applies a search config.
type SearchFilter struct {
	cfg search.Config
}

func NewSearchFilter(cfg search.Config) *SearchFilter {
	return &SearchFilter{cfg: cfg}
}

func (f *SearchFilter) ShouldShow(it *Item) bool {
	return it.ShouldShow(f.cfg)
}

func (f *SearchFilter) IsActive() bool {
	return !f.cfg.IsEmpty()
}

// HiddenTagFilter hides items whose tag the user has hidden.
type HiddenTagFilter struct {
	hidden map[string]string
}

func NewHiddenTagFilter(hidden map[string]string) *HiddenTagFilter {
	return &HiddenTagFilter{hidden: hidden}
}

func (f *HiddenTagFilter) ShouldShow(it *Item) bool {
	_, hidden := f.hidden[it.Tag()]
	return !hidden
}

func (f *HiddenTagFilter) IsActive() bool {
	return len(f.hidden) > 0
}

// PathFilter applies a JSONPath filter to the params, content and meta tree.
type PathFilter struct {
	path *search.PathFilter
}

func NewPathFilter(path *search.PathFilter) *PathFilter {
	return &PathFilter{path: path}
}

func (f *PathFilter) ShouldShow(it *Item) bool {
	return f.path.Match(it.Tree())
}

func (f *PathFilter) IsActive() bool {
	return f.path != nil
}

// ExpressionFilter applies a compiled filter expression. Evaluation errors hide
// the item and are logged at debug level.
type ExpressionFilter struct {
	expr   *search.Expression
	logger *slog.Logger
}

func NewExpressionFilter(expr *search.Expression, logger *slog.Logger) *ExpressionFilter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExpressionFilter{expr: expr, logger: logger}
}

func (f *ExpressionFilter) ShouldShow(it *Item) bool {
	matched, err := f.expr.Match(it.Env())
	if err != nil {
		f.logger.Debug("expression evaluation failed", "id", it.ID(), "error", err)
		return false
	}
	return matched
}

func (f *ExpressionFilter) IsActive() bool {
	return f.expr != nil
}

// FilterChain combines filters; an item must pass all of them.
type FilterChain struct {
	filters []Filter
}

func NewFilterChain() *FilterChain {
	return &FilterChain{
		filters: make([]Filter, 0, 4),
	}
}

// Add adds filter when it is active.
func (fc *FilterChain) Add(filter Filter) {
	if filter != nil && filter.IsActive() {
		fc.filters = append(fc.filters, filter)
	}
}

// Clear removes all filters.
func (fc *FilterChain) Clear() {
	fc.filters = fc.filters[:0]
}

// HasActiveFilters returns true if any filters are active.
func (fc *FilterChain) HasActiveFilters() bool {
	return len(fc.filters) > 0
}

// Apply returns the items that pass every filter, in order. Items their
// profile suppresses never pass.
func (fc *FilterChain) Apply(items []*Item) []*Item {
	var filters []Filter
	if fc != nil {
		filters = fc.filters
	}

	filtered := make([]*Item, 0, len(items))
	for _, it := range items {
		passesAll := it.Listed()
		for _, filter := range filters {
			if !passesAll {
				break
			}
			passesAll = filter.ShouldShow(it)
		}
		if passesAll {
			filtered = append(filtered, it)
		}
	}
	return filtered
}
