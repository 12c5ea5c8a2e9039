package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/netlogs/item"
	"github.com/pb33f/netlogs/search"
)

// buildFilterChain combines the search panel state with the hidden tags.
// Unlisted items are dropped by the chain itself.
func buildFilterChain(cfg search.Config, hidden map[string]string) *item.FilterChain {
	chain := item.NewFilterChain()
	chain.Add(item.NewSearchFilter(cfg))
	chain.Add(item.NewHiddenTagFilter(hidden))
	return chain
}

// collectTags returns the distinct non-empty tags of items, sorted.
func collectTags(items []*item.Item) []string {
	var tags []string
	for _, it := range items {
		if tag := it.Tag(); tag != "" && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}

func (m *Model) searchMode() search.Mode {
	if m.regex {
		return search.Regex
	}
	return search.PlainText
}

func (m *Model) hiddenTags() map[string]string {
	if m.showHidden {
		return nil
	}
	return m.settings.HiddenTagSet()
}

// applyFilters recomputes the visible items. An invalid regex keeps the
// previous result and is reported in the search panel.
func (m *Model) applyFilters() {
	cfg, err := search.NewConfig(m.searchInput.Value(), m.searchMode(), m.filterInput.Value())
	if err != nil {
		m.searchErr = err
		return
	}
	m.searchErr = nil
	m.cfg = cfg

	m.visible = m.list.Visible(buildFilterChain(cfg, m.hiddenTags()))
	m.buildTableRows()
	m.table.SetRows(m.rows)

	if m.table.Cursor() >= len(m.rows) {
		m.table.SetCursor(max(len(m.rows)-1, 0))
	}
	m.syncSelection()
}

func (m *Model) clearFilters() {
	m.searchInput.SetValue("")
	m.filterInput.SetValue("")
	m.applyFilters()
}

func (m *Model) openSearch() {
	m.viewMode = ViewModeTableWithSearch
	m.searchCursor = searchCursorInput
	m.focusSearchCursor()
	m.updateTableDimensions()
}

func (m *Model) closeSearch() {
	m.viewMode = ViewModeTable
	m.searchInput.Blur()
	m.filterInput.Blur()
	m.updateTableDimensions()
}

func (m *Model) focusSearchCursor() {
	m.searchInput.Blur()
	m.filterInput.Blur()
	switch m.searchCursor {
	case searchCursorInput:
		m.searchInput.Focus()
	case searchCursorFilter:
		m.filterInput.Focus()
	}
}

func (m *Model) handleSearchKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "esc", "enter":
		m.closeSearch()
		return true, nil

	case "tab", "down":
		m.searchCursor = (m.searchCursor + 1) % searchCursorCount
		m.focusSearchCursor()
		return true, nil

	case "shift+tab", "up":
		m.searchCursor = (m.searchCursor + searchCursorCount - 1) % searchCursorCount
		m.focusSearchCursor()
		return true, nil

	case "space", " ":
		switch m.searchCursor {
		case searchCursorRegex:
			m.regex = !m.regex
			m.applyFilters()
			return true, nil
		case searchCursorHidden:
			m.showHidden = !m.showHidden
			m.applyFilters()
			return true, nil
		}
	}
	return false, nil
}

// updateSearchInputs feeds the key to the focused input and filters live
func (m *Model) updateSearchInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	searchValue, filterValue := m.searchInput.Value(), m.filterInput.Value()

	switch m.searchCursor {
	case searchCursorInput:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case searchCursorFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
	}

	if m.searchInput.Value() != searchValue || m.filterInput.Value() != filterValue {
		m.applyFilters()
	}
	return cmd
}
