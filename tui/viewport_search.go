package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/netlogs/search"
)

// panel search cursor positions
const (
	panelSearchInput = iota
	panelSearchRegex
	panelSearchFiltered
	panelSearchCount
)

// ViewportSearchState tracks the search inside the detail panels. It narrows
// what is highlighted in the selected item without touching the list.
type ViewportSearchState struct {
	active      bool
	query       string
	regex       bool
	filtered    bool
	marker      *search.Marker
	err         error
	searchInput textinput.Model
	cursor      int
}

// NewViewportSearchState creates a new viewport search state
func NewViewportSearchState() *ViewportSearchState {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Search item..."
	input.CharLimit = 100

	return &ViewportSearchState{searchInput: input}
}

// Activate activates the search UI
func (s *ViewportSearchState) Activate() {
	s.active = true
	s.cursor = panelSearchInput
	s.searchInput.Focus()
}

// Deactivate hides the search UI. Highlights stay until Clear.
func (s *ViewportSearchState) Deactivate() {
	s.active = false
	s.searchInput.Blur()
}

// Clear clears the search state
func (s *ViewportSearchState) Clear() {
	s.query = ""
	s.marker = nil
	s.err = nil
	s.filtered = false
	s.searchInput.SetValue("")
}

// UpdateQuery compiles query. An invalid pattern clears the marker and keeps
// the error for display.
func (s *ViewportSearchState) UpdateQuery(query string) {
	s.query = query
	if s.searchInput.Value() != query {
		s.searchInput.SetValue(query)
	}
	s.compile()
}

func (s *ViewportSearchState) compile() {
	s.marker, s.err = nil, nil
	if s.query == "" {
		return
	}
	mode := search.PlainText
	if s.regex {
		mode = search.Regex
	}
	s.marker, s.err = search.NewMarker(s.query, mode)
}

// ToggleRegex switches between plain text and regex matching
func (s *ViewportSearchState) ToggleRegex() {
	s.regex = !s.regex
	s.compile()
}

// ToggleFiltered toggles between filtered and full view
func (s *ViewportSearchState) ToggleFiltered() {
	if s.marker == nil {
		s.filtered = false
		return
	}
	s.filtered = !s.filtered
}

// Marker is the compiled query, nil when empty or invalid.
func (s *ViewportSearchState) Marker() *search.Marker {
	return s.marker
}

// MoveCursor moves the cursor between the input and the checkboxes
func (s *ViewportSearchState) MoveCursor(direction int) {
	s.cursor = (s.cursor + direction + panelSearchCount) % panelSearchCount
	if s.cursor == panelSearchInput {
		s.searchInput.Focus()
	} else {
		s.searchInput.Blur()
	}
}

// RenderSearchPanel renders the floating search box for the detail panels
func (s *ViewportSearchState) RenderSearchPanel(width, matchCount int) string {
	if !s.active {
		return ""
	}

	panelStyle := lipgloss.NewStyle().
		Width(width - 4).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(RGBPink).
		Padding(0, 1).
		Background(lipgloss.Color("235"))

	labelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink)

	var content strings.Builder
	content.WriteString(labelStyle.Render("Search: "))
	content.WriteString(s.searchInput.View())

	switch {
	case s.err != nil:
		content.WriteString(ErrorStyle.Render(" " + s.err.Error()))
	case s.query != "" && matchCount > 0:
		content.WriteString(labelStyle.Render(fmt.Sprintf(" (%d matches)", matchCount)))
	case s.query != "":
		content.WriteString(labelStyle.Render(" (no matches)"))
	}
	content.WriteString("\n")

	checkboxes := []struct {
		label   string
		checked bool
		index   int
	}{
		{"Regex", s.regex, panelSearchRegex},
		{"Matches only", s.filtered, panelSearchFiltered},
	}
	for _, cb := range checkboxes {
		content.WriteString(renderCheckbox(cb.label, cb.checked, s.cursor == cb.index))
		content.WriteString("\n")
	}

	content.WriteString(HelpStyle.Render("Tab: Switch field | Space: Toggle | Esc: Close"))

	return panelStyle.Render(content.String())
}

func renderCheckbox(label string, checked, focused bool) string {
	cursor := " "
	if focused {
		cursor = ">"
	}
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s %s", cursor, box, label)
	if focused {
		return FocusedLineStyle.Render(line)
	}
	return line
}
