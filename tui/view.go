package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/netlogs/i18n"
)

func (m *Model) render() string {
	if m.err != nil {
		return m.renderError()
	}

	switch m.activeModal {
	case ModalEntry:
		return m.overlay(m.renderDetailModal())
	case ModalHiddenTags:
		return m.overlay(m.renderHiddenTagsModal())
	}

	var builder strings.Builder
	builder.WriteString(m.renderTitle())
	builder.WriteString("\n")
	builder.WriteString(m.renderTable())
	builder.WriteString("\n")

	switch m.viewMode {
	case ViewModeTableWithSplit:
		builder.WriteString(m.renderSplitPanel())
		builder.WriteString("\n")
	case ViewModeTableWithSearch:
		builder.WriteString(m.renderSearchPanel())
		builder.WriteString("\n")
	}

	if n, ok := m.notices.latest(); ok {
		style := HelpStyle
		if n.isError {
			style = ErrorStyle
		}
		builder.WriteString(style.Render(n.message))
		builder.WriteString("\n")
	}

	builder.WriteString(m.renderStatusBar())
	return builder.String()
}

func (m *Model) overlay(modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *Model) renderTable() string {
	if len(m.rows) == 0 {
		empty := lipgloss.NewStyle().
			Faint(true).
			Align(lipgloss.Center, lipgloss.Center).
			Width(m.width).
			Height(m.tableHeight())
		return empty.Render(m.tr(i18n.KeyNoItems, nil))
	}
	// post-process table view to add colorization (vacuum pattern)
	return ColorizeItemTableOutput(m.table.View(), m.table.Cursor(), m.rows)
}

func (m *Model) renderTitle() string {
	title := "netlogs"
	if m.fileName != "" {
		title += ": " + m.fileName
	}
	title += " | "

	titleStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(m.width).
		BorderForeground(RGBBlue).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		BorderBottom(true)

	count := m.tr(i18n.KeyItemsShown, map[string]string{
		"shown": strconv.Itoa(len(m.visible)),
		"total": strconv.Itoa(m.list.Len()),
	})
	if m.loadTime > 0 {
		count += fmt.Sprintf(", %v", m.loadTime.Round(time.Millisecond))
	}

	countStyle := lipgloss.NewStyle().Faint(true)
	return titleStyle.Render(lipgloss.NewStyle().Bold(true).Render(title) + countStyle.Render(count))
}

func (m *Model) renderStatusBar() string {
	var parts []string

	switch m.viewMode {
	case ViewModeTable:
		parts = append(parts, "↑/↓: Navigate", "Enter: Details", "/: Search", "h: Tags", "r: Raw")
		if !m.cfg.IsEmpty() {
			parts = append(parts, "Esc: Clear Filters")
		}
	case ViewModeTableWithSearch:
		parts = append(parts, "Tab: Next Field", "Space: Toggle", "Enter/Esc: Done")
	case ViewModeTableWithSplit:
		parts = append(parts, "↑/↓: Scroll", "Tab: Switch Panel", "/: Find", "Esc: Close Details")
	}

	parts = append(parts, "q: Quit")

	if len(m.visible) > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", m.selectedIndex+1, len(m.visible)))
	}

	if m.viewMode == ViewModeTableWithSplit {
		parts = append(parts, "["+m.panelTitle(m.focused)+"]")
	}

	return HelpStyle.Render(strings.Join(parts, " | "))
}

func (m *Model) renderSplitPanel() string {
	if m.selected == nil {
		return m.renderEmptyPanel()
	}

	baseStyle := lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder())
	focusedBorderStyle := baseStyle.BorderForeground(RGBBlue)
	unfocusedBorderStyle := baseStyle.BorderForeground(lipgloss.Color("240"))

	rendered := make([]string, 0, panelCount)
	for p := Panel(0); p < panelCount; p++ {
		style := unfocusedBorderStyle
		if p == m.focused {
			style = focusedBorderStyle
		}
		title := HeaderStyle.Render(m.panelTitle(p))
		rendered = append(rendered, style.Render(title+"\n"+m.panels[p].View()))
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if m.panelSearch.active {
		matches := countMatches(m.selected.Tree(), m.panelSearch.Marker())
		return panels + "\n" + m.panelSearch.RenderSearchPanel(m.width, matches)
	}
	return panels
}

// renderSearchPanel renders the list search: query, filter value and toggles
func (m *Model) renderSearchPanel() string {
	searchStyle := lipgloss.NewStyle().
		Width(m.width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink)

	label := func(key string, index int) string {
		text := m.tr(key, nil) + ":"
		if m.searchCursor == index {
			return FocusedLineStyle.Render(text)
		}
		return labelStyle.Render(text)
	}

	var content strings.Builder
	content.WriteString(label(i18n.KeySearch, searchCursorInput))
	content.WriteString(" ")
	content.WriteString(m.searchInput.View())
	if m.searchErr != nil {
		content.WriteString(" ")
		content.WriteString(ErrorStyle.Render(m.searchErr.Error()))
	}
	content.WriteString("\n")

	content.WriteString(label(i18n.KeyFilter, searchCursorFilter))
	content.WriteString(" ")
	content.WriteString(m.filterInput.View())
	content.WriteString("\n")

	content.WriteString(renderCheckbox("Regex", m.regex, m.searchCursor == searchCursorRegex))
	content.WriteString("\n")
	content.WriteString(renderCheckbox(m.tr(i18n.KeyHiddenTags, nil), m.showHidden, m.searchCursor == searchCursorHidden))

	return searchStyle.Render(content.String())
}

func (m *Model) renderEmptyPanel() string {
	emptyStyle := lipgloss.NewStyle().
		Faint(true).
		Align(lipgloss.Center, lipgloss.Center).
		Width(m.width).
		Height(m.height / 2)

	return emptyStyle.Render(m.tr(i18n.KeyNoItems, nil))
}

func (m *Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
}
