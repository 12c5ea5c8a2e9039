package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/netlogs/i18n"
)

// modalTags lists every tag that can be toggled: tags present in the list
// plus tags hidden earlier that are not in this capture.
func (m *Model) modalTags() []string {
	tags := collectTags(m.list.Items())
	for _, tag := range m.settings.HiddenTags {
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (m *Model) renderHiddenTagsModal() string {
	modalWidth := 36

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBBlue).
		Padding(1)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBBlue)

	var content strings.Builder
	content.WriteString(titleStyle.Render(m.tr(i18n.KeyHiddenTags, nil)))
	content.WriteString("\n\n")

	tags := m.modalTags()
	if len(m.settings.HiddenTags) == 0 {
		content.WriteString(HelpStyle.Render(m.tr(i18n.KeyNoHiddenTags, nil)))
		content.WriteString("\n\n")
	}

	for i, tag := range tags {
		cursor := " "
		if m.hiddenCursor == i {
			cursor = ">"
		}

		checkbox := "[x]"
		if m.settings.IsHidden(tag) {
			checkbox = "[ ]"
		}

		line := fmt.Sprintf("%s %s %-12s", cursor, checkbox, tag)
		if m.hiddenCursor == i {
			line = FocusedLineStyle.Render(line)
		}

		content.WriteString(line)
		content.WriteString("\n")
	}

	// drop every hidden tag
	content.WriteString("\n")
	dropLine := "   " + m.tr(i18n.KeyDrop, nil)
	if m.hiddenCursor == len(tags) {
		dropLine = FocusedLineStyle.Render("> " + m.tr(i18n.KeyDrop, nil))
	}
	content.WriteString(dropLine)

	content.WriteString("\n\n")
	content.WriteString(HelpStyle.Render("↑/↓: Navigate | Space: Toggle | Esc: Close"))

	return modalStyle.Render(content.String())
}

func (m *Model) toggleHiddenTag(tag string) error {
	if m.settings.IsHidden(tag) {
		return m.settings.ShowTag(tag)
	}
	return m.settings.HideTag(tag)
}

func (m *Model) dropHiddenTags() error {
	for _, tag := range append([]string(nil), m.settings.HiddenTags...) {
		if err := m.settings.ShowTag(tag); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) handleHiddenTagKeys(key string) (bool, tea.Cmd) {
	tags := m.modalTags()

	switch key {
	case "esc", "h", "q":
		m.activeModal = ModalNone
		return true, nil

	case "up", "k":
		m.hiddenCursor--
		if m.hiddenCursor < 0 {
			m.hiddenCursor = len(tags)
		}
		return true, nil

	case "down", "j":
		m.hiddenCursor++
		if m.hiddenCursor > len(tags) {
			m.hiddenCursor = 0
		}
		return true, nil

	case " ", "space", "enter":
		var err error
		if m.hiddenCursor < len(tags) {
			err = m.toggleHiddenTag(tags[m.hiddenCursor])
		} else {
			err = m.dropHiddenTags()
		}
		if err != nil {
			m.logger.Error("failed to update hidden tags", "error", err)
			m.notices.Error(err.Error())
		}
		m.applyFilters()
		return true, nil
	}

	// swallow everything else while the modal is open
	return true, nil
}

