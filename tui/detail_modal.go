package tui

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"gopkg.in/yaml.v3"
)

func (m *Model) openDetailModal() {
	m.activeModal = ModalEntry
	m.detailViewport = viewport.Model{}
}

// renderDetailModal shows the selected item exactly as it would be exported
func (m *Model) renderDetailModal() string {
	modalWidth := int(float64(m.width) * 0.9)
	modalHeight := int(float64(m.height) * 0.9)

	if m.detailViewport.Width() == 0 {
		m.detailViewport = viewport.New(
			viewport.WithWidth(modalWidth-4),
			viewport.WithHeight(modalHeight-4),
		)
		m.detailViewport.SetContent(m.formatExportedEntry())
	}

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBBlue).
		Padding(1)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBBlue).
		Width(modalWidth - 4)

	helpStyle := HelpStyle.
		Width(modalWidth - 4).
		Align(lipgloss.Center)

	title := "HAR entry (JSON)"
	if m.detailYAML {
		title = "HAR entry (YAML)"
	}

	var modal strings.Builder
	modal.WriteString(titleStyle.Render(title))
	modal.WriteString("\n")
	modal.WriteString(m.detailViewport.View())
	modal.WriteString("\n")
	modal.WriteString(helpStyle.Render("↑/↓: Scroll | PgUp/PgDn: Page | y: JSON/YAML | Esc: Close"))

	return modalStyle.Render(modal.String())
}

func (m *Model) formatExportedEntry() string {
	if m.selected == nil {
		return ""
	}

	raw, err := json.Marshal(m.selected.ToEntry())
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}

	if m.detailYAML {
		text, err := jsonToYAML(raw)
		if err != nil {
			return ErrorStyle.Render(err.Error())
		}
		return applySyntaxHighlightingToContent(text, true)
	}
	return applySyntaxHighlightingToContent(prettyPrintJSON(string(raw)), false)
}

// jsonToYAML goes through a yaml node so key order survives
func jsonToYAML(raw []byte) (string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return "", err
	}
	blockStyle(&node)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSON parses as flow style with quoted keys, reset to block style
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// prettyPrintJSON formats JSON with indentation
func prettyPrintJSON(jsonStr string) string {
	if jsonStr == "" {
		return jsonStr
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(jsonStr), "", "  "); err != nil {
		return jsonStr
	}
	return buf.String()
}

// applySyntaxHighlightingToContent applies line-by-line syntax highlighting
func applySyntaxHighlightingToContent(content string, isYAML bool) string {
	if content == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	var highlighted strings.Builder

	for i, line := range lines {
		highlighted.WriteString(highlightLine(line, isYAML))
		if i < len(lines)-1 {
			highlighted.WriteString("\n")
		}
	}

	return highlighted.String()
}

func (m *Model) handleDetailModalKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "esc", "r", "q":
		m.activeModal = ModalNone
		return true, nil

	case "y":
		m.detailYAML = !m.detailYAML
		if m.detailViewport.Width() > 0 {
			m.detailViewport.SetContent(m.formatExportedEntry())
		}
		return true, nil
	}

	// scrolling is left to the viewport
	return false, nil
}
