package tui

import (
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/lipgloss/v2"
)

// pb33f palette
var (
	RGBBlue       = lipgloss.Color("45")
	RGBPink       = lipgloss.Color("201")
	RGBRed        = lipgloss.Color("196")
	RGBYellow     = lipgloss.Color("220")
	RGBGreen      = lipgloss.Color("46")
	RGBGrey       = lipgloss.Color("246")
	RGBSubtlePink = lipgloss.Color("#2a1a2a")
)

// General styles
var (
	TitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(RGBPink)
	HeaderStyle      = lipgloss.NewStyle().Bold(true).Foreground(RGBBlue)
	HelpStyle        = lipgloss.NewStyle().Foreground(RGBGrey).Faint(true)
	ErrorStyle       = lipgloss.NewStyle().Foreground(RGBRed).Bold(true)
	MatchStyle       = lipgloss.NewStyle().Background(RGBSubtlePink).Foreground(RGBPink).Bold(true)
	FocusedLineStyle = lipgloss.NewStyle().Background(RGBSubtlePink).Foreground(RGBPink).Bold(true)
)

// Syntax styles shared by the JSON renderer and the line highlighter
var (
	SyntaxKeyStyle    = lipgloss.NewStyle().Foreground(RGBBlue).Bold(true)
	SyntaxDashStyle   = lipgloss.NewStyle().Foreground(RGBPink)
	SyntaxNumberStyle = lipgloss.NewStyle().Foreground(RGBYellow)
	SyntaxNullStyle   = lipgloss.NewStyle().Faint(true)
)

// Table colorization styles for tags
var (
	StyleTagGreen  = lipgloss.NewStyle().Foreground(RGBGreen)  // GET
	StyleTagYellow = lipgloss.NewStyle().Foreground(RGBYellow) // PATCH
	StyleTagBlue   = lipgloss.NewStyle().Foreground(RGBBlue)   // PUT, POST, WS
	StyleTagRed    = lipgloss.NewStyle().Foreground(RGBRed)    // DELETE
	StyleTagPink   = lipgloss.NewStyle().Foreground(RGBPink)   // GQL, BGQL

	StyleErrorRow      = lipgloss.NewStyle().Foreground(RGBRed)
	StyleDurationFaint = lipgloss.NewStyle().Faint(true)
)

// ApplyTableStyles applies the pb33f table theme
func ApplyTableStyles(t table.Model) table.Model {
	s := table.DefaultStyles()

	s.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		BorderBottom(true).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		Foreground(RGBPink).
		Bold(true).
		Padding(0, 1)

	s.Selected = lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink).
		Background(RGBSubtlePink).
		Padding(0, 0)

	s.Cell = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		BorderRight(false).
		Padding(0, 1)

	t.SetStyles(s)
	return t
}
