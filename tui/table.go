package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/pb33f/netlogs/item"
)

func (m *Model) buildTableRows() {
	rows := make([]table.Row, 0, len(m.visible))
	for _, it := range m.visible {
		rows = append(rows, formatItemRow(it, m.width))
	}
	m.rows = rows
}

func formatItemRow(it *item.Item, terminalWidth int) table.Row {
	return table.Row{
		formatTag(it.Tag()),
		formatName(it.Name(), it.IsError(), terminalWidth),
		formatDuration(it.Duration()),
		formatTimestamp(it.Timestamp()),
	}
}

func formatTag(tag string) string {
	if tag == "" {
		return "-"
	}
	return truncateString(tag, tagColumnWidth)
}

func formatName(name string, isError bool, terminalWidth int) string {
	if name == "" {
		name = "-"
	}
	if isError {
		name = errorMarker + name
	}

	available := nameColumnWidth(terminalWidth)
	return truncateString(name, available)
}

func nameColumnWidth(terminalWidth int) int {
	w := terminalWidth - tagColumnWidth - durationColumnWidth - timeColumnWidth - borderPadding
	if w < minNameColumnWidth {
		w = minNameColumnWidth
	}
	if w > maxNameColumnWidth {
		w = maxNameColumnWidth
	}
	return w
}

func formatDuration(durationMs float64) string {
	if durationMs <= 0 {
		return "---"
	}

	d := time.Duration(durationMs * float64(time.Millisecond))

	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dμs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		seconds := float64(d.Milliseconds()) / 1000.0
		return fmt.Sprintf("%.1fs", seconds)
	default:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) - (minutes * 60)
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// local wall clock time with milliseconds
func formatTimestamp(ms int64) string {
	if ms <= 0 {
		return "---"
	}
	return time.UnixMilli(ms).Format("15:04:05.000")
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	return string(r[:maxLen-3]) + "..."
}
