package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/pb33f/netlogs/item"
	"github.com/pb33f/netlogs/profile"
)

// pre-rendered tags to avoid repeated style.Render() calls in the hot path
var renderedTags map[string]string

func init() {
	renderedTags = map[string]string{
		"GET":                   StyleTagGreen.Render("GET"),
		"POST":                  StyleTagBlue.Render("POST"),
		"PUT":                   StyleTagBlue.Render("PUT"),
		"DELETE":                StyleTagRed.Render("DELETE"),
		"PATCH":                 StyleTagYellow.Render("PATCH"),
		profile.TagGraphQL:      StyleTagPink.Render(profile.TagGraphQL),
		profile.TagGraphQLBatch: StyleTagPink.Render(profile.TagGraphQLBatch),
		item.TagWebSocket:       StyleTagBlue.Render(item.TagWebSocket),
	}
}

// order matters: BGQL before GQL so the batch tag is not split
var tagOrder = []string{"GET", "POST", profile.TagGraphQLBatch, profile.TagGraphQL, item.TagWebSocket, "PUT", "DELETE", "PATCH"}

// ColorizeItemTableOutput colors tags, failed items and durations in a
// rendered table. The header and the selected row are left alone so the
// selection background survives.
func ColorizeItemTableOutput(tableView string, cursor int, rows []table.Row) string {
	lines := strings.Split(tableView, "\n")

	// selected row identifier, for when the table background is lost while scrolling
	var selectedIdentifier string
	if cursor >= 0 && cursor < len(rows) && len(rows[cursor]) >= 4 {
		selectedIdentifier = rows[cursor][1] + " "
	}

	// ANSI sequence of the selected style in styles.go
	selectedLineMarker := "\x1b[1;38;5;201;48;2;42;26;42m"

	var result strings.Builder
	result.Grow(len(tableView) + len(lines)*40)

	for i, line := range lines {
		isSelectedLine := strings.Contains(line, selectedLineMarker) ||
			(selectedIdentifier != "" && strings.Contains(line, selectedIdentifier) && strings.Contains(line, rows[cursor][3]))

		if i >= 1 && !isSelectedLine {
			line = colorizeTags(line)
			line = colorizeErrors(line)
			line = colorizeDurations(line)
		}

		result.WriteString(line)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

func colorizeTags(line string) string {
	for _, tag := range tagOrder {
		token := " " + tag + " "
		if strings.Contains(line, token) {
			return strings.Replace(line, token, " "+renderedTags[tag]+" ", 1)
		}
	}
	return line
}

// failed items carry the error marker in the name column
func colorizeErrors(line string) string {
	idx := strings.Index(line, errorMarker)
	if idx == -1 {
		return line
	}
	end := idx + len(errorMarker)
	for end < len(line) && !(line[end] == ' ' && end+1 < len(line) && line[end+1] == ' ') {
		end++
	}
	return line[:idx] + StyleErrorRow.Render(line[idx:end]) + line[end:]
}

// the time column is last, the duration sits just before it
func colorizeDurations(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return line
	}
	candidate := fields[len(fields)-2]
	if !isDuration(candidate) {
		return line
	}
	idx := strings.LastIndex(line, " "+candidate+" ")
	if idx == -1 {
		return line
	}
	return line[:idx+1] + StyleDurationFaint.Render(candidate) + line[idx+1+len(candidate):]
}

// isDuration validates if string is a formatted duration (e.g., "150ms", "2.5s")
// rejecting paths and random identifiers by requiring a digit-only numeric portion
func isDuration(s string) bool {
	if s == "" {
		return false
	}

	if s[0] < '0' || s[0] > '9' {
		return false
	}

	var valueStr string
	switch {
	case strings.HasSuffix(s, "μs"):
		valueStr = strings.TrimSuffix(s, "μs")
	case strings.HasSuffix(s, "ms"):
		valueStr = strings.TrimSuffix(s, "ms")
	case strings.HasSuffix(s, "s"):
		// minute form "1m30s"
		if m, sec, ok := strings.Cut(strings.TrimSuffix(s, "s"), "m"); ok {
			return isDigits(m) && isDigits(sec)
		}
		valueStr = strings.TrimSuffix(s, "s")
	default:
		return false
	}

	if len(valueStr) == 0 {
		return false
	}

	dotCount := 0
	for _, c := range valueStr {
		if c == '.' {
			dotCount++
			if dotCount > 1 {
				return false
			}
		} else if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
