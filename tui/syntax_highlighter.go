package tui

import (
	"strings"
)

// splitIndent returns the leading whitespace, the content and the trailing
// whitespace of line.
func splitIndent(line string) (lead, content, trail string) {
	trimmed := strings.TrimRight(line, " \t\r\n")
	trail = line[len(trimmed):]
	content = strings.TrimLeft(trimmed, " \t")
	lead = trimmed[:len(trimmed)-len(content)]
	return lead, content, trail
}

// highlightYAMLLine colors list dashes and keys of an exported entry in YAML.
// Values are left alone apart from null.
func highlightYAMLLine(line string) string {
	lead, content, trail := splitIndent(line)
	if content == "" {
		return line
	}

	var sb strings.Builder
	sb.WriteString(lead)
	if rest, ok := strings.CutPrefix(content, "- "); ok {
		sb.WriteString(SyntaxDashStyle.Render("-"))
		sb.WriteString(" ")
		content = rest
	} else if content == "-" {
		return lead + SyntaxDashStyle.Render("-") + trail
	}

	key, value, found := strings.Cut(content, ":")
	if !found || strings.ContainsAny(key, "\"'{[") {
		sb.WriteString(highlightScalar(content))
	} else {
		sb.WriteString(SyntaxKeyStyle.Render(key + ":"))
		sb.WriteString(highlightScalar(value))
	}
	sb.WriteString(trail)
	return sb.String()
}

// highlightJSONLine colors the key and brackets of one line of indented JSON.
func highlightJSONLine(line string) string {
	lead, content, trail := splitIndent(line)

	idx := strings.Index(content, "\":")
	if idx <= 0 {
		return lead + styleBrackets(content) + trail
	}
	keyStart := strings.LastIndex(content[:idx], "\"")
	if keyStart < 0 {
		return lead + styleBrackets(content) + trail
	}

	return lead +
		styleBrackets(content[:keyStart]) +
		SyntaxKeyStyle.Render(content[keyStart:idx+2]) +
		highlightScalar(styleBrackets(content[idx+2:])) +
		trail
}

// highlightScalar marks a bare null value
func highlightScalar(value string) string {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ","))
	if trimmed != "null" {
		return value
	}
	at := strings.Index(value, "null")
	return value[:at] + SyntaxNullStyle.Render("null") + value[at+len("null"):]
}

// styleBrackets colors {} pink and [] yellow
func styleBrackets(text string) string {
	if !strings.ContainsAny(text, "{}[]") {
		return text
	}

	var sb strings.Builder
	for _, r := range text {
		switch r {
		case '{', '}':
			sb.WriteString(SyntaxDashStyle.Render(string(r)))
		case '[', ']':
			sb.WriteString(SyntaxNumberStyle.Render(string(r)))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// highlightLine highlights one line of the exported entry
func highlightLine(line string, isYAML bool) string {
	if line == "" {
		return line
	}
	if isYAML {
		return highlightYAMLLine(line)
	}
	return highlightJSONLine(line)
}
