package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pb33f/netlogs/search"
)

// JSONRenderer renders decoded item fields as indented, highlighted JSON.
// Keys and leaves matching the marker are highlighted; in filtered mode only
// the branches leading to a match are shown.
type JSONRenderer struct {
	marker   *search.Marker
	filtered bool
	indent   string
}

// NewJSONRenderer creates a renderer. marker may be nil.
func NewJSONRenderer(marker *search.Marker, filtered bool) *JSONRenderer {
	return &JSONRenderer{marker: marker, filtered: filtered, indent: "  "}
}

// Render renders tree. Plain text is returned with its matches highlighted.
func (r *JSONRenderer) Render(tree any) string {
	if text, ok := tree.(string); ok {
		return r.highlight(truncateBody(text, maxBodyDisplayLength))
	}

	data := search.Normalize(tree)
	if r.filtered && r.marker != nil {
		if pruned, ok := pruneTree(data, r.marker); ok {
			data = pruned
		}
	}
	return r.renderNode(data, 0)
}

func (r *JSONRenderer) renderNode(node any, depth int) string {
	var out strings.Builder
	indent := strings.Repeat(r.indent, depth)

	switch v := node.(type) {
	case map[string]any:
		if len(v) == 0 {
			return SyntaxDashStyle.Render("{") + SyntaxDashStyle.Render("}")
		}

		out.WriteString(SyntaxDashStyle.Render("{") + "\n")
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		// sort keys for deterministic ordering across renders
		sort.Strings(keys)

		for i, key := range keys {
			out.WriteString(indent + r.indent)
			out.WriteString(r.renderKey(key))
			out.WriteString(": ")
			out.WriteString(r.renderNode(v[key], depth+1))

			if i < len(keys)-1 {
				out.WriteString(",")
			}
			out.WriteString("\n")
		}
		out.WriteString(indent + SyntaxDashStyle.Render("}"))

	case []any:
		if len(v) == 0 {
			return SyntaxNumberStyle.Render("[") + SyntaxNumberStyle.Render("]")
		}

		out.WriteString(SyntaxNumberStyle.Render("[") + "\n")
		for i, element := range v {
			out.WriteString(indent + r.indent)
			out.WriteString(r.renderNode(element, depth+1))

			if i < len(v)-1 {
				out.WriteString(",")
			}
			out.WriteString("\n")
		}
		out.WriteString(indent + SyntaxNumberStyle.Render("]"))

	default:
		return r.renderValue(v)
	}

	return out.String()
}

func (r *JSONRenderer) renderKey(key string) string {
	quoted := strconv.Quote(key)
	if r.marker.MatchString(key) {
		return MatchStyle.Render(quoted)
	}
	return SyntaxKeyStyle.Render(quoted)
}

func (r *JSONRenderer) renderValue(v any) string {
	text := search.LeafString(v)
	matched := r.marker.MatchString(text)

	var rendered string
	switch t := v.(type) {
	case string:
		rendered = strconv.Quote(t)
	case float64:
		if t == float64(int64(t)) {
			rendered = fmt.Sprintf("%d", int64(t))
		} else {
			rendered = text
		}
	default:
		rendered = text
	}

	if matched {
		return MatchStyle.Render(rendered)
	}

	switch v.(type) {
	case bool, float64:
		return SyntaxNumberStyle.Render(rendered)
	case nil:
		return SyntaxNullStyle.Render(rendered)
	}
	return rendered
}

// highlight marks every match inside plain text
func (r *JSONRenderer) highlight(text string) string {
	if r.marker == nil {
		return text
	}
	indexes := r.marker.FindAllIndex(text)
	if len(indexes) == 0 {
		return text
	}

	var out strings.Builder
	last := 0
	for _, loc := range indexes {
		out.WriteString(text[last:loc[0]])
		out.WriteString(MatchStyle.Render(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	out.WriteString(text[last:])
	return out.String()
}

func truncateBody(content string, maxLen int) string {
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen] + "\n...[truncated]"
}
