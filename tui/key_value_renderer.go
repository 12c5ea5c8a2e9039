package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/harhar"
	"github.com/pb33f/netlogs/i18n"
	"github.com/pb33f/netlogs/item"
)

// pre-computed styles to avoid allocation in hot path
var (
	keyStyleBase           = lipgloss.NewStyle().Foreground(RGBGrey).Align(lipgloss.Right)
	sectionHeaderStyleBase = lipgloss.NewStyle().Bold(true).Foreground(RGBPink)
	emptyValueText         = lipgloss.NewStyle().Faint(true).Render("(empty)")
)

// KeyValuePair represents a single key-value pair
type KeyValuePair struct {
	Key   string
	Value string
}

// Section represents a grouped section of key-value pairs
type Section struct {
	Title string
	Pairs []KeyValuePair
}

// RenderOptions configures key-value rendering
type RenderOptions struct {
	Width    int  // total available width
	Truncate bool // whether to truncate long values
	KeyWidth int  // key column width (0 = auto-calculate)
}

// renderSections renders multiple sections as formatted key-value output
func renderSections(sections []Section, opts RenderOptions) string {
	if len(sections) == 0 {
		return ""
	}

	keyWidth := opts.KeyWidth
	if keyWidth == 0 {
		keyWidth = opts.Width * 3 / 10 // 30% for keys
		if keyWidth > 25 {
			keyWidth = 25
		}
		if keyWidth < 15 {
			keyWidth = 15
		}
	}
	valueWidth := opts.Width - keyWidth - 3

	var output strings.Builder

	for i, section := range sections {
		if section.Title != "" {
			output.WriteString(renderSectionHeader(section.Title, opts.Width))
			output.WriteString("\n")
		}

		for _, pair := range section.Pairs {
			output.WriteString(renderKeyValueRow(pair, keyWidth, valueWidth, opts.Truncate))
			output.WriteString("\n")
		}

		if i < len(sections)-1 {
			output.WriteString("\n")
		}
	}

	return output.String()
}

func renderSectionHeader(title string, width int) string {
	return sectionHeaderStyleBase.Width(width).Render(title)
}

func renderKeyValueRow(pair KeyValuePair, keyWidth, valueWidth int, truncate bool) string {
	keyStyle := keyStyleBase.Width(keyWidth)

	value := pair.Value
	if value == "" {
		value = emptyValueText
	} else if truncate && valueWidth > 3 && len(value) > valueWidth {
		value = truncateString(value, valueWidth)
	}

	return keyStyle.Render(pair.Key) + "  " + value
}

// buildOverviewSection summarises an item
func buildOverviewSection(it *item.Item, tr Translator) Section {
	pairs := []KeyValuePair{
		{"Kind", it.Kind().String()},
		{"Tag", it.Tag()},
		{"Name", it.Name()},
		{"Time", formatTimestamp(it.Timestamp())},
		{tr(i18n.KeyDuration, nil), formatDuration(it.Duration())},
	}
	if it.IsError() {
		pairs = append(pairs, KeyValuePair{"Error", "yes"})
	}
	return Section{Title: it.Kind().String(), Pairs: pairs}
}

// buildExchangeSections lists the HTTP side of a network item
func buildExchangeSections(entry *harhar.Entry) []Section {
	sections := []Section{{
		Title: "Request",
		Pairs: []KeyValuePair{
			{"Method", entry.Request.Method},
			{"URL", entry.Request.URL},
			{"HTTP Version", entry.Request.HTTPVersion},
		},
	}}

	if len(entry.Request.Headers) > 0 {
		sections = append(sections, Section{
			Title: "Request Headers",
			Pairs: nameValuePairsToPairs(entry.Request.Headers),
		})
	}

	if len(entry.Request.QueryParams) > 0 {
		sections = append(sections, Section{
			Title: "Query Parameters",
			Pairs: nameValuePairsToPairs(entry.Request.QueryParams),
		})
	}

	if len(entry.Request.Cookies) > 0 {
		sections = append(sections, Section{
			Title: "Cookies",
			Pairs: cookiesToPairs(entry.Request.Cookies),
		})
	}

	sections = append(sections, Section{
		Title: "Response",
		Pairs: []KeyValuePair{
			{"Status", fmt.Sprintf("%d %s", entry.Response.StatusCode, entry.Response.StatusText)},
			{"HTTP Version", entry.Response.HTTPVersion},
			{"Content-Type", entry.Response.Body.MIMEType},
			{"Size", fmt.Sprintf("%d bytes", entry.Response.Body.Size)},
			{"Server IP", entry.ServerIP},
		},
	})

	if len(entry.Response.Headers) > 0 {
		sections = append(sections, Section{
			Title: "Response Headers",
			Pairs: nameValuePairsToPairs(entry.Response.Headers),
		})
	}

	return sections
}

// buildFrameSection lists socket frames in arrival order
func buildFrameSection(frames []item.Frame) Section {
	pairs := make([]KeyValuePair, len(frames))
	for i, f := range frames {
		arrow := "↑"
		if f.Direction == item.Receive {
			arrow = "↓"
		}
		pairs[i] = KeyValuePair{
			Key:   fmt.Sprintf("%s %s", arrow, formatTimestamp(f.Timestamp)),
			Value: f.Payload,
		}
	}
	return Section{Title: fmt.Sprintf("Frames (%d)", len(frames)), Pairs: pairs}
}

func nameValuePairsToPairs(nvps []harhar.NameValuePair) []KeyValuePair {
	pairs := make([]KeyValuePair, len(nvps))
	for i, nvp := range nvps {
		pairs[i] = KeyValuePair{nvp.Name, nvp.Value}
	}
	return pairs
}

func cookiesToPairs(cookies []harhar.Cookie) []KeyValuePair {
	pairs := make([]KeyValuePair, len(cookies))
	for i, c := range cookies {
		pairs[i] = KeyValuePair{c.Name, c.Value}
	}
	return pairs
}
