package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/netlogs/item"
	"github.com/pb33f/netlogs/profile"
	"github.com/pb33f/netlogs/tui"
	"github.com/spf13/cobra"
)

var describeFilters filterFlags

var describeCmd = &cobra.Command{
	Use:   "describe <capture>",
	Short: "Summarise the items of a capture",
	Long: `Summarise a capture: items per kind and tag, failures, the time range it
covers and the GraphQL operations it contains.`,
	Args: cobra.ExactArgs(1),
	Example: `  netlogs describe capture.har
  netlogs describe capture.har --filter query::`,
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeFilters.register(describeCmd)
}

// summary aggregates the visible items of a capture
type summary struct {
	Total      int
	Shown      int
	Errors     int
	Kinds      map[string]int
	Tags       map[string]int
	First      int64
	Last       int64
	Operations map[string]int
}

func summarize(items []*item.Item, total int) summary {
	s := summary{
		Total:      total,
		Shown:      len(items),
		Kinds:      make(map[string]int),
		Tags:       make(map[string]int),
		Operations: make(map[string]int),
	}
	for _, it := range items {
		s.Kinds[it.Kind().String()]++
		if tag := it.Tag(); tag != "" {
			s.Tags[tag]++
		}
		if it.IsError() {
			s.Errors++
		}
		if ts := it.Timestamp(); ts > 0 {
			if s.First == 0 || ts < s.First {
				s.First = ts
			}
			s.Last = max(s.Last, ts)
		}
		if it.Kind() == item.KindNetwork {
			for _, op := range profile.EntryOperations(it.Params()) {
				s.Operations[operationLabel(op)]++
			}
		}
	}
	return s
}

func operationLabel(op profile.Operation) string {
	name := op.Name
	if name == "" {
		name = strings.Join(op.Fields, ",")
	}
	return op.Type + " " + name
}

func runDescribe(cmd *cobra.Command, args []string) error {
	items, total, err := loadVisible(cmd, args[0], &describeFilters)
	if err != nil {
		return err
	}
	writeSummary(cmd.OutOrStdout(), args[0], summarize(items, total))
	return nil
}

func writeSummary(w io.Writer, file string, s summary) {
	title := lipgloss.NewStyle().Bold(true).Foreground(tui.RGBPink)
	section := lipgloss.NewStyle().Bold(true).Foreground(tui.RGBBlue)

	fmt.Fprintln(w, title.Render("=== "+file+" ==="))
	fmt.Fprintf(w, "Items:   %d of %d\n", s.Shown, s.Total)
	fmt.Fprintf(w, "Errors:  %d\n", s.Errors)
	if s.First > 0 {
		fmt.Fprintf(w, "Range:   %s to %s (%s)\n",
			time.UnixMilli(s.First).Format("2006-01-02 15:04:05"),
			time.UnixMilli(s.Last).Format("2006-01-02 15:04:05"),
			time.Duration(s.Last-s.First)*time.Millisecond)
	}

	writeCounts(w, section.Render("Kinds"), s.Kinds)
	writeCounts(w, section.Render("Tags"), s.Tags)
	writeCounts(w, section.Render("GraphQL operations"), s.Operations)
}

// writeCounts prints counts sorted by count, then by key
func writeCounts(w io.Writer, heading string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})

	fmt.Fprintf(w, "\n%s\n", heading)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-40s %d\n", k, counts[k])
	}
}
