package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/pb33f/netlogs/item"
	"github.com/pb33f/netlogs/tui"
	"github.com/spf13/cobra"
)

var (
	listFilters filterFlags
	listJSON    bool
)

var listCmd = &cobra.Command{
	Use:   "list <capture>",
	Short: "Print the items of a capture",
	Long: `Print the items of a capture that pass the search, filter and hidden tag
rules, as a table or as JSON lines.`,
	Args: cobra.ExactArgs(1),
	Example: `  netlogs list capture.har --search GetUser
  netlogs list capture.har --filter query:: --where 'duration > 500'
  netlogs list capture.har --path '$.content.data.user.id' --path-value 42 --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listFilters.register(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print one JSON object per item")
}

// listRow is the JSON form of an item in list output
type listRow struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Tag       string  `json:"tag,omitempty"`
	Name      string  `json:"name"`
	Error     bool    `json:"error,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

func runList(cmd *cobra.Command, args []string) error {
	items, total, err := loadVisible(cmd, args[0], &listFilters)
	if err != nil {
		return err
	}
	GetLogger().Debug("items filtered", "shown", len(items), "total", total)

	if listJSON {
		return writeJSONLines(cmd.OutOrStdout(), items)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderItemTable(items))
	return nil
}

func toListRow(it *item.Item) listRow {
	return listRow{
		ID:        it.ID(),
		Kind:      it.Kind().String(),
		Tag:       it.Tag(),
		Name:      it.Name(),
		Error:     it.IsError(),
		Duration:  it.Duration(),
		Timestamp: it.Timestamp(),
	}
}

func writeJSONLines(w io.Writer, items []*item.Item) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(toListRow(it)); err != nil {
			return err
		}
	}
	return nil
}

func renderItemTable(items []*item.Item) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(tui.RGBBlue).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	failed := cell.Foreground(tui.RGBRed)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tui.RGBPink)).
		Headers("TIME", "TAG", "NAME", "DURATION").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row >= 0 && row < len(items) && items[row].IsError():
				return failed
			}
			return cell
		})

	for _, it := range items {
		t.Row(formatTime(it.Timestamp()), it.Tag(), it.Name(), formatDurationMs(it.Duration()))
	}
	return t.String()
}

func formatTime(ms int64) string {
	if ms <= 0 {
		return "---"
	}
	return time.UnixMilli(ms).Format("15:04:05.000")
}

func formatDurationMs(ms float64) string {
	if ms <= 0 {
		return ""
	}
	return strconv.FormatFloat(ms, 'f', 0, 64) + "ms"
}
