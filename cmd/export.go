package cmd

import (
	"fmt"

	"github.com/pb33f/netlogs/har"
	"github.com/pb33f/netlogs/item"
	"github.com/spf13/cobra"
)

var exportFilters filterFlags

var exportCmd = &cobra.Command{
	Use:   "export <capture> <output>",
	Short: "Write the filtered items of a capture to a new HAR file",
	Long: `Import a capture, apply the search, filter and hidden tag rules and write
the remaining items back out as an HTTP Archive that netlogs can open again.`,
	Args: cobra.ExactArgs(2),
	Example: `  netlogs export capture.har errors.har --where error
  netlogs export capture.har.gz gql.har --filter mutation::`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportFilters.register(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	items, total, err := loadVisible(cmd, args[0], &exportFilters)
	if err != nil {
		return err
	}

	doc := item.ToHAR(items, "netlogs", Version)
	if err := har.WriteFile(args[1], doc); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	GetLogger().Info("capture exported", "from", args[0], "to", args[1], "items", len(items), "total", total)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d of %d items to %s\n", len(items), total, args[1])
	return nil
}
