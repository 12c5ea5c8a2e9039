package cmd

import (
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <capture>",
	Short: "Open a capture in the terminal viewer",
	Long: `Launch an interactive terminal user interface to browse the items of a
capture. Search params and content, filter by name, hide noisy tags and
inspect each exchange as params, content and meta.`,
	Args: cobra.ExactArgs(1),
	Example: `  netlogs view capture.har
  netlogs view capture.har.br -v`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	file := args[0]
	logger := GetLogger()

	if err := ValidateCaptureFile(file); err != nil {
		return err
	}

	logger.Info("launching terminal UI", "capture", file)
	return LaunchTUI(file)
}
