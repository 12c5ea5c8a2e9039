package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pb33f/netlogs/config"
	"github.com/pb33f/netlogs/importer"
	"github.com/pb33f/netlogs/item"
	"github.com/pb33f/netlogs/search"
	"github.com/spf13/cobra"
)

// loadCapture imports file into a fresh list
func loadCapture(ctx context.Context, file string) (*item.List, error) {
	if err := ValidateCaptureFile(file); err != nil {
		return nil, err
	}

	list := item.NewList()
	im := importer.New(list, importer.Options{
		Translate: importer.Translator(translator()),
		Logger:    GetLogger(),
	})
	if _, err := im.ImportFile(ctx, file); err != nil {
		return nil, err
	}
	return list, nil
}

// filterFlags are the item filters shared by list, export and describe
type filterFlags struct {
	search     string
	regex      bool
	filter     string
	path       string
	pathValue  string
	where      string
	showHidden bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "Show items whose params or content contain this value")
	cmd.Flags().BoolVar(&f.regex, "regex", false, "Treat --search as a regular expression")
	cmd.Flags().StringVar(&f.filter, "filter", "", "Show items whose name contains this value (case sensitive)")
	cmd.Flags().StringVar(&f.path, "path", "", "JSONPath into the item, e.g. $.content.data.user.id")
	cmd.Flags().StringVar(&f.pathValue, "path-value", "", "Value the --path selection must contain")
	cmd.Flags().StringVar(&f.where, "where", "", `Filter expression, e.g. 'tag == "GQL" && duration > 250'`)
	cmd.Flags().BoolVar(&f.showHidden, "show-hidden", false, "Include items with hidden tags")
}

// chain builds the filter chain for the flags. settings may be nil.
func (f *filterFlags) chain(settings *config.Settings, logger *slog.Logger) (*item.FilterChain, error) {
	mode := search.PlainText
	if f.regex {
		mode = search.Regex
	}
	cfg, err := search.NewConfig(f.search, mode, f.filter)
	if err != nil {
		return nil, fmt.Errorf("invalid search: %w", err)
	}

	chain := item.NewFilterChain()
	chain.Add(item.NewSearchFilter(cfg))

	if !f.showHidden && settings != nil {
		chain.Add(item.NewHiddenTagFilter(settings.HiddenTagSet()))
	}

	if f.path != "" {
		pf, err := search.NewPathFilter(f.path, f.pathValue)
		if err != nil {
			return nil, err
		}
		chain.Add(item.NewPathFilter(pf))
	} else if f.pathValue != "" {
		return nil, fmt.Errorf("--path-value requires --path")
	}

	if f.where != "" {
		expr, err := search.CompileExpression(f.where)
		if err != nil {
			return nil, err
		}
		chain.Add(item.NewExpressionFilter(expr, logger))
	}
	return chain, nil
}

// loadVisible loads file and applies the filter flags
func loadVisible(cmd *cobra.Command, file string, flags *filterFlags) ([]*item.Item, int, error) {
	chain, err := flags.chain(Settings, GetLogger())
	if err != nil {
		return nil, 0, err
	}
	list, err := loadCapture(cmd.Context(), file)
	if err != nil {
		return nil, 0, err
	}
	return list.Visible(chain), list.Len(), nil
}
