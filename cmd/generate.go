package cmd

import (
	"fmt"
	"time"

	"github.com/pb33f/netlogs/hargen"
	"github.com/spf13/cobra"
)

var (
	genEntryCount     int
	genOutputFile     string
	genInjectTerms    []string
	genLocations      []string
	genShapes         []string
	genErrorRate      float64
	genSeed           int64
	genDictPath       string
	genMaxDepth       int
	genMaxNodes       int
	genShowInjections bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic captures with optional search term injection",
	Long: `Generate captures of REST calls, GraphQL operations, annotations, custom
transactions and websocket sessions for testing. Specific search terms can be
injected into known locations to exercise search.

Examples:
  netlogs generate -n 100 -o test.har
  netlogs generate -n 1000 -i apple,banana -l params,content
  netlogs generate --shapes graphql,graphql-batch --error-rate 0.3
  netlogs generate --entries 10 --inject searchterm --show-injections`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genEntryCount, "entries", "n", 10, "Number of entries to generate")
	generateCmd.Flags().StringVarP(&genOutputFile, "output", "o", "", "Output file path (default: hargen-{timestamp}.har)")
	generateCmd.Flags().StringSliceVarP(&genInjectTerms, "inject", "i", []string{}, "Terms to inject (comma-separated)")
	generateCmd.Flags().StringSliceVarP(&genLocations, "locations", "l", []string{}, "Injection locations: url,request.body,response.body (default: all)")
	generateCmd.Flags().StringSliceVar(&genShapes, "shapes", []string{}, "Entry shapes: rest,graphql,graphql-batch,graphql-persisted,binary,annotation,rpc,socket (default: all)")
	generateCmd.Flags().Float64Var(&genErrorRate, "error-rate", hargen.DefaultGenerateOptions.ErrorRate, "Share of failing exchanges, 0 to 1")
	generateCmd.Flags().Int64VarP(&genSeed, "seed", "s", 0, "Random seed for reproducibility (0 = use current time)")
	generateCmd.Flags().StringVarP(&genDictPath, "dict", "d", "/usr/share/dict/words", "Dictionary file path")
	generateCmd.Flags().IntVar(&genMaxDepth, "max-depth", hargen.DefaultGenerateOptions.MaxJSONDepth, "Maximum JSON nesting depth")
	generateCmd.Flags().IntVar(&genMaxNodes, "max-nodes", hargen.DefaultGenerateOptions.MaxJSONNodes, "Maximum JSON nodes per level")
	generateCmd.Flags().BoolVar(&genShowInjections, "show-injections", true, "Show injection details after generation")
}

// buildGenerateOptions turns the generate flags into hargen options
func buildGenerateOptions() (hargen.GenerateOptions, error) {
	if genErrorRate < 0 || genErrorRate > 1 {
		return hargen.GenerateOptions{}, fmt.Errorf("error rate must be between 0 and 1, got %v", genErrorRate)
	}

	var locations []hargen.InjectionLocation
	for _, name := range genLocations {
		loc, err := hargen.ParseLocation(name)
		if err != nil {
			return hargen.GenerateOptions{}, err
		}
		locations = append(locations, loc)
	}

	var shapes []hargen.Shape
	for _, name := range genShapes {
		shape, err := hargen.ParseShape(name)
		if err != nil {
			return hargen.GenerateOptions{}, err
		}
		shapes = append(shapes, shape)
	}

	return hargen.GenerateOptions{
		EntryCount:         genEntryCount,
		Shapes:             shapes,
		InjectTerms:        genInjectTerms,
		InjectionLocations: locations,
		DictionaryPath:     genDictPath,
		MaxJSONDepth:       genMaxDepth,
		MaxJSONNodes:       genMaxNodes,
		ErrorRate:          genErrorRate,
		Seed:               genSeed,
	}, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := buildGenerateOptions()
	if err != nil {
		return err
	}

	output := genOutputFile
	if output == "" {
		output = fmt.Sprintf("hargen-%s.har", time.Now().Format("20060102-150405"))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating capture with %d entries...\n", genEntryCount)
	if len(genInjectTerms) > 0 {
		fmt.Fprintf(out, "Injecting terms: %v\n", genInjectTerms)
	}

	doc, injected, err := hargen.GenerateToFile(output, opts)
	if err != nil {
		return fmt.Errorf("failed to generate capture: %w", err)
	}
	GetLogger().Debug("capture generated", "file", output, "entries", len(doc.Log.Entries))

	fmt.Fprintf(out, "\n✓ Generated capture: %s\n", output)
	fmt.Fprintf(out, "  Total entries: %d\n", len(doc.Log.Entries))

	if genShowInjections && len(injected) > 0 {
		fmt.Fprintf(out, "\nInjected terms:\n")
		for _, inj := range injected {
			fmt.Fprintf(out, "  • '%s' at entry %d in %s", inj.Term, inj.EntryIndex, inj.Location)
			if inj.FieldPath != "" {
				fmt.Fprintf(out, " (%s)", inj.FieldPath)
			}
			fmt.Fprintln(out)
		}
	}
	return nil
}
