package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pb33f/netlogs/config"
	"github.com/pb33f/netlogs/i18n"
	"github.com/pb33f/netlogs/ingest"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	logFormat string
	configDir string
	lang      string

	Logger     *slog.Logger
	Settings   *config.Settings
	Translator *i18n.Translator

	rootCmd = &cobra.Command{
		Use:   "netlogs [capture]",
		Short: "Browse captured network logs in the terminal",
		Long: `netlogs reads HTTP Archive captures of network traffic, GraphQL operations,
websocket sessions and custom transactions, and lets you search, filter and
export them. Without a sub command the capture is opened in the viewer.`,
		Args: cobra.MaximumNArgs(1),
		Example: `  netlogs capture.har
  netlogs capture.har.gz --lang ru
  netlogs list capture.har --search GetUser`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		RunE: runRoot,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (default from config)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default: user config dir/netlogs)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "Interface language, e.g. en or ru (default from config)")

	// reconfigured in PersistentPreRunE once flags and settings are known
	setupLogger("info", "text")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return runView(cmd, args)
}

// setup loads the settings, then configures logging and translations from
// settings and flags. Flags win.
func setup() error {
	dir := configDir
	if dir == "" {
		var err error
		if dir, err = config.DefaultDir(); err != nil {
			return err
		}
	}

	settings, err := config.Load(dir)
	if err != nil {
		// a read only home should not stop the viewer
		slog.Warn("falling back to default settings", "dir", dir, "error", err)
		settings = config.Default()
	}
	Settings = settings

	level := settings.LogLevel
	if verbose {
		level = "debug"
	}
	format := settings.LogFormat
	if logFormat != "" {
		format = logFormat
	}
	setupLogger(level, format)

	language := settings.Language
	if lang != "" {
		language = lang
	}
	tr, err := i18n.New(language)
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	Translator = tr

	Logger.Debug("settings loaded",
		"config", settings.Path(),
		"language", tr.Language().String(),
		"hidden_tags", settings.HiddenTags)
	return nil
}

// setupLogger configures the global slog logger
func setupLogger(level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if opts.Level == slog.LevelDebug {
		opts.AddSource = true
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	if verbose {
		Logger.Debug("verbose logging enabled",
			"level", slog.LevelDebug.String(),
			"pid", os.Getpid())
	}
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	if Logger == nil {
		setupLogger("info", "text")
	}
	return Logger
}

// ValidateCaptureFile checks that the capture exists, is a regular file and
// has a supported extension.
func ValidateCaptureFile(path string) error {
	if path == "" {
		return fmt.Errorf("capture file path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("capture file does not exist: %s", path)
		}
		return fmt.Errorf("error accessing capture file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("provided path is a directory, not a file: %s", path)
	}

	if !ingest.IsFileSupported(path) {
		return fmt.Errorf("%s: %s", path, translate(i18n.KeyOnlyJSONSupported))
	}
	return nil
}

func translate(key string) string {
	if Translator == nil {
		return key
	}
	return Translator.Translate(key, nil)
}
