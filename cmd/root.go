package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/csvstar/internal/config"
	"github.com/KaramelBytes/csvstar/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "csvstar",
	Short: "csvstar: cut and summarize CSV files",
	Long: `csvstar is a family of CSV tools. "cut" selects, reorders and repeats columns;
"stat" computes per-column statistics in a single streaming pass.

Columns are selected with a comma-separated list of 1-based offsets, negative
offsets counted from the end, inclusive ranges, or header names, e.g. "1,id,-2,3-5".`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.csvstar/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text|json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: cfg stays nil and commands run on built-in defaults
		fmt.Fprintf(rootCmd.ErrOrStderr(), "⚠ Warning: failed to load config: %v\n", err)
	}
	cfg = c

	active := activeConfig()
	level, format := active.LogLevel, active.LogFormat
	if debug {
		level = "debug"
	}
	if logFormat != "" {
		format = logFormat
	}
	logging.Setup(rootCmd.ErrOrStderr(), level, format)
}

// activeConfig returns the loaded configuration, or defaults when none was loaded.
func activeConfig() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Default()
	}
	return cfg
}
