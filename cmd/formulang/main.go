package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version information - set at build time.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var verbose bool

// logger is nil until the root command's PersistentPreRun builds it
// (only when -v is passed); trace guards its use with a nil check
// rather than defaulting to a no-op logger, since most runs never
// touch it at all.
var logger *zap.Logger

func main() {
	rootCmd := &cobra.Command{
		Use:   "formulang",
		Short: "Formulang: a Notion-style formula expression analyzer",
		Long: `formulang lexes, parses, type-checks, formats, and offers
completions for the small formula expression language embedded in
editors. Each subcommand is a thin wrapper over the formulang library
package; none of it runs a server or holds state across invocations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			logger = l
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace pipeline stages to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(completeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func trace(format string, args ...any) {
	if logger == nil {
		return
	}
	logger.Sugar().Debugf(format, args...)
}
