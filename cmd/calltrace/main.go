package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"calltrace/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "calltrace",
	Short: "Call-tree tracing toolkit",
	Long:  `Calltrace records instrumented calls into a tree and renders it as a diagram`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to calltrace.toml (default: search upward)")
	rootCmd.PersistentFlags().String("events", "", "event stream output path (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("events-level", "off", "event level (off|errors|calls)")
	rootCmd.PersistentFlags().String("events-mode", "stream", "event storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().String("events-format", "text", "event output format (text|ndjson)")
	rootCmd.PersistentFlags().Int("events-ring-size", 0, "ring buffer capacity (0 = config or default)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
