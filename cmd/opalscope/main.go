package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"opalscope/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "opalscope",
	Short: "Scope tracker toolkit for the Ruby to JavaScript compiler",
	Long: `opalscope replays recorded code generator calls against the scope tracker
and shows the declaration preambles and method donations it renders.`,
	SilenceUsage:      true,
	PersistentPreRunE: startSession,
	PersistentPostRun: stopSession,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per script")
	flags.String("config", "", "dialect file (default: nearest opalscope.toml)")
	flags.String("trace", "", "trace output path (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.String("cpu-profile", "", "write a CPU profile to this path")
	flags.String("mem-profile", "", "write a heap profile to this path on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this path")
}

var sessionCleanup = func() {}

// startSession starts profiling and tracing for the command being run.
func startSession(cmd *cobra.Command, _ []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	stopTracing, err := setupTracing(cmd)
	if err != nil {
		stopProfiling()
		return err
	}
	sessionCleanup = func() {
		stopTracing()
		stopProfiling()
	}
	return nil
}

func stopSession(*cobra.Command, []string) {
	sessionCleanup()
	sessionCleanup = func() {}
}

// main runs the root command, exiting with status 1 on error.
func main() {
	if err := rootCmd.Execute(); err != nil {
		stopSession(rootCmd, nil)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the given stream and applies
// the answer to fatih/color globally.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	on := colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
	color.NoColor = !on
	return on
}
