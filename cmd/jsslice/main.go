package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jsslice/internal/driver"
	"jsslice/internal/trace"
	"jsslice/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "jsslice",
	Short: "Lexer and parser for a strict JavaScript subset",
	Long: `jsslice parses a restricted JavaScript subset (directives, let
declarations, arithmetic, assignment, comma and parenthesised expressions)
into a validated AST and checks fixture trees against it.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareRun,
	PersistentPostRun: func(*cobra.Command, []string) { finishRun() },
}

// errReported means diagnostics were already printed; only the exit code
// is left to set.
var errReported = errors.New("failed")

// runCleanup закрывает трассировщик и профили после команды.
var runCleanup = func() {}

func main() {
	rootCmd.Version = version.Line(false)
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	pf.String("config", "", "path to jsslice.toml (default: search upward from the working directory)")
	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", trace.DefaultRingSize, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat trace events at this interval (0 disables)")
	pf.String("path-mode", "auto", "how diagnostics show file paths (auto|absolute|relative|basename)")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	err := rootCmd.Execute()
	finishRun()
	if err != nil {
		if !errors.Is(err, errReported) && !errors.Is(err, driver.ErrChecksFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func prepareRun(cmd *cobra.Command, _ []string) error {
	if err := loadSettings(cmd); err != nil {
		return err
	}
	color.NoColor = !useColor(os.Stdout)
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	stopTracing, err := setupTracing(cmd)
	if err != nil {
		stopProfiling()
		return err
	}
	runCleanup = func() {
		stopTracing()
		stopProfiling()
	}
	return nil
}

// finishRun идемпотентна: вызывается и из PostRun, и после ошибки.
func finishRun() {
	cleanup := runCleanup
	runCleanup = func() {}
	cleanup()
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(f *os.File) bool {
	switch current.color {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
