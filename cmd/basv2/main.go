package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"basv2/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "basv2",
	Short: "Commodore 64 BASIC V2 checker and PRG encoder",
	Long: `basv2 statically checks Commodore 64 BASIC V2 listings for structural,
control-flow and expression errors, and encodes listings into loadable PRG files`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { teardownRun(cmd) },
}

// exitCodeError carries a process exit code; main prints msg, if any,
// before exiting.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func exitWith(code int, format string, args ...any) error {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}

// main registers subcommands and persistent flags and runs the root command.
// Diagnostic failures exit with 1; usage and other errors exit with 2.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	registerRootFlags(rootCmd)

	err := rootCmd.Execute()
	teardownRun(rootCmd)
	if err == nil {
		return
	}
	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		if exitErr.msg != "" {
			fmt.Fprintln(os.Stderr, exitErr.msg)
		}
		os.Exit(exitErr.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(2)
}

// registerRootFlags добавляет глобальные флаги
func registerRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().Bool("timings", false, "show timing information")
	cmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0=unlimited)")
	cmd.PersistentFlags().String("config", "", "path to basv2.toml (default: search upwards from the input)")
	cmd.PersistentFlags().String("trace", "", "trace output path (- for stderr)")
	cmd.PersistentFlags().String("trace-level", "off", "trace level (off|phase|detail|debug)")
	cmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	cmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	cmd.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	cmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for the given stream.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}
