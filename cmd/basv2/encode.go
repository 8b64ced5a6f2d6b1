package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"basv2/internal/diag"
	"basv2/internal/driver"
	"basv2/internal/prg"
	"basv2/internal/trace"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [flags] [file.bas|-]",
	Short: "Encode a BASIC V2 listing into a PRG file",
	Long: `Encode tokenizes a BASIC V2 listing into a loadable C64 PRG image.
Without an input file the listing is read from stdin. The image is written
to -o, to <name>.prg next to the input, or to stdout when reading stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	registerEncodeFlags(encodeCmd)
}

func registerEncodeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "output file (- for stdout)")
	cmd.Flags().StringP("start-addr", "s", "0x0801", "load address (0x0801, $0801 or decimal)")
	cmd.Flags().BoolP("invert-case", "i", false, "swap upper and lower case letters")
	cmd.Flags().BoolP("autonumber", "a", false, "number lines that have no line number")
	cmd.Flags().BoolP("trim-spaces", "t", false, "trim spaces around line content")
	cmd.Flags().BoolP("collapse-spaces", "c", false, "drop spaces outside strings and REM")
	cmd.Flags().BoolP("debug", "d", false, "print the line layout to stderr")
}

const terminalOutputMsg = "Binary data not written to terminal. Use -o or redirect output."

func runEncode(cmd *cobra.Command, args []string) error {
	input := "-"
	if len(args) == 1 {
		input = args[0]
	}

	manifest, err := manifestFor(cmd, input)
	if err != nil {
		return err
	}
	settings, err := resolveEncodeSettings(cmd, manifest)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	if settings.debug {
		fmt.Fprintf(stderr, "Load address: %s\n", prg.FormatAddress(settings.opts.LoadAddress))
	}

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "encode", 0)
	span.WithExtra("input", input)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	var result prg.Result
	if input == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return exitWith(3, "Error reading input: %v", err)
		}
		result = prg.Encode(string(data), settings.opts)
	} else {
		res, err := driver.EncodeFile(ctx, input, settings.opts, nil)
		if err != nil {
			return exitWith(3, "Error reading input: %v", err)
		}
		result = res.Result
	}

	printEncodeDiagnostics(stderr, input, result.Diagnostics, settings.debug, quiet)
	if settings.debug {
		for _, ln := range result.Lines {
			fmt.Fprintf(stderr, "%5d @ %s -> %s  %d bytes\n",
				ln.Number, prg.FormatAddress(ln.Addr), prg.FormatAddress(ln.Next), len(ln.Body))
		}
	}

	output := settings.output
	if output == "" && input != "-" {
		output = driver.DefaultOutputPath(input)
	}
	if output == "" || output == "-" {
		return writeStdout(cmd, result.Bytes)
	}
	if err := driver.WriteOutput(output, result.Bytes); err != nil {
		return exitWith(2, "Unable to create output '%s': %v", output, err)
	}
	if !quiet {
		fmt.Fprintf(stderr, "wrote %d bytes to %s\n", len(result.Bytes), output)
	}
	return nil
}

// writeStdout refuses to dump binary data onto a terminal.
func writeStdout(cmd *cobra.Command, data []byte) error {
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		fmt.Fprintln(cmd.ErrOrStderr(), terminalOutputMsg)
		return nil
	}
	if _, err := out.Write(data); err != nil {
		return exitWith(2, "Unable to write output: %v", err)
	}
	return nil
}

// printEncodeDiagnostics shows warnings unless quiet; auto-numbering
// notices only appear with --debug.
func printEncodeDiagnostics(w io.Writer, path string, diags []diag.Diagnostic, debug, quiet bool) {
	if quiet {
		return
	}
	shown := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity == diag.SevInfo && !debug {
			continue
		}
		shown = append(shown, d)
	}
	if text := diag.FormatShortDiagnostics(path, shown, false); text != "" {
		fmt.Fprintln(w, text)
	}
}
