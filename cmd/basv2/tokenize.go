package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"basv2/internal/diag"
	"basv2/internal/diagfmt"
	"basv2/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.bas",
	Short: "Dump the tokens of every line of a BASIC V2 listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Ошибки нумерации строк - в stderr
	if result.Bag.Len() > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), diag.FormatShortDiagnostics(result.File.Path, result.Bag.Items(), true))
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(out, result.Program)
	case "json":
		return diagfmt.FormatTokensJSON(out, result.Program)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
