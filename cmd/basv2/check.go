package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"basv2/internal/check"
	"basv2/internal/diag"
	"basv2/internal/diagfmt"
	"basv2/internal/driver"
	"basv2/internal/trace"
	"basv2/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.bas|directory|->",
	Short: "Check a BASIC V2 listing or every listing in a directory",
	Long: `Check runs the structural, control-flow, expression and reachability checks
on a line-numbered BASIC V2 listing. Use - to read the listing from stdin.
The exit code is 1 when any error diagnostic was reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	registerCheckFlags(checkCmd)
}

func registerCheckFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "text", "output format (text|json|pretty|short|sarif)")
	cmd.Flags().Bool("no-reach", false, "disable unreachable-line warnings (env C64_NO_REACH=1)")
	cmd.Flags().String("reach", "strict", "reachability mode (strict|relaxed) (env C64_REACH_MODE)")
	cmd.Flags().Bool("no-warnings", false, "hide warnings in text and pretty output")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory checks (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse reports from the on-disk cache")
	cmd.Flags().String("ui", "off", "progress UI for directory checks (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	input := args[0]

	manifest, err := manifestFor(cmd, input)
	if err != nil {
		return err
	}
	settings, err := resolveCheckSettings(cmd, manifest, os.Getenv)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	opts := driver.CheckOptions{
		Check: check.Options{
			DisableReachability: settings.noReach,
			ReachabilityMode:    settings.mode,
			MaxDiagnostics:      settings.maxDiagnostics,
		},
		Jobs:    settings.jobs,
		Timings: showTimings,
	}
	if settings.cache {
		if settings.cacheDir != "" {
			opts.Cache, err = driver.NewReportCache(settings.cacheDir)
		} else {
			opts.Cache, err = driver.OpenReportCache("basv2")
		}
		if err != nil {
			return fmt.Errorf("failed to open report cache: %w", err)
		}
	}

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "check", 0)
	span.WithExtra("input", input)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	results, baseDir, err := collectCheckResults(ctx, cmd, input, settings, opts)
	if err != nil {
		return err
	}

	multi := baseDir == input
	if multi && len(results) == 0 {
		if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "no listings found in %s\n", input)
		}
		return nil
	}
	if err := renderCheckResults(cmd, cmd.OutOrStdout(), results, baseDir, multi, settings); err != nil {
		return err
	}
	if showTimings {
		printCheckTimings(cmd.ErrOrStderr(), results)
	}

	for _, r := range results {
		if r.Report.HasErrors() {
			span.WithExtra("result", "errors")
			return &exitCodeError{code: 1}
		}
	}
	return nil
}

// collectCheckResults returns the results and the base directory for path
// display; the base directory equals input only for directory checks.
func collectCheckResults(ctx context.Context, cmd *cobra.Command, input string, settings checkSettings, opts driver.CheckOptions) ([]driver.FileResult, string, error) {
	if input == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return []driver.FileResult{*driver.CheckSource(ctx, "<stdin>", data, opts)}, "", nil
	}

	st, err := os.Stat(input)
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		res, err := driver.CheckFile(ctx, input, opts)
		if err != nil {
			return nil, "", err
		}
		return []driver.FileResult{*res}, filepath.Dir(input), nil
	}

	if shouldUseTUI(settings.ui) {
		files, err := driver.ListFiles(input, opts.Extensions)
		if err != nil {
			return nil, "", fmt.Errorf("failed to list %s: %w", input, err)
		}
		results, err := runCheckDirWithUI(ctx, "checking "+input, files, input, opts)
		if err != nil {
			return nil, "", fmt.Errorf("check failed: %w", err)
		}
		return results, input, nil
	}
	_, results, err := driver.CheckDir(ctx, input, opts)
	if err != nil {
		return nil, "", fmt.Errorf("check failed: %w", err)
	}
	return results, input, nil
}

func toEntries(results []driver.FileResult) ([]diagfmt.Entry, map[string]error) {
	entries := make([]diagfmt.Entry, len(results))
	var loadErrs map[string]error
	for i, r := range results {
		entries[i] = diagfmt.Entry{Path: r.Path, File: r.File, Report: r.Report}
		if r.LoadErr != nil {
			if loadErrs == nil {
				loadErrs = make(map[string]error)
			}
			loadErrs[r.Path] = r.LoadErr
		}
	}
	return entries, loadErrs
}

func renderCheckResults(cmd *cobra.Command, out io.Writer, results []driver.FileResult, baseDir string, multi bool, s checkSettings) error {
	entries, loadErrs := toEntries(results)
	pathMode, listMode := diagfmt.PathModeAuto, diagfmt.PathModeRelative
	if s.fullPath {
		pathMode, listMode = diagfmt.PathModeAbsolute, diagfmt.PathModeAbsolute
	}
	if !multi && len(entries) != 1 {
		return fmt.Errorf("expected one result, got %d", len(entries))
	}

	switch s.format {
	case "text":
		for i, e := range entries {
			if multi {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "== %s ==\n", e.DisplayPath(listMode, baseDir))
			}
			if err := diagfmt.Text(out, e.Report, diagfmt.TextOpts{HideWarnings: s.noWarnings}); err != nil {
				return err
			}
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{IncludeDetails: s.withNotes}
		if !multi {
			return diagfmt.JSON(out, entries[0].Report, jsonOpts)
		}
		return diagfmt.JSONFiles(out, entries, loadErrs, jsonOpts)
	case "pretty":
		colored, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		opts := diagfmt.PrettyOpts{
			Color:        colored,
			PathMode:     pathMode,
			ShowNotes:    s.withNotes,
			ShowSource:   true,
			HideWarnings: s.noWarnings,
		}
		for i, e := range entries {
			if i > 0 {
				fmt.Fprintln(out)
			}
			if err := diagfmt.Pretty(out, e, opts, baseDir); err != nil {
				return err
			}
		}
	case "short":
		for _, e := range entries {
			if text := diag.FormatShortDiagnostics(e.DisplayPath(listMode, baseDir), e.Report.Diagnostics, s.withNotes); text != "" {
				fmt.Fprintln(out, text)
			}
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "basv2",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		}
		return diagfmt.Sarif(out, entries, meta)
	default:
		return fmt.Errorf("unknown format: %s", s.format)
	}
	return nil
}

func printCheckTimings(out io.Writer, results []driver.FileResult) {
	for _, r := range results {
		if r.Timing == nil {
			if r.Cached {
				fmt.Fprintf(out, "%s: cached\n", r.Path)
			}
			continue
		}
		fmt.Fprintf(out, "%s: %s ms\n", r.Path, strconv.FormatFloat(r.Timing.TotalMS, 'f', 2, 64))
		for _, p := range r.Timing.Phases {
			fmt.Fprintf(out, "  %-14s %7.3f ms\n", p.Name, p.DurationMS)
		}
	}
}
