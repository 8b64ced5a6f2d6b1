// Package basv2 checks Commodore 64 BASIC V2 listings and encodes them
// into PRG images. The command-line tool lives in cmd/basv2.
package basv2

import (
	"basv2/internal/cfg"
	"basv2/internal/check"
	"basv2/internal/diag"
	"basv2/internal/prg"
)

type (
	// Options configures Validate.
	Options = check.Options
	// Report is the result of Validate.
	Report = check.Report
	// Summary counts diagnostics by severity.
	Summary = check.Summary
	// Diagnostic is one finding.
	Diagnostic = diag.Diagnostic
	// Severity ranks a diagnostic.
	Severity = diag.Severity
	// ReachabilityMode selects how unreachable lines are reported.
	ReachabilityMode = cfg.Mode

	// EncodeOptions configures Encode.
	EncodeOptions = prg.Options
	// EncodeResult is the PRG image plus its line layout and diagnostics.
	EncodeResult = prg.Result
)

const (
	Strict  = cfg.Strict
	Relaxed = cfg.Relaxed

	SevInfo    = diag.SevInfo
	SevWarning = diag.SevWarning
	SevError   = diag.SevError
)

// Validate runs every check over src and returns the report.
func Validate(src string, opts Options) *Report {
	return check.Validate(src, opts)
}

// DefaultEncodeOptions loads at $0801 with every transformation off.
func DefaultEncodeOptions() EncodeOptions {
	return prg.DefaultOptions()
}

// Encode tokenizes src into a PRG image.
func Encode(src string, opts EncodeOptions) EncodeResult {
	return prg.Encode(src, opts)
}
