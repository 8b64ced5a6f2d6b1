package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"basv2/internal/check"
	"basv2/internal/diag"
)

// TextString renders the plain report: one "SEVERITY: Line N: message"
// entry per diagnostic, a blank line and a summary. It has no trailing newline.
func TextString(r *check.Report, opts TextOpts) string {
	lines := make([]string, 0, len(r.Diagnostics)+2)
	for _, d := range r.Diagnostics {
		if opts.HideWarnings && d.Severity == diag.SevWarning {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s: %s", d.Severity, location(d.Pos), d.Message))
	}
	lines = append(lines, "")
	if opts.HideWarnings {
		lines = append(lines, fmt.Sprintf("Summary: %d error(s)", r.Summary.Errors))
	} else {
		lines = append(lines, fmt.Sprintf("Summary: %d error(s), %d warning(s)", r.Summary.Errors, r.Summary.Warnings))
	}
	return strings.Join(lines, "\n")
}

// Text writes TextString followed by a newline.
func Text(w io.Writer, r *check.Report, opts TextOpts) error {
	_, err := fmt.Fprintln(w, TextString(r, opts))
	return err
}

func location(p diag.Pos) string {
	if p.IsGlobal() {
		return "(global)"
	}
	return fmt.Sprintf("Line %d", p.Line)
}
