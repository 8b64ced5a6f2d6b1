package diag

import (
	"fmt"
	"sort"
	"strings"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Row      uint32
	Line     int
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files. Entries are sorted by row, so the
// result does not depend on pass order.
func FormatGoldenDiagnostics(path string, diags []Diagnostic, includeNotes bool) string {
	return formatDiagnostics(path, diags, includeNotes, true)
}

// FormatShortDiagnostics renders diagnostics one per line in report order,
// intended for CLI short output.
func FormatShortDiagnostics(path string, diags []Diagnostic, includeNotes bool) string {
	return formatDiagnostics(path, diags, includeNotes, false)
}

func formatDiagnostics(path string, diags []Diagnostic, includeNotes, sorted bool) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], includeNotes)
	}

	if sorted {
		sort.SliceStable(rendered, func(i, j int) bool {
			di, dj := rendered[i], rendered[j]
			if di.Row != dj.Row {
				return di.Row < dj.Row
			}
			if di.Severity != dj.Severity {
				return di.Severity < dj.Severity
			}
			if di.Code != dj.Code {
				return di.Code < dj.Code
			}
			return di.Message < dj.Message
		})
	}

	path = normalizePath(path)
	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d", d.Severity, d.Code, path, d.Row)
		if d.Line != NoLine {
			fmt.Fprintf(&b, " [%d]", d.Line)
		}
		fmt.Fprintf(&b, " %s", d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []goldenDiagnostic, d *Diagnostic, includeNotes bool) []goldenDiagnostic {
	out = append(out, goldenDiagnostic{
		Severity: severityLabel(d.Severity),
		Code:     d.Code.ID(),
		Row:      d.Pos.Row,
		Line:     d.Pos.Line,
		Message:  sanitizeMessage(d.Message),
	})

	if includeNotes {
		for _, note := range d.Notes {
			out = append(out, goldenDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Row:      note.Pos.Row,
				Line:     note.Pos.Line,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}

	return out
}

func normalizePath(path string) string {
	p := strings.ReplaceAll(path, "\\", "/")
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	if p == "" {
		return "<input>"
	}
	return p
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
