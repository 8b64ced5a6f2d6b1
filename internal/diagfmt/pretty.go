package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"basv2/internal/diag"
)

type palette struct {
	err, warn, info, note, path, gutter, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.gutter, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

func severityLabel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// Pretty печатает диагностики одного файла в человеко-читаемом виде:
//
//	prog.bas:3: error[CTL2007]: GOTO target line 9999 does not exist
//	   3 | 30 GOTO 9999
//
// followed by a colored summary line.
func Pretty(w io.Writer, e Entry, opts PrettyOpts, baseDir string) error {
	p := newPalette(opts.Color)
	path := e.DisplayPath(opts.PathMode, baseDir)
	var sb strings.Builder

	for _, d := range e.Report.Diagnostics {
		if opts.HideWarnings && d.Severity == diag.SevWarning {
			continue
		}
		sev := p.severity(d.Severity)
		fmt.Fprintf(&sb, "%s: %s: %s\n",
			p.path.Sprint(prettyLocation(path, d.Pos)),
			sev.Sprintf("%s[%s]", severityLabel(d.Severity), d.Code.ID()),
			p.bold.Sprint(d.Message))

		if opts.ShowSource && e.File != nil && d.Pos.Row > 0 {
			if text := e.File.GetLine(d.Pos.Row); text != "" {
				fmt.Fprintf(&sb, "%s %s\n",
					p.gutter.Sprintf("%5d |", d.Pos.Row),
					clip(text, opts.Width))
			}
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(&sb, "  %s %s: %s\n", p.note.Sprint("note:"), prettyLocation(path, n.Pos), n.Msg)
			}
		}
	}

	summary := fmt.Sprintf("%s: %d error(s), %d warning(s)", path, e.Report.Summary.Errors, e.Report.Summary.Warnings)
	switch {
	case e.Report.Summary.Errors > 0:
		sb.WriteString(p.err.Sprint(summary))
	case e.Report.Summary.Warnings > 0:
		sb.WriteString(p.warn.Sprint(summary))
	default:
		sb.WriteString(p.bold.Sprint(summary))
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

func prettyLocation(path string, pos diag.Pos) string {
	if pos.IsGlobal() {
		return path
	}
	return fmt.Sprintf("%s:%d", path, pos.Line)
}

// clip обрезает строку до ширины терминала с учётом широких рун.
func clip(s string, width uint8) string {
	const gutter = 8
	if width == 0 || int(width) <= gutter {
		return s
	}
	return runewidth.Truncate(s, int(width)-gutter, "…")
}
