package diagfmt

import (
	"encoding/json"
	"io"
	"strconv"

	"basv2/internal/check"
	"basv2/internal/diag"
)

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Line    *int   `json:"line"`
	Row     uint32 `json:"row,omitempty"`
	Message string `json:"message"`
}

// IssueJSON is one diagnostic. line is null for program-wide issues.
type IssueJSON struct {
	Line     *int       `json:"line"`
	Severity string     `json:"severity"`
	Message  string     `json:"message"`
	Code     string     `json:"code,omitempty"`
	Row      uint32     `json:"row,omitempty"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

// SummaryJSON counts issues by severity.
type SummaryJSON struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// ReportJSON is the structured report consumed by external tooling.
type ReportJSON struct {
	Issues           []IssueJSON      `json:"issues"`
	Summary          SummaryJSON      `json:"summary"`
	Unreachable      []int            `json:"unreachable"`
	ReachabilityMode string           `json:"reachability_mode"`
	Edges            map[string][]int `json:"edges,omitempty"`
}

// FileReportJSON wraps a report with its path for multi-file output.
type FileReportJSON struct {
	Path  string `json:"path"`
	Error string `json:"error,omitempty"`
	ReportJSON
}

// FilesOutput is the root of multi-file JSON output.
type FilesOutput struct {
	Files   []FileReportJSON `json:"files"`
	Summary SummaryJSON      `json:"summary"`
}

func linePtr(p diag.Pos) *int {
	if p.IsGlobal() {
		return nil
	}
	n := p.Line
	return &n
}

// BuildReportJSON формирует структуру JSON-вывода без сериализации.
func BuildReportJSON(r *check.Report, opts JSONOpts) ReportJSON {
	items := r.Diagnostics
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	issues := make([]IssueJSON, 0, len(items))
	for _, d := range items {
		issue := IssueJSON{
			Line:     linePtr(d.Pos),
			Severity: d.Severity.String(),
			Message:  d.Message,
		}
		if opts.IncludeDetails {
			issue.Code = d.Code.ID()
			issue.Row = d.Pos.Row
			for _, n := range d.Notes {
				issue.Notes = append(issue.Notes, NoteJSON{Line: linePtr(n.Pos), Row: n.Pos.Row, Message: n.Msg})
			}
		}
		issues = append(issues, issue)
	}

	out := ReportJSON{
		Issues:           issues,
		Summary:          SummaryJSON{Errors: r.Summary.Errors, Warnings: r.Summary.Warnings},
		Unreachable:      r.Unreachable,
		ReachabilityMode: r.ReachabilityMode.String(),
	}
	if out.Unreachable == nil {
		out.Unreachable = []int{}
	}
	if opts.IncludeEdges {
		out.Edges = make(map[string][]int, len(r.Edges))
		for from, to := range r.Edges {
			out.Edges[strconv.Itoa(from)] = to
		}
	}
	return out
}

// JSON writes one report as indented JSON.
func JSON(w io.Writer, r *check.Report, opts JSONOpts) error {
	return encodeIndented(w, BuildReportJSON(r, opts))
}

// BuildFilesOutput собирает отчёты нескольких файлов.
func BuildFilesOutput(entries []Entry, loadErrs map[string]error, opts JSONOpts) FilesOutput {
	out := FilesOutput{Files: make([]FileReportJSON, 0, len(entries))}
	for _, e := range entries {
		fr := FileReportJSON{Path: e.Path}
		if err := loadErrs[e.Path]; err != nil {
			fr.Error = err.Error()
		}
		if e.Report != nil {
			fr.ReportJSON = BuildReportJSON(e.Report, opts)
			out.Summary.Errors += e.Report.Summary.Errors
			out.Summary.Warnings += e.Report.Summary.Warnings
		}
		out.Files = append(out.Files, fr)
	}
	return out
}

// JSONFiles writes several reports as one JSON document.
func JSONFiles(w io.Writer, entries []Entry, loadErrs map[string]error, opts JSONOpts) error {
	return encodeIndented(w, BuildFilesOutput(entries, loadErrs, opts))
}

func encodeIndented(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
