package diag

// NoLine marks a diagnostic that is not tied to a BASIC line.
const NoLine = -1

// Pos locates a diagnostic inside a listing.
type Pos struct {
	Line int    // BASIC line number, NoLine for program-wide findings
	Row  uint32 // 1-based physical row, 0 when unknown
}

// Global is the position of program-wide diagnostics.
var Global = Pos{Line: NoLine}

// At returns the position of BASIC line n on physical row.
func At(n int, row uint32) Pos {
	return Pos{Line: n, Row: row}
}

// IsGlobal reports whether the position is program-wide.
func (p Pos) IsGlobal() bool { return p.Line == NoLine }

type Note struct {
	Pos Pos
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Pos      Pos
	Message  string
	Notes    []Note
}
