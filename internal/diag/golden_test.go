package diag

import (
	"testing"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     FlwUnreachable,
			Pos:      At(30, 3),
			Message:  "Unreachable line (no control-flow path)",
		},
		{
			Severity: SevError,
			Code:     StrDuplicateLine,
			Pos:      At(10, 2),
			Message:  "Duplicate line\nnumber 10",
			Notes:    []Note{{Pos: At(10, 1), Msg: "first defined here"}},
		},
		{
			Severity: SevError,
			Code:     CtlUnclosedFor,
			Pos:      Global,
			Message:  "Unclosed FOR loops: I@20",
		},
	}

	expected := "error CTL2004 prog.bas:0 Unclosed FOR loops: I@20\n" +
		"note STR1003 prog.bas:1 [10] first defined here\n" +
		"error STR1003 prog.bas:2 [10] Duplicate line number 10\n" +
		"warning FLW4001 prog.bas:3 [30] Unreachable line (no control-flow path)"

	if got := FormatGoldenDiagnostics("./prog.bas", diags, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortKeepsOrder(t *testing.T) {
	diags := []Diagnostic{
		{Severity: SevWarning, Code: FlwUnreachable, Pos: At(30, 3), Message: "late"},
		{Severity: SevError, Code: CtlIfWithoutThen, Pos: At(10, 1), Message: "early"},
	}
	want := "warning FLW4001 a.bas:3 [30] late\nerror CTL2001 a.bas:1 [10] early"
	if got := FormatShortDiagnostics("a.bas", diags, false); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
	if FormatShortDiagnostics("a.bas", nil, false) != "" {
		t.Fatal("empty input must render empty")
	}
}
