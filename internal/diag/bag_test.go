package diag

import "testing"

func TestBagLimitAndCounts(t *testing.T) {
	b := NewBag(2)
	r := &BagReporter{Bag: b}
	ReportWarning(r, FlwUnreachable, At(20, 2), "Unreachable line (no control-flow path)").Emit()
	ReportInfo(r, PrgAutoNumber, At(21, 3), "auto").Emit()
	ReportError(r, CtlIfWithoutThen, At(10, 1), "IF without THEN").Emit()
	ReportError(r, CtlNextWithoutFor, At(30, 4), "NEXT without FOR").Emit()

	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	for _, d := range b.Items() {
		if d.Severity == SevError {
			t.Fatalf("errors past the limit must not be stored: %+v", d)
		}
	}
	if !b.HasErrors() {
		t.Fatal("errors dropped by the limit must still count")
	}
	if b.Count(SevError) != 2 || b.Count(SevWarning) != 1 || b.Count(SevInfo) != 1 {
		t.Fatalf("counts = %d/%d/%d", b.Count(SevError), b.Count(SevWarning), b.Count(SevInfo))
	}
}

func TestBagUnlimitedKeepsInsertionOrder(t *testing.T) {
	b := NewBag(0)
	for i := range 100 {
		b.Add(Diagnostic{Severity: SevWarning, Code: FlwUnreachable, Pos: At(i, 0)})
	}
	if b.Len() != 100 {
		t.Fatalf("Len = %d", b.Len())
	}
	for i, d := range b.Items() {
		if d.Pos.Line != i {
			t.Fatalf("item %d has line %d", i, d.Pos.Line)
		}
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(0)
	rb := ReportError(&BagReporter{Bag: b}, StrDuplicateLine, At(10, 2), "Duplicate line number 10").
		WithNote(At(10, 1), "first defined here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	if n := b.Items()[0].Notes; len(n) != 1 || n[0].Pos.Row != 1 {
		t.Fatalf("notes = %+v", n)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		StrDuplicateLine: "STR1003",
		CtlMissingReturn: "CTL2011",
		ExpArity:         "EXP3003",
		FlwUnreachable:   "FLW4001",
		PrgCharReplaced:  "PRG5004",
		IOLoadFileError:  "IO6001",
		UnknownCode:      "E0000",
	}
	for c, want := range cases {
		if c.ID() != want {
			t.Errorf("%d.ID() = %s, want %s", c, c.ID(), want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Error("unknown code title")
	}
	if sev, ok := ParseSeverity("WARN"); !ok || sev != SevWarning || sev.String() != "WARN" {
		t.Error("ParseSeverity(WARN)")
	}
}
