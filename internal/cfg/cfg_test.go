package cfg

import (
	"reflect"
	"testing"

	"basv2/internal/diag"
	"basv2/internal/program"
)

func build(src string) (*program.Program, *Graph) {
	p := program.Load(src, diag.NopReporter{})
	return p, Build(p)
}

func TestBuildEdges(t *testing.T) {
	src := `10 IF A=1 THEN 40
20 GOSUB 100: PRINT "X"
30 GOTO 10
40 ON X GOTO 10,20, 30
50 IF A THEN GOTO 70
60 GO TO 80
70 END
80 STOP: PRINT "NEVER"
90 REM GOTO 10
100 RETURN`
	_, g := build(src)
	want := map[int][]int{
		10:  {40, 20},
		20:  {100, 30},
		30:  {10},
		40:  {10, 20, 30, 50},
		50:  {70, 60},
		60:  {80},
		70:  {},
		80:  {},
		90:  {100},
		100: {},
	}
	if !reflect.DeepEqual(g.Edges, want) {
		t.Fatalf("Edges = %v\nwant %v", g.Edges, want)
	}
}

func TestUnreachableAfterBackwardGoto(t *testing.T) {
	src := `10 NEXT J
20 IF I=5 PRINT "NO THEN"
30 GOTO 9999
40 FOR I=1 TO 10
50 NEXT I
60 A@=5
70 IF I 2 THEN 100
80 GOTO 120
90 PRINT "UNREACHABLE"
100 END
110 PRINT "ALSO UNREACHABLE"
120 END`
	_, g := build(src)
	got := g.Unreachable()
	want := []int{40, 50, 60, 70, 80, 90, 100, 110, 120}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Unreachable = %v, want %v", got, want)
	}
}

func TestUnreachableIsSubsetAndSorted(t *testing.T) {
	_, g := build("30 PRINT\n10 GOTO 30\n20 PRINT \"SKIPPED\"\n")
	if got := g.Unreachable(); !reflect.DeepEqual(got, []int{20}) {
		t.Fatalf("Unreachable = %v", got)
	}
	_, empty := build("")
	if got := empty.Unreachable(); len(got) != 0 {
		t.Fatalf("empty program Unreachable = %v", got)
	}
}

func TestInert(t *testing.T) {
	p, _ := build("10 REM HI\n20 DATA 1,2:DATA 3\n30 PRINT\n40 DATA 1:PRINT\n")
	cases := map[int]bool{10: true, 20: true, 30: false, 40: false}
	for n, want := range cases {
		ln, _ := p.Line(n)
		if got := Inert(ln); got != want {
			t.Errorf("Inert(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("relaxed"); err != nil || m != Relaxed || m.String() != "relaxed" {
		t.Fatalf("ParseMode(relaxed) = %v, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != Strict {
		t.Fatalf("ParseMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMode("lenient"); err == nil {
		t.Fatal("expected error")
	}
}
