package program

import (
	"reflect"
	"strings"
	"testing"

	"basv2/internal/diag"
)

func load(t *testing.T, src string) (*Program, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	return Load(src, &diag.BagReporter{Bag: bag}), bag
}

func TestLoadOrdersAndIndexes(t *testing.T) {
	p, bag := load(t, "30 END\n\n10 PRINT \"A\"\r\n20 GOTO 10\r")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if got := p.Numbers(); !reflect.DeepEqual(got, []int{10, 20, 30}) {
		t.Fatalf("Numbers = %v", got)
	}
	l, ok := p.Line(20)
	if !ok || l.Row != 4 || l.Content != "GOTO 10" {
		t.Fatalf("line 20 = %+v", l)
	}
	if !reflect.DeepEqual(l.Texts(), []string{"GOTO", "10"}) {
		t.Fatalf("tokens = %q", l.Texts())
	}
	if e, _ := p.Entry(); e != 10 {
		t.Fatalf("Entry = %d", e)
	}
	if n, ok := p.Next(10); !ok || n != 20 {
		t.Fatalf("Next(10) = %d,%v", n, ok)
	}
	if _, ok := p.Next(30); ok {
		t.Fatal("Next(30) must not exist")
	}
}

func TestLoadLineNumberDiagnostics(t *testing.T) {
	src := strings.Join([]string{
		"10 PRINT",
		"PRINT \"NO NUMBER\"",
		"64000 END",
		"10 END",
	}, "\n")
	p, bag := load(t, src)

	items := bag.Items()
	if len(items) != 3 {
		t.Fatalf("got %d diagnostics: %+v", len(items), items)
	}
	if items[0].Code != diag.StrMissingLineNumber || !items[0].Pos.IsGlobal() || items[0].Pos.Row != 2 ||
		items[0].Message != `Missing/invalid line number on line 2: 'PRINT "NO NUMBER"'` {
		t.Errorf("missing number diag = %+v", items[0])
	}
	if items[1].Code != diag.StrLineRange || items[1].Message != "Line number 64000 out of range (0-63999)" {
		t.Errorf("range diag = %+v", items[1])
	}
	if items[2].Code != diag.StrDuplicateLine || items[2].Pos.Row != 4 || len(items[2].Notes) != 1 || items[2].Notes[0].Pos.Row != 1 {
		t.Errorf("duplicate diag = %+v", items[2])
	}
	first, _ := p.Line(10)
	if first.Content != "PRINT" {
		t.Errorf("first occurrence must win, got %q", first.Content)
	}
	if len(p.Lines) != 3 || p.Len() != 2 {
		t.Errorf("Lines=%d Len=%d", len(p.Lines), p.Len())
	}
}

func TestLoadTakesAtMostFiveDigits(t *testing.T) {
	p, _ := load(t, "123456 PRINT")
	l, ok := p.Line(12345)
	if !ok || l.Content != "6 PRINT" {
		t.Fatalf("line = %+v, %v", l, ok)
	}
}

func TestStatements(t *testing.T) {
	p, _ := load(t, `10 A=1:B=2::PRINT A:REM X:Y`)
	l, _ := p.Line(10)
	want := [][]string{{"A", "=", "1"}, {"B", "=", "2"}, nil, {"PRINT", "A"}}
	if got := l.Statements(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Statements = %q, want %q", got, want)
	}
	if got := l.Code(); len(got) != 12 {
		t.Fatalf("Code = %q", got)
	}
}
