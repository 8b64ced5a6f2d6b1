package check

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"basv2/internal/cfg"
	"basv2/internal/diag"
	"basv2/internal/token"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func messages(r *Report, sev diag.Severity) []string {
	var out []string
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			out = append(out, d.Message)
		}
	}
	return out
}

func anyContains(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestValidateClean(t *testing.T) {
	r := Validate("10 PRINT \"HELLO\"\n20 END\n", Options{})
	if len(r.Diagnostics) != 0 || r.Summary != (Summary{}) {
		t.Fatalf("expected clean report, got %+v", r.Diagnostics)
	}
	if r.HasErrors() {
		t.Fatal("HasErrors on clean program")
	}
	if !reflect.DeepEqual(r.Edges[10], []int{20}) {
		t.Fatalf("edges = %v", r.Edges)
	}
}

func TestValidateIfWithoutThen(t *testing.T) {
	r := Validate("10 IF A=5 PRINT \"MISSING THEN\"\n20 END", Options{})
	found := false
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SevError && d.Pos.Line == 10 && strings.Contains(d.Message, "IF without THEN") {
			found = true
		}
	}
	if !found {
		t.Fatalf("no IF without THEN on line 10: %+v", r.Diagnostics)
	}
}

func TestValidateErrorsProgram(t *testing.T) {
	r := Validate(readFixture(t, "errors.bas"), Options{})
	errs, warns := messages(r, diag.SevError), messages(r, diag.SevWarning)

	for _, want := range []string{"NEXT without matching FOR", "IF without THEN", "Invalid variable name 'A@'"} {
		if !anyContains(errs, want) {
			t.Errorf("missing error %q in %q", want, errs)
		}
	}
	if !anyContains(warns, "target line 9999 does not exist") || anyContains(errs, "9999") {
		t.Errorf("dangling GOTO must be a warning only: errs=%q warns=%q", errs, warns)
	}
	if !anyContains(warns, "Unexpected token") && !anyContains(warns, "Unrecognized token") {
		t.Errorf("expected an expression diagnostic for 'IF I 2 THEN': %q", warns)
	}

	var unreachable []int
	for _, d := range r.Diagnostics {
		if d.Code == diag.FlwUnreachable {
			unreachable = append(unreachable, d.Pos.Line)
		}
	}
	for _, n := range []int{90, 110} {
		if !containsInt(unreachable, n) {
			t.Errorf("line %d not reported unreachable: %v", n, unreachable)
		}
	}
	if r.Summary.Errors != 3 || r.Summary.Warnings != 12 {
		t.Errorf("summary = %+v", r.Summary)
	}
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}

func TestValidateGolden(t *testing.T) {
	r := Validate(readFixture(t, "errors.bas"), Options{})
	got := diag.FormatGoldenDiagnostics("errors.bas", r.Diagnostics, false)
	want := strings.TrimRight(readFixture(t, "errors.golden"), "\n")
	if got != want {
		t.Fatalf("golden mismatch:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestValidateMazeIsClean(t *testing.T) {
	r := Validate(readFixture(t, "maze.bas"), Options{DisableReachability: true})
	if r.Summary.Errors != 0 || r.Summary.Warnings != 0 {
		t.Fatalf("maze diagnostics: %+v", r.Diagnostics)
	}
	if !reflect.DeepEqual(r.GosubTargets, []int{200, 310}) {
		t.Fatalf("GosubTargets = %v", r.GosubTargets)
	}
	if !reflect.DeepEqual(r.Unreachable, []int{190}) {
		t.Fatalf("Unreachable = %v", r.Unreachable)
	}
}

func TestDisableReachabilityOnlyDropsUnreachable(t *testing.T) {
	src := readFixture(t, "errors.bas")
	full := Validate(src, Options{})
	quiet := Validate(src, Options{DisableReachability: true})

	var kept []diag.Diagnostic
	for _, d := range full.Diagnostics {
		if d.Code != diag.FlwUnreachable {
			kept = append(kept, d)
		}
	}
	if !reflect.DeepEqual(kept, quiet.Diagnostics) {
		t.Fatalf("diagnostics differ:\n%+v\n%+v", kept, quiet.Diagnostics)
	}
	if !reflect.DeepEqual(full.Unreachable, quiet.Unreachable) {
		t.Fatal("unreachable set must be computed either way")
	}
}

func TestRelaxedSkipsInertLines(t *testing.T) {
	src := "10 GOTO 50\n20 REM NOTE\n30 DATA 1,2\n40 PRINT\n50 END\n"
	strict := Validate(src, Options{})
	relaxed := Validate(src, Options{ReachabilityMode: cfg.Relaxed})

	lines := func(r *Report) []int {
		var out []int
		for _, d := range r.Diagnostics {
			if d.Code == diag.FlwUnreachable {
				out = append(out, d.Pos.Line)
			}
		}
		return out
	}
	if got := lines(strict); !reflect.DeepEqual(got, []int{20, 30, 40}) {
		t.Fatalf("strict = %v", got)
	}
	if got := lines(relaxed); !reflect.DeepEqual(got, []int{40}) {
		t.Fatalf("relaxed = %v", got)
	}
	if !reflect.DeepEqual(relaxed.Unreachable, []int{20, 30, 40}) || relaxed.ReachabilityMode != cfg.Relaxed {
		t.Fatalf("relaxed report = %v %v", relaxed.Unreachable, relaxed.ReachabilityMode)
	}
}

func TestValidateCases(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string // "SEVERITY line message"
	}{
		{
			name: "quotes and parens",
			src:  "10 PRINT \"A\n20 PRINT (1\n30 PRINT 1)\n",
			want: []string{
				"ERROR 10 Unmatched quotes",
				"ERROR 20 Unclosed parenthesis",
				"ERROR 30 Closing parenthesis without matching opening",
			},
		},
		{
			name: "unknown token ignores comments and strings",
			src:  "10 PRINT \"#!\";X#:REM ##\n",
			want: []string{"WARN 10 Unknown token 'X#'"},
		},
		{
			name: "channel words are known",
			src:  "10 OPEN 1,4:PRINT#1,\"X\":CLOSE 1\n",
		},
		{
			name: "next list and mismatch",
			src:  "10 FOR I=1 TO 2:FOR J=1 TO 2\n20 NEXT J,I\n30 FOR K=1 TO 2\n40 NEXT Z\n",
			want: []string{"WARN 40 NEXT variable Z does not match FOR variable K (FOR at line 30)"},
		},
		{
			name: "for inside comment is ignored",
			src:  "10 REM FOR I=1 TO 10\n20 END\n",
		},
		{
			name: "unclosed for",
			src:  "10 FOR I=1 TO 10\n20 FOR 5\n30 END\n",
			want: []string{"ERROR - Unclosed FOR loops: I@10, ?@20"},
		},
		{
			name: "jump shapes",
			src:  "10 GOTO\n20 GOSUB X\n30 GO TO 40\n40 GOSUB 99\n50 RETURN\n",
			want: []string{
				"ERROR 10 GOTO without target line",
				"ERROR 20 GOSUB target 'X' is not a line number",
				"WARN 40 GOSUB target line 99 does not exist",
				"ERROR - Missing RETURN for GOSUB target line 99",
			},
		},
		{
			name: "on statements",
			src:  "10 ON X GOTO 30,99\n20 ON 3 GOSUB 30, 40\n30 ON X PRINT\n40 ON X GOTO\n50 ON X GOTO A\n60 RETURN\n",
			want: []string{
				"WARN 10 ON GOTO target line 99 does not exist",
				"WARN 20 ON GOSUB selector 3 exceeds target list length 2",
				"ERROR 30 ON without GOTO/GOSUB",
				"ERROR 40 ON GOTO without line targets",
				"ERROR 50 ON GOTO target 'A' not a number",
			},
		},
		{
			name: "missing return",
			src:  "10 GOSUB 100\n20 END\n100 PRINT \"SUB\"\n110 REM RETURN\n",
			want: []string{"ERROR - Missing RETURN for GOSUB target line 100"},
		},
		{
			name: "missing gosub target still needs return",
			src:  "10 GOSUB 500\n20 END\n",
			want: []string{
				"WARN 10 GOSUB target line 500 does not exist",
				"ERROR - Missing RETURN for GOSUB target line 500",
			},
		},
		{
			name: "return after a missing target",
			src:  "10 GOSUB 500\n20 END\n600 RETURN\n",
			want: []string{"WARN 10 GOSUB target line 500 does not exist"},
		},
		{
			name: "stray return",
			src:  "10 PRINT\n20 RETURN\n",
			want: []string{"WARN 20 RETURN appears but no GOSUB targets found"},
		},
		{
			name: "assignment typing",
			src:  "10 A$=5\n20 LET B=\"X\"\n30 C$=\"OK\"+D$\n40 LET E=1+F$\n",
			want: []string{
				"ERROR 10 Type mismatch in assignment to 'A$'",
				"ERROR 20 Type mismatch in assignment to 'B'",
				"ERROR 40 Type mismatch for '+' between numeric and string",
			},
		},
		{
			name: "for bounds are checked",
			src:  "10 FOR I=\"A\" TO 10 STEP A$*2\n20 NEXT I\n",
			want: []string{"ERROR 10 Operator '*' applied to non-numeric operand"},
		},
		{
			name: "duplicate line",
			src:  "10 PRINT\n10 END\n",
			want: []string{"ERROR 10 Duplicate line number 10"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Validate(tc.src, Options{DisableReachability: true})
			var got []string
			for _, d := range r.Diagnostics {
				line := "-"
				if !d.Pos.IsGlobal() {
					line = strconv.Itoa(d.Pos.Line)
				}
				got = append(got, d.Severity.String()+" "+line+" "+d.Message)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("diagnostics:\n got %q\nwant %q", got, tc.want)
			}
		})
	}
}

func TestValidateIsRepeatable(t *testing.T) {
	src := readFixture(t, "errors.bas")
	a := Validate(src, Options{})
	b := Validate(src, Options{})
	if !reflect.DeepEqual(a.Diagnostics, b.Diagnostics) || !reflect.DeepEqual(a.Unreachable, b.Unreachable) {
		t.Fatal("validation must not keep state between calls")
	}
}

func TestMaxDiagnostics(t *testing.T) {
	r := Validate(readFixture(t, "errors.bas"), Options{MaxDiagnostics: 2})
	if len(r.Diagnostics) != 2 {
		t.Fatalf("got %d diagnostics", len(r.Diagnostics))
	}
	if r.Summary.Errors != 3 || r.Summary.Warnings != 12 || !r.HasErrors() {
		t.Fatalf("summary must count diagnostics past the limit, got %+v", r.Summary)
	}

	// первая диагностика - предупреждение, ошибка отсекается лимитом
	r = Validate("10 PRINT X#\n20 NEXT\n", Options{MaxDiagnostics: 1, DisableReachability: true})
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Severity != diag.SevWarning {
		t.Fatalf("diagnostics = %+v", r.Diagnostics)
	}
	if r.Summary.Errors != 1 || r.Summary.Warnings != 1 || !r.HasErrors() {
		t.Fatalf("summary = %+v, want 1 error and 1 warning", r.Summary)
	}
}

func TestKnownWord(t *testing.T) {
	cases := []struct {
		tok  token.Token
		want bool
	}{
		{token.Token{Kind: token.Word, Text: "$"}, true},
		{token.Token{Kind: token.Word, Text: "print"}, true},
		{token.Token{Kind: token.Word, Text: "A1$"}, true},
		{token.Token{Kind: token.Word, Text: "X#"}, false},
		{token.Token{Kind: token.Word, Text: "A@"}, false},
	}
	for _, tc := range cases {
		if got := knownWord(tc.tok, tc.tok.Upper()); got != tc.want {
			t.Errorf("knownWord(%q) = %v, want %v", tc.tok.Text, got, tc.want)
		}
	}
}

func TestPassNames(t *testing.T) {
	names := PassNames()
	if names[0] != "quotes" || names[len(names)-1] != "reachability" {
		t.Fatalf("PassNames = %v", names)
	}
}

func TestPassHook(t *testing.T) {
	var started, finished []string
	opts := Options{PassHook: func(name string) func() {
		started = append(started, name)
		return func() { finished = append(finished, name) }
	}}
	Validate("10 END\n", opts)

	want := append([]string{"load"}, PassNames()...)
	if !reflect.DeepEqual(started, want) || !reflect.DeepEqual(finished, want) {
		t.Fatalf("hook calls:\n started  %v\n finished %v\nwant %v", started, finished, want)
	}
}
