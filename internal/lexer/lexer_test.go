package lexer_test

import (
	"reflect"
	"testing"

	"basv2/internal/lexer"
	"basv2/internal/token"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`PRINT "HELLO"`, []string{"PRINT", `"HELLO"`}},
		{`A=1`, []string{"A", "=", "1"}},
		{`IF K$<>"" THEN GOSUB 310`, []string{"IF", "K$", "<", ">", `""`, "THEN", "GOSUB", "310"}},
		{`PRINT "A:B=C";X`, []string{"PRINT", `"A:B=C"`, ";", "X"}},
		{`PRINT "OPEN`, []string{"PRINT", `"OPEN`}},
		{`POKE I,Q+RND(1)`, []string{"POKE", "I", ",", "Q", "+", "RND", "(", "1", ")"}},
		{"FOR I=1 TO 10:NEXT", []string{"FOR", "I", "=", "1", "TO", "10", ":", "NEXT"}},
		{"X=A^2/3*B-1", []string{"X", "=", "A", "^", "2", "/", "3", "*", "B", "-", "1"}},
		{`A$"B"`, []string{"A$", `"B"`}},
		{"   ", []string{}},
		{"REM  hi  there", []string{"REM", "hi", "there"}},
		{"PRINT#1,A", []string{"PRINT#1", ",", "A"}},
	}
	for _, tc := range cases {
		got := lexer.Tokenize(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLexKindsAndColumns(t *testing.T) {
	toks := lexer.Lex(`X=205.5:PRINT "HI"`)
	want := []token.Token{
		{Kind: token.Word, Text: "X", Col: 0},
		{Kind: token.Op, Text: "=", Col: 1},
		{Kind: token.Number, Text: "205.5", Col: 2},
		{Kind: token.Sep, Text: ":", Col: 7},
		{Kind: token.Word, Text: "PRINT", Col: 8},
		{Kind: token.String, Text: `"HI"`, Col: 14},
	}
	if !reflect.DeepEqual(toks, want) {
		t.Fatalf("Lex = %+v\nwant %+v", toks, want)
	}
}
