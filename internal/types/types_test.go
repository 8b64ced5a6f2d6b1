package types

import "testing"

func TestOfVariable(t *testing.T) {
	cases := map[string]ExprType{
		"A":   Numeric,
		"I%":  Numeric,
		"I%2": Numeric,
		"K$":  String,
		"NA$": String,
	}
	for name, want := range cases {
		if got := OfVariable(name); got != want {
			t.Errorf("OfVariable(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestExprTypeString(t *testing.T) {
	if Unknown.String() != "unknown" || Numeric.String() != "numeric" || String.String() != "string" {
		t.Fatal("unexpected type names")
	}
	if Unknown.Known() || !String.Known() {
		t.Fatal("Known mismatch")
	}
}
