// Package types holds the static type lattice of BASIC expressions.
package types

import "strings"

// ExprType is the inferred type of an expression. Integer variables are
// folded into Numeric.
type ExprType uint8

const (
	// Unknown is the type of an expression that already produced a type error.
	Unknown ExprType = iota
	// Numeric covers float and integer values.
	Numeric
	// String is a string value.
	String
)

func (t ExprType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Known reports whether t is not Unknown.
func (t ExprType) Known() bool { return t != Unknown }

// OfVariable infers a variable's type from its name suffix: a trailing $
// marks a string, % and no suffix are Numeric.
func OfVariable(name string) ExprType {
	if strings.HasSuffix(name, "$") {
		return String
	}
	return Numeric
}
