package token

import "strings"

// Token is a single lexeme of one line's content.
type Token struct {
	Kind Kind
	Text string
	Col  uint32 // 0-based byte offset inside the line content
}

// Upper returns the upper-cased token text.
func (t Token) Upper() string {
	return strings.ToUpper(t.Text)
}

// Is reports whether the token text equals word case-insensitively.
func (t Token) Is(word string) bool {
	return strings.EqualFold(t.Text, word)
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == Number || t.Kind == String
}

// IsPunctOrOp reports whether the token is a separator or an operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind == Sep || t.Kind == Op
}

// Texts flattens tokens to their text.
func Texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}
