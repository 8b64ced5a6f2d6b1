// Package lexer splits the content of one BASIC line into tokens.
// It never reports anything: unterminated strings and stray characters are
// tokens like any other and are judged by the validators.
package lexer

import (
	"basv2/internal/token"
)

// Lexer scans a single line's content (the text after the line number).
type Lexer struct {
	cursor Cursor
}

// New creates a lexer over content.
func New(content string) *Lexer {
	return &Lexer{cursor: NewCursor(content)}
}

// Next возвращает следующий токен. В конце строки ok == false.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	lx.skipSpace()
	if lx.cursor.EOF() {
		return token.Token{}, false
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '"':
		return lx.scanString(), true
	case token.IsSeparator(ch):
		return lx.single(token.Sep), true
	case token.IsOperatorChar(ch):
		return lx.single(token.Op), true
	default:
		return lx.scanWord(), true
	}
}

// All drains the lexer.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, 8)
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// Lex tokenizes content.
func Lex(content string) []token.Token {
	return New(content).All()
}

// Tokenize tokenizes content and returns the token texts.
func Tokenize(content string) []string {
	return token.Texts(Lex(content))
}

func (lx *Lexer) skipSpace() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) single(kind token.Kind) token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	return token.Token{Kind: kind, Text: lx.cursor.TextFrom(m), Col: uint32(m)}
}

// scanString consumes through the closing quote or to end of line.
func (lx *Lexer) scanString() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '"' {
			break
		}
	}
	return token.Token{Kind: token.String, Text: lx.cursor.TextFrom(m), Col: uint32(m)}
}

func (lx *Lexer) scanWord() token.Token {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '"' || isSpace(ch) || token.IsSeparator(ch) || token.IsOperatorChar(ch) {
			break
		}
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(m)
	kind := token.Word
	if token.IsNumber(text) {
		kind = token.Number
	}
	return token.Token{Kind: kind, Text: text, Col: uint32(m)}
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
