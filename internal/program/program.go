// Package program models a loaded BASIC listing: numbered lines keyed by
// line number, each with its content and tokens. Loading performs the
// line-number layer of structural validation.
package program

import (
	"fmt"
	"sort"
	"strings"

	"fortio.org/safecast"

	"basv2/internal/diag"
	"basv2/internal/lexer"
	"basv2/internal/token"
)

const (
	// MaxLineNumber is the largest line number BASIC V2 accepts.
	MaxLineNumber = 63999
	maxDigits     = 5
)

// Line is one numbered line of the listing. Immutable after Load.
type Line struct {
	Number  int
	Row     uint32 // 1-based physical row in the listing
	Raw     string
	Content string // text after the line number
	Tokens  []token.Token
}

// Pos returns the diagnostic position of the line.
func (l *Line) Pos() diag.Pos {
	return diag.At(l.Number, l.Row)
}

// Texts returns the token texts.
func (l *Line) Texts() []string {
	return token.Texts(l.Tokens)
}

// Program is an ordered collection of lines keyed by line number.
type Program struct {
	// Lines holds every numbered line in listing order, duplicates included.
	Lines []*Line
	byNum map[int]*Line
	order []int
}

// Load splits src into physical lines, parses line numbers and tokenizes
// each line. Problems with numbering are reported to r; loading never fails.
func Load(src string, r diag.Reporter) *Program {
	p := &Program{byNum: make(map[int]*Line)}
	for idx, raw := range splitLines(src) {
		row, err := safecast.Conv[uint32](idx + 1)
		if err != nil {
			panic(fmt.Errorf("row overflow: %w", err))
		}
		stripped := strings.TrimSpace(raw)
		if stripped == "" {
			continue
		}
		num, content, ok := splitNumber(stripped)
		if !ok {
			diag.ReportError(r, diag.StrMissingLineNumber, diag.Pos{Line: diag.NoLine, Row: row},
				fmt.Sprintf("Missing/invalid line number on line %d: '%s'", idx+1, raw)).Emit()
			continue
		}
		ln := &Line{
			Number:  num,
			Row:     row,
			Raw:     raw,
			Content: content,
			Tokens:  lexer.Lex(content),
		}
		if num > MaxLineNumber {
			diag.ReportError(r, diag.StrLineRange, ln.Pos(),
				fmt.Sprintf("Line number %d out of range (0-%d)", num, MaxLineNumber)).Emit()
		}
		if first, dup := p.byNum[num]; dup {
			diag.ReportError(r, diag.StrDuplicateLine, ln.Pos(),
				fmt.Sprintf("Duplicate line number %d", num)).
				WithNote(first.Pos(), "first defined here").
				Emit()
		} else {
			p.byNum[num] = ln
			p.order = append(p.order, num)
		}
		p.Lines = append(p.Lines, ln)
	}
	sort.Ints(p.order)
	return p
}

// splitLines splits on \n, \r\n and lone \r.
func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	lines := strings.Split(src, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// splitNumber takes a leading run of 1-5 digits and the remainder with
// leading whitespace dropped.
func splitNumber(s string) (num int, rest string, ok bool) {
	n := 0
	for n < len(s) && n < maxDigits && s[n] >= '0' && s[n] <= '9' {
		num = num*10 + int(s[n]-'0')
		n++
	}
	if n == 0 {
		return 0, "", false
	}
	return num, strings.TrimLeft(s[n:], " \t\v\f"), true
}

// Len returns the number of distinct line numbers.
func (p *Program) Len() int { return len(p.order) }

// Line returns the line with number n (first occurrence wins).
func (p *Program) Line(n int) (*Line, bool) {
	l, ok := p.byNum[n]
	return l, ok
}

// Has reports whether line n exists.
func (p *Program) Has(n int) bool {
	_, ok := p.byNum[n]
	return ok
}

// Numbers returns distinct line numbers in ascending order.
func (p *Program) Numbers() []int {
	return p.order
}

// Ordered returns distinct lines in ascending line-number order.
func (p *Program) Ordered() []*Line {
	out := make([]*Line, len(p.order))
	for i, n := range p.order {
		out[i] = p.byNum[n]
	}
	return out
}

// Entry returns the lowest line number.
func (p *Program) Entry() (int, bool) {
	if len(p.order) == 0 {
		return 0, false
	}
	return p.order[0], true
}

// Next returns the line number following n in ascending order.
func (p *Program) Next(n int) (int, bool) {
	i := sort.SearchInts(p.order, n+1)
	if i >= len(p.order) {
		return 0, false
	}
	return p.order[i], true
}
