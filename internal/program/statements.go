package program

import "strings"

// Statements splits the line's tokens on ':' separators. A REM token ends
// the line: nothing after it is returned. Empty statements are kept, except
// a trailing empty one.
func (l *Line) Statements() [][]string {
	return SplitStatements(l.Texts())
}

// SplitStatements is Statements over bare token texts.
func SplitStatements(toks []string) [][]string {
	var stmts [][]string
	var cur []string
	for _, t := range toks {
		if strings.EqualFold(t, "REM") {
			if len(cur) > 0 {
				stmts = append(stmts, cur)
			}
			return stmts
		}
		if t == ":" {
			stmts = append(stmts, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		stmts = append(stmts, cur)
	}
	return stmts
}

// Code returns the token texts before the first REM.
func (l *Line) Code() []string {
	toks := l.Texts()
	for i, t := range toks {
		if strings.EqualFold(t, "REM") {
			return toks[:i]
		}
	}
	return toks
}

// Upper returns upper-cased copies of toks.
func Upper(toks []string) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = strings.ToUpper(t)
	}
	return out
}
