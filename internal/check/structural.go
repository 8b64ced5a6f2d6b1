package check

import (
	"fmt"
	"strings"

	"basv2/internal/diag"
	"basv2/internal/token"
)

// checkQuotes is a parity check on raw content, before strings are interpreted.
func (s *session) checkQuotes() {
	for _, ln := range s.prog.Lines {
		if strings.Count(ln.Content, `"`)%2 != 0 {
			diag.ReportError(s.rep, diag.StrUnmatchedQuotes, ln.Pos(), "Unmatched quotes").Emit()
		}
	}
}

func (s *session) checkParens() {
	for _, ln := range s.prog.Lines {
		depth := 0
		for i := 0; i < len(ln.Content); i++ {
			switch ln.Content[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth < 0 {
				diag.ReportError(s.rep, diag.StrUnexpectedCloseParen, ln.Pos(),
					"Closing parenthesis without matching opening").Emit()
				break
			}
		}
		if depth > 0 {
			diag.ReportError(s.rep, diag.StrUnclosedParen, ln.Pos(), "Unclosed parenthesis").Emit()
		}
	}
}

// checkKeywords warns about tokens that are neither keywords, literals,
// punctuation nor identifiers. Checking stops at REM.
func (s *session) checkKeywords() {
	for _, ln := range s.prog.Lines {
		for _, tok := range ln.Tokens {
			upper := tok.Upper()
			if upper == "REM" {
				break
			}
			if knownWord(tok, upper) {
				continue
			}
			diag.ReportWarning(s.rep, diag.StrUnknownToken, ln.Pos(),
				fmt.Sprintf("Unknown token '%s'", tok.Text)).Emit()
		}
	}
}

func knownWord(tok token.Token, upper string) bool {
	switch {
	case tok.Kind == token.String, tok.Kind == token.Number, tok.IsPunctOrOp():
		return true
	case upper == "?":
		return true
	case token.IsChannelWord(upper):
		return true
	}
	base := strings.TrimRight(upper, "()")
	return base == "" || token.LookupKeyword(base) || token.IsIdentifier(base)
}
