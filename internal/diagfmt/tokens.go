package diagfmt

import (
	"fmt"
	"io"

	"basv2/internal/program"
)

// TokenOutput представляет токен в JSON
type TokenOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	Col  uint32 `json:"col"`
}

// LineTokensOutput holds the tokens of one numbered line.
type LineTokensOutput struct {
	Line   int           `json:"line"`
	Row    uint32        `json:"row"`
	Tokens []TokenOutput `json:"tokens"`
}

// BuildTokensOutput converts the program's lines in listing order.
func BuildTokensOutput(p *program.Program) []LineTokensOutput {
	out := make([]LineTokensOutput, 0, len(p.Lines))
	for _, ln := range p.Lines {
		toks := make([]TokenOutput, 0, len(ln.Tokens))
		for _, tok := range ln.Tokens {
			toks = append(toks, TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Col: tok.Col})
		}
		out = append(out, LineTokensOutput{Line: ln.Number, Row: ln.Row, Tokens: toks})
	}
	return out
}

// FormatTokensPretty выводит токены в человеко-читаемом формате
func FormatTokensPretty(w io.Writer, p *program.Program) error {
	for _, ln := range p.Lines {
		if _, err := fmt.Fprintf(w, "%d (row %d):\n", ln.Number, ln.Row); err != nil {
			return err
		}
		for i, tok := range ln.Tokens {
			if _, err := fmt.Fprintf(w, "%3d: %-8s %q\n", i+1, tok.Kind.String(), tok.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, p *program.Program) error {
	return encodeIndented(w, BuildTokensOutput(p))
}
