// Package expr type-checks BASIC expressions with a precedence-climbing
// recursive-descent parser. Values are never computed: each expression
// yields only a types.ExprType, and problems are reported as diagnostics.
//
// Precedence, lowest first: OR, AND, relational, additive, multiplicative
// (* / ^), unary (- NOT), primary.
package expr

import (
	"fmt"
	"strings"

	"basv2/internal/diag"
	"basv2/internal/token"
	"basv2/internal/types"
)

// Parser checks one expression slice.
type Parser struct {
	toks []string
	pos  int
	at   diag.Pos
	rep  diag.Reporter
}

// Check parses toks as one expression, reporting problems at pos, and
// returns the expression type. An empty slice is not an expression and
// yields Unknown without diagnostics.
func Check(toks []string, at diag.Pos, r diag.Reporter) types.ExprType {
	if len(toks) == 0 {
		return types.Unknown
	}
	p := &Parser{toks: MergeRelational(toks), at: at, rep: r}
	return p.ParseExpression()
}

// MergeRelational joins split two-character comparisons: "<" "=" becomes "<=".
func MergeRelational(toks []string) []string {
	out := make([]string, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if i+1 < len(toks) {
			switch pair := toks[i] + toks[i+1]; pair {
			case "<=", ">=", "<>":
				out = append(out, pair)
				i++
				continue
			}
		}
		out = append(out, toks[i])
	}
	return out
}

func (p *Parser) peek() (string, bool) {
	if p.pos < len(p.toks) {
		return p.toks[p.pos], true
	}
	return "", false
}

func (p *Parser) peekIs(s string) bool {
	t, ok := p.peek()
	return ok && strings.EqualFold(t, s)
}

func (p *Parser) advance() {
	if p.pos < len(p.toks) {
		p.pos++
	}
}

func (p *Parser) errorf(code diag.Code, format string, args ...any) {
	diag.ReportError(p.rep, code, p.at, fmt.Sprintf(format, args...)).Emit()
}

func (p *Parser) warnf(code diag.Code, format string, args ...any) {
	diag.ReportWarning(p.rep, code, p.at, fmt.Sprintf(format, args...)).Emit()
}

// ParseExpression parses a full expression and flags leftover tokens.
func (p *Parser) ParseExpression() types.ExprType {
	t := p.parseOr()
	if rest, ok := p.peek(); ok {
		p.warnf(diag.ExpUnexpectedToken, "Unexpected token '%s' after expression", rest)
	}
	return t
}

func (p *Parser) parseOr() types.ExprType {
	left := p.parseAnd()
	for p.peekIs("OR") {
		p.advance()
		right := p.parseAnd()
		left = p.logical(left, right, "OR")
	}
	return left
}

func (p *Parser) parseAnd() types.ExprType {
	left := p.parseRel()
	for p.peekIs("AND") {
		p.advance()
		right := p.parseRel()
		left = p.logical(left, right, "AND")
	}
	return left
}

// parseRel is non-associative and never checks operand types: BASIC
// compares strings with strings and numbers with numbers at run time only.
func (p *Parser) parseRel() types.ExprType {
	left := p.parseAdd()
	if t, ok := p.peek(); ok && token.IsRelational(t) {
		p.advance()
		p.parseAdd()
		return types.Numeric
	}
	return left
}

func (p *Parser) parseAdd() types.ExprType {
	left := p.parseMul()
	for {
		op, ok := p.peek()
		if !ok || (op != "+" && op != "-") {
			return left
		}
		p.advance()
		right := p.parseMul()
		switch {
		case op == "+" && left == types.String && right == types.String:
			left = types.String
		case left == types.Numeric && right == types.Numeric:
			left = types.Numeric
		case op == "+":
			p.errorf(diag.ExpTypeMismatch, "Type mismatch for '+' between %s and %s", left, right)
			left = types.Unknown
		default:
			p.errorf(diag.ExpOperandType, "'-' applied to non-numeric operand")
			left = types.Unknown
		}
	}
}

func (p *Parser) parseMul() types.ExprType {
	left := p.parseUnary()
	for {
		op, ok := p.peek()
		if !ok || (op != "*" && op != "/" && op != "^") {
			return left
		}
		p.advance()
		right := p.parseUnary()
		if left != types.Numeric || right != types.Numeric {
			p.errorf(diag.ExpOperandType, "Operator '%s' applied to non-numeric operand", op)
			left = types.Unknown
		} else {
			left = types.Numeric
		}
	}
}

func (p *Parser) parseUnary() types.ExprType {
	switch {
	case p.peekIs("-"):
		p.advance()
		if inner := p.parseUnary(); inner != types.Numeric {
			p.errorf(diag.ExpOperandType, "Unary '-' on non-numeric operand")
			return types.Unknown
		}
		return types.Numeric
	case p.peekIs("NOT"):
		p.advance()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() types.ExprType {
	tok, ok := p.peek()
	if !ok {
		p.errorf(diag.ExpEmpty, "Empty expression")
		return types.Unknown
	}
	upper := strings.ToUpper(tok)

	switch {
	case tok == "(":
		p.advance()
		inner := p.parseOr()
		if p.peekIs(")") {
			p.advance()
		} else {
			p.errorf(diag.ExpMissingParen, "Missing closing parenthesis in expression")
		}
		return inner
	case token.IsQuoted(tok):
		p.advance()
		return types.String
	case token.IsNumber(tok):
		p.advance()
		return types.Numeric
	case upper == "PI":
		p.advance()
		return types.Numeric
	case upper == "FN":
		return p.parseUserFunc()
	case token.IsIdentifier(tok):
		p.advance()
		return p.parseNameTail(upper)
	}

	p.warnf(diag.ExpUnrecognized, "Unrecognized token '%s' in expression", tok)
	p.advance()
	return types.Unknown
}

// parseNameTail handles what follows an identifier: a builtin call, an
// array reference or nothing.
func (p *Parser) parseNameTail(name string) types.ExprType {
	if !p.peekIs("(") {
		return types.OfVariable(name)
	}
	argc := p.parseArgs()
	if fi, ok := token.LookupFunc(name); ok {
		if argc < fi.MinArgs || (fi.MaxArgs >= 0 && argc > fi.MaxArgs) {
			p.errorf(diag.ExpArity, "%s expects %d-%d args, got %d", name, fi.MinArgs, fi.MaxArgs, argc)
		}
		return fi.Result
	}
	return types.OfVariable(name)
}

// parseUserFunc parses FN name(args); user functions are always numeric.
func (p *Parser) parseUserFunc() types.ExprType {
	p.advance()
	if t, ok := p.peek(); ok && token.IsIdentifier(t) {
		p.advance()
	}
	if p.peekIs("(") {
		p.parseArgs()
	}
	return types.Numeric
}

// parseArgs consumes "(" arg, ... ")" and returns the argument count.
func (p *Parser) parseArgs() int {
	p.advance()
	if p.peekIs(")") {
		p.advance()
		return 0
	}
	argc := 0
	for {
		p.parseOr()
		argc++
		switch {
		case p.peekIs(","):
			p.advance()
			continue
		case p.peekIs(")"):
			p.advance()
		default:
			p.errorf(diag.ExpMissingParen, "Function/array call missing closing )")
		}
		return argc
	}
}

func (p *Parser) logical(left, right types.ExprType, op string) types.ExprType {
	if left != types.Numeric || right != types.Numeric {
		p.errorf(diag.ExpOperandType, "Operator %s applied to non-numeric operand(s) %s/%s", op, left, right)
		return types.Unknown
	}
	return types.Numeric
}
