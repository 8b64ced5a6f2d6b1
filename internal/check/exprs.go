package check

import (
	"fmt"
	"slices"

	"basv2/internal/diag"
	"basv2/internal/expr"
	"basv2/internal/program"
	"basv2/internal/token"
	"basv2/internal/types"
)

// exprSlice is a token run that must parse as one expression. assign names
// the variable the value is stored into, if any.
type exprSlice struct {
	toks   []string
	assign string
}

// checkExpressions type-checks IF conditions, FOR bounds and assignment
// right-hand sides, and validates assigned variable names.
func (s *session) checkExpressions() {
	for _, ln := range s.prog.Lines {
		for _, stmt := range ln.Statements() {
			if len(stmt) == 0 {
				continue
			}
			s.checkAssignTarget(ln, stmt)
			for _, sl := range expressionSlices(stmt) {
				t := expr.Check(sl.toks, ln.Pos(), s.rep)
				if sl.assign == "" || !t.Known() || !token.IsIdentifier(sl.assign) {
					continue
				}
				if want := types.OfVariable(sl.assign); want != t {
					diag.ReportError(s.rep, diag.ExpAssignMismatch, ln.Pos(),
						fmt.Sprintf("Type mismatch in assignment to '%s'", sl.assign)).Emit()
				}
			}
		}
	}
}

// assignTarget returns the variable of LET v = ... or v = ....
func assignTarget(stmt []string, upper0 string) (string, bool) {
	switch {
	case upper0 == "LET" && len(stmt) >= 3 && stmt[2] == "=":
		return stmt[1], true
	case upper0 != "LET" && len(stmt) >= 3 && stmt[1] == "=":
		return stmt[0], true
	}
	return "", false
}

func (s *session) checkAssignTarget(ln *program.Line, stmt []string) {
	name, ok := assignTarget(stmt, program.Upper(stmt[:1])[0])
	if !ok || !token.StartsWithLetter(name) || token.IsIdentifier(name) {
		return
	}
	diag.ReportError(s.rep, diag.ExpInvalidVariable, ln.Pos(),
		fmt.Sprintf("Invalid variable name '%s'", name)).Emit()
}

// expressionSlices extracts expression token runs from one statement:
// IF cond THEN, FOR v = a TO b [STEP c], LET v = e and v = e.
func expressionSlices(stmt []string) []exprSlice {
	upper := program.Upper(stmt)
	var out []exprSlice

	iIf, iThen := slices.Index(upper, "IF"), slices.Index(upper, "THEN")
	if iIf >= 0 && iThen > iIf+1 {
		out = append(out, exprSlice{toks: stmt[iIf+1 : iThen]})
	}

	if len(stmt) >= 4 && upper[0] == "FOR" {
		iEq, iTo := slices.Index(stmt, "="), slices.Index(upper, "TO")
		if iEq >= 0 && iTo >= 0 {
			if iTo > iEq+1 {
				out = append(out, exprSlice{toks: stmt[iEq+1 : iTo]})
			}
			if iStep := slices.Index(upper, "STEP"); iStep >= 0 {
				if iStep > iTo+1 {
					out = append(out, exprSlice{toks: stmt[iTo+1 : iStep]})
				}
				if iStep+1 < len(stmt) {
					out = append(out, exprSlice{toks: stmt[iStep+1:]})
				}
			} else if iTo+1 < len(stmt) {
				out = append(out, exprSlice{toks: stmt[iTo+1:]})
			}
		}
	}

	switch {
	case upper[0] == "LET":
		if len(stmt) >= 4 && stmt[2] == "=" {
			out = append(out, exprSlice{toks: stmt[3:], assign: stmt[1]})
		}
	case len(stmt) > 2 && stmt[1] == "=":
		out = append(out, exprSlice{toks: stmt[2:], assign: stmt[0]})
	}
	return out
}
