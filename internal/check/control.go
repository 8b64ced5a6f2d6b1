package check

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"basv2/internal/diag"
	"basv2/internal/program"
	"basv2/internal/token"
)

// checkIfThen requires a THEN somewhere after every IF outside comments.
func (s *session) checkIfThen() {
	for _, ln := range s.prog.Lines {
		code := program.Upper(ln.Code())
		for i, t := range code {
			if t == "IF" && !slices.Contains(code[i+1:], "THEN") {
				diag.ReportError(s.rep, diag.CtlIfWithoutThen, ln.Pos(), "IF without THEN").Emit()
				break
			}
		}
	}
}

type forFrame struct {
	line *program.Line
	name string // empty when FOR had no recognisable variable
}

// checkForNext matches FOR/NEXT with a stack, walking lines in line-number
// order.
func (s *session) checkForNext() {
	var stack []forFrame
	for _, ln := range s.prog.Ordered() {
		code := ln.Code()
		upper := program.Upper(code)
		for i := 0; i < len(upper); i++ {
			switch upper[i] {
			case "FOR":
				f := forFrame{line: ln}
				if i+1 < len(code) && token.IsLoopVar(code[i+1]) {
					f.name = upper[i+1]
				}
				stack = append(stack, f)
			case "NEXT":
				names := nextVars(code[i+1:])
				if len(names) == 0 {
					names = []string{""}
				}
				for _, name := range names {
					if len(stack) == 0 {
						diag.ReportError(s.rep, diag.CtlNextWithoutFor, ln.Pos(), "NEXT without matching FOR").Emit()
						continue
					}
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					if name != "" && top.name != "" && name != top.name {
						diag.ReportWarning(s.rep, diag.CtlNextMismatch, ln.Pos(),
							fmt.Sprintf("NEXT variable %s does not match FOR variable %s (FOR at line %d)",
								name, top.name, top.line.Number)).
							WithNote(top.line.Pos(), "loop opened here").
							Emit()
					}
				}
			}
		}
	}
	if len(stack) == 0 {
		return
	}
	parts := make([]string, len(stack))
	for i, f := range stack {
		name := f.name
		if name == "" {
			name = "?"
		}
		parts[i] = fmt.Sprintf("%s@%d", name, f.line.Number)
	}
	rb := diag.ReportError(s.rep, diag.CtlUnclosedFor, diag.Global,
		"Unclosed FOR loops: "+strings.Join(parts, ", "))
	for _, f := range stack {
		rb.WithNote(f.line.Pos(), "loop opened here")
	}
	rb.Emit()
}

// nextVars reads the comma-separated variable list after NEXT.
func nextVars(rest []string) []string {
	var names []string
	for k := 0; k < len(rest); k++ {
		if rest[k] == "," {
			continue
		}
		if !token.IsLoopVar(rest[k]) {
			break
		}
		names = append(names, strings.ToUpper(rest[k]))
		if k+1 >= len(rest) || rest[k+1] != "," {
			break
		}
	}
	return names
}

// jump is a GOTO/GOSUB occurrence inside one statement.
type jump struct {
	kw    string // GOTO or GOSUB
	at    int    // index of the keyword
	next  int    // index of the first token after the keyword
	viaOn bool
	on    int // index of the owning ON when viaOn
}

// findJumps lists jumps of a statement; "GO TO" counts as GOTO.
func findJumps(upper []string) []jump {
	var out []jump
	on := -1
	for i := 0; i < len(upper); i++ {
		switch upper[i] {
		case "ON":
			on = i
		case "GOTO", "GOSUB":
			out = append(out, jump{kw: upper[i], at: i, next: i + 1, viaOn: on >= 0, on: on})
			on = -1
		case "GO":
			if i+1 < len(upper) && upper[i+1] == "TO" {
				out = append(out, jump{kw: "GOTO", at: i, next: i + 2, viaOn: on >= 0, on: on})
				on = -1
				i++
			}
		}
	}
	return out
}

func lineNumber(s string) (int, bool) {
	if !token.IsDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// checkJumps validates targets of plain GOTO/GOSUB. ON lists are checked
// by checkOnJumps.
func (s *session) checkJumps() {
	for _, ln := range s.prog.Lines {
		for _, stmt := range ln.Statements() {
			upper := program.Upper(stmt)
			for _, j := range findJumps(upper) {
				if j.viaOn {
					continue
				}
				if j.next >= len(stmt) {
					diag.ReportError(s.rep, diag.CtlJumpNoTarget, ln.Pos(),
						fmt.Sprintf("%s without target line", j.kw)).Emit()
					continue
				}
				target := stmt[j.next]
				n, ok := lineNumber(target)
				if !ok {
					diag.ReportError(s.rep, diag.CtlJumpBadTarget, ln.Pos(),
						fmt.Sprintf("%s target '%s' is not a line number", j.kw, target)).Emit()
					continue
				}
				if !s.prog.Has(n) {
					diag.ReportWarning(s.rep, diag.CtlJumpMissingLine, ln.Pos(),
						fmt.Sprintf("%s target line %d does not exist", j.kw, n)).Emit()
				}
			}
		}
	}
}

// onTargets returns the target list after an ON jump, commas dropped.
func onTargets(stmt []string, j jump) []string {
	out := make([]string, 0, len(stmt)-j.next)
	for _, t := range stmt[j.next:] {
		if t != "," {
			out = append(out, t)
		}
	}
	return out
}

func (s *session) checkOnJumps() {
	for _, ln := range s.prog.Lines {
		for _, stmt := range ln.Statements() {
			upper := program.Upper(stmt)
			jumps := findJumps(upper)
			for i, t := range upper {
				if t != "ON" {
					continue
				}
				j, ok := onJump(jumps, i)
				if !ok {
					diag.ReportError(s.rep, diag.CtlOnWithoutJump, ln.Pos(), "ON without GOTO/GOSUB").Emit()
					continue
				}
				s.checkOnTargets(ln, stmt, i, j)
			}
		}
	}
}

func onJump(jumps []jump, on int) (jump, bool) {
	for _, j := range jumps {
		if j.viaOn && j.on == on {
			return j, true
		}
	}
	return jump{}, false
}

func (s *session) checkOnTargets(ln *program.Line, stmt []string, on int, j jump) {
	targets := onTargets(stmt, j)
	if len(targets) == 0 {
		diag.ReportError(s.rep, diag.CtlOnNoTargets, ln.Pos(),
			fmt.Sprintf("ON %s without line targets", j.kw)).Emit()
		return
	}
	for _, t := range targets {
		n, ok := lineNumber(t)
		if !ok {
			diag.ReportError(s.rep, diag.CtlJumpBadTarget, ln.Pos(),
				fmt.Sprintf("ON %s target '%s' not a number", j.kw, t)).Emit()
			continue
		}
		if !s.prog.Has(n) {
			diag.ReportWarning(s.rep, diag.CtlJumpMissingLine, ln.Pos(),
				fmt.Sprintf("ON %s target line %d does not exist", j.kw, n)).Emit()
		}
	}
	selector := stmt[on+1 : j.at]
	if len(selector) != 1 {
		return
	}
	if sel, ok := lineNumber(selector[0]); ok && sel > len(targets) {
		diag.ReportWarning(s.rep, diag.CtlOnSelectorRange, ln.Pos(),
			fmt.Sprintf("ON %s selector %d exceeds target list length %d", j.kw, sel, len(targets))).Emit()
	}
}

// collectGosubTargets gathers distinct GOSUB targets, including ON GOSUB
// lists, ignoring comments.
func (s *session) collectGosubTargets() {
	seen := map[int]bool{}
	for _, ln := range s.prog.Lines {
		for _, stmt := range ln.Statements() {
			for _, j := range findJumps(program.Upper(stmt)) {
				if j.kw != "GOSUB" {
					continue
				}
				var cands []string
				switch {
				case j.viaOn:
					cands = onTargets(stmt, j)
				case j.next < len(stmt):
					cands = stmt[j.next : j.next+1]
				}
				for _, c := range cands {
					if n, ok := lineNumber(c); ok && !seen[n] {
						seen[n] = true
						s.targets = append(s.targets, n)
					}
				}
			}
		}
	}
	slices.Sort(s.targets)
}

// checkGosubReturn requires a RETURN on some line numbered at or after
// every GOSUB target, whether or not the target line exists.
func (s *session) checkGosubReturn() {
	s.collectGosubTargets()
	ordered := s.prog.Ordered()
	for _, tgt := range s.targets {
		found := false
		for _, ln := range ordered {
			if ln.Number >= tgt && hasReturn(ln) {
				found = true
				break
			}
		}
		if !found {
			diag.ReportError(s.rep, diag.CtlMissingReturn, diag.Global,
				fmt.Sprintf("Missing RETURN for GOSUB target line %d", tgt)).Emit()
		}
	}
	if len(s.targets) > 0 {
		return
	}
	for _, ln := range s.prog.Lines {
		if hasReturn(ln) {
			diag.ReportWarning(s.rep, diag.CtlStrayReturn, ln.Pos(),
				"RETURN appears but no GOSUB targets found").Emit()
		}
	}
}

func hasReturn(ln *program.Line) bool {
	return slices.ContainsFunc(ln.Code(), func(t string) bool {
		return strings.EqualFold(t, "RETURN")
	})
}
