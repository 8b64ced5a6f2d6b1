// Package cfg builds the line-level control-flow graph of a program and
// finds lines no execution path reaches.
package cfg

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"basv2/internal/program"
	"basv2/internal/token"
)

// Mode selects how unreachable lines are reported.
type Mode uint8

const (
	// Strict reports every unreachable line.
	Strict Mode = iota
	// Relaxed skips lines that hold no executable statement (blank, REM, DATA).
	Relaxed
)

func (m Mode) String() string {
	if m == Relaxed {
		return "relaxed"
	}
	return "strict"
}

// ParseMode parses "strict" or "relaxed".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "strict", "":
		return Strict, nil
	case "relaxed":
		return Relaxed, nil
	}
	return Strict, fmt.Errorf("unknown reachability mode %q (want strict or relaxed)", s)
}

// Graph holds successor edges per line number. Targets may name lines that
// do not exist; traversal ignores them.
type Graph struct {
	Edges map[int][]int
	order []int
}

// Build computes successor edges for every distinct line of p.
func Build(p *program.Program) *Graph {
	g := &Graph{
		Edges: make(map[int][]int, p.Len()),
		order: p.Numbers(),
	}
	for _, ln := range p.Ordered() {
		edges, terminates := lineEdges(ln)
		if !terminates {
			if next, ok := p.Next(ln.Number); ok {
				edges = append(edges, next)
			}
		}
		g.Edges[ln.Number] = edges
	}
	return g
}

func lineEdges(ln *program.Line) (edges []int, terminates bool) {
	edges = []int{}
	for _, stmt := range ln.Statements() {
		if len(stmt) == 0 {
			continue
		}
		upper := program.Upper(stmt)

		if i := slices.Index(upper, "THEN"); i >= 0 && slices.Contains(upper[:i], "IF") && i+1 < len(stmt) {
			if n, ok := lineNumber(stmt[i+1]); ok {
				edges = append(edges, n)
			}
		}

		onStmt := false
		for i := 0; i < len(upper); i++ {
			if upper[i] == "ON" {
				onStmt = true
				continue
			}
			kw, next := jumpAt(upper, i)
			if kw == "" {
				continue
			}
			if onStmt {
				for _, t := range targetList(stmt[next:]) {
					if n, ok := lineNumber(t); ok {
						edges = append(edges, n)
					}
				}
				onStmt = false
			} else if next < len(stmt) {
				if n, ok := lineNumber(stmt[next]); ok {
					edges = append(edges, n)
				}
			}
			i = next - 1
		}

		if kw, _ := jumpAt(upper, 0); kw == "GOTO" {
			return edges, true
		}
		if upper[0] == "END" || upper[0] == "STOP" {
			return edges, true
		}
	}
	return edges, false
}

// jumpAt recognises GOTO, GOSUB and the spaced form GO TO at position i and
// returns the keyword and the index just past it.
func jumpAt(upper []string, i int) (kw string, next int) {
	switch upper[i] {
	case "GOTO", "GOSUB":
		return upper[i], i + 1
	case "GO":
		if i+1 < len(upper) && upper[i+1] == "TO" {
			return "GOTO", i + 2
		}
	}
	return "", i + 1
}

// targetList returns ON targets: tokens up to the end of the statement with
// commas dropped.
func targetList(toks []string) []string {
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		if t != "," {
			out = append(out, t)
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

// Reachable runs a depth-first traversal from entry over edges whose
// targets exist.
func (g *Graph) Reachable(entry int) map[int]bool {
	visited := make(map[int]bool, len(g.order))
	if _, ok := g.Edges[entry]; !ok {
		return visited
	}
	stack := []int{entry}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			continue
		}
		visited[n] = true
		for _, t := range g.Edges[n] {
			if _, exists := g.Edges[t]; exists && !visited[t] {
				stack = append(stack, t)
			}
		}
	}
	return visited
}

// Unreachable returns, in ascending order, every line not reachable from
// the lowest-numbered line.
func (g *Graph) Unreachable() []int {
	out := []int{}
	if len(g.order) == 0 {
		return out
	}
	seen := g.Reachable(g.order[0])
	for _, n := range g.order {
		if !seen[n] {
			out = append(out, n)
		}
	}
	return out
}

// Inert reports whether a line holds no executable statement: it is empty,
// a REM, or only DATA.
func Inert(ln *program.Line) bool {
	for _, stmt := range ln.Statements() {
		if len(stmt) == 0 {
			continue
		}
		if !strings.EqualFold(stmt[0], "DATA") {
			return false
		}
	}
	return true
}
