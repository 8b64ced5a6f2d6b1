// Package check validates a BASIC V2 listing. Validate builds a fresh
// session per call: every pass is best-effort and independent, so one
// malformed line never hides findings on the rest of the program.
package check

import (
	"slices"

	"basv2/internal/cfg"
	"basv2/internal/diag"
	"basv2/internal/program"
)

// Options tune a validation run.
type Options struct {
	// DisableReachability drops "Unreachable line" warnings. Unreachable
	// lines are still computed and listed in the report.
	DisableReachability bool
	ReachabilityMode    cfg.Mode
	// MaxDiagnostics caps the report; 0 means unlimited.
	MaxDiagnostics int
	// PassHook, if set, is called before each step ("load" and every
	// pass); the returned func is called when the step finishes.
	PassHook func(name string) func()
}

// Summary counts diagnostics by severity.
type Summary struct {
	Errors   int
	Warnings int
}

// Report is the result of Validate.
type Report struct {
	Diagnostics      []diag.Diagnostic
	Summary          Summary
	Unreachable      []int
	Edges            map[int][]int
	GosubTargets     []int
	ReachabilityMode cfg.Mode
	// Program is nil for reports restored from the driver's cache.
	Program *program.Program
}

// HasErrors reports whether any error diagnostic was produced.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// session is the mutable state of one Validate call.
type session struct {
	opts    Options
	prog    *program.Program
	bag     *diag.Bag
	rep     diag.Reporter
	targets []int // distinct GOSUB targets, ascending
	graph   *cfg.Graph
	unreach []int
}

// Validate checks src and returns the full report.
func Validate(src string, opts Options) *Report {
	bag := diag.NewBag(opts.MaxDiagnostics)
	s := &session{
		opts: opts,
		bag:  bag,
		rep:  &diag.BagReporter{Bag: bag},
	}
	done := s.hook("load")
	s.prog = program.Load(src, s.rep)
	done()
	for _, pass := range s.passes() {
		done := s.hook(pass.name)
		pass.run(s)
		done()
	}
	return s.report()
}

func (s *session) hook(name string) func() {
	if s.opts.PassHook == nil {
		return func() {}
	}
	if done := s.opts.PassHook(name); done != nil {
		return done
	}
	return func() {}
}

type pass struct {
	name string
	run  func(*session)
}

// passes lists the checks in report order.
func (s *session) passes() []pass {
	return []pass{
		{"quotes", (*session).checkQuotes},
		{"parens", (*session).checkParens},
		{"keywords", (*session).checkKeywords},
		{"if-then", (*session).checkIfThen},
		{"for-next", (*session).checkForNext},
		{"jumps", (*session).checkJumps},
		{"on-jumps", (*session).checkOnJumps},
		{"expressions", (*session).checkExpressions},
		{"gosub-return", (*session).checkGosubReturn},
		{"reachability", (*session).checkReachability},
	}
}

// PassNames returns the pass names in execution order.
func PassNames() []string {
	ps := (&session{}).passes()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.name
	}
	return names
}

func (s *session) report() *Report {
	items := slices.Clone(s.bag.Items())
	edges := map[int][]int{}
	if s.graph != nil {
		edges = s.graph.Edges
	}
	unreach := s.unreach
	if unreach == nil {
		unreach = []int{}
	}
	targets := s.targets
	if targets == nil {
		targets = []int{}
	}
	return &Report{
		Diagnostics: items,
		Summary: Summary{
			Errors:   s.bag.Count(diag.SevError),
			Warnings: s.bag.Count(diag.SevWarning),
		},
		Unreachable:      unreach,
		Edges:            edges,
		GosubTargets:     targets,
		ReachabilityMode: s.opts.ReachabilityMode,
		Program:          s.prog,
	}
}
