package check

import (
	"basv2/internal/cfg"
	"basv2/internal/diag"
)

// checkReachability builds the control-flow graph and reports lines that
// no path from the entry line reaches.
func (s *session) checkReachability() {
	if s.prog.Len() == 0 {
		return
	}
	s.graph = cfg.Build(s.prog)
	s.unreach = s.graph.Unreachable()
	if s.opts.DisableReachability {
		return
	}
	for _, n := range s.unreach {
		ln, _ := s.prog.Line(n)
		if s.opts.ReachabilityMode == cfg.Relaxed && cfg.Inert(ln) {
			continue
		}
		diag.ReportWarning(s.rep, diag.FlwUnreachable, ln.Pos(), "Unreachable line (no control-flow path)").Emit()
	}
}
