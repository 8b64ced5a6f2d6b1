// Package trace records what the analyzer is doing while it runs.
//
// Tracing is off by default. Enable it from the command line:
//
//	basv2 check --trace=- --trace-level=detail prog.bas
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelPhase: driver operations only
//   - LevelDetail: adds one span per checked or encoded file
//   - LevelDebug: adds one span per validation pass
//
// # Context propagation
//
// Tracers travel through the driver via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "check", 0)
//	defer span.End("")
package trace
