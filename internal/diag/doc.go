// Package diag defines the diagnostic model shared by the validator, the
// PRG encoder and the driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Pos – BASIC line number plus the physical row of the listing. Program-wide
//     findings use Global (Line == NoLine).
//   - Message – human oriented text; keep it short and actionable.
//   - Notes – optional secondary positions, e.g. the first definition of a
//     duplicated line or the FOR that a NEXT closed.
//
// # Emitting diagnostics
//
// Passes use a diag.Reporter to decouple emission from storage. A pass builds
// a ReportBuilder via ReportError/ReportWarning/ReportInfo, chains WithNote and
// calls Emit. BagReporter aggregates diagnostics into a Bag, which keeps
// insertion order: the order passes run in is part of the output contract.
//
// Package diag does no IO. Rendering lives in internal/diagfmt.
package diag
