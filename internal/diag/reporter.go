package diag

// Reporter: минимальный контракт получения диагностик от проходов.
type Reporter interface {
	Report(code Code, sev Severity, pos Pos, msg string, notes []Note)
}

// BagReporter stores reported diagnostics in a Bag.
type BagReporter struct {
	Bag *Bag
}

func (r *BagReporter) Report(code Code, sev Severity, pos Pos, msg string, notes []Note) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Pos:      pos,
		Message:  msg,
		Notes:    notes,
	})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, Pos, string, []Note) {}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, pos Pos, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag: Diagnostic{
			Severity: sev,
			Code:     code,
			Pos:      pos,
			Message:  msg,
		},
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, pos Pos, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, pos, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, pos Pos, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, pos, msg)
}

// ReportInfo is a shortcut for SevInfo diagnostics.
func ReportInfo(r Reporter, code Code, pos Pos, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, pos, msg)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(pos Pos, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Notes = append(b.diag.Notes, Note{Pos: pos, Msg: msg})
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted || b.reporter == nil {
		return
	}
	b.emitted = true
	d := b.diag
	b.reporter.Report(d.Code, d.Severity, d.Pos, d.Message, d.Notes)
}

// Diagnostic returns the diagnostic built so far.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}
