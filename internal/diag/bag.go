package diag

// Bag collects diagnostics in insertion order. The limit caps the stored
// items only: per-severity totals include diagnostics dropped by the cap.
type Bag struct {
	items  []Diagnostic
	max    int
	totals [SevError + 1]int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means no limit.
func NewBag(max int) *Bag {
	capacity := max
	if capacity <= 0 || capacity > 64 {
		capacity = 64
	}
	return &Bag{
		items: make([]Diagnostic, 0, capacity),
		max:   max,
	}
}

// Add учитывает диагностику в счётчиках и сохраняет её, если лимит не достигнут.
// Возвращает false, если диагностика не сохранена.
func (b *Bag) Add(d Diagnostic) bool {
	if int(d.Severity) < len(b.totals) {
		b.totals[d.Severity]++
	}
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any error was added, stored or not.
func (b *Bag) HasErrors() bool {
	return b.totals[SevError] > 0
}

// Count returns how many diagnostics of exactly sev were added, including
// those dropped by the limit.
func (b *Bag) Count(sev Severity) int {
	if int(sev) >= len(b.totals) {
		return 0
	}
	return b.totals[sev]
}

// Len returns the number of stored diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}
