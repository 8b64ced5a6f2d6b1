package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "12 lines")
	tm.Measure("quotes", func() {})
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "load" || r.Phases[0].Note != "12 lines" {
		t.Errorf("unexpected phase %+v", r.Phases[0])
	}
	s := tm.Summary()
	if !strings.Contains(s, "// 12 lines") || !strings.Contains(s, "total") {
		t.Errorf("unexpected summary:\n%s", s)
	}
}

func TestTimerEmpty(t *testing.T) {
	r := NewTimer().Report()
	if len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Errorf("unexpected report %+v", r)
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Measure("file", func() {})
		}()
	}
	wg.Wait()
	if got := len(tm.Report().Phases); got != 8 {
		t.Errorf("expected 8 phases, got %d", got)
	}
}
