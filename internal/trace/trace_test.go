package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Error("phase level must not emit file spans")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopePass) {
		t.Error("detail level emits file spans only")
	}
	if !LevelDebug.ShouldEmit(ScopePass) {
		t.Error("debug level emits pass spans")
	}
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Error("off emits nothing")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeDriver, "check-dir", 0)
	file := Begin(tr, ScopeFile, "check", root.ID())
	file.WithExtra("path", "a.bas").WithExtra("errors", "0")
	Begin(tr, ScopePass, "pass:quotes", file.ID()).End("")
	file.End("ok")
	root.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ check-dir") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[2], "  ← check (ok) {errors=0, path=a.bas}") {
		t.Errorf("unexpected file end line %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "encode", 0).End("done")

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		if ev["name"] != "encode" || ev["scope"] != "driver" {
			t.Errorf("unexpected event %v", ev)
		}
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("off tracer must be disabled")
	}
	span := Begin(tr, ScopeDriver, "x", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Error("nop span must be inert")
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Error("expected Nop without tracer")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx = WithTracer(ctx, tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Error("tracer not propagated")
	}
	span := Begin(tr, ScopeDriver, "root", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Error("span id not propagated")
	}
}
