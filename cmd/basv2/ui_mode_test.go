package main

import "testing"

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{" ON ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"fancy", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("readUIMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShouldUseTUIExplicit(t *testing.T) {
	if !shouldUseTUI(uiModeOn) {
		t.Error("on must enable the UI")
	}
	if shouldUseTUI(uiModeOff) {
		t.Error("off must disable the UI")
	}
}
