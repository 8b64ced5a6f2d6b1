package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFileName), "[check]\nformat = \"json\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findConfigFile(nested)
	if err != nil {
		t.Fatalf("findConfigFile: %v", err)
	}
	if !ok {
		t.Fatal("expected config to be found")
	}
	if path != filepath.Join(root, configFileName) {
		t.Errorf("path = %q", path)
	}
}

func TestLoadManifestFromInputFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFileName), "[check]\nreachability = \"relaxed\"\njobs = 3\n")
	input := filepath.Join(root, "games", "maze.bas")
	writeFile(t, input, "10 END\n")

	m, err := loadManifest("", input)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if m == nil {
		t.Fatal("expected manifest")
	}
	if !m.IsDefined("check", "reachability") || m.Config.Check.Reachability != "relaxed" {
		t.Errorf("reachability not loaded: %+v", m.Config.Check)
	}
	if m.IsDefined("check", "format") {
		t.Error("format should not be defined")
	}
	if m.Config.Check.Jobs != 3 {
		t.Errorf("jobs = %d, want 3", m.Config.Check.Jobs)
	}
}

func TestLoadManifestExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "[encode]\nload_address = \"$C000\"\ninvert_case = true\n")

	m, err := loadManifest(path, "-")
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if m.Path != path || m.Config.Encode.LoadAddress != "$C000" || !m.Config.Encode.InvertCase {
		t.Errorf("unexpected manifest %+v", m)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "[check]\nreach = \"strict\"\n", "unknown keys: check.reach"},
		{"bad reachability", "[check]\nreachability = \"lenient\"\n", "must be strict or relaxed"},
		{"syntax", "[check\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), configFileName)
			writeFile(t, path, tt.content)
			_, err := loadConfigFile(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestNilManifestIsUndefined(t *testing.T) {
	var m *projectManifest
	if m.IsDefined("check", "format") {
		t.Error("nil manifest must report keys as undefined")
	}
	if m.configEncode() != (encodeConfig{}) {
		t.Error("nil manifest must yield zero encode config")
	}
}
