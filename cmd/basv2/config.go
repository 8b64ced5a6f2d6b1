package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "basv2.toml"

// projectConfig is the content of basv2.toml.
type projectConfig struct {
	Check  checkConfig  `toml:"check"`
	Encode encodeConfig `toml:"encode"`
}

type checkConfig struct {
	Reachability   string `toml:"reachability"`
	NoReach        bool   `toml:"no_reach"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Format         string `toml:"format"`
	Jobs           int    `toml:"jobs"`
	Cache          bool   `toml:"cache"`
	CacheDir       string `toml:"cache_dir"`
}

type encodeConfig struct {
	LoadAddress    string `toml:"load_address"`
	InvertCase     bool   `toml:"invert_case"`
	AutoNumber     bool   `toml:"auto_number"`
	TrimSpaces     bool   `toml:"trim_spaces"`
	CollapseSpaces bool   `toml:"collapse_spaces"`
}

// projectManifest is a loaded basv2.toml. A nil manifest means no file was
// found; every lookup then reports "not set".
type projectManifest struct {
	Path   string
	Config projectConfig
	meta   toml.MetaData
}

// IsDefined reports whether key was present in the file.
func (m *projectManifest) IsDefined(key ...string) bool {
	return m != nil && m.meta.IsDefined(key...)
}

func findConfigFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadManifest loads explicit when set, otherwise searches upwards from
// the directory of input (or input itself when it is a directory).
func loadManifest(explicit, input string) (*projectManifest, error) {
	path := explicit
	if path == "" {
		start := "."
		if input != "" && input != "-" {
			start = input
			if st, err := os.Stat(input); err != nil || !st.IsDir() {
				start = filepath.Dir(input)
			}
		}
		found, ok, err := findConfigFile(start)
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (*projectManifest, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("check", "reachability") {
		switch cfg.Check.Reachability {
		case "strict", "relaxed":
		default:
			return nil, fmt.Errorf("%s: [check].reachability must be strict or relaxed, got %q", path, cfg.Check.Reachability)
		}
	}
	return &projectManifest{Path: path, Config: cfg, meta: meta}, nil
}
