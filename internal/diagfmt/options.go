package diagfmt

import (
	"os"
	"path/filepath"

	"basv2/internal/check"
	"basv2/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a CLI value onto a PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "auto", "":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

// TextOpts configures the plain text report.
type TextOpts struct {
	HideWarnings bool
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color      bool
	PathMode   PathMode
	Width      uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes  bool
	ShowSource bool
	// HideWarnings drops warnings but keeps them in the summary counts.
	HideWarnings bool
}

// JSONOpts configures JSON output of reports.
type JSONOpts struct {
	// IncludeDetails adds code, row and notes to every issue. The default
	// output holds exactly line, severity and message.
	IncludeDetails bool
	IncludeEdges   bool
	Max            int // обрезка вывода, не Bag
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
	// RunGUID identifies the run; a random one is generated when empty.
	RunGUID string
}

// Entry is one checked file handed to multi-file renderers.
type Entry struct {
	Path   string
	File   *source.File // may be nil when the file could not be loaded
	Report *check.Report
}

// DisplayPath renders the entry's path for mode; baseDir anchors relative
// paths and defaults to the working directory.
func (e Entry) DisplayPath(mode PathMode, baseDir string) string {
	path := e.Path
	if e.File != nil {
		if e.File.Flags&source.FileVirtual != 0 {
			return e.File.Path
		}
		path = e.File.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := source.AbsolutePath(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := source.RelativePath(path, baseDir); err == nil {
			return rel
		}
	case PathModeBasename:
		return source.BaseName(path)
	default:
		// длинные абсолютные пути сокращаем до имени файла
		if len(path) >= 40 && filepath.IsAbs(path) {
			return source.BaseName(path)
		}
	}
	return path
}
