package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"basv2/internal/prg"
	"basv2/internal/source"
	"basv2/internal/trace"
)

// EncodeResult holds the PRG image of one listing.
type EncodeResult struct {
	Path   string
	File   *source.File
	Result prg.Result
}

// EncodeFile loads path and encodes it. Encoding itself never fails;
// only reading the listing can.
func EncodeFile(ctx context.Context, path string, opts prg.Options, sink ProgressSink) (*EncodeResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "encode", trace.CurrentSpan(ctx))
	span.WithExtra("path", path)
	defer span.End("")

	started := time.Now()
	emit(sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		emit(sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	file := fileSet.Get(id)

	emit(sink, Event{File: path, Stage: StageEncode, Status: StatusWorking})
	res := prg.Encode(file.Text(), opts)
	span.WithExtra("bytes", strconv.Itoa(len(res.Bytes))).
		WithExtra("lines", strconv.Itoa(len(res.Lines)))
	emit(sink, Event{File: path, Stage: StageEncode, Status: StatusDone, Elapsed: time.Since(started)})

	return &EncodeResult{Path: path, File: file, Result: res}, nil
}

// DefaultOutputPath replaces the listing's extension with .prg.
func DefaultOutputPath(in string) string {
	base := in
	lower := strings.ToLower(base)
	for _, ext := range []string{".bas.txt", ".bas", ".txt"} {
		if strings.HasSuffix(lower, ext) {
			base = base[:len(base)-len(ext)]
			break
		}
	}
	return base + ".prg"
}

// WriteOutput writes data to path through a temporary file in the same
// directory, so readers never observe a partial image.
func WriteOutput(path string, data []byte) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".basv2-*")
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
