package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"basv2/internal/check"
	"basv2/internal/diag"
	"basv2/internal/observ"
	"basv2/internal/source"
	"basv2/internal/trace"
)

// DefaultExtensions are the listing suffixes CheckDir picks up.
var DefaultExtensions = []string{".bas", ".bas.txt"}

// CheckOptions configure file and directory checks.
type CheckOptions struct {
	Check      check.Options
	Jobs       int          // 0 = GOMAXPROCS
	Cache      *ReportCache // nil disables caching
	Progress   ProgressSink
	Timings    bool
	Extensions []string // nil = DefaultExtensions
}

// FileResult is the outcome of checking one listing.
type FileResult struct {
	Path    string
	File    *source.File // nil when the file could not be loaded
	Report  *check.Report
	LoadErr error
	Cached  bool
	Timing  *observ.Report
}

// CheckFile loads and validates a single listing. A load failure is
// returned as an error; use CheckDir to fold load failures into reports.
func CheckFile(ctx context.Context, path string, opts CheckOptions) (*FileResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return checkLoaded(ctx, fileSet.Get(id), opts), nil
}

// CheckSource validates an in-memory listing, e.g. read from stdin.
func CheckSource(ctx context.Context, name string, content []byte, opts CheckOptions) *FileResult {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, content)
	return checkLoaded(ctx, fileSet.Get(id), opts)
}

func checkLoaded(ctx context.Context, file *source.File, opts CheckOptions) *FileResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "check", trace.CurrentSpan(ctx))
	span.WithExtra("path", file.Path)
	span.WithExtra("lines", strconv.FormatUint(uint64(file.LineCount()), 10))
	started := time.Now()
	emit(opts.Progress, Event{File: file.Path, Stage: StageCheck, Status: StatusWorking})

	res := &FileResult{Path: file.Path, File: file}
	key := CacheKey(file.Hash, opts.Check)
	if cached, ok, err := opts.Cache.Get(key); err == nil && ok {
		res.Report = cached
		res.Cached = true
	} else if err != nil {
		trace.Point(tracer, trace.ScopeFile, "cache-error", err.Error(), span.ID())
	}

	if res.Report == nil {
		var timer *observ.Timer
		if opts.Timings {
			timer = observ.NewTimer()
		}
		copts := opts.Check
		copts.PassHook = passHook(tracer, span.ID(), timer, opts.Check.PassHook)
		res.Report = check.Validate(file.Text(), copts)
		if timer != nil {
			report := timer.Report()
			res.Timing = &report
		}
		if err := opts.Cache.Put(key, res.Report); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache-error", err.Error(), span.ID())
		}
	}

	status := StatusDone
	if res.Report.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: file.Path, Stage: StageCheck, Status: status, Elapsed: time.Since(started)})
	span.WithExtra("errors", strconv.Itoa(res.Report.Summary.Errors)).
		WithExtra("warnings", strconv.Itoa(res.Report.Summary.Warnings)).
		WithExtra("cached", strconv.FormatBool(res.Cached))
	span.End("")
	return res
}

// passHook chains per-pass trace spans, timer phases and a caller hook.
func passHook(tracer trace.Tracer, parent uint64, timer *observ.Timer, next func(string) func()) func(string) func() {
	if !tracer.Enabled() && timer == nil && next == nil {
		return nil
	}
	return func(name string) func() {
		span := trace.Begin(tracer, trace.ScopePass, "pass:"+name, parent)
		idx := -1
		if timer != nil {
			idx = timer.Begin(name)
		}
		var done func()
		if next != nil {
			done = next(name)
		}
		return func() {
			if done != nil {
				done()
			}
			if timer != nil {
				timer.End(idx, "")
			}
			span.End("")
		}
	}
}

// ListFiles returns all listings under dir with one of exts, sorted.
func ListFiles(dir string, exts []string) ([]string, error) {
	if exts == nil {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		lower := strings.ToLower(d.Name())
		for _, ext := range exts {
			if strings.HasSuffix(lower, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// CheckDir validates every listing under dir in parallel. Results follow
// the sorted file order. A file that fails to load gets a report holding
// a single IO6001 error; the run itself only fails on cancellation or
// when dir cannot be walked.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*source.FileSet, []FileResult, error) {
	files, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "check-dir", trace.CurrentSpan(ctx))
	span.WithExtra("files", strconv.Itoa(len(files)))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	// FileSet не потокобезопасен: загружаем всё заранее, последовательно.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				results[i] = loadFailure(path, loadErr)
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			results[i] = *checkLoaded(gctx, fileSet.Get(fileIDs[path]), opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func loadFailure(path string, err error) FileResult {
	bag := diag.NewBag(0)
	diag.ReportError(&diag.BagReporter{Bag: bag}, diag.IOLoadFileError, diag.Global,
		"failed to load file: "+err.Error()).Emit()
	return FileResult{
		Path:    path,
		LoadErr: err,
		Report: &check.Report{
			Diagnostics:  bag.Items(),
			Summary:      check.Summary{Errors: 1},
			Unreachable:  []int{},
			Edges:        map[int][]int{},
			GosubTargets: []int{},
		},
	}
}
