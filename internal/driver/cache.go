package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"basv2/internal/cfg"
	"basv2/internal/check"
	"basv2/internal/diag"
)

// Current schema version - increment when cachedReport format changes.
const reportCacheSchema uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// ReportCache хранит отчёты проверки на диске, ключ - хеш содержимого и опций.
// Thread-safe for concurrent access.
type ReportCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedReport struct {
	Schema       uint16
	Diagnostics  []diag.Diagnostic
	Errors       int
	Warnings     int
	Unreachable  []int
	Edges        map[int][]int
	GosubTargets []int
	Mode         uint8
}

// OpenReportCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenReportCache(app string) (*ReportCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewReportCache(filepath.Join(base, app))
}

// NewReportCache opens a cache rooted at dir, creating it if needed.
func NewReportCache(dir string) (*ReportCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &ReportCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *ReportCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKey identifies a report by listing content and the options that
// affect it. PassHook is ignored.
func CacheKey(contentHash [32]byte, opts check.Options) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "basv2-report/%d/", reportCacheSchema)
	h.Write(contentHash[:])
	fmt.Fprintf(h, "/%t/%d/%d", opts.DisableReachability, opts.ReachabilityMode, opts.MaxDiagnostics)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *ReportCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "reports", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a report to the disk cache.
func (c *ReportCache) Put(key Digest, r *check.Report) error {
	if c == nil || r == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	payload := cachedReport{
		Schema:       reportCacheSchema,
		Diagnostics:  r.Diagnostics,
		Errors:       r.Summary.Errors,
		Warnings:     r.Summary.Warnings,
		Unreachable:  r.Unreachable,
		Edges:        r.Edges,
		GosubTargets: r.GosubTargets,
		Mode:         uint8(r.ReachabilityMode),
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads a report from the disk cache. Entries written by another
// schema version count as misses.
func (c *ReportCache) Get(key Digest) (*check.Report, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachedReport
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != reportCacheSchema {
		return nil, false, nil
	}

	r := &check.Report{
		Diagnostics:      payload.Diagnostics,
		Summary:          check.Summary{Errors: payload.Errors, Warnings: payload.Warnings},
		Unreachable:      payload.Unreachable,
		Edges:            payload.Edges,
		GosubTargets:     payload.GosubTargets,
		ReachabilityMode: cfg.Mode(payload.Mode),
	}
	if r.Diagnostics == nil {
		r.Diagnostics = []diag.Diagnostic{}
	}
	if r.Unreachable == nil {
		r.Unreachable = []int{}
	}
	if r.Edges == nil {
		r.Edges = map[int][]int{}
	}
	if r.GosubTargets == nil {
		r.GosubTargets = []int{}
	}
	return r, true, nil
}

// DropAll invalidates the cache.
func (c *ReportCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим целиком
	reports := filepath.Join(c.dir, "reports")
	old := reports + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(reports, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
