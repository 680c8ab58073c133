package lint

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// jsExtensions are the file extensions the runner considers lintable when
// expanding directories.
var jsExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
	".jsx": true,
}

// FileResult is the outcome of linting one source unit.
type FileResult struct {
	File        string       `json:"file"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Runner fans file linting out over a bounded worker pool. Files are
// independent: rules share only immutable catalogues, so no synchronization
// beyond result aggregation is needed.
type Runner struct {
	logger      *zap.Logger
	linter      *Linter
	concurrency int
	excludes    []glob.Glob
}

// NewRunner builds a runner. Exclude patterns are glob-matched against the
// slash-separated relative path of each candidate file; invalid patterns are
// rejected up front.
func NewRunner(logger *zap.Logger, linter *Linter, concurrency int, excludePatterns []string) (*Runner, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	excludes := make([]glob.Glob, 0, len(excludePatterns))
	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		excludes = append(excludes, g)
	}

	return &Runner{
		logger:      logger.Named("runner"),
		linter:      linter,
		concurrency: concurrency,
		excludes:    excludes,
	}, nil
}

// Run expands the given files and directories, lints each file, and returns
// the per-file results sorted by path. Files that produced no diagnostics are
// included with an empty slice so reporters can distinguish "clean" from
// "skipped".
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	runID := uuid.New().String()

	files, err := r.expand(paths)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Starting lint run",
		zap.String("runID", runID),
		zap.Int("files", len(files)),
		zap.Int("concurrency", r.concurrency),
	)

	var (
		mu      sync.Mutex
		results = make([]FileResult, 0, len(files))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, file := range files {
		file := file
		g.Go(func() error {
			diags, err := r.linter.LintFile(ctx, file)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, FileResult{File: file, Diagnostics: diags})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("lint run %s failed: %w", runID, err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })

	total := 0
	for _, res := range results {
		total += len(res.Diagnostics)
	}
	r.logger.Info("Lint run completed",
		zap.String("runID", runID),
		zap.Int("files", len(results)),
		zap.Int("diagnostics", total),
	)

	return results, nil
}

// expand resolves the argument paths to the set of lintable files,
// de-duplicated and with exclude patterns applied.
func (r *Runner) expand(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if seen[path] || r.excluded(path) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot stat %s: %w", path, err)
		}

		if !info.IsDir() {
			// Explicitly named files are linted regardless of extension.
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if name := d.Name(); name == "node_modules" || (strings.HasPrefix(name, ".") && p != path) {
					return filepath.SkipDir
				}
				return nil
			}
			if jsExtensions[filepath.Ext(p)] {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}

	return files, nil
}

func (r *Runner) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, g := range r.excludes {
		if g.Match(slashed) || g.Match(filepath.Base(slashed)) {
			return true
		}
	}
	return false
}
