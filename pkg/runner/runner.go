package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdbooklint/internal/logging"
	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// Runner lints files concurrently on one shared engine, then runs the
// collection rules over every document that loaded.
type Runner struct {
	// Engine is shared by all workers; it is safe for concurrent use.
	Engine *lint.LintEngine

	// Logger receives per-file failures at warn level.
	Logger *log.Logger
}

// New creates a Runner on engine that logs through the default logger.
func New(engine *lint.LintEngine) *Runner {
	return &Runner{Engine: engine, Logger: logging.Default()}
}

// job is one file's per-document pass.
type job struct {
	doc        *document.Document
	violations []lint.Violation
	err        error
}

// Run discovers files under opts.Paths and lints them. A file that cannot
// be read or linted is recorded on its outcome and does not stop the rest.
// The returned error is reserved for discovery failures and cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	cfg := opts.effectiveConfig()
	jobs := r.lintAll(ctx, files, opts.Jobs, cfg)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	// Collection rules need every document, so they run once the pool is done.
	docs := make([]*document.Document, 0, len(jobs))
	violations := make(map[string][]lint.Violation, len(jobs))
	for _, j := range jobs {
		if j.err == nil {
			docs = append(docs, j.doc)
			violations[j.doc.Path] = j.violations
		}
	}
	if err := r.Engine.MergeCollection(docs, cfg, violations); err != nil {
		r.Logger.Warn("collection rules failed", logging.FieldError, err)
		result.Errors = append(result.Errors, err)
	}

	for i, j := range jobs {
		outcome := FileOutcome{Path: displayPath(files[i]), Error: j.err}
		if j.err == nil {
			outcome.Path = j.doc.Path
			outcome.Violations = violations[j.doc.Path]
		}
		result.accumulate(outcome)
	}

	return result, nil
}

// lintAll runs the per-document pass over files with a worker pool. The
// returned slice is indexed like files.
func (r *Runner) lintAll(ctx context.Context, files []string, jobCount int, cfg *config.Config) []job {
	if jobCount <= 0 {
		jobCount = runtime.NumCPU()
	}
	jobCount = min(jobCount, len(files))

	out := make([]job, len(files))
	work := make(chan int)

	var wg sync.WaitGroup
	for range jobCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				out[i] = r.lintFile(files[i], cfg)
			}
		}()
	}

	go func() {
		defer close(work)
		for i := range files {
			select {
			case <-ctx.Done():
				return
			case work <- i:
			}
		}
	}()

	wg.Wait()

	for i := range out {
		if out[i].doc == nil && out[i].err == nil {
			out[i].err = fmt.Errorf("%s: %w", files[i], context.Cause(ctx))
		}
	}
	return out
}

func (r *Runner) lintFile(path string, cfg *config.Config) job {
	display := displayPath(path)

	content, err := os.ReadFile(path)
	if err != nil {
		r.Logger.Warn("cannot read file", logging.FieldPath, display, logging.FieldError, err)
		return job{err: fmt.Errorf("read %s: %w", display, err)}
	}

	doc, err := document.New(string(content), display)
	if err != nil {
		r.Logger.Warn("cannot load document", logging.FieldPath, display, logging.FieldError, err)
		return job{err: err}
	}

	violations, err := r.Engine.LintDocumentWithConfig(doc, cfg)
	if err != nil {
		r.Logger.Warn("lint failed", logging.FieldPath, display, logging.FieldError, err)
		return job{doc: doc, err: fmt.Errorf("lint %s: %w", display, err)}
	}
	return job{doc: doc, violations: violations}
}

// displayPath shortens an absolute path to one relative to the process
// working directory when the file lies below it. Rules that look at sibling
// files resolve against the same directory.
func displayPath(abs string) string {
	wd, err := os.Getwd()
	if err != nil {
		return abs
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return abs
	}
	return rel
}
