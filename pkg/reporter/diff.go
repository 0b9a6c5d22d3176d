package reporter

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/mdbooklint/internal/ui/pretty"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/fix"
	"github.com/yaklabco/mdbooklint/pkg/runner"
)

// DiffReporter previews the suggested fixes of each file as a unified
// diff. Files on disk are left untouched.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	styler fix.Styler
	bw     *bufio.Writer

	// readFile loads a file's current content; swapped in tests.
	readFile func(path string) ([]byte, error)
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	r := &DiffReporter{
		opts:     opts,
		styles:   styles,
		bw:       bufio.NewWriterSize(opts.Writer, bufWriterSize),
		readFile: os.ReadFile,
	}
	if colorEnabled {
		r.styler = pretty.NewDiffStyler(styles)
	}
	return r
}

// Report implements Reporter. It returns the number of violations whose
// fix made it into a diff.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var applied, skipped, files int
	for _, file := range result.Files {
		if file.Error != nil || len(file.Violations) == 0 {
			continue
		}

		preview, err := r.preview(file)
		if err != nil {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(file.Path), r.styles.Error.Render(err.Error()))
			continue
		}

		skipped += len(preview.Skipped) + len(preview.Invalid)
		d := preview.Diff(file.Path)
		if !d.HasChanges() {
			continue
		}
		if err := d.Write(r.bw, r.styler); err != nil {
			return applied, err
		}
		applied += len(preview.Applied) + preview.Merged
		files++
	}

	if r.opts.ShowSummary {
		r.writeSummary(applied, skipped, files)
	}
	return applied, nil
}

func (r *DiffReporter) preview(file runner.FileOutcome) (*fix.Preview, error) {
	content, err := r.readFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("read for fix preview: %w", err)
	}
	doc, err := document.New(string(content), file.Path)
	if err != nil {
		return nil, err
	}
	return fix.PreviewFixes(doc, file.Violations), nil
}

func (r *DiffReporter) writeSummary(applied, skipped, files int) {
	if applied == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No fixes to preview"))
		return
	}
	line := fmt.Sprintf("%d %s would change %d %s",
		applied, plural(applied, "fix", "fixes"), files, plural(files, "file", "files"))
	if skipped > 0 {
		line += r.styles.Dim.Render(fmt.Sprintf(", %d skipped", skipped))
	}
	fmt.Fprintln(r.bw, line)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
