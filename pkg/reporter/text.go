package reporter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yaklabco/mdbooklint/internal/ui/pretty"
	"github.com/yaklabco/mdbooklint/pkg/runner"
)

// TextReporter writes one line per violation:
// "path:line:column: severity: RULEID/rule-name: message".
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer

	// readLine loads a source line for context; swapped in tests.
	readLine func(path string, line int) string
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:     opts,
		styles:   pretty.NewStyles(colorEnabled),
		bw:       bufio.NewWriterSize(opts.Writer, bufWriterSize),
		readLine: newLineCache().line,
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		for i := range file.Violations {
			v := &file.Violations[i]
			if r.opts.ShowContext {
				fmt.Fprint(r.bw, r.styles.FormatViolationWithContext(file.Path, v, r.readLine(file.Path, v.Line)))
			} else {
				fmt.Fprintln(r.bw, r.styles.FormatViolation(file.Path, v))
			}
			total++
		}
	}

	for _, e := range result.Errors {
		fmt.Fprintln(r.bw, r.styles.Error.Render(fmt.Sprintf("error: %v", e)))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// lineCache reads each file at most once for context lines.
type lineCache map[string][]string

func newLineCache() lineCache {
	return make(lineCache)
}

func (c lineCache) line(path string, n int) string {
	lines, ok := c[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err == nil {
			lines = strings.Split(string(data), "\n")
		}
		c[path] = lines
	}
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[n-1], "\r")
}
