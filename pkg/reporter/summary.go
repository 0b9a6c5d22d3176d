package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdbooklint/internal/ui/pretty"
	"github.com/yaklabco/mdbooklint/pkg/analysis"
	"github.com/yaklabco/mdbooklint/pkg/runner"
)

// SummaryReporter prints counts per rule and per file instead of
// individual violations.
type SummaryReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &SummaryReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, TerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	opts := analysis.DefaultOptions()
	if r.opts.SortBy != "" {
		opts.SortBy = r.opts.SortBy
	}
	report := analysis.Analyze(result, opts)

	if len(report.ByRule) > 0 {
		fmt.Fprintln(r.bw, r.styles.Bold.Render("By rule"))
		fmt.Fprint(r.bw, r.formatter.FormatRuleCounts(report.ByRule))
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render("By file"))
		fmt.Fprint(r.bw, r.formatter.FormatFileCounts(report.ByFile))
		fmt.Fprintln(r.bw)
	}

	if result != nil {
		for _, file := range result.Files {
			if file.Error != nil {
				fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(file.Path), r.styles.Error.Render(file.Error.Error()))
			}
		}
		for _, e := range result.Errors {
			fmt.Fprintln(r.bw, r.styles.Error.Render(fmt.Sprintf("error: %v", e)))
		}
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
	}

	return report.Totals.Issues, nil
}
