// Package reporter writes runner results as text, tables, JSON or SARIF,
// and can summarise them or preview their suggested fixes.
package reporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdbooklint/pkg/runner"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown format")

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of violations reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.Version == "" {
		opts.Version = defaults.Version
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// countViolations counts the violations across all files.
func countViolations(result *runner.Result) int {
	if result == nil {
		return 0
	}
	var total int
	for _, file := range result.Files {
		total += len(file.Violations)
	}
	return total
}
