package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdbooklint/pkg/analysis"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output: "auto" (default), "always", "never".
	Color string

	// ShowContext prints the source line under each violation (text only).
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact disables indentation in JSON and SARIF output.
	Compact bool

	// Version is recorded in machine-readable output.
	Version string

	// SortBy orders the summary format's tables.
	SortBy analysis.SortField
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		Version:     "dev",
	}
}
