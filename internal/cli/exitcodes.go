package cli

import (
	"errors"

	"github.com/yaklabco/mdbooklint/pkg/runner"
)

// Exit codes for mdbooklint.
const (
	// ExitSuccess indicates a clean run.
	ExitSuccess = 0

	// ExitIssues indicates the run completed and found violations.
	ExitIssues = 1

	// ExitFailure indicates a usage, configuration or I/O failure, or a
	// run in which some files could not be checked.
	ExitFailure = 2
)

var (
	// ErrLintIssuesFound signals that violations were reported.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrLintIncomplete signals that some files or collection rules failed.
	// Their errors have already been reported.
	ErrLintIncomplete = errors.New("lint incomplete")
)

// ExitCodeFromResult maps a finished run onto an exit code. Failures to
// check a file outrank violations.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result.HasErrors():
		return ExitFailure
	case result.HasIssues():
		return ExitIssues
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command onto an exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound):
		return ExitIssues
	default:
		return ExitFailure
	}
}

// IsReported reports whether err only signals an outcome the command has
// already printed.
func IsReported(err error) bool {
	return errors.Is(err, ErrLintIssuesFound) || errors.Is(err, ErrLintIncomplete)
}

func resultError(result *runner.Result) error {
	switch ExitCodeFromResult(result) {
	case ExitFailure:
		return ErrLintIncomplete
	case ExitIssues:
		return ErrLintIssuesFound
	default:
		return nil
	}
}
