package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var tail string
	if stats.FilesErrored > 0 {
		tail = ", " + s.Failure.Render(fmt.Sprintf("%d %s failed", stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles)))
	}

	if stats.ViolationsTotal == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))) +
			tail + "\n"
	}

	var severityParts []string
	if n := stats.ViolationsBySeverity[config.SeverityError]; n > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
	}
	if n := stats.ViolationsBySeverity[config.SeverityWarning]; n > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
	}
	if n := stats.ViolationsBySeverity[config.SeverityInfo]; n > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	count := fmt.Sprintf("%d %s", stats.ViolationsTotal, plural(stats.ViolationsTotal, "issue", "issues"))
	if len(severityParts) > 0 {
		count += " (" + strings.Join(severityParts, ", ") + ")"
	}

	parts := []string{
		count,
		fmt.Sprintf("in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles)),
	}
	if stats.ViolationsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.ViolationsFixable)))
	}

	return strings.Join(parts, ", ") + tail + "\n"
}
