package runner

import (
	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// FileOutcome is the result of linting one file.
type FileOutcome struct {
	// Path is the document path, relative to the process working directory
	// when the file lies below it.
	Path string

	// Violations found in the file, per-document rules first.
	Violations []lint.Violation

	// Error is set if the file could not be read or linted. Other files
	// are still processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWithIssues int

	ViolationsTotal int

	// ViolationsFixable counts violations carrying a suggested fix.
	ViolationsFixable int

	// ViolationsBySeverity maps severity levels to counts.
	ViolationsBySeverity map[config.Severity]int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, sorted by path.
	Files []FileOutcome

	Stats Stats

	// Errors holds failures not tied to one file, such as a collection
	// rule error.
	Errors []error
}

// HasFailures reports whether any violation has error severity.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsBySeverity[config.SeverityError] > 0
}

// HasIssues reports whether any violations were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsTotal > 0
}

// HasErrors reports whether any file or collection pass failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || len(r.Errors) > 0
}

func newStats() Stats {
	return Stats{
		ViolationsBySeverity: make(map[config.Severity]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if len(outcome.Violations) > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, v := range outcome.Violations {
		r.Stats.ViolationsTotal++
		if v.Fix != nil {
			r.Stats.ViolationsFixable++
		}
		severity := v.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.ViolationsBySeverity[severity]++
	}
}
