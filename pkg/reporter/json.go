package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Errors  []string         `json:"errors,omitempty"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string          `json:"path"`
	Violations []JSONViolation `json:"violations"`
	Error      string          `json:"error,omitempty"`
}

// JSONViolation represents a single violation.
type JSONViolation struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Fix      *JSONFix `json:"fix,omitempty"`
}

// JSONFix represents a suggested fix. A nil Replacement deletes the range.
type JSONFix struct {
	Description string  `json:"description,omitempty"`
	StartLine   int     `json:"startLine"`
	StartColumn int     `json:"startColumn"`
	EndLine     int     `json:"endLine"`
	EndColumn   int     `json:"endColumn"`
	Replacement *string `json:"replacement"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	Fixable         int            `json:"fixable"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: r.opts.Version,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	for _, e := range result.Errors {
		output.Errors = append(output.Errors, e.Error())
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:       file.Path,
			Violations: make([]JSONViolation, 0, len(file.Violations)),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		for _, v := range file.Violations {
			severity := v.Severity
			if severity == "" {
				severity = config.SeverityWarning
			}

			fileResult.Violations = append(fileResult.Violations, JSONViolation{
				RuleID:   v.RuleID,
				RuleName: v.RuleName,
				Severity: string(severity),
				Message:  v.Message,
				Line:     v.Line,
				Column:   v.Column,
				Fix:      jsonFix(v.Fix),
			})
			output.Summary.TotalIssues++
			output.Summary.BySeverity[string(severity)]++
			if v.Fix != nil {
				output.Summary.Fixable++
			}
		}

		if len(fileResult.Violations) > 0 {
			output.Summary.FilesWithIssues++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}

func jsonFix(fix *lint.Fix) *JSONFix {
	if fix == nil {
		return nil
	}
	return &JSONFix{
		Description: fix.Description,
		StartLine:   fix.Start.Line,
		StartColumn: fix.Start.Column,
		EndLine:     fix.End.Line,
		EndColumn:   fix.End.Column,
		Replacement: fix.Replacement,
	}
}
