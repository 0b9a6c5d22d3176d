package analysis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/analysis"
	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/runner"
)

func v(id string, sev config.Severity, fixable bool) lint.Violation {
	out := lint.Violation{RuleID: id, RuleName: id + "-name", Severity: sev, Line: 1, Column: 1}
	if fixable {
		out.Fix = &lint.Fix{}
	}
	return out
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "b.md", Violations: []lint.Violation{
				v("MD009", config.SeverityWarning, true),
				v("MD009", config.SeverityWarning, true),
				v("MDBOOK004", config.SeverityError, false),
			}},
			{Path: "a.md", Violations: []lint.Violation{
				v("MDBOOK004", config.SeverityError, false),
			}},
			{Path: "clean.md"},
			{Path: "broken.md", Error: errors.New("read failed")},
		},
	}
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())
	require.NotNil(t, report)
	assert.False(t, report.Totals.HasIssues())
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	assert.Equal(t, analysis.Totals{
		Files:           4,
		FilesWithIssues: 2,
		FilesErrored:    1,
		Issues:          4,
		Errors:          2,
		Warnings:        2,
		Fixable:         2,
	}, report.Totals)
	assert.True(t, report.Totals.HasErrors())
}

func TestAnalyze_ByRule(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())
	require.Len(t, report.ByRule, 2)

	// Equal counts fall back to rule ID order.
	assert.Equal(t, "MD009", report.ByRule[0].RuleID)
	assert.True(t, report.ByRule[0].Fixable)
	assert.Equal(t, []string{"b.md"}, report.ByRule[0].Files)

	assert.Equal(t, "MDBOOK004", report.ByRule[1].RuleID)
	assert.Equal(t, 2, report.ByRule[1].Errors)
	assert.Equal(t, []string{"a.md", "b.md"}, report.ByRule[1].Files)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      analysis.Options
		wantFiles []string
	}{
		{
			name:      "count descending",
			opts:      analysis.Options{IncludeByFile: true, SortBy: analysis.SortByCount, SortDesc: true},
			wantFiles: []string{"b.md", "a.md"},
		},
		{
			name:      "count ascending",
			opts:      analysis.Options{IncludeByFile: true, SortBy: analysis.SortByCount},
			wantFiles: []string{"a.md", "b.md"},
		},
		{
			name:      "alpha",
			opts:      analysis.Options{IncludeByFile: true, SortBy: analysis.SortByAlpha, SortDesc: true},
			wantFiles: []string{"a.md", "b.md"},
		},
		{
			name:      "severity",
			opts:      analysis.Options{IncludeByFile: true, SortBy: analysis.SortBySeverity},
			wantFiles: []string{"b.md", "a.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			report := analysis.Analyze(sampleResult(), tt.opts)
			assert.Empty(t, report.ByRule)

			var got []string
			for _, f := range report.ByFile {
				got = append(got, f.Path)
			}
			assert.Equal(t, tt.wantFiles, got)
		})
	}
}

func TestParseSortField(t *testing.T) {
	t.Parallel()

	f, err := analysis.ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, analysis.SortByCount, f)

	f, err = analysis.ParseSortField("severity")
	require.NoError(t, err)
	assert.Equal(t, analysis.SortBySeverity, f)

	_, err = analysis.ParseSortField("random")
	assert.Error(t, err)
}
