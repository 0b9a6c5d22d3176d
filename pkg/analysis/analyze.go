// Package analysis aggregates a run's violations by rule and by file.
package analysis

import (
	"cmp"
	"slices"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/runner"
)

func (c *counts) add(sev config.Severity) {
	c.Issues++
	switch sev {
	case config.SeverityError:
		c.Errors++
	case config.SeverityInfo:
		c.Infos++
	default:
		c.Warnings++
	}
}

// Analyze computes the report for result in one pass over its violations.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{}
	if result == nil {
		return report
	}

	var (
		ruleOrder []string
		rules     = make(map[string]*RuleAnalysis)
		ruleFiles = make(map[string]map[string]bool)
	)

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		if len(file.Violations) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++

		fa := FileAnalysis{Path: file.Path}
		seen := make(map[string]bool)

		for _, v := range file.Violations {
			fa.add(v.Severity)
			report.Totals.Issues++
			switch v.Severity {
			case config.SeverityError:
				report.Totals.Errors++
			case config.SeverityInfo:
				report.Totals.Infos++
			default:
				report.Totals.Warnings++
			}
			if v.HasFix() {
				report.Totals.Fixable++
			}

			if !seen[v.RuleID] {
				seen[v.RuleID] = true
				fa.Rules = append(fa.Rules, v.RuleID)
			}

			ra, ok := rules[v.RuleID]
			if !ok {
				ra = &RuleAnalysis{RuleID: v.RuleID, RuleName: v.RuleName}
				rules[v.RuleID] = ra
				ruleFiles[v.RuleID] = make(map[string]bool)
				ruleOrder = append(ruleOrder, v.RuleID)
			}
			ra.add(v.Severity)
			ra.Fixable = ra.Fixable || v.HasFix()
			if !ruleFiles[v.RuleID][file.Path] {
				ruleFiles[v.RuleID][file.Path] = true
				ra.Files = append(ra.Files, file.Path)
			}
		}

		if opts.IncludeByFile {
			slices.Sort(fa.Rules)
			report.ByFile = append(report.ByFile, fa)
		}
	}

	if opts.IncludeByRule {
		for _, id := range ruleOrder {
			ra := rules[id]
			slices.Sort(ra.Files)
			report.ByRule = append(report.ByRule, *ra)
		}
		slices.SortStableFunc(report.ByRule, func(a, b RuleAnalysis) int {
			return compare(opts, a.counts, b.counts, a.RuleID, b.RuleID)
		})
	}
	slices.SortStableFunc(report.ByFile, func(a, b FileAnalysis) int {
		return compare(opts, a.counts, b.counts, a.Path, b.Path)
	})

	return report
}

// compare orders two entries per opts, falling back to their keys so the
// output is deterministic.
func compare(opts Options, a, b counts, keyA, keyB string) int {
	var result int
	switch opts.SortBy {
	case SortByAlpha:
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(b.Errors, a.Errors),
			cmp.Compare(b.Warnings, a.Warnings),
			cmp.Compare(b.Issues, a.Issues),
		)
	default:
		result = cmp.Compare(a.Issues, b.Issues)
		if opts.SortDesc {
			result = -result
		}
	}
	return cmp.Or(result, cmp.Compare(keyA, keyB))
}
