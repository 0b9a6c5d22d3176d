package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdbooklint/pkg/analysis"
	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/runner"
)

// Table formatting constants.
const (
	fixableSymbol      = "+"
	tablePadding       = 2
	fixableColumnWidth = 3
	minFlexWidth       = 30
	minPathWidth       = 20
	heavySeparator     = "="
	lightSeparator     = "-"
	defaultTermWidth   = 100
)

// TableRow is one violation in the table.
type TableRow struct {
	File     string
	Location string
	Message  string
	Rule     string
	Severity config.Severity
	Fixable  bool
}

// RuleRow is one rule in the rules listing.
type RuleRow struct {
	ID          string
	Name        string
	Provider    string
	Category    string
	Stability   string
	Overrides   string
	Description string
}

// TableFormatter lays out rows as fixed-width columns that fit the terminal.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a table formatter. A non-positive width uses
// a default.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// layout holds column widths. The flex column shrinks to fit the terminal,
// then the path column.
type layout struct {
	widths []int
	flex   int
	path   int
}

func (t *TableFormatter) fit(headers []string, rows [][]string, flex, path int) layout {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	l := layout{widths: widths, flex: flex, path: path}
	if excess := l.total() - t.termWidth; excess > 0 {
		widths[flex] = max(min(minFlexWidth, widths[flex]), widths[flex]-excess)
	}
	if excess := l.total() - t.termWidth; excess > 0 && path >= 0 {
		widths[path] = max(min(minPathWidth, widths[path]), widths[path]-excess)
	}
	return l
}

func (l layout) total() int {
	sum := fixableColumnWidth
	for _, w := range l.widths {
		sum += w + tablePadding
	}
	return sum
}

func (l layout) line(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		switch i {
		case l.path:
			cell = truncateFilePath(cell, l.widths[i])
		default:
			cell = truncateString(cell, l.widths[i])
		}
		parts[i] = fmt.Sprintf("%-*s", l.widths[i], cell)
	}
	return " " + strings.Join(parts, "  ")
}

// FormatTable formats the violations of a run.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var rows []TableRow
	for _, file := range result.Files {
		for _, v := range file.Violations {
			rows = append(rows, TableRow{
				File:     file.Path,
				Location: fmt.Sprintf("%d:%d", v.Line, v.Column),
				Message:  v.Message,
				Rule:     RuleLabel(v.RuleID, v.RuleName),
				Severity: v.Severity,
				Fixable:  v.Fix != nil,
			})
		}
	}
	if len(rows) == 0 {
		return ""
	}

	headers := []string{"FILE", "LOC", "MESSAGE", "RULE"}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.File, r.Location, r.Message, r.Rule}
	}
	l := t.fit(headers, cells, 2, 0)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(l.line(headers)) + "\n")
	builder.WriteString(t.separator(l, heavySeparator) + "\n")

	for i, row := range rows {
		if i > 0 && row.File != rows[i-1].File {
			builder.WriteString(t.separator(l, lightSeparator) + "\n")
		}
		fixable := " "
		if row.Fixable {
			fixable = t.styles.TableFixable.Render(fixableSymbol)
		}
		builder.WriteString(t.rowStyle(row.Severity).Render(l.line(cells[i])) + "  " + fixable + "\n")
	}
	builder.WriteString(t.separator(l, heavySeparator) + "\n")

	return builder.String()
}

// FormatRules formats the rules listing.
func (t *TableFormatter) FormatRules(rows []RuleRow) string {
	headers := []string{"ID", "NAME", "PROVIDER", "CATEGORY", "STABILITY", "OVERRIDES", "DESCRIPTION"}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.ID, r.Name, r.Provider, r.Category, r.Stability, r.Overrides, r.Description}
	}
	l := t.fit(headers, cells, len(headers)-1, -1)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(l.line(headers)) + "\n")
	builder.WriteString(t.separator(l, heavySeparator) + "\n")
	for i, r := range rows {
		line := l.line(cells[i])
		if r.Stability == "deprecated" {
			line = t.styles.Dim.Render(line)
		}
		builder.WriteString(line + "\n")
	}
	return builder.String()
}

func (t *TableFormatter) separator(l layout, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, l.total()))
}

func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath keeps the end of a path, where the file name is.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}

// FormatRuleCounts formats the per-rule view of an analysis report.
func (t *TableFormatter) FormatRuleCounts(rules []analysis.RuleAnalysis) string {
	headers := []string{"RULE", "ISSUES", "ERRORS", "WARNINGS", "FILES"}
	cells := make([][]string, len(rules))
	fixable := make([]bool, len(rules))
	for i, r := range rules {
		cells[i] = []string{
			RuleLabel(r.RuleID, r.RuleName),
			strconv.Itoa(r.Issues),
			strconv.Itoa(r.Errors),
			strconv.Itoa(r.Warnings),
			strconv.Itoa(len(r.Files)),
		}
		fixable[i] = r.Fixable
	}
	return t.countTable(headers, cells, fixable, 0)
}

// FormatFileCounts formats the per-file view of an analysis report.
func (t *TableFormatter) FormatFileCounts(files []analysis.FileAnalysis) string {
	headers := []string{"FILE", "ISSUES", "ERRORS", "WARNINGS", "RULES"}
	cells := make([][]string, len(files))
	for i, f := range files {
		cells[i] = []string{
			f.Path,
			strconv.Itoa(f.Issues),
			strconv.Itoa(f.Errors),
			strconv.Itoa(f.Warnings),
			strings.Join(f.Rules, ","),
		}
	}
	return t.countTable(headers, cells, nil, len(headers)-1)
}

func (t *TableFormatter) countTable(headers []string, cells [][]string, fixable []bool, flex int) string {
	if len(cells) == 0 {
		return ""
	}
	path := -1
	if headers[0] == "FILE" {
		path = 0
	}
	l := t.fit(headers, cells, flex, path)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(l.line(headers)) + "\n")
	builder.WriteString(t.separator(l, heavySeparator) + "\n")
	for i := range cells {
		line := l.line(cells[i])
		if i < len(fixable) && fixable[i] {
			line += "  " + t.styles.TableFixable.Render(fixableSymbol)
		}
		builder.WriteString(line + "\n")
	}
	return builder.String()
}
