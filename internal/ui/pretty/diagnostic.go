package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// FormatViolation renders one violation as
// "path:line:column: severity: RULEID/rule-name: message".
func (s *Styles) FormatViolation(path string, v *lint.Violation) string {
	location := s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d:%d", v.Line, v.Column))
	rule := s.RuleID.Render(RuleLabel(v.RuleID, v.RuleName))

	return fmt.Sprintf("%s: %s: %s: %s", location, s.FormatSeverity(v.Severity), rule, s.Message.Render(v.Message))
}

// FormatViolationWithContext adds the source line, a caret under the
// column, and the fix description when there is one.
func (s *Styles) FormatViolationWithContext(path string, v *lint.Violation, sourceLine string) string {
	var builder strings.Builder

	builder.WriteString(s.FormatViolation(path, v))
	builder.WriteString("\n")

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, v.Column))
	}
	if v.Fix != nil && v.Fix.Description != "" {
		builder.WriteString("    " + s.Dim.Render("Fix:") + " " + s.Suggestion.Render(v.Fix.Description) + "\n")
	}

	return builder.String()
}

// RuleLabel joins a rule ID and name as "ID/name".
func RuleLabel(id, name string) string {
	return config.FormatRuleID(config.RuleFormatCombined, id, name)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning, "":
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "    "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
