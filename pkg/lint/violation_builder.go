package lint

import (
	"github.com/yaklabco/mdbooklint/pkg/config"
)

// ViolationBuilder helps construct Violation values.
type ViolationBuilder struct {
	v Violation
}

// NewViolation starts building a violation for the given rule and position.
func NewViolation(ruleID, ruleName string, line, column int, message string) *ViolationBuilder {
	return &ViolationBuilder{
		v: Violation{
			RuleID:   ruleID,
			RuleName: ruleName,
			Message:  message,
			Line:     line,
			Column:   column,
			Severity: config.SeverityWarning,
		},
	}
}

// WithSeverity sets the severity.
func (b *ViolationBuilder) WithSeverity(s config.Severity) *ViolationBuilder {
	b.v.Severity = s
	return b
}

// WithReplacement attaches a fix replacing start..end with text.
func (b *ViolationBuilder) WithReplacement(description string, start, end Position, text string) *ViolationBuilder {
	b.v.Fix = &Fix{
		Description: description,
		Replacement: &text,
		Start:       start,
		End:         end,
	}
	return b
}

// WithDeletion attaches a fix deleting start..end.
func (b *ViolationBuilder) WithDeletion(description string, start, end Position) *ViolationBuilder {
	b.v.Fix = &Fix{
		Description: description,
		Start:       start,
		End:         end,
	}
	return b
}

// Build returns the constructed Violation.
func (b *ViolationBuilder) Build() Violation {
	return b.v
}
