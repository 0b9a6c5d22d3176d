package lint

import (
	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// BaseRule provides the identity half of the rule interfaces.
// Embed this in rule implementations and add the check method.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
// Use NewBaseRule and the With* methods.
type BaseRule struct {
	id       string // Unique identifier (e.g., "MD001")
	name     string // Human-readable name
	desc     string // Detailed description
	meta     RuleMetadata
	severity config.Severity
	fixable  bool
}

// NewBaseRule creates a BaseRule with warning severity.
func NewBaseRule(id, name, desc string, meta RuleMetadata) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		meta:     meta,
		severity: config.SeverityWarning,
	}
}

// WithSeverity returns a copy reporting at severity s.
func (r BaseRule) WithSeverity(s config.Severity) BaseRule {
	r.severity = s
	return r
}

// WithFixes returns a copy that advertises fix suggestions.
func (r BaseRule) WithFixes() BaseRule {
	r.fixable = true
	return r
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Metadata returns the rule's status and precedence information.
func (r *BaseRule) Metadata() RuleMetadata {
	return r.meta
}

// Severity returns the severity attached to this rule's violations.
func (r *BaseRule) Severity() config.Severity {
	return r.severity
}

// CanFix returns whether this rule attaches fix suggestions.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// At starts a violation at a 1-based line and column.
func (r *BaseRule) At(line, column int, message string) *ViolationBuilder {
	return NewViolation(r.id, r.name, line, column, message).WithSeverity(r.severity)
}

// AtNode starts a violation at the start of node. Nodes without source are
// reported at line 1, column 1.
func (r *BaseRule) AtNode(doc *document.Document, node *mdast.Node, message string) *ViolationBuilder {
	line, column, ok := doc.NodePosition(node)
	if !ok {
		line, column = 1, 1
	}
	return r.At(line, column, message)
}
