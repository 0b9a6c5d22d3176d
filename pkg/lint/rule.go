// Package lint provides the rule contracts, registries, and the engine that
// runs rules against documents and reconciles overlapping findings.
package lint

import (
	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// Position is a 1-based line and column in a document.
type Position struct {
	Line   int
	Column int
}

// Fix is a suggested textual replacement attached to a violation.
// Applying it is left to the caller.
type Fix struct {
	// Description explains the change in a few words.
	Description string

	// Replacement is the new text. Nil means delete the range.
	Replacement *string

	// Start is the first position covered by the fix.
	Start Position

	// End is the position just past the covered text.
	End Position
}

// IsDeletion reports whether the fix removes text without replacing it.
func (f *Fix) IsDeletion() bool {
	return f.Replacement == nil
}

// Violation is a single finding in one document.
type Violation struct {
	// RuleID is the identifier of the rule that produced this violation.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "no-trailing-spaces").
	RuleName string

	// Message is the human-readable description of the issue.
	Message string

	// Line is the 1-based line of the finding.
	Line int

	// Column is the 1-based column of the finding.
	Column int

	// Severity indicates the importance of the violation.
	Severity config.Severity

	// Fix is an optional suggested replacement.
	Fix *Fix
}

// HasFix returns true if this violation carries a suggested fix.
func (v *Violation) HasFix() bool {
	return v.Fix != nil
}

// Identity is implemented by every rule shape.
type Identity interface {
	// ID returns the unique identifier for this rule (e.g., "MD001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// Metadata returns status and precedence information.
	Metadata() RuleMetadata
}

// Rule checks a single document.
//
// Rules must:
//   - Return a violation for each finding.
//   - Return an error only for internal failures, not findings.
//   - Hold no mutable state; one instance is shared across goroutines.
type Rule interface {
	Identity

	// CheckWithAST checks doc. root is the document's shared parse tree, or
	// nil when the caller has none, in which case the rule parses on its own
	// if it needs structure.
	CheckWithAST(doc *document.Document, root *mdast.Node) ([]Violation, error)

	// Check is CheckWithAST without a shared tree.
	Check(doc *document.Document) ([]Violation, error)

	// CanFix returns whether this rule attaches fix suggestions.
	CanFix() bool
}

// ASTRule checks a document through its parse tree. Use AdaptAST to run
// one as a Rule.
type ASTRule interface {
	Identity

	// CheckAST checks doc using root, which is never nil.
	CheckAST(doc *document.Document, root *mdast.Node) ([]Violation, error)

	// CanFix returns whether this rule attaches fix suggestions.
	CanFix() bool
}

// CollectionViolation is a finding from a collection rule, attributed to
// the document that owns it.
type CollectionViolation struct {
	// Path is the owning document's path.
	Path string

	Violation
}

// CollectionRule checks properties only visible across several documents,
// such as duplicate titles or links between files.
type CollectionRule interface {
	Identity

	// CheckCollection checks docs as a set.
	CheckCollection(docs []*document.Document) ([]CollectionViolation, error)
}
