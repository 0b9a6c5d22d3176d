package lint

import (
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// astAdapter runs an ASTRule through the Rule interface.
type astAdapter struct {
	rule ASTRule
}

// AdaptAST wraps an ASTRule as a Rule. When the engine supplies the shared
// parse tree the rule checks it directly; when called without one (Check,
// or CheckWithAST with a nil root) the adapter parses the document itself.
// Both paths produce identical violations.
//
//nolint:ireturn // Returning the interface is the point of the adapter.
func AdaptAST(rule ASTRule) Rule {
	return &astAdapter{rule: rule}
}

func (a *astAdapter) ID() string             { return a.rule.ID() }
func (a *astAdapter) Name() string           { return a.rule.Name() }
func (a *astAdapter) Description() string    { return a.rule.Description() }
func (a *astAdapter) Metadata() RuleMetadata { return a.rule.Metadata() }
func (a *astAdapter) CanFix() bool           { return a.rule.CanFix() }

func (a *astAdapter) CheckWithAST(doc *document.Document, root *mdast.Node) ([]Violation, error) {
	if root == nil {
		root = doc.ParseAST()
	}
	return a.rule.CheckAST(doc, root)
}

func (a *astAdapter) Check(doc *document.Document) ([]Violation, error) {
	return a.CheckWithAST(doc, nil)
}

// Unwrap returns the adapted rule.
//
//nolint:ireturn // Callers need the original interface value.
func (a *astAdapter) Unwrap() ASTRule {
	return a.rule
}
