package content

import (
	"fmt"

	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// EmptySectionsRule checks for headings with nothing under them.
type EmptySectionsRule struct {
	lint.BaseRule
}

// NewEmptySectionsRule creates CONTENT003.
func NewEmptySectionsRule() *EmptySectionsRule {
	return &EmptySectionsRule{
		BaseRule: lint.NewBaseRule(
			"CONTENT003",
			"no-empty-sections",
			"Sections should have content",
			lint.StableMetadata(lint.CategoryContent, "0.1.0"),
		),
	}
}

// CheckAST reports top-level headings whose section holds no blocks,
// counting those of nested sections.
func (r *EmptySectionsRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, section := range lint.SectionsOf(root) {
		if len(section.Blocks) > 0 {
			continue
		}
		msg := fmt.Sprintf("Section %q has no content", lint.HeadingText(doc, section.Heading))
		violations = append(violations, r.AtNode(doc, section.Heading, msg).Build())
	}
	return violations, nil
}
