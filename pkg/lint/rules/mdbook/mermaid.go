package mdbook

import (
	"fmt"
	"strings"

	mermaid "github.com/sammcj/go-mermaid"
	"github.com/sammcj/go-mermaid/validator"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// MermaidRule checks the diagrams that the mdbook-mermaid preprocessor
// renders from ```mermaid fences.
type MermaidRule struct {
	lint.BaseRule

	strict bool
}

// NewMermaidRule creates MDBOOK011. Option: strict.
func NewMermaidRule(cfg *config.Config) (*MermaidRule, error) {
	opts := cfg.Options("MDBOOK011")
	strict := opts.Bool("strict", false)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	meta := lint.StableMetadata(lint.CategoryMdBook, "0.1.0")
	meta.Stability = lint.StabilityExperimental

	return &MermaidRule{
		BaseRule: lint.NewBaseRule(
			"MDBOOK011",
			"mdbook-mermaid-syntax",
			"Mermaid diagrams should parse and reference only defined nodes",
			meta,
		).WithSeverity(config.SeverityError),
		strict: strict,
	}, nil
}

// CheckAST parses every mermaid fence. A diagram that fails to parse is
// reported once at its fence; otherwise each validator finding is placed on
// its line inside the fence.
func (r *MermaidRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation

	for _, block := range lint.CodeBlocks(root) {
		if !lint.IsFencedCodeBlock(block) || !strings.EqualFold(lint.CodeBlockLanguage(block), "mermaid") {
			continue
		}

		diagram, err := mermaid.Parse(string(lint.CodeBlockContent(block)))
		if err != nil {
			violations = append(violations, r.AtNode(doc, block, fmt.Sprintf("Invalid mermaid syntax: %v", err)).Build())
			continue
		}
		if diagram == nil {
			continue
		}

		fence, _, ok := lint.NodeLines(doc, block)
		if !ok {
			continue
		}
		for _, finding := range mermaid.Validate(diagram, r.strict) {
			line := fence + max(finding.Line, 1)
			violations = append(violations,
				r.At(line, max(finding.Column, 1), finding.Message).
					WithSeverity(mermaidSeverity(finding.Severity)).
					Build())
		}
	}

	return violations, nil
}

func mermaidSeverity(s validator.Severity) config.Severity {
	switch s {
	case validator.SeverityError:
		return config.SeverityError
	case validator.SeverityInfo:
		return config.SeverityInfo
	default:
		return config.SeverityWarning
	}
}
