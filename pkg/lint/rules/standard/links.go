package standard

import (
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// NoBareURLsRule checks for URLs written without angle brackets.
type NoBareURLsRule struct {
	lint.BaseRule
}

// NewNoBareURLsRule creates MD034.
func NewNoBareURLsRule() *NoBareURLsRule {
	return &NoBareURLsRule{
		BaseRule: lint.NewBaseRule(
			"MD034",
			"no-bare-urls",
			"Bare URL used",
			lint.StableMetadata(lint.CategoryLinks, "0.1.0"),
		).WithFixes(),
	}
}

// CheckAST reports autolinks found by linkify. Autolinks written in angle
// brackets keep the '<' inside their span.
func (r *NoBareURLsRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation
	raw := doc.Bytes()

	for _, link := range lint.Links(root) {
		if !lint.IsAutolink(link) || !link.HasSource() || link.Span.EndOffset > len(raw) {
			continue
		}
		if raw[link.Span.StartOffset] == '<' {
			continue
		}

		url := string(raw[link.Span.StartOffset:link.Span.EndOffset])
		startLine, startCol := doc.OffsetPosition(link.Span.StartOffset)
		endLine, endCol := doc.OffsetPosition(link.Span.EndOffset)

		violations = append(violations,
			r.At(startLine, startCol, "Bare URL used").
				WithReplacement("Wrap URL in angle brackets",
					lint.Position{Line: startLine, Column: startCol},
					lint.Position{Line: endLine, Column: endCol},
					"<"+url+">").
				Build())
	}

	return violations, nil
}

// NoEmptyLinksRule checks for links without a destination.
type NoEmptyLinksRule struct {
	lint.BaseRule
}

// NewNoEmptyLinksRule creates MD042.
func NewNoEmptyLinksRule() *NoEmptyLinksRule {
	return &NoEmptyLinksRule{
		BaseRule: lint.NewBaseRule(
			"MD042",
			"no-empty-links",
			"No empty links",
			lint.StableMetadata(lint.CategoryLinks, "0.1.0"),
		),
	}
}

// CheckAST reports links whose destination is empty or a bare "#".
func (r *NoEmptyLinksRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, link := range lint.Links(root) {
		if lint.IsAutolink(link) {
			continue
		}
		switch lint.LinkDestination(link) {
		case "", "#":
			violations = append(violations, r.AtNode(doc, link, "No empty links").Build())
		}
	}
	return violations, nil
}

// ImageAltTextRule checks that images describe themselves.
type ImageAltTextRule struct {
	lint.BaseRule
}

// NewImageAltTextRule creates MD045.
func NewImageAltTextRule() *ImageAltTextRule {
	return &ImageAltTextRule{
		BaseRule: lint.NewBaseRule(
			"MD045",
			"no-alt-text",
			"Images should have alternate text (alt text)",
			lint.StableMetadata(lint.CategoryAccessibility, "0.1.0"),
		),
	}
}

// CheckAST reports images with blank alt text.
func (r *ImageAltTextRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, image := range lint.Images(root) {
		if lint.HasText(doc, image) {
			continue
		}
		violations = append(violations,
			r.AtNode(doc, image, "Images should have alternate text (alt text)").Build())
	}
	return violations, nil
}
