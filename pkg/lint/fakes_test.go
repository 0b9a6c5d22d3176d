package lint_test

import (
	"errors"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

var errBoom = errors.New("boom")

// fixedRule reports a violation at each of its positions.
type fixedRule struct {
	lint.BaseRule

	at  []lint.Position
	err error

	// sawRoot records whether the engine passed a shared tree.
	sawRoot *bool
}

func newFixedRule(id string, meta lint.RuleMetadata, at ...lint.Position) *fixedRule {
	return &fixedRule{
		BaseRule: lint.NewBaseRule(id, "rule-"+id, "reports fixed positions", meta),
		at:       at,
	}
}

func (r *fixedRule) CheckWithAST(_ *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	if r.sawRoot != nil {
		*r.sawRoot = root != nil
	}
	if r.err != nil {
		return nil, r.err
	}

	violations := make([]lint.Violation, 0, len(r.at))
	for _, pos := range r.at {
		violations = append(violations, r.At(pos.Line, pos.Column, "found").Build())
	}
	return violations, nil
}

func (r *fixedRule) Check(doc *document.Document) ([]lint.Violation, error) {
	return r.CheckWithAST(doc, nil)
}

// headingRule reports every heading through the shared tree.
type headingRule struct {
	lint.BaseRule
}

func newHeadingRule(id string) *headingRule {
	return &headingRule{
		BaseRule: lint.NewBaseRule(id, "every-heading", "reports headings", lint.StableMetadata(lint.CategoryStructure, "0.1.0")),
	}
}

func (r *headingRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, heading := range lint.Headings(root) {
		violations = append(violations, r.AtNode(doc, heading, "heading "+doc.NodeText(heading)).Build())
	}
	return violations, nil
}

// pathRule is a collection rule reporting line 1 of each named path.
type pathRule struct {
	lint.BaseRule

	paths []string
	err   error
}

func newPathRule(id string, paths ...string) *pathRule {
	return &pathRule{
		BaseRule: lint.NewBaseRule(id, "collection-"+id, "reports named paths", lint.StableMetadata(lint.CategoryMdBook, "0.1.0")),
		paths:    paths,
	}
}

func (r *pathRule) CheckCollection(_ []*document.Document) ([]lint.CollectionViolation, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []lint.CollectionViolation
	for _, path := range r.paths {
		out = append(out, lint.CollectionViolation{Path: path, Violation: r.At(1, 1, "across "+path).Build()})
	}
	return out, nil
}

// stubProvider registers the rules its build function creates.
type stubProvider struct {
	lint.ProviderInfo

	build func(reg *lint.RuleRegistry, cfg *config.Config) error
}

func (p *stubProvider) RegisterRules(reg *lint.RuleRegistry, cfg *config.Config) error {
	return p.build(reg, cfg)
}

func providerOf(id string, rules ...lint.Rule) *stubProvider {
	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule.ID())
	}
	return &stubProvider{
		ProviderInfo: lint.ProviderInfo{ID: id, Desc: id + " rules", Ver: "1.0.0", RuleSet: ids},
		build: func(reg *lint.RuleRegistry, _ *config.Config) error {
			for _, rule := range rules {
				if err := reg.Register(rule); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func stable() lint.RuleMetadata {
	return lint.StableMetadata(lint.CategoryFormatting, "0.1.0")
}

func at(line, column int) lint.Position {
	return lint.Position{Line: line, Column: column}
}

func mustDoc(content, path string) *document.Document {
	doc, err := document.New(content, path)
	if err != nil {
		panic(err)
	}
	return doc
}

func ids(violations []lint.Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.RuleID)
	}
	return out
}
