package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// match is a pattern hit inside a text node.
type match struct {
	Text   string
	Line   int
	Column int
}

// scanText runs re over the source of every text node, so code spans and
// code blocks are never searched.
func scanText(doc *document.Document, root *mdast.Node, re *regexp.Regexp) []match {
	if re == nil {
		return nil
	}
	raw := doc.Bytes()

	var found []match
	for _, n := range mdast.FindByKind(root, mdast.NodeText) {
		if !n.HasSource() || n.Span.EndOffset > len(raw) {
			continue
		}
		src := raw[n.Span.StartOffset:n.Span.EndOffset]
		for _, loc := range re.FindAllIndex(src, -1) {
			line, col := doc.OffsetPosition(n.Span.StartOffset + loc[0])
			found = append(found, match{Text: string(src[loc[0]:loc[1]]), Line: line, Column: col})
		}
	}
	return found
}

// wordPattern builds an alternation of words matched on word boundaries.
// An empty list yields a nil pattern, which matches nothing.
func wordPattern(words []string, caseInsensitive bool) (*regexp.Regexp, error) {
	if len(words) == 0 {
		return nil, nil //nolint:nilnil // nothing to match
	}
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	flags := ""
	if caseInsensitive {
		flags = "(?i)"
	}
	return regexp.Compile(flags + `\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

var defaultMarkers = []string{"TODO", "FIXME", "XXX", "HACK"}

// TodoMarkersRule checks for leftover work markers in prose.
type TodoMarkersRule struct {
	lint.BaseRule

	pattern *regexp.Regexp
}

// NewTodoMarkersRule creates CONTENT001. Option: markers.
func NewTodoMarkersRule(cfg *config.Config) (*TodoMarkersRule, error) {
	opts := cfg.Options("CONTENT001")
	markers := opts.StringSlice("markers", defaultMarkers)
	pattern, err := wordPattern(markers, false)
	if err != nil {
		opts.Reject("markers", err)
	}
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &TodoMarkersRule{
		BaseRule: lint.NewBaseRule(
			"CONTENT001",
			"no-todo-markers",
			"Prose should not contain TODO or FIXME markers",
			lint.StableMetadata(lint.CategoryContent, "0.1.0"),
		),
		pattern: pattern,
	}, nil
}

// CheckAST reports each marker. Markers in code are ignored.
func (r *TodoMarkersRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, m := range scanText(doc, root, r.pattern) {
		msg := fmt.Sprintf("Unresolved %s marker", m.Text)
		violations = append(violations, r.At(m.Line, m.Column, msg).Build())
	}
	return violations, nil
}

var defaultPlaceholders = []string{
	"lorem ipsum", "TBD", "TBA", "coming soon", "under construction", "insert text here",
}

// PlaceholderTextRule checks for filler text.
type PlaceholderTextRule struct {
	lint.BaseRule

	pattern *regexp.Regexp
}

// NewPlaceholderTextRule creates CONTENT002. Option: placeholders, matched
// without case.
func NewPlaceholderTextRule(cfg *config.Config) (*PlaceholderTextRule, error) {
	opts := cfg.Options("CONTENT002")
	phrases := opts.StringSlice("placeholders", defaultPlaceholders)
	pattern, err := wordPattern(phrases, true)
	if err != nil {
		opts.Reject("placeholders", err)
	}
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &PlaceholderTextRule{
		BaseRule: lint.NewBaseRule(
			"CONTENT002",
			"no-placeholder-text",
			"Prose should not contain placeholder text",
			lint.StableMetadata(lint.CategoryContent, "0.1.0"),
		),
		pattern: pattern,
	}, nil
}

// CheckAST reports each placeholder phrase.
func (r *PlaceholderTextRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, m := range scanText(doc, root, r.pattern) {
		msg := fmt.Sprintf("Placeholder text %q", m.Text)
		violations = append(violations, r.At(m.Line, m.Column, msg).Build())
	}
	return violations, nil
}
