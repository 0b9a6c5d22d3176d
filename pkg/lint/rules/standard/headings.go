package standard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// HeadingIncrementRule checks that heading levels only increase by one.
type HeadingIncrementRule struct {
	lint.BaseRule
}

// NewHeadingIncrementRule creates MD001.
func NewHeadingIncrementRule() *HeadingIncrementRule {
	return &HeadingIncrementRule{
		BaseRule: lint.NewBaseRule(
			"MD001",
			"heading-increment",
			"Heading levels should only increment by one level at a time",
			lint.StableMetadata(lint.CategoryStructure, "0.1.0"),
		),
	}
}

// CheckAST reports headings that skip a level.
func (r *HeadingIncrementRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation

	prev := 0
	for _, heading := range lint.Headings(root) {
		level := lint.HeadingLevel(heading)
		if prev > 0 && level > prev+1 {
			msg := fmt.Sprintf("Expected: h%d; Actual: h%d", prev+1, level)
			violations = append(violations, r.AtNode(doc, heading, msg).Build())
		}
		prev = level
	}

	return violations, nil
}

// Heading styles accepted by MD003.
const (
	styleConsistent        = "consistent"
	styleATX               = "atx"
	styleATXClosed         = "atx_closed"
	styleSetext            = "setext"
	styleSetextWithATX     = "setext_with_atx"
	styleSetextWithATXClos = "setext_with_atx_closed"
)

// HeadingStyleRule checks that headings use one style.
type HeadingStyleRule struct {
	lint.BaseRule

	style string
}

// NewHeadingStyleRule creates MD003. Option: style.
func NewHeadingStyleRule(cfg *config.Config) (*HeadingStyleRule, error) {
	opts := cfg.Options("MD003")
	style := opts.OneOf("style", styleConsistent,
		styleConsistent, styleATX, styleATXClosed, styleSetext, styleSetextWithATX, styleSetextWithATXClos)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &HeadingStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD003",
			"heading-style",
			"Heading style should be consistent",
			lint.StableMetadata(lint.CategoryFormatting, "0.1.0"),
		),
		style: style,
	}, nil
}

// CheckAST compares each heading's style with the configured one.
func (r *HeadingStyleRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation

	want := r.style
	for _, heading := range lint.Headings(root) {
		got := headingStyle(doc, heading)
		if want == styleConsistent {
			want = got
		}

		if !styleMatches(want, got, lint.HeadingLevel(heading)) {
			msg := fmt.Sprintf("Expected: %s; Actual: %s", expectedStyle(want, lint.HeadingLevel(heading)), got)
			violations = append(violations, r.AtNode(doc, heading, msg).Build())
		}
	}

	return violations, nil
}

func styleMatches(want, got string, level int) bool {
	switch want {
	case styleSetextWithATX, styleSetextWithATXClos:
		return got == expectedStyle(want, level)
	default:
		return want == got
	}
}

func expectedStyle(want string, level int) string {
	switch {
	case want == styleSetextWithATX && level > 2:
		return styleATX
	case want == styleSetextWithATXClos && level > 2:
		return styleATXClosed
	case want == styleSetextWithATX, want == styleSetextWithATXClos:
		return styleSetext
	default:
		return want
	}
}

// headingStyle classifies a heading as atx, atx_closed, or setext.
func headingStyle(doc *document.Document, heading *mdast.Node) string {
	if lint.IsSetextHeading(heading) {
		return styleSetext
	}

	line, _, ok := doc.NodePosition(heading)
	if !ok {
		return styleATX
	}
	text := strings.TrimRight(doc.Line(line), " \t")
	trimmed := strings.TrimRight(text, "#")
	if len(trimmed) < len(text) && (strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t")) {
		if strings.Trim(trimmed, " \t#") != "" {
			return styleATXClosed
		}
	}
	return styleATX
}

// missingSpaceATX matches "#Heading" but not "#" runs alone or "#!" shebangs.
var missingSpaceATX = regexp.MustCompile(`^ {0,3}(#{1,6})[^#\s!]`)

// NoMissingSpaceATXRule checks for a space after the hashes of ATX headings.
type NoMissingSpaceATXRule struct {
	lint.BaseRule
}

// NewNoMissingSpaceATXRule creates MD018.
func NewNoMissingSpaceATXRule() *NoMissingSpaceATXRule {
	return &NoMissingSpaceATXRule{
		BaseRule: lint.NewBaseRule(
			"MD018",
			"no-missing-space-atx",
			"No space after hash on atx style heading",
			lint.StableMetadata(lint.CategoryFormatting, "0.1.0"),
		).WithFixes(),
	}
}

// CheckAST scans lines outside code and HTML blocks.
func (r *NoMissingSpaceATXRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	verbatim := lint.VerbatimLines(doc, root)

	var violations []lint.Violation
	for lineNum := doc.BodyStartLine(); lineNum <= doc.LineCount(); lineNum++ {
		if verbatim[lineNum] {
			continue
		}
		line := doc.Line(lineNum)
		match := missingSpaceATX.FindStringSubmatchIndex(line)
		if match == nil {
			continue
		}

		insertAt := lint.Position{Line: lineNum, Column: match[3] + 1}
		violations = append(violations,
			r.At(lineNum, match[2]+1, "No space after hash on atx style heading").
				WithReplacement("Insert a space after the hashes", insertAt, insertAt, " ").
				Build())
	}

	return violations, nil
}

// BlanksAroundHeadingsRule checks for blank lines around headings.
type BlanksAroundHeadingsRule struct {
	lint.BaseRule

	above int
	below int
}

// NewBlanksAroundHeadingsRule creates MD022. Options: lines_above, lines_below.
func NewBlanksAroundHeadingsRule(cfg *config.Config) (*BlanksAroundHeadingsRule, error) {
	opts := cfg.Options("MD022")
	above := opts.Int("lines_above", 1)
	below := opts.Int("lines_below", 1)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &BlanksAroundHeadingsRule{
		BaseRule: lint.NewBaseRule(
			"MD022",
			"blanks-around-headings",
			"Headings should be surrounded by blank lines",
			lint.StableMetadata(lint.CategoryFormatting, "0.1.0"),
		),
		above: above,
		below: below,
	}, nil
}

// CheckAST checks top-level headings; headings inside lists or quotes
// share their lines with container markers.
func (r *BlanksAroundHeadingsRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation

	for _, heading := range lint.Headings(root) {
		if heading.Parent == nil || heading.Parent.Kind != mdast.NodeDocument {
			continue
		}
		start, end, ok := lint.NodeLines(doc, heading)
		if !ok {
			continue
		}

		if r.above > 0 && start > doc.BodyStartLine() {
			if got := lint.CountBlankLinesBefore(doc, start); got < r.above && start-got > doc.BodyStartLine() {
				msg := fmt.Sprintf("Expected: %d; Actual: %d; Above", r.above, got)
				violations = append(violations, r.At(start, 1, msg).Build())
			}
		}

		if r.below > 0 && end < doc.LineCount() {
			if got := lint.CountBlankLinesAfter(doc, end); got < r.below && end+got < doc.LineCount() {
				msg := fmt.Sprintf("Expected: %d; Actual: %d; Below", r.below, got)
				violations = append(violations, r.At(start, 1, msg).Build())
			}
		}
	}

	return violations, nil
}

// SingleTitleRule checks that a document has one top-level heading.
type SingleTitleRule struct {
	lint.BaseRule

	level            int
	frontMatterTitle string
}

// NewSingleTitleRule creates MD025. Options: level, front_matter_title.
func NewSingleTitleRule(cfg *config.Config) (*SingleTitleRule, error) {
	opts := cfg.Options("MD025")
	level := opts.PositiveInt("level", 1)
	title := opts.String("front_matter_title", "title")
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &SingleTitleRule{
		BaseRule: lint.NewBaseRule(
			"MD025",
			"single-title",
			"Multiple top-level headings in the same document",
			lint.StableMetadata(lint.CategoryStructure, "0.1.0"),
		),
		level:            level,
		frontMatterTitle: title,
	}, nil
}

// CheckAST reports every top-level heading after the first. A title in
// front matter counts as the first.
func (r *SingleTitleRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	seen := r.hasFrontMatterTitle(doc)

	var violations []lint.Violation
	for _, heading := range lint.Headings(root) {
		if lint.HeadingLevel(heading) != r.level {
			continue
		}
		if seen {
			violations = append(violations, r.AtNode(doc, heading, "Multiple top-level headings in the same document").Build())
		}
		seen = true
	}

	return violations, nil
}

func (r *SingleTitleRule) hasFrontMatterTitle(doc *document.Document) bool {
	if r.frontMatterTitle == "" || !doc.HasFrontMatter() {
		return false
	}
	// Malformed front matter counts as untitled.
	values, err := doc.FrontMatter()
	if err != nil {
		return false
	}
	title, ok := values[r.frontMatterTitle]
	return ok && title != nil && fmt.Sprint(title) != ""
}
