package standard

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// TrailingSpacesRule checks for trailing whitespace.
type TrailingSpacesRule struct {
	lint.BaseRule

	brSpaces int
	strict   bool
}

// NewTrailingSpacesRule creates MD009. Options: br_spaces, strict.
func NewTrailingSpacesRule(cfg *config.Config) (*TrailingSpacesRule, error) {
	opts := cfg.Options("MD009")
	brSpaces := opts.Int("br_spaces", 2)
	strict := opts.Bool("strict", false)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &TrailingSpacesRule{
		BaseRule: lint.NewBaseRule(
			"MD009",
			"no-trailing-spaces",
			"Trailing spaces",
			lint.StableMetadata(lint.CategoryFormatting, "0.1.0"),
		).WithFixes(),
		brSpaces: brSpaces,
		strict:   strict,
	}, nil
}

// CheckAST reports trailing whitespace outside code blocks. Exactly
// br_spaces trailing spaces before a non-blank line form a hard break and
// are allowed unless strict is set.
func (r *TrailingSpacesRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	code := lint.CodeBlockLines(doc, root)

	var violations []lint.Violation
	for lineNum := 1; lineNum <= doc.LineCount(); lineNum++ {
		if code[lineNum] {
			continue
		}
		line := doc.Line(lineNum)
		col := lint.TrailingWhitespaceStart(line)
		if col == 0 {
			continue
		}

		trailing := line[col-1:]
		if r.isHardBreak(doc, lineNum, trailing) {
			continue
		}

		expected := "0"
		if r.brSpaces >= 2 {
			expected = fmt.Sprintf("0 or %d", r.brSpaces)
		}
		msg := fmt.Sprintf("Expected: %s; Actual: %d", expected, len(trailing))

		violations = append(violations,
			r.At(lineNum, col, msg).
				WithDeletion("Remove trailing whitespace",
					lint.Position{Line: lineNum, Column: col},
					lint.Position{Line: lineNum, Column: len(line) + 1}).
				Build())
	}

	return violations, nil
}

func (r *TrailingSpacesRule) isHardBreak(doc *document.Document, lineNum int, trailing string) bool {
	if r.strict || r.brSpaces < 2 || len(trailing) != r.brSpaces {
		return false
	}
	if strings.Trim(trailing, " ") != "" {
		return false
	}
	return !lint.IsBlankLine(doc, lineNum) && !lint.IsBlankLine(doc, lineNum+1)
}

// HardTabsRule checks for tab characters.
type HardTabsRule struct {
	lint.BaseRule

	codeBlocks   bool
	spacesPerTab int
}

// NewHardTabsRule creates MD010. Options: code_blocks, spaces_per_tab.
func NewHardTabsRule(cfg *config.Config) (*HardTabsRule, error) {
	opts := cfg.Options("MD010")
	codeBlocks := opts.Bool("code_blocks", true)
	spaces := opts.PositiveInt("spaces_per_tab", 1)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &HardTabsRule{
		BaseRule: lint.NewBaseRule(
			"MD010",
			"no-hard-tabs",
			"Hard tabs",
			lint.StableMetadata(lint.CategoryFormatting, "0.1.0"),
		).WithFixes(),
		codeBlocks:   codeBlocks,
		spacesPerTab: spaces,
	}, nil
}

// Check is CheckWithAST without a tree.
func (r *HardTabsRule) Check(doc *document.Document) ([]lint.Violation, error) {
	return r.CheckWithAST(doc, nil)
}

// CheckWithAST reports each run of tabs. The tree is only needed, and only
// parsed when absent, if code blocks are excluded.
func (r *HardTabsRule) CheckWithAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var skip lint.LineSet
	if !r.codeBlocks {
		if root == nil {
			root = doc.ParseAST()
		}
		skip = lint.CodeBlockLines(doc, root)
	}

	var violations []lint.Violation
	for lineNum := 1; lineNum <= doc.LineCount(); lineNum++ {
		if skip[lineNum] {
			continue
		}
		line := doc.Line(lineNum)
		for i := 0; i < len(line); i++ {
			if line[i] != '\t' {
				continue
			}
			end := i
			for end < len(line) && line[end] == '\t' {
				end++
			}

			replacement := strings.Repeat(" ", (end-i)*r.spacesPerTab)
			violations = append(violations,
				r.At(lineNum, i+1, fmt.Sprintf("Column: %d", i+1)).
					WithReplacement("Replace tabs with spaces",
						lint.Position{Line: lineNum, Column: i + 1},
						lint.Position{Line: lineNum, Column: end + 1},
						replacement).
					Build())
			i = end
		}
	}

	return violations, nil
}

// MultipleBlanksRule checks for runs of blank lines.
type MultipleBlanksRule struct {
	lint.BaseRule

	maximum int
}

// NewMultipleBlanksRule creates MD012. Option: maximum.
func NewMultipleBlanksRule(cfg *config.Config) (*MultipleBlanksRule, error) {
	opts := cfg.Options("MD012")
	maximum := opts.PositiveInt("maximum", 1)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &MultipleBlanksRule{
		BaseRule: lint.NewBaseRule(
			"MD012",
			"no-multiple-blanks",
			"Multiple consecutive blank lines",
			lint.StableMetadata(lint.CategoryFormatting, "0.1.0"),
		).WithFixes(),
		maximum: maximum,
	}, nil
}

// CheckAST reports each blank line beyond the maximum, outside code blocks.
func (r *MultipleBlanksRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	code := lint.CodeBlockLines(doc, root)

	var violations []lint.Violation
	run := 0
	for lineNum := doc.BodyStartLine(); lineNum <= doc.LineCount(); lineNum++ {
		if code[lineNum] || !lint.IsBlankLine(doc, lineNum) {
			run = 0
			continue
		}
		run++
		if run <= r.maximum {
			continue
		}

		msg := fmt.Sprintf("Expected: %d; Actual: %d", r.maximum, run)
		violations = append(violations,
			r.At(lineNum, 1, msg).
				WithDeletion("Remove blank line",
					lint.Position{Line: lineNum, Column: 1},
					lint.Position{Line: lineNum + 1, Column: 1}).
				Build())
	}

	return violations, nil
}

// FinalNewlineRule checks that files end with a newline.
type FinalNewlineRule struct {
	lint.BaseRule
}

// NewFinalNewlineRule creates MD047.
func NewFinalNewlineRule() *FinalNewlineRule {
	return &FinalNewlineRule{
		BaseRule: lint.NewBaseRule(
			"MD047",
			"single-trailing-newline",
			"Files should end with a single newline character",
			lint.StableMetadata(lint.CategoryFormatting, "0.1.0"),
		).WithFixes(),
	}
}

// Check is CheckWithAST without a tree.
func (r *FinalNewlineRule) Check(doc *document.Document) ([]lint.Violation, error) {
	return r.CheckWithAST(doc, nil)
}

// CheckWithAST looks at the raw text only.
func (r *FinalNewlineRule) CheckWithAST(doc *document.Document, _ *mdast.Node) ([]lint.Violation, error) {
	if doc.Content == "" || strings.HasSuffix(doc.Content, "\n") {
		return nil, nil
	}

	last := doc.LineCount()
	end := lint.Position{Line: last, Column: len(doc.Line(last)) + 1}
	return []lint.Violation{
		r.At(end.Line, end.Column, "Files should end with a single newline character").
			WithReplacement("Add a final newline", end, end, "\n").
			Build(),
	}, nil
}
