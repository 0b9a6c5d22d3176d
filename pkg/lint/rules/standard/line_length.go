package standard

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// defaultLineLength is the default maximum line length.
const defaultLineLength = 80

// LineLengthRule checks that lines do not exceed a maximum length.
type LineLengthRule struct {
	lint.BaseRule

	lineLength    int
	headingLength int
	codeLength    int
	codeBlocks    bool
	tables        bool
	headings      bool
	strict        bool
}

// NewLineLengthRule creates MD013. Options: line_length,
// heading_line_length, code_block_line_length, code_blocks, tables,
// headings, strict.
func NewLineLengthRule(cfg *config.Config) (*LineLengthRule, error) {
	opts := cfg.Options("MD013")
	r := &LineLengthRule{
		BaseRule: lint.NewBaseRule(
			"MD013",
			"line-length",
			"Line length should not exceed the configured maximum",
			lint.StableMetadata(lint.CategoryFormatting, "0.1.0"),
		),
	}
	r.lineLength = opts.PositiveInt("line_length", defaultLineLength)
	r.headingLength = opts.PositiveInt("heading_line_length", r.lineLength)
	r.codeLength = opts.PositiveInt("code_block_line_length", r.lineLength)
	r.codeBlocks = opts.Bool("code_blocks", true)
	r.tables = opts.Bool("tables", true)
	r.headings = opts.Bool("headings", true)
	r.strict = opts.Bool("strict", false)
	if err := opts.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// Check is CheckWithAST without a tree.
func (r *LineLengthRule) Check(doc *document.Document) ([]lint.Violation, error) {
	return r.CheckWithAST(doc, nil)
}

// CheckWithAST measures each line in runes. The tree is consulted, and
// parsed if absent, only when headings, code blocks, or tables are treated
// differently from body text.
func (r *LineLengthRule) CheckWithAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var code, tables, headings lint.LineSet
	if r.needsTree() {
		if root == nil {
			root = doc.ParseAST()
		}
		code = lint.CodeBlockLines(doc, root)
		tables = lint.TableLines(doc, root)
		headings = headingLines(doc, root)
	}

	var violations []lint.Violation
	for lineNum := doc.BodyStartLine(); lineNum <= doc.LineCount(); lineNum++ {
		limit := r.lineLength
		switch {
		case code[lineNum]:
			if !r.codeBlocks {
				continue
			}
			limit = r.codeLength
		case tables[lineNum]:
			if !r.tables {
				continue
			}
		case headings[lineNum]:
			if !r.headings {
				continue
			}
			limit = r.headingLength
		}

		line := doc.Line(lineNum)
		length := utf8.RuneCountInString(line)
		if length <= limit {
			continue
		}
		if !r.strict && !hasWhitespaceBeyond(line, limit) {
			continue
		}

		msg := fmt.Sprintf("Line length is %d characters, expected no more than %d", length, limit)
		violations = append(violations, r.At(lineNum, limit+1, msg).Build())
	}

	return violations, nil
}

func (r *LineLengthRule) needsTree() bool {
	return !r.codeBlocks || !r.tables || !r.headings ||
		r.headingLength != r.lineLength || r.codeLength != r.lineLength
}

// hasWhitespaceBeyond reports whether line has a space or tab after its
// first limit runes. Lines without one cannot be wrapped.
func hasWhitespaceBeyond(line string, limit int) bool {
	count := 0
	for i := range line {
		if count == limit {
			return strings.ContainsAny(line[i:], " \t")
		}
		count++
	}
	return false
}

func headingLines(doc *document.Document, root *mdast.Node) lint.LineSet {
	set := lint.LineSet{}
	for _, heading := range lint.Headings(root) {
		start, end, ok := lint.NodeLines(doc, heading)
		if !ok {
			continue
		}
		for line := start; line <= end; line++ {
			set[line] = true
		}
	}
	return set
}
