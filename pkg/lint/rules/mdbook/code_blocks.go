package mdbook

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/langdetect"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// rustAttributes are the info string attributes mdBook and rustdoc accept
// after "rust".
var rustAttributes = map[string]bool{
	"ignore":          true,
	"should_panic":    true,
	"no_run":          true,
	"compile_fail":    true,
	"edition2015":     true,
	"edition2018":     true,
	"edition2021":     true,
	"edition2024":     true,
	"editable":        true,
	"noplayground":    true,
	"noplaypen":       true,
	"mdbook-runnable": true,
	"test_harness":    true,
}

// CodeBlockLanguageRule checks code fences the way mdBook renders them.
// It supersedes MD040 at the same position.
type CodeBlockLanguageRule struct {
	lint.BaseRule

	checkRust bool
}

// NewCodeBlockLanguageRule creates MDBOOK001. Option: rust_attributes.
func NewCodeBlockLanguageRule(cfg *config.Config) (*CodeBlockLanguageRule, error) {
	opts := cfg.Options("MDBOOK001")
	checkRust := opts.Bool("rust_attributes", true)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &CodeBlockLanguageRule{
		BaseRule: lint.NewBaseRule(
			"MDBOOK001",
			"mdbook-code-block-language",
			"Code blocks need a language tag for mdBook highlighting and testing",
			lint.StableMetadata(lint.CategoryMdBook, "0.1.0").WithOverrides("MD040"),
		).WithFixes(),
		checkRust: checkRust,
	}, nil
}

// infoTokens splits an info string the way mdBook does: on commas and
// whitespace.
func infoTokens(info string) []string {
	return strings.FieldsFunc(info, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// CheckAST reports fenced blocks without a language, and unknown attributes
// on rust blocks.
func (r *CodeBlockLanguageRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation

	for _, block := range lint.CodeBlocks(root) {
		if !lint.IsFencedCodeBlock(block) {
			continue
		}

		tokens := infoTokens(lint.CodeBlockInfo(block))
		if len(tokens) == 0 {
			violations = append(violations, r.missingLanguage(doc, block))
			continue
		}

		if r.checkRust && tokens[0] == "rust" {
			for _, attr := range tokens[1:] {
				if rustAttributes[attr] || strings.HasPrefix(attr, "hidelines=") {
					continue
				}
				msg := fmt.Sprintf("Unknown rust code block attribute %q", attr)
				violations = append(violations, r.AtNode(doc, block, msg).Build())
			}
		}
	}

	return violations, nil
}

// missingLanguage suggests a tag from an included file's extension, or
// from the block's content.
func (r *CodeBlockLanguageRule) missingLanguage(doc *document.Document, block *mdast.Node) lint.Violation {
	builder := r.AtNode(doc, block, "Code block has no language; mdBook will not highlight or test it")

	content := lint.CodeBlockContent(block)
	lang, ok := "", false
	if file, isInclude := includeTarget(content); isInclude {
		lang, ok = langdetect.FromFilename(file)
	}
	if !ok {
		lang, ok = langdetect.Suggest(content)
	}

	if ok && block.HasSource() {
		at := block.Span.StartOffset + block.Block.CodeBlock.FenceLength
		line, col := doc.OffsetPosition(at)
		pos := lint.Position{Line: line, Column: col}
		builder = builder.WithReplacement("Add language "+lang, pos, pos, lang)
	}

	return builder.Build()
}
