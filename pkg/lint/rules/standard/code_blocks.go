package standard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/langdetect"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// FencedCodeLanguageRule checks that fenced code blocks name a language.
type FencedCodeLanguageRule struct {
	lint.BaseRule

	allowed      []string
	languageOnly bool
}

// NewFencedCodeLanguageRule creates MD040. Options: allowed_languages,
// language_only.
func NewFencedCodeLanguageRule(cfg *config.Config) (*FencedCodeLanguageRule, error) {
	opts := cfg.Options("MD040")
	allowed := opts.StringSlice("allowed_languages", nil)
	languageOnly := opts.Bool("language_only", false)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &FencedCodeLanguageRule{
		BaseRule: lint.NewBaseRule(
			"MD040",
			"fenced-code-language",
			"Fenced code blocks should have a language specified",
			lint.StableMetadata(lint.CategoryContent, "0.1.0"),
		).WithFixes(),
		allowed:      allowed,
		languageOnly: languageOnly,
	}, nil
}

// CheckAST reports fenced blocks without a language. When the language
// can be guessed from the block's content a fix inserts it after the fence.
func (r *FencedCodeLanguageRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation

	for _, block := range lint.CodeBlocks(root) {
		if !lint.IsFencedCodeBlock(block) {
			continue
		}

		info := strings.TrimSpace(lint.CodeBlockInfo(block))
		lang := lint.CodeBlockLanguage(block)

		switch {
		case lang == "":
			violations = append(violations, r.missingLanguage(doc, block))
		case len(r.allowed) > 0 && !slices.Contains(r.allowed, lang):
			msg := fmt.Sprintf("%q is not allowed (allowed: %s)", lang, strings.Join(r.allowed, ", "))
			violations = append(violations, r.AtNode(doc, block, msg).Build())
		case r.languageOnly && info != lang:
			msg := fmt.Sprintf("Info string contains more than language: %q", info)
			violations = append(violations, r.AtNode(doc, block, msg).Build())
		}
	}

	return violations, nil
}

func (r *FencedCodeLanguageRule) missingLanguage(doc *document.Document, block *mdast.Node) lint.Violation {
	builder := r.AtNode(doc, block, "Fenced code blocks should have a language specified")

	if lang, ok := langdetect.Suggest(lint.CodeBlockContent(block)); ok && block.HasSource() {
		at := block.Span.StartOffset + block.Block.CodeBlock.FenceLength
		line, col := doc.OffsetPosition(at)
		pos := lint.Position{Line: line, Column: col}
		builder = builder.WithReplacement("Add language "+lang, pos, pos, lang)
	}

	return builder.Build()
}
