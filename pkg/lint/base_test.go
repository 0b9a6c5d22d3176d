package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

func TestBaseRule(t *testing.T) {
	t.Parallel()

	meta := lint.StableMetadata(lint.CategoryContent, "0.2.0")
	base := lint.NewBaseRule("CONTENT001", "no-todo", "flags TODO markers", meta).
		WithSeverity(config.SeverityInfo).
		WithFixes()

	assert.Equal(t, "CONTENT001", base.ID())
	assert.Equal(t, "no-todo", base.Name())
	assert.Equal(t, "flags TODO markers", base.Description())
	assert.Equal(t, meta, base.Metadata())
	assert.Equal(t, config.SeverityInfo, base.Severity())
	assert.True(t, base.CanFix())

	v := base.At(4, 2, "TODO left in text").Build()
	assert.Equal(t, "CONTENT001", v.RuleID)
	assert.Equal(t, "no-todo", v.RuleName)
	assert.Equal(t, 4, v.Line)
	assert.Equal(t, 2, v.Column)
	assert.Equal(t, config.SeverityInfo, v.Severity)
	assert.False(t, v.HasFix())
}

func TestBaseRule_AtNode(t *testing.T) {
	t.Parallel()

	base := lint.NewBaseRule("MD001", "x", "", stable())
	doc := mustDoc("text\n\n## Heading\n", "doc.md")
	root := doc.ParseAST()

	v := base.AtNode(doc, lint.FirstHeading(root), "m").Build()
	assert.Equal(t, 3, v.Line)
	assert.Equal(t, 1, v.Column)

	v = base.AtNode(doc, nil, "m").Build()
	assert.Equal(t, 1, v.Line)
	assert.Equal(t, 1, v.Column)
}

func TestViolationBuilder_Fixes(t *testing.T) {
	t.Parallel()

	replaced := lint.NewViolation("MD009", "no-trailing-spaces", 1, 5, "trailing").
		WithReplacement("remove spaces", at(1, 5), at(1, 7), "").
		Build()
	require.True(t, replaced.HasFix())
	require.NotNil(t, replaced.Fix.Replacement)
	assert.Empty(t, *replaced.Fix.Replacement)
	assert.False(t, replaced.Fix.IsDeletion())

	deleted := lint.NewViolation("MD012", "no-multiple-blanks", 3, 1, "blank").
		WithDeletion("remove line", at(3, 1), at(4, 1)).
		Build()
	require.True(t, deleted.HasFix())
	assert.True(t, deleted.Fix.IsDeletion())
	assert.Equal(t, at(4, 1), deleted.Fix.End)
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	meta := lint.StableMetadata(lint.CategoryLinks, "0.1.0").AsDeprecated("superseded", "MDBOOK002")
	assert.True(t, meta.Deprecated)
	assert.Equal(t, lint.StabilityDeprecated, meta.Stability)
	assert.Equal(t, "MDBOOK002", meta.Replacement)

	assert.Equal(t, "links", lint.CategoryLinks.String())
	assert.Equal(t, "mdbook", lint.CategoryMdBook.String())
	assert.Equal(t, "experimental", lint.StabilityExperimental.String())
	assert.Equal(t, "reserved", lint.StabilityReserved.String())
}
