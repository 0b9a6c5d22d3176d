package mdbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/lint"
)

func TestCodeBlockLanguageRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config string
		input  string
		want   []string
	}{
		{
			name:  "tagged",
			input: "```rust\nfn main() {}\n```\n",
			want:  []string{},
		},
		{
			name:  "untagged",
			input: "```\nplain words\n```\n",
			want:  []string{"Code block has no language; mdBook will not highlight or test it"},
		},
		{
			name:  "known rust attributes",
			input: "```rust,ignore,edition2021\nfn main() {}\n```\n\n```rust hidelines=!\nfn f() {}\n```\n",
			want:  []string{},
		},
		{
			name:  "unknown rust attribute",
			input: "```rust,ignored\nfn main() {}\n```\n",
			want:  []string{`Unknown rust code block attribute "ignored"`},
		},
		{
			name:   "rust attributes unchecked",
			config: "MDBOOK001:\n  rust_attributes: false\n",
			input:  "```rust,ignored\nfn main() {}\n```\n",
			want:   []string{},
		},
		{
			name:  "other languages keep their attributes",
			input: "```toml,whatever\na = 1\n```\n",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, err := NewCodeBlockLanguageRule(parseConfig(t, tt.config))
			require.NoError(t, err)

			got := check(t, lint.AdaptAST(rule), "ch1.md", tt.input)
			assert.Equal(t, tt.want, messages(got))
		})
	}
}

func TestCodeBlockLanguageRule_SuggestsFromInclude(t *testing.T) {
	t.Parallel()

	rule, err := NewCodeBlockLanguageRule(nil)
	require.NoError(t, err)

	got := check(t, lint.AdaptAST(rule), "ch1.md", "# T\n\n```\n{{#include ../listings/main.rs:setup}}\n```\n")
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Line)
	assert.Equal(t, 1, got[0].Column)

	require.NotNil(t, got[0].Fix)
	require.NotNil(t, got[0].Fix.Replacement)
	assert.Equal(t, "rust", *got[0].Fix.Replacement)
	assert.Equal(t, lint.Position{Line: 3, Column: 4}, got[0].Fix.Start)
}

func TestCodeBlockLanguageRule_OverridesMD040(t *testing.T) {
	t.Parallel()

	rule, err := NewCodeBlockLanguageRule(nil)
	require.NoError(t, err)
	assert.Equal(t, "MD040", rule.Metadata().Overrides)
	assert.Equal(t, lint.CategoryMdBook, rule.Metadata().Category)
}

func TestIncludeTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    string
		wantOK  bool
	}{
		{content: "{{#include main.rs}}\n", want: "main.rs", wantOK: true},
		{content: "{{#rustdoc_include src/lib.rs:10:20}}", want: "src/lib.rs", wantOK: true},
		{content: "{{#title Hello}}", wantOK: false},
		{content: "{{#include a.rs}}\nmore", wantOK: false},
		{content: "text {{#include a.rs}}", wantOK: false},
		{content: `\{{#include a.rs}}`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			t.Parallel()

			got, ok := includeTarget([]byte(tt.content))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
