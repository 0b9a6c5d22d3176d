package mdbook

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIncludeRule(t *testing.T, existing ...string) *IncludeDirectiveRule {
	t.Helper()

	rule, err := NewIncludeDirectiveRule(nil)
	require.NoError(t, err)

	files := make(map[string]bool, len(existing))
	for _, f := range existing {
		files[filepath.FromSlash(f)] = true
	}
	rule.exists = func(p string) bool { return files[p] }
	return rule
}

func TestIncludeDirectiveRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain include",
			input: "```rust\n{{#include listings/main.rs}}\n```\n",
			want:  []string{},
		},
		{
			name:  "anchor and ranges",
			input: "{{#include listings/main.rs:setup}}\n{{#include listings/main.rs:2:5}}\n{{#include listings/main.rs::5}}\n{{#include listings/main.rs:3}}\n",
			want:  []string{},
		},
		{
			name:  "backwards range",
			input: "{{#include listings/main.rs:9:2}}\n",
			want:  []string{"Include range starts after it ends (9 > 2)"},
		},
		{
			name:  "zero line",
			input: "{{#include listings/main.rs:0:2}}\n",
			want:  []string{`Invalid include line "0"`},
		},
		{
			name:  "too many parts",
			input: "{{#include listings/main.rs:1:2:3}}\n",
			want:  []string{`Invalid include range "1:2:3"`},
		},
		{
			name:  "bad anchor",
			input: "{{#include listings/main.rs:a.b}}\n",
			want:  []string{`Invalid include anchor "a.b"`},
		},
		{
			name:  "missing path",
			input: "{{#include }}\n",
			want:  []string{"{{#include}} needs a file path"},
		},
		{
			name:  "missing file",
			input: "{{#include listings/gone.rs}}\n",
			want:  []string{`Included file "listings/gone.rs" does not exist`},
		},
		{
			name:  "unknown directive",
			input: "{{#inclde listings/main.rs}}\n",
			want:  []string{"Unknown directive {{#inclde}}"},
		},
		{
			name:  "deprecated playpen",
			input: "{{#playpen listings/main.rs}}\n",
			want:  []string{"{{#playpen}} is deprecated; use {{#playground}}"},
		},
		{
			name:  "title",
			input: "{{#title}}\n{{#title My Book}}\n",
			want:  []string{"{{#title}} needs a title"},
		},
		{
			name:  "unclosed",
			input: "Text {{#include listings/main.rs\n",
			want:  []string{`Unclosed directive: missing "}}"`},
		},
		{
			name:  "escaped",
			input: "\\{{#nonsense}}\n",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule := newIncludeRule(t, "src/listings/main.rs")
			got := check(t, rule, "src/ch1.md", tt.input)
			assert.Equal(t, tt.want, messages(got))
		})
	}
}

func TestIncludeDirectiveRule_Position(t *testing.T) {
	t.Parallel()

	rule := newIncludeRule(t)
	got := check(t, rule, "", "# T\n\nSee {{#oops}} here.\n")
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Line)
	assert.Equal(t, 5, got[0].Column)
}

func TestIncludeDirectiveRule_FilesUnchecked(t *testing.T) {
	t.Parallel()

	rule, err := NewIncludeDirectiveRule(parseConfig(t, "MDBOOK010:\n  check-files: false\n"))
	require.NoError(t, err)

	assert.Empty(t, check(t, rule, "src/ch1.md", "{{#include nowhere.rs}}\n"))
}
