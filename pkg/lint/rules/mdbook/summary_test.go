package mdbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/lint"
)

const validSummary = `# Summary

[Introduction](README.md)

# Guide

- [Getting started](guide/start.md)
  - [Installing](guide/install.md)
- [Draft chapter]()

---

[Contributors](misc/contributors.md)
`

func TestSummaryStructureRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		path  string
		input string
		want  []string
	}{
		{
			name:  "valid",
			path:  "src/SUMMARY.md",
			input: validSummary,
			want:  []string{},
		},
		{
			name:  "other files ignored",
			path:  "src/chapter.md",
			input: "1. not a chapter list\n",
			want:  []string{},
		},
		{
			name:  "numbered list",
			path:  "SUMMARY.md",
			input: "1. [A](a.md)\n",
			want:  []string{"Chapter lists must use '-' or '*' markers, not numbers"},
		},
		{
			name:  "item without link",
			path:  "SUMMARY.md",
			input: "- A chapter\n",
			want:  []string{"Chapter list items must be a single link"},
		},
		{
			name:  "text around link",
			path:  "SUMMARY.md",
			input: "- [A](a.md) and more\n",
			want:  []string{"Chapter list items must be a single link"},
		},
		{
			name:  "stray paragraph",
			path:  "SUMMARY.md",
			input: "# Summary\n\nThis book is great.\n\n- [A](a.md)\n",
			want:  []string{"Prefix and suffix chapters must be a single link"},
		},
		{
			name:  "duplicate chapter",
			path:  "SUMMARY.md",
			input: "- [A](a.md)\n- [Again](./a.md)\n",
			want:  []string{"Chapter ./a.md is listed more than once (first on line 1)"},
		},
		{
			name:  "code block",
			path:  "SUMMARY.md",
			input: "- [A](a.md)\n\n```\nx\n```\n",
			want:  []string{"Unexpected codeblock in SUMMARY.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := check(t, lint.AdaptAST(NewSummaryStructureRule()), tt.path, tt.input)
			assert.Equal(t, tt.want, messages(got))
		})
	}
}

func TestSummaryChapters(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, "src/SUMMARY.md", validSummary)
	chapters := summaryChapters(doc, doc.ParseAST())

	targets := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		targets = append(targets, ch.Target)
	}
	assert.Equal(t, []string{"README.md", "guide/start.md", "guide/install.md", "misc/contributors.md"}, targets)

	require.NotEmpty(t, chapters)
	assert.Equal(t, 3, chapters[0].Line)
	assert.Equal(t, "src", bookRoot(doc))
}
