package standard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/lint"
)

func TestNoBareURLsRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantLines []int
	}{
		{name: "bare", input: "See https://example.com for more.\n", wantLines: []int{1}},
		{name: "angle brackets", input: "See <https://example.com> for more.\n", wantLines: []int{}},
		{name: "inline link", input: "See [here](https://example.com).\n", wantLines: []int{}},
		{name: "code span", input: "Run `curl https://example.com`.\n", wantLines: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := check(t, lint.AdaptAST(NewNoBareURLsRule()), tt.input)
			assert.Equal(t, tt.wantLines, lines(got))
		})
	}
}

func TestNoBareURLsRule_Fix(t *testing.T) {
	t.Parallel()

	got := check(t, lint.AdaptAST(NewNoBareURLsRule()), "See https://example.com\n")
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Column)

	fix := got[0].Fix
	require.NotNil(t, fix)
	require.NotNil(t, fix.Replacement)
	assert.Equal(t, "<https://example.com>", *fix.Replacement)
	assert.Equal(t, lint.Position{Line: 1, Column: 5}, fix.Start)
	assert.Equal(t, lint.Position{Line: 1, Column: 24}, fix.End)
}

func TestNoEmptyLinksRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantLines []int
	}{
		{name: "real link", input: "[a](b.md)\n", wantLines: []int{}},
		{name: "empty", input: "[a]()\n", wantLines: []int{1}},
		{name: "hash only", input: "text\n\n[a](#)\n", wantLines: []int{3}},
		{name: "fragment", input: "[a](#intro)\n", wantLines: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := check(t, lint.AdaptAST(NewNoEmptyLinksRule()), tt.input)
			assert.Equal(t, tt.wantLines, lines(got))
		})
	}
}

func TestImageAltTextRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantLines []int
	}{
		{name: "described", input: "![diagram](a.png)\n", wantLines: []int{}},
		{name: "missing", input: "![](a.png)\n", wantLines: []int{1}},
		{name: "blank", input: "![ ](a.png)\n", wantLines: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := check(t, lint.AdaptAST(NewImageAltTextRule()), tt.input)
			assert.Equal(t, tt.wantLines, lines(got))
		})
	}
}
