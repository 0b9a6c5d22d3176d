package standard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/lint"
)

func TestTrailingSpacesRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		config    string
		input     string
		wantLines []int
	}{
		{name: "clean", input: "Hello\nWorld\n", wantLines: []int{}},
		{name: "single space", input: "Hello \nWorld\n", wantLines: []int{1}},
		{name: "trailing tab", input: "Hello\t\n", wantLines: []int{1}},
		{name: "hard break allowed", input: "Hello  \nWorld\n", wantLines: []int{}},
		{name: "hard break before blank line", input: "Hello  \n\nWorld\n", wantLines: []int{1}},
		{name: "three spaces", input: "Hello   \nWorld\n", wantLines: []int{1}},
		{name: "code block ignored", input: "```\ncode  \n```\n", wantLines: []int{}},
		{name: "strict", config: "MD009:\n  strict: true\n", input: "Hello  \nWorld\n", wantLines: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, err := NewTrailingSpacesRule(parseConfig(t, tt.config))
			require.NoError(t, err)

			got := check(t, lint.AdaptAST(rule), tt.input)
			assert.Equal(t, tt.wantLines, lines(got))
		})
	}
}

func TestTrailingSpacesRule_Fix(t *testing.T) {
	t.Parallel()

	rule, err := NewTrailingSpacesRule(nil)
	require.NoError(t, err)

	got := check(t, lint.AdaptAST(rule), "Hello   \n")
	require.Len(t, got, 1)
	assert.Equal(t, "Expected: 0 or 2; Actual: 3", got[0].Message)
	assert.Equal(t, 6, got[0].Column)

	require.True(t, got[0].HasFix())
	assert.True(t, got[0].Fix.IsDeletion())
	assert.Equal(t, lint.Position{Line: 1, Column: 6}, got[0].Fix.Start)
	assert.Equal(t, lint.Position{Line: 1, Column: 9}, got[0].Fix.End)
}

func TestHardTabsRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		config    string
		input     string
		wantLines []int
	}{
		{name: "no tabs", input: "Hello\n", wantLines: []int{}},
		{name: "leading tab", input: "\tHello\n", wantLines: []int{1}},
		{name: "tab run counts once", input: "a\t\tb\tc\n", wantLines: []int{1, 1}},
		{name: "code blocks checked by default", input: "```\n\tx\n```\n", wantLines: []int{2}},
		{
			name:      "code blocks excluded",
			config:    "MD010:\n  code_blocks: false\n",
			input:     "```\n\tx\n```\nText\there\n",
			wantLines: []int{4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, err := NewHardTabsRule(parseConfig(t, tt.config))
			require.NoError(t, err)

			got := check(t, rule, tt.input)
			assert.Equal(t, tt.wantLines, lines(got))
		})
	}
}

func TestHardTabsRule_WithoutTree(t *testing.T) {
	t.Parallel()

	rule, err := NewHardTabsRule(parseConfig(t, "MD010:\n  code_blocks: false\n  spaces_per_tab: 4\n"))
	require.NoError(t, err)

	doc := newDoc(t, "```\n\tx\n```\na\tb\n")
	got, err := rule.Check(doc)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Line)
	assert.Equal(t, 2, got[0].Column)
	require.NotNil(t, got[0].Fix.Replacement)
	assert.Equal(t, "    ", *got[0].Fix.Replacement)
}

func TestMultipleBlanksRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		config    string
		input     string
		wantLines []int
	}{
		{name: "single blanks", input: "a\n\nb\n\nc\n", wantLines: []int{}},
		{name: "double blank", input: "a\n\n\nb\n", wantLines: []int{3}},
		{name: "triple blank", input: "a\n\n\n\nb\n", wantLines: []int{3, 4}},
		{name: "inside code block", input: "```\na\n\n\nb\n```\n", wantLines: []int{}},
		{name: "maximum two", config: "MD012:\n  maximum: 2\n", input: "a\n\n\nb\n", wantLines: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, err := NewMultipleBlanksRule(parseConfig(t, tt.config))
			require.NoError(t, err)

			got := check(t, lint.AdaptAST(rule), tt.input)
			assert.Equal(t, tt.wantLines, lines(got))
		})
	}
}

func TestMultipleBlanksRule_RejectsZero(t *testing.T) {
	t.Parallel()

	_, err := NewMultipleBlanksRule(parseConfig(t, "MD012:\n  maximum: 0\n"))
	require.Error(t, err)
	assert.Equal(t, lint.KindConfig, lint.KindOf(err))
}

func TestFinalNewlineRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "newline", input: "# T\n", want: 0},
		{name: "missing", input: "# T\n\nText", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := check(t, NewFinalNewlineRule(), tt.input)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestFinalNewlineRule_Fix(t *testing.T) {
	t.Parallel()

	got := check(t, NewFinalNewlineRule(), "a\nbc")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Line)
	assert.Equal(t, 3, got[0].Column)
	require.NotNil(t, got[0].Fix.Replacement)
	assert.Equal(t, "\n", *got[0].Fix.Replacement)
}
