package mdbook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

func TestMermaidRule(t *testing.T) {
	t.Parallel()

	rule, err := NewMermaidRule(config.New())
	require.NoError(t, err)

	tests := []struct {
		name     string
		content  string
		wantLen  int
		wantLine int
		wantMsg  string
	}{
		{
			name:    "valid flowchart",
			content: "# Test\n\n```mermaid\nflowchart TD\n    A --> B\n```\n",
		},
		{
			name:     "unparseable diagram",
			content:  "# Test\n\n```mermaid\nthis is not valid mermaid\n```\n",
			wantLen:  1,
			wantLine: 3,
			wantMsg:  "Invalid mermaid syntax",
		},
		{
			name:    "other languages ignored",
			content: "```text\nthis is not valid mermaid\n```\n",
		},
		{
			name:    "indented blocks ignored",
			content: "Para.\n\n    mermaid\n    nonsense\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := check(t, lint.AdaptAST(rule), "chapter.md", tt.content)
			require.Len(t, got, tt.wantLen)
			if tt.wantLen == 0 {
				return
			}
			assert.Equal(t, "MDBOOK011", got[0].RuleID)
			assert.Equal(t, tt.wantLine, got[0].Line)
			assert.Equal(t, config.SeverityError, got[0].Severity)
			assert.Contains(t, got[0].Message, tt.wantMsg)
			assert.Nil(t, got[0].Fix)
		})
	}
}

func TestMermaidRule_ValidatorFindingsInsideFence(t *testing.T) {
	t.Parallel()

	rule, err := NewMermaidRule(config.New())
	require.NoError(t, err)

	content := "# Test\n\n```mermaid\ngitGraph\n    commit\n    branch develop\n    checkout develop\n    commit\n    checkout undefined-branch\n```\n"
	got := check(t, lint.AdaptAST(rule), "chapter.md", content)
	require.NotEmpty(t, got)

	assert.Contains(t, strings.Join(messages(got), "\n"), "undefined-branch")
	for _, v := range got {
		assert.Greater(t, v.Line, 3)
		assert.Less(t, v.Line, 10)
	}
}

func TestMermaidRule_InvalidOption(t *testing.T) {
	t.Parallel()

	_, err := NewMermaidRule(parseConfig(t, "MDBOOK011:\n  strict: maybe\n"))
	require.Error(t, err)
}
