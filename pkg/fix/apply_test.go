package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/fix"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

func strPtr(s string) *string { return &s }

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{name: "no edits", content: "hello", want: "hello"},
		{
			name:    "replace",
			content: "hello world",
			edits:   []fix.TextEdit{{StartOffset: 6, EndOffset: 11, NewText: "there"}},
			want:    "hello there",
		},
		{
			name:    "insert",
			content: "ab",
			edits:   []fix.TextEdit{{StartOffset: 1, EndOffset: 1, NewText: "-"}},
			want:    "a-b",
		},
		{
			name:    "delete",
			content: "line   \n",
			edits:   []fix.TextEdit{{StartOffset: 4, EndOffset: 7}},
			want:    "line\n",
		},
		{
			name:    "several",
			content: "a b c",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 1, NewText: "A"},
				{StartOffset: 4, EndOffset: 5, NewText: "C"},
			},
			want: "A b C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			content := []byte(tt.content)
			got := fix.ApplyEdits(content, tt.edits)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.content, string(content))
		})
	}
}

func TestFromViolations(t *testing.T) {
	t.Parallel()

	doc, err := document.New("ab   \ncd\n", "a.md")
	require.NoError(t, err)

	violations := []lint.Violation{
		{RuleID: "MD009", Line: 1, Column: 3, Fix: &lint.Fix{
			Start: lint.Position{Line: 1, Column: 3},
			End:   lint.Position{Line: 1, Column: 6},
		}},
		{RuleID: "MD001", Line: 2, Column: 1},
		{RuleID: "MD047", Line: 9, Column: 1, Fix: &lint.Fix{
			Replacement: strPtr("\n"),
			Start:       lint.Position{Line: 9, Column: 1},
			End:         lint.Position{Line: 9, Column: 1},
		}},
	}

	edits, invalid := fix.FromViolations(doc, violations)
	require.Len(t, edits, 1)
	assert.Equal(t, fix.TextEdit{StartOffset: 2, EndOffset: 5, RuleID: "MD009"}, edits[0])
	assert.True(t, edits[0].IsDeletion())

	require.Len(t, invalid, 1)
	var verr *fix.ValidationError
	require.ErrorAs(t, invalid[0], &verr)
	assert.Equal(t, "MD047", verr.RuleID)
}

func TestPreviewFixes(t *testing.T) {
	t.Parallel()

	doc, err := document.New("# Title  \n\nsome text   \n", "a.md")
	require.NoError(t, err)

	violations := []lint.Violation{
		{RuleID: "MD009", Line: 1, Column: 8, Fix: &lint.Fix{
			Start: lint.Position{Line: 1, Column: 8},
			End:   lint.Position{Line: 1, Column: 10},
		}},
		{RuleID: "MD009", Line: 3, Column: 10, Fix: &lint.Fix{
			Start: lint.Position{Line: 3, Column: 10},
			End:   lint.Position{Line: 3, Column: 13},
		}},
		{RuleID: "XX001", Line: 3, Column: 10, Fix: &lint.Fix{
			Replacement: strPtr("!"),
			Start:       lint.Position{Line: 3, Column: 10},
			End:         lint.Position{Line: 3, Column: 13},
		}},
	}

	preview := fix.PreviewFixes(doc, violations)
	assert.Equal(t, "# Title\n\nsome text\n", string(preview.Modified))
	assert.Equal(t, "# Title  \n\nsome text   \n", string(preview.Original))
	assert.Len(t, preview.Applied, 2)
	assert.Len(t, preview.Skipped, 1)
	assert.Empty(t, preview.Invalid)

	d := preview.Diff("a.md")
	require.True(t, d.HasChanges())
	assert.Equal(t, 2, d.Additions)
	assert.Equal(t, 2, d.Deletions)
}

func TestPreviewFixes_NoFixes(t *testing.T) {
	t.Parallel()

	doc, err := document.New("text\n", "a.md")
	require.NoError(t, err)

	preview := fix.PreviewFixes(doc, []lint.Violation{{RuleID: "MD001", Line: 1, Column: 1}})
	assert.Equal(t, "text\n", string(preview.Modified))
	assert.Nil(t, preview.Diff("a.md"))
}
