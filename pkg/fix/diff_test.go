package fix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/fix"
)

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	t.Run("identical", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, fix.GenerateDiff("a.md", []byte("x\n"), []byte("x\n")))
		assert.Nil(t, fix.GenerateDiff("a.md", nil, nil))
	})

	t.Run("single change", func(t *testing.T) {
		t.Parallel()
		d := fix.GenerateDiff("docs/a.md", []byte("one\ntwo  \nthree\n"), []byte("one\ntwo\nthree\n"))
		require.NotNil(t, d)

		want := strings.Join([]string{
			"--- a/docs/a.md",
			"+++ b/docs/a.md",
			"@@ -1,3 +1,3 @@",
			" one",
			"-two  ",
			"+two",
			" three",
			"",
		}, "\n")
		assert.Equal(t, want, d.String())
		assert.Equal(t, 1, d.Additions)
		assert.Equal(t, 1, d.Deletions)
	})

	t.Run("distant changes split hunks", func(t *testing.T) {
		t.Parallel()
		var orig, mod []string
		for i := range 20 {
			line := strings.Repeat("x", i+1)
			orig = append(orig, line)
			if i == 0 || i == 19 {
				line += "!"
			}
			mod = append(mod, line)
		}
		d := fix.GenerateDiff("a.md", []byte(strings.Join(orig, "\n")+"\n"), []byte(strings.Join(mod, "\n")+"\n"))
		require.NotNil(t, d)
		require.Len(t, d.Hunks, 2)
		assert.Equal(t, "@@ -1,4 +1,4 @@", d.Hunks[0].Header())
		assert.Equal(t, "@@ -17,4 +17,4 @@", d.Hunks[1].Header())
	})

	t.Run("added trailing line", func(t *testing.T) {
		t.Parallel()
		d := fix.GenerateDiff("a.md", []byte("a"), []byte("a\n\n"))
		require.NotNil(t, d)
		assert.Equal(t, 1, d.Additions)
		assert.Equal(t, 0, d.Deletions)
	})
}

type bracketStyler struct{}

func (bracketStyler) Header(s string) string     { return "[h]" + s }
func (bracketStyler) HunkHeader(s string) string { return "[@]" + s }
func (bracketStyler) Added(s string) string      { return "[+]" + s }
func (bracketStyler) Removed(s string) string    { return "[-]" + s }

func TestDiff_WriteStyled(t *testing.T) {
	t.Parallel()

	d := fix.GenerateDiff("a.md", []byte("a\n"), []byte("b\n"))
	require.NotNil(t, d)

	var b strings.Builder
	require.NoError(t, d.Write(&b, bracketStyler{}))
	assert.Equal(t, "[h]--- a/a.md\n[h]+++ b/a.md\n[@]@@ -1,1 +1,1 @@\n[-]-a\n[+]+b\n", b.String())

	var nilDiff *fix.Diff
	assert.Empty(t, nilDiff.String())
}
