package mdbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalLinksRule(t *testing.T) {
	t.Parallel()

	docs := chapters(t,
		"src/SUMMARY.md", "- [Intro](intro.md)\n- [Guide](guide/README.md)\n",
		"src/intro.md", "# Intro\n\n## Setting up\n\n"+
			"[ok](guide/README.md#usage)\n"+
			"[html](guide/index.html)\n"+
			"[dir](guide/)\n"+
			"[missing](gone.md)\n"+
			"[bad anchor](guide/README.md#nope)\n"+
			"[self](#setting-up)\n"+
			"[self missing](#nowhere)\n"+
			"[external](https://example.com/x.md)\n"+
			"[asset](diagram.svg)\n"+
			"![img](missing.png)\n",
		"src/guide/README.md", "# Guide\n\n## Usage\n\n[back](../intro.md#intro)\n[root](/intro.md)\n",
	)

	rule := NewInternalLinksRule()
	rule.exists = noFiles

	found, err := rule.CheckCollection(docs)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"src/intro.md": {
			"Link target gone.md does not exist",
			"Anchor #nope not found in guide/README.md",
			"Anchor #nowhere not found in this chapter",
		},
	}, byPath(found))

	for _, v := range found {
		assert.Equal(t, "MDBOOK002", v.RuleID)
	}
}

func TestInternalLinksRule_FileOnDisk(t *testing.T) {
	t.Parallel()

	docs := chapters(t, "docs/a.md", "[b](b.md)\n[c](c.md)\n")

	rule := NewInternalLinksRule()
	rule.exists = func(p string) bool { return p == "docs/b.md" }

	found, err := rule.CheckCollection(docs)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Link target c.md does not exist", found[0].Message)
	assert.Equal(t, 2, found[0].Line)
	assert.Equal(t, 1, found[0].Column)
}
