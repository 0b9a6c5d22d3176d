package adr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

func TestSequentialNumberingRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config string
		paths  []string
		want   map[string]string
	}{
		{
			name:  "consecutive",
			paths: []string{"adr/0002-b.md", "adr/0001-a.md", "adr/0003-c.md"},
			want:  map[string]string{},
		},
		{
			name:  "gap",
			paths: []string{"adr/0001-a.md", "adr/0004-d.md", "adr/0002-b.md"},
			want:  map[string]string{"adr/0004-d.md": "ADR numbers skip from 2 to 4"},
		},
		{
			name:   "gap allowed",
			config: "ADR010:\n  allow_gaps: true\n",
			paths:  []string{"adr/0001-a.md", "adr/0004-d.md"},
			want:   map[string]string{},
		},
		{
			name:  "duplicate",
			paths: []string{"adr/0001-a.md", "adr/0002-b.md", "adr/0002-c.md"},
			want:  map[string]string{"adr/0002-c.md": "ADR number 2 is also used by adr/0002-b.md"},
		},
		{
			name:  "directories numbered separately",
			paths: []string{"a/adr/0001-x.md", "b/adr/0001-x.md", "b/adr/0002-y.md", "notes/0005-z.md"},
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, err := NewSequentialNumberingRule(parseConfig(t, tt.config))
			require.NoError(t, err)

			docs := make([]*document.Document, 0, len(tt.paths))
			for _, p := range tt.paths {
				docs = append(docs, newDoc(t, p, "# x\n"))
			}

			found, err := rule.CheckCollection(docs)
			require.NoError(t, err)

			got := make(map[string]string, len(found))
			for _, v := range found {
				got[v.Path] = v.Message
				assert.Equal(t, 1, v.Line)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProvider_RegistersAdvertisedRules(t *testing.T) {
	t.Parallel()

	provider := New()
	reg := lint.NewRuleRegistry()
	require.NoError(t, provider.RegisterRules(reg, nil))
	assert.Equal(t, provider.RuleIDs(), reg.IDs())
}

func TestProvider_Engine(t *testing.T) {
	t.Parallel()

	plugins := lint.NewPluginRegistry()
	require.NoError(t, plugins.RegisterProvider(New()))
	engine, err := plugins.CreateEngine()
	require.NoError(t, err)

	docs := []*document.Document{
		newDoc(t, "docs/adr/0001-record-decisions.md", nygardRecord),
		newDoc(t, "docs/adr/0003-skip.md", "# 3. Skip\n"),
	}

	results, err := engine.LintCollection(docs, nil)
	require.NoError(t, err)
	assert.Empty(t, results["docs/adr/0001-record-decisions.md"])

	var ids []string
	for _, v := range results["docs/adr/0003-skip.md"] {
		ids = append(ids, v.RuleID)
	}
	assert.Equal(t, []string{"ADR002", "ADR002", "ADR002", "ADR002", "ADR003", "ADR004", "ADR010"}, ids)
}
