package lint_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

func engineWith(t *testing.T, rules ...lint.Rule) *lint.LintEngine {
	t.Helper()

	plugins := lint.NewPluginRegistry()
	require.NoError(t, plugins.RegisterProvider(providerOf("test", rules...)))
	engine, err := plugins.CreateEngine()
	require.NoError(t, err)
	return engine
}

func TestLintDocument_RunsInRegistrationOrder(t *testing.T) {
	t.Parallel()

	engine := engineWith(t,
		newFixedRule("MD002", stable(), at(2, 1)),
		newFixedRule("MD001", stable(), at(1, 1), at(3, 4)),
	)

	violations, err := engine.LintDocument(mustDoc("a\nb\nc\n", "doc.md"))
	require.NoError(t, err)

	assert.Equal(t, []string{"MD002", "MD001", "MD001"}, ids(violations))
	assert.Equal(t, "rule-MD002", violations[0].RuleName)
	assert.Equal(t, config.SeverityWarning, violations[0].Severity)
}

func TestLintDocument_NoViolationsIsEmptySlice(t *testing.T) {
	t.Parallel()

	engine := engineWith(t, newFixedRule("MD001", stable()))

	violations, err := engine.LintDocument(mustDoc("", ""))
	require.NoError(t, err)
	assert.NotNil(t, violations)
	assert.Empty(t, violations)
}

func TestLintDocument_SharesTree(t *testing.T) {
	t.Parallel()

	var sawRoot bool
	rule := newFixedRule("MD001", stable())
	rule.sawRoot = &sawRoot

	engine := engineWith(t, rule)
	_, err := engine.LintDocument(mustDoc("# x\n", "doc.md"))
	require.NoError(t, err)
	assert.True(t, sawRoot)
}

func TestLintDocument_RuleErrorAborts(t *testing.T) {
	t.Parallel()

	failing := newFixedRule("MD002", stable())
	failing.err = errBoom

	engine := engineWith(t,
		newFixedRule("MD001", stable(), at(1, 1)),
		failing,
	)

	violations, err := engine.LintDocument(mustDoc("text\n", "doc.md"))
	require.Nil(t, violations)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, lint.KindRule, lint.KindOf(err))

	var ruleErr *lint.RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "MD002", ruleErr.RuleID)
	assert.Equal(t, "doc.md", ruleErr.Path)
	assert.Equal(t, "rule MD002 on doc.md: boom", err.Error())
}

func TestLintDocument_Selection(t *testing.T) {
	t.Parallel()

	engine := engineWith(t,
		newFixedRule("MD001", stable(), at(1, 1)),
		newFixedRule("MD002", stable(), at(1, 1)),
		newFixedRule("MD003", stable(), at(1, 1)),
	)
	doc := mustDoc("text\n", "doc.md")

	tests := []struct {
		name string
		cfg  func() *config.Config
		want []string
	}{
		{"default runs all", config.Default, []string{"MD001", "MD002", "MD003"}},
		{"nil config runs all", func() *config.Config { return nil }, []string{"MD001", "MD002", "MD003"}},
		{"allowlist", func() *config.Config {
			cfg := config.New()
			cfg.EnabledRules = []string{"md002"}
			return cfg
		}, []string{"MD002"}},
		{"empty allowlist runs none", func() *config.Config {
			cfg := config.New()
			cfg.EnabledRules = []string{}
			return cfg
		}, []string{}},
		{"disabled", func() *config.Config {
			cfg := config.New()
			cfg.DisabledRules = []string{"MD001"}
			return cfg
		}, []string{"MD002", "MD003"}},
		{"disabled beats allowlist", func() *config.Config {
			cfg := config.New()
			cfg.EnabledRules = []string{"MD001", "MD002"}
			cfg.DisabledRules = []string{"MD001"}
			return cfg
		}, []string{"MD002"}},
		{"default off with toggle", func() *config.Config {
			cfg := config.New()
			cfg.DefaultEnabled = false
			cfg.RuleToggles = map[string]bool{"MD003": true}
			return cfg
		}, []string{"MD003"}},
		{"toggle off", func() *config.Config {
			cfg := config.New()
			cfg.RuleToggles = map[string]bool{"MD002": false}
			return cfg
		}, []string{"MD001", "MD003"}},
		{"disabled beats toggle", func() *config.Config {
			cfg := config.New()
			cfg.DefaultEnabled = false
			cfg.RuleToggles = map[string]bool{"MD003": true}
			cfg.DisabledRules = []string{"MD003"}
			return cfg
		}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tt.cfg()
			violations, err := engine.LintDocumentWithConfig(doc, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(violations))
			assert.Equal(t, tt.want, orEmpty(engine.ActiveRuleIDs(cfg)))
		})
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func TestLintDocument_SeverityOverride(t *testing.T) {
	t.Parallel()

	engine := engineWith(t, newFixedRule("MD001", stable(), at(1, 1)))
	doc := mustDoc("text\n", "doc.md")

	cfg, err := config.Parse([]byte("MD001:\n  severity: error\n"))
	require.NoError(t, err)

	violations, err := engine.LintDocumentWithConfig(doc, cfg)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, config.SeverityError, violations[0].Severity)

	bad, err := config.Parse([]byte("MD001:\n  severity: loud\n"))
	require.NoError(t, err)

	_, err = engine.LintDocumentWithConfig(doc, bad)
	require.ErrorIs(t, err, config.ErrInvalidValue)
	assert.Equal(t, lint.KindConfig, lint.KindOf(err))
}

func TestLintDocument_OverrideDedup(t *testing.T) {
	t.Parallel()

	engine := engineWith(t,
		newFixedRule("MD040", stable(), at(3, 1)),
		newFixedRule("MDBOOK001", stable().WithOverrides("MD040"), at(3, 1)),
	)
	doc := mustDoc("# T\n\n```\ncode\n```\n", "doc.md")

	violations, err := engine.LintDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"MDBOOK001"}, ids(violations))

	cfg := config.New()
	cfg.DisabledRules = []string{"MDBOOK001"}
	violations, err = engine.LintDocumentWithConfig(doc, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"MD040"}, ids(violations))
}

func TestLintDocument_Deterministic(t *testing.T) {
	t.Parallel()

	engine := engineWith(t,
		lint.AdaptAST(newHeadingRule("MD001")),
		newFixedRule("MD002", stable(), at(1, 1), at(2, 1)),
	)
	doc := mustDoc("# One\n## Two\n### Three\n", "doc.md")

	first, err := engine.LintDocument(doc)
	require.NoError(t, err)
	for range 5 {
		again, err := engine.LintDocument(doc)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestLintDocument_ConcurrentUse(t *testing.T) {
	t.Parallel()

	engine := engineWith(t, lint.AdaptAST(newHeadingRule("MD001")))
	doc := mustDoc("# One\n\n## Two\n", "doc.md")

	want, err := engine.LintDocument(doc)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]lint.Violation, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = engine.LintDocument(doc)
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestRuleMetadataLookup(t *testing.T) {
	t.Parallel()

	engine := engineWith(t, newFixedRule("MDBOOK001", stable().WithOverrides("MD040")))

	meta, ok := engine.RuleMetadata("MDBOOK001")
	require.True(t, ok)
	assert.Equal(t, "MD040", meta.Overrides)

	_, ok = engine.RuleMetadata("MISSING")
	assert.False(t, ok)
}

func collectionEngine(t *testing.T, docRules []lint.Rule, collRules ...lint.CollectionRule) *lint.LintEngine {
	t.Helper()

	reg := lint.NewRuleRegistry()
	for _, rule := range docRules {
		require.NoError(t, reg.Register(rule))
	}
	for _, rule := range collRules {
		require.NoError(t, reg.RegisterCollectionRule(rule))
	}
	return lint.NewLintEngine(reg)
}

func TestLintCollection(t *testing.T) {
	t.Parallel()

	engine := collectionEngine(t,
		[]lint.Rule{newFixedRule("MD001", stable(), at(2, 1))},
		newPathRule("BOOK001", "b.md", "a.md"),
	)
	docs := []*document.Document{mustDoc("a\n", "a.md"), mustDoc("b\n", "b.md"), mustDoc("c\n", "c.md")}

	results, err := engine.LintCollection(docs, config.Default())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []string{"MD001", "BOOK001"}, ids(results["a.md"]))
	assert.Equal(t, []string{"MD001", "BOOK001"}, ids(results["b.md"]))
	assert.Equal(t, []string{"MD001"}, ids(results["c.md"]))

	last := results["b.md"][1]
	assert.Equal(t, "collection-BOOK001", last.RuleName)
	assert.Equal(t, "across b.md", last.Message)
}

func TestLintCollection_DisabledCollectionRule(t *testing.T) {
	t.Parallel()

	engine := collectionEngine(t, nil, newPathRule("BOOK001", "a.md"))

	cfg := config.New()
	cfg.DisabledRules = []string{"BOOK001"}

	results, err := engine.LintCollection([]*document.Document{mustDoc("a\n", "a.md")}, cfg)
	require.NoError(t, err)
	assert.Empty(t, results["a.md"])
}

func TestLintCollection_UnknownPath(t *testing.T) {
	t.Parallel()

	engine := collectionEngine(t, nil, newPathRule("BOOK001", "ghost.md"))

	_, err := engine.LintCollection([]*document.Document{mustDoc("a\n", "a.md")}, config.Default())
	require.ErrorIs(t, err, lint.ErrUnknownDocument)

	var ruleErr *lint.RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "BOOK001", ruleErr.RuleID)
	assert.Equal(t, "ghost.md", ruleErr.Path)
}

func TestLintCollection_RuleFailure(t *testing.T) {
	t.Parallel()

	failing := newPathRule("BOOK001")
	failing.err = errBoom
	engine := collectionEngine(t, nil, failing)

	_, err := engine.LintCollection([]*document.Document{mustDoc("a\n", "a.md")}, config.Default())
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, lint.KindRule, lint.KindOf(err))
}

func TestLintCollection_DedupAcrossPhases(t *testing.T) {
	t.Parallel()

	override := newPathRule("BOOK001", "a.md")
	override.BaseRule = lint.NewBaseRule("BOOK001", "collection-BOOK001", "overrides MD001",
		lint.StableMetadata(lint.CategoryMdBook, "0.1.0").WithOverrides("MD001"))

	engine := collectionEngine(t,
		[]lint.Rule{newFixedRule("MD001", stable(), at(1, 1))},
		override,
	)

	results, err := engine.LintCollection([]*document.Document{mustDoc("a\n", "a.md")}, config.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{"BOOK001"}, ids(results["a.md"]))
}

func TestMergeCollection_FailureLeavesResultsUntouched(t *testing.T) {
	t.Parallel()

	failing := newPathRule("BOOK002")
	failing.err = errBoom
	engine := collectionEngine(t, nil, newPathRule("BOOK001", "a.md"), failing)

	results := map[string][]lint.Violation{"a.md": {violation("MD001", 2, 1)}}
	err := engine.MergeCollection([]*document.Document{mustDoc("a\n", "a.md")}, config.Default(), results)
	require.ErrorIs(t, err, errBoom)

	assert.Equal(t, []string{"MD001"}, ids(results["a.md"]))
}
