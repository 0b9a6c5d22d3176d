package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/config"
)

func TestGenerateTemplate_Minimal(t *testing.T) {
	t.Parallel()

	out := config.GenerateTemplate(config.TemplateOptions{})
	assert.True(t, strings.HasPrefix(string(out), config.DefaultTemplateHeader()))

	cfg, err := config.Parse(out)
	require.NoError(t, err)
	assert.True(t, cfg.DefaultEnabled)
}

func TestGenerateTemplate_Full(t *testing.T) {
	t.Parallel()

	rules := []config.RuleInfo{
		{ID: "MD013", Name: "line-length", Description: "Line length", Provider: "standard"},
		{ID: "MDBOOK001", Name: "code-block-language", Description: "Code blocks need a language", Provider: "mdbook", CanFix: true},
	}

	out := string(config.GenerateTemplate(config.TemplateOptions{Full: true, Rules: rules}))
	assert.Contains(t, out, "# MD013: line-length (standard)")
	assert.Contains(t, out, "# Suggests fixes: yes")
	assert.Less(t, strings.Index(out, "# MD013: "), strings.Index(out, "# MDBOOK001: "))

	_, err := config.Parse([]byte(out))
	require.NoError(t, err)
}

func TestGenerateTemplate_IncludeRules(t *testing.T) {
	t.Parallel()

	rules := []config.RuleInfo{
		{ID: "MD013", Name: "line-length"},
		{ID: "MD040", Name: "fenced-code-language"},
	}

	out := string(config.GenerateTemplate(config.TemplateOptions{
		Full:         true,
		Rules:        rules,
		IncludeRules: []string{"md040"},
	}))
	assert.Contains(t, out, "MD040")
	assert.NotContains(t, out, "line-length")
}
