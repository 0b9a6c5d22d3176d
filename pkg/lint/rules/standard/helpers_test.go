package standard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// check runs rule over content through a fresh parse.
func check(t *testing.T, rule lint.Rule, content string) []lint.Violation {
	t.Helper()

	doc, err := document.New(content, "test.md")
	require.NoError(t, err)

	violations, err := rule.CheckWithAST(doc, doc.ParseAST())
	require.NoError(t, err)
	return violations
}

// parseConfig builds a config from YAML.
func parseConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()

	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	return cfg
}

// lines returns the line of each violation.
func lines(violations []lint.Violation) []int {
	out := make([]int, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Line)
	}
	return out
}

func newDoc(t *testing.T, content string) *document.Document {
	t.Helper()

	doc, err := document.New(content, "test.md")
	require.NoError(t, err)
	return doc
}
