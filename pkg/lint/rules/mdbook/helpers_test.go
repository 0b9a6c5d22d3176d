package mdbook

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

func newDoc(t *testing.T, path, content string) *document.Document {
	t.Helper()

	doc, err := document.New(content, path)
	require.NoError(t, err)
	return doc
}

func check(t *testing.T, rule lint.Rule, path, content string) []lint.Violation {
	t.Helper()

	doc := newDoc(t, path, content)
	violations, err := rule.CheckWithAST(doc, doc.ParseAST())
	require.NoError(t, err)
	return violations
}

func parseConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()

	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	return cfg
}

func messages(violations []lint.Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Message)
	}
	return out
}

// chapters builds documents from path/content pairs.
func chapters(t *testing.T, files ...string) []*document.Document {
	t.Helper()
	require.Zero(t, len(files)%2, "files come in path/content pairs")

	docs := make([]*document.Document, 0, len(files)/2)
	for i := 0; i < len(files); i += 2 {
		docs = append(docs, newDoc(t, files[i], files[i+1]))
	}
	return docs
}

// byPath groups collection findings into path -> messages.
func byPath(found []lint.CollectionViolation) map[string][]string {
	out := make(map[string][]string)
	for _, v := range found {
		out[v.Path] = append(out[v.Path], v.Message)
	}
	return out
}

func noFiles(string) bool { return false }
