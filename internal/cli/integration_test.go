package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/internal/cli"
)

// trailingSpaces has three trailing spaces on line 1, which MD009 reports.
const trailingSpaces = "# Hello world   \n\nSome text.\n"

type fixture struct {
	dir    string
	config string
}

func newFixture(t *testing.T, cfg string, files map[string]string) fixture {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfgPath := filepath.Join(dir, ".mdbooklint.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	return fixture{dir: dir, config: cfgPath}
}

// run executes the root command with an explicit config and no environment
// overrides.
func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)

	full := append([]string{"lint", "--config", f.config, "--no-env", "--color", "never"}, args...)
	cmd.SetArgs(full)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestIntegration_ReportsViolation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", map[string]string{"test.md": trailingSpaces})
	path := filepath.Join(f.dir, "test.md")

	out, err := f.run(t, "--only", "MD009", "--no-context", path)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, cli.ExitIssues, cli.ExitCode(err))

	assert.Contains(t, out, path+":1:14: warning: MD009/no-trailing-spaces: Expected: 0 or 2; Actual: 3")
	assert.Contains(t, out, "1 fixable")
}

func TestIntegration_CleanRun(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", map[string]string{"test.md": "# Hello world\n\nSome text.\n"})

	out, err := f.run(t, "--only", "MD009", filepath.Join(f.dir, "test.md"))
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found (1 file checked)")
}

func TestIntegration_ConfigDisablesRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  string
	}{
		{name: "disabled-rules list", cfg: "enabled-rules: [MD009, MD047]\ndisabled-rules: [md009]\n"},
		{name: "rules.enabled toggle", cfg: "enabled-rules: [MD009, MD047]\nrules:\n  enabled:\n    MD009: false\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, tt.cfg, map[string]string{"test.md": trailingSpaces})
			out, err := f.run(t, filepath.Join(f.dir, "test.md"))
			require.NoError(t, err)
			assert.NotContains(t, out, "MD009")
		})
	}
}

func TestIntegration_DisableFlag(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "enabled-rules: [MD009, MD047]\n", map[string]string{"test.md": trailingSpaces})
	out, err := f.run(t, "--disable", "MD009", filepath.Join(f.dir, "test.md"))
	require.NoError(t, err)
	assert.NotContains(t, out, "MD009")
}

func TestIntegration_RuleOptionsFromConfig(t *testing.T) {
	t.Parallel()

	long := "# Title\n\n" + strings.Repeat("word ", 20) + "\n"
	f := newFixture(t, "MD013:\n  line-length: 120\n", map[string]string{"long.md": long})

	_, err := f.run(t, "--only", "MD013", filepath.Join(f.dir, "long.md"))
	require.NoError(t, err)
}

func TestIntegration_CodeFenceLanguage(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", map[string]string{"chapter.md": "# Title\n\n```\ncode\n```\n"})
	out, err := f.run(t, "--only", "MD040,MDBOOK001", "--no-context", filepath.Join(f.dir, "chapter.md"))
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	assert.Contains(t, out, ":3:1: ")
	assert.Contains(t, out, "MDBOOK001")
	assert.NotContains(t, out, "MD040/")
}

func TestIntegration_DuplicateTitlesAcrossFiles(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", map[string]string{
		"src/intro.md":       "# Introduction\n",
		"src/guide/intro.md": "# Introduction\n",
	})
	out, err := f.run(t, "--only", "MDBOOK004", "--format", "json", filepath.Join(f.dir, "src"))
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	var report struct {
		Files []struct {
			Path       string `json:"path"`
			Violations []struct {
				RuleID  string `json:"ruleId"`
				Message string `json:"message"`
			} `json:"violations"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 2)
	for _, file := range report.Files {
		require.Len(t, file.Violations, 1, file.Path)
		assert.Equal(t, "MDBOOK004", file.Violations[0].RuleID)
	}
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "MD013:\n  severity: fatal\n", map[string]string{"test.md": trailingSpaces})
	_, err := f.run(t, filepath.Join(f.dir, "test.md"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
	assert.False(t, cli.IsReported(err))
}

func TestIntegration_InvalidRuleOption(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "MD013:\n  line-length: long\n", map[string]string{"test.md": trailingSpaces})
	_, err := f.run(t, filepath.Join(f.dir, "test.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MD013")
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", map[string]string{"test.md": trailingSpaces})
	_, err := f.run(t, "--format", "xml", filepath.Join(f.dir, "test.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestIntegration_MissingPath(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", nil)
	_, err := f.run(t, filepath.Join(f.dir, "nope.md"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
}

func TestIntegration_SARIFOutput(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", map[string]string{"test.md": trailingSpaces})
	out, err := f.run(t, "--only", "MD009", "--format", "sarif", "--compact", filepath.Join(f.dir, "test.md"))
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2.1.0", doc["version"])
	assert.Equal(t, 1, strings.Count(out, `"ruleId":"MD009"`))
}

func TestIntegration_RulesCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"rules", "--provider", "mdbook", "--format", "json"})
	require.NoError(t, cmd.Execute())

	var rules []struct {
		ID         string `json:"id"`
		Provider   string `json:"provider"`
		Overrides  string `json:"overrides"`
		Collection bool   `json:"collection"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &rules))
	require.NotEmpty(t, rules)

	byID := map[string]int{}
	for i, r := range rules {
		assert.Equal(t, "mdbook", r.Provider)
		byID[r.ID] = i
	}
	require.Contains(t, byID, "MDBOOK001")
	assert.Equal(t, "MD040", rules[byID["MDBOOK001"]].Overrides)
	require.Contains(t, byID, "MDBOOK004")
	assert.True(t, rules[byID["MDBOOK004"]].Collection)
}

func TestIntegration_RulesTable(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"rules", "--color", "never"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "PROVIDER")
	assert.Contains(t, out.String(), "MD009")
	assert.Contains(t, out.String(), "CONTENT001")
}

func TestIntegration_RulesUnknownProvider(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"rules", "--provider", "nope"})
	require.Error(t, cmd.Execute())
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "conf", "lint.yml")

	run := func(args ...string) error {
		cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"init", "--output", target}, args...))
		return cmd.Execute()
	}

	require.NoError(t, run())
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# mdbooklint configuration")

	require.Error(t, run(), "existing file without --force")

	require.NoError(t, run("--force", "--full", "--rules", "MDBOOK001"))
	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# MDBOOK001:")
	assert.NotContains(t, string(data), "# MD013:")
}

func TestIntegration_DiffFormatPreviewsFixes(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", map[string]string{"test.md": trailingSpaces})
	path := filepath.Join(f.dir, "test.md")

	out, err := f.run(t, "--only", "MD009", "--format", "diff", path)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	assert.Contains(t, out, "-# Hello world   \n+# Hello world\n")
	assert.Contains(t, out, "1 fix would change 1 file")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, trailingSpaces, string(content))
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", map[string]string{
		"a.md": trailingSpaces,
		"b.md": trailingSpaces,
	})

	out, err := f.run(t, "--only", "MD009", "--format", "summary", "--sort", "alpha", f.dir)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	assert.Contains(t, out, "MD009/no-trailing-spaces")
	assert.Less(t, strings.Index(out, "a.md"), strings.Index(out, "b.md"))
	assert.Contains(t, out, "2 issues")
}

func TestIntegration_InvalidSort(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", map[string]string{"test.md": trailingSpaces})

	_, err := f.run(t, "--sort", "random", f.dir)
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
}
