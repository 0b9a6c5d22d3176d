package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/config"
)

func TestParse_FullDocument(t *testing.T) {
	t.Parallel()

	data := []byte(`
enabled-rules: [md001, MDBOOK001]
disabled_rules: [MD013]
ignore: ["book/**"]
rules:
  default: false
  enabled:
    md033: true
    CONTENT004: false
MD013:
  line-length: 120
mdbook005:
  siblings_only: true
`)

	cfg, err := config.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"MD001", "MDBOOK001"}, cfg.EnabledRules)
	assert.Equal(t, []string{"MD013"}, cfg.DisabledRules)
	assert.Equal(t, []string{"book/**"}, cfg.Ignore)
	assert.False(t, cfg.DefaultEnabled)
	assert.Equal(t, map[string]bool{"MD033": true, "CONTENT004": false}, cfg.RuleToggles)

	length, err := cfg.RuleConfig("MD013").Int("line_length", 80)
	require.NoError(t, err)
	assert.Equal(t, 120, length)

	siblings, err := cfg.RuleConfig("MDBOOK005").Bool("siblings-only", false)
	require.NoError(t, err)
	assert.True(t, siblings)
}

func TestParse_KeyAliasesResolveToSameOption(t *testing.T) {
	t.Parallel()

	for _, data := range []string{
		"MDBOOK005:\n  siblings-only: true\n",
		"MDBOOK005:\n  siblings_only: true\n",
	} {
		cfg, err := config.Parse([]byte(data))
		require.NoError(t, err)

		for _, key := range []string{"siblings-only", "siblings_only"} {
			got, ok := cfg.Get("MDBOOK005", key)
			require.True(t, ok, key)
			assert.Equal(t, true, got)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Nil(t, cfg.EnabledRules)
	assert.True(t, cfg.DefaultEnabled)
	assert.Empty(t, cfg.RuleConfigs)
}

func TestParse_EmptyAllowlistIsNotNil(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("enabled-rules: []\n"))
	require.NoError(t, err)
	assert.NotNil(t, cfg.EnabledRules)
	assert.Empty(t, cfg.EnabledRules)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"top-level scalar", "verbose: true\n", config.ErrUnknownKey},
		{"rules default not bool", "rules:\n  default: maybe\n", config.ErrInvalidValue},
		{"rules enabled not table", "rules:\n  enabled: [MD001]\n", config.ErrInvalidValue},
		{"toggle not bool", "rules:\n  enabled:\n    MD001: 1\n", config.ErrInvalidValue},
		{"unknown rules key", "rules:\n  strict: true\n", config.ErrUnknownKey},
		{"disabled rules not list", "disabled-rules: {a: b}\n", config.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var cfgErr *config.Error
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := config.Parse([]byte("enabled-rules: [\n"))
	require.Error(t, err)

	var cfgErr *config.Error
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".mdbooklint.yml")
	require.NoError(t, os.WriteFile(path, []byte("disabled-rules: [MD013]\n"), 0o600))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.True(t, cfg.IsDisabled("md013"))
}

func TestLoadFile_ErrorCarriesPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("verbose: true\n"), 0o600))

	_, err := config.LoadFile(path)
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, path, cfgErr.Path)
	assert.Contains(t, err.Error(), path)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
