package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/config"
)

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"line-length":   "line_length",
		"line_length":   "line_length",
		"Siblings-Only": "siblings_only",
		" padded ":      "padded",
	}
	for in, want := range tests {
		assert.Equal(t, want, config.NormalizeKey(in), in)
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.True(t, cfg.DefaultEnabled)
	assert.Nil(t, cfg.EnabledRules)
	assert.Empty(t, cfg.DisabledRules)
	assert.NotNil(t, cfg.RuleConfig("MD013"))
}

func TestConfig_NilSafe(t *testing.T) {
	t.Parallel()

	var cfg *config.Config
	assert.Empty(t, cfg.RuleConfig("MD013"))
	assert.False(t, cfg.IsDisabled("MD013"))
	assert.Nil(t, cfg.Clone())
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	original := config.New()
	original.DisabledRules = []string{"MD013"}
	original.RuleConfigs["MD013"] = config.RuleConfig{"line_length": 100}

	clone := original.Clone()
	require.NotNil(t, clone)
	assert.NotSame(t, original, clone)

	clone.DisabledRules[0] = "MD001"
	clone.RuleConfigs["MD013"]["line_length"] = 120

	assert.Equal(t, "MD013", original.DisabledRules[0])
	assert.Equal(t, 100, original.RuleConfigs["MD013"]["line_length"])
}

func TestRuleConfig_Int(t *testing.T) {
	t.Parallel()

	rc := config.RuleConfig{
		"int":      42,
		"float":    12.0,
		"fraction": 1.5,
		"string":   "80",
	}

	got, err := rc.Int("int", 0)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = rc.Int("float", 0)
	require.NoError(t, err)
	assert.Equal(t, 12, got)

	got, err = rc.Int("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	for _, key := range []string{"fraction", "string"} {
		got, err = rc.Int(key, 9)
		require.Error(t, err, key)
		assert.True(t, errors.Is(err, config.ErrInvalidValue))
		assert.Equal(t, 9, got)
	}
}

func TestRuleConfig_BoolStringSlice(t *testing.T) {
	t.Parallel()

	rc := config.RuleConfig{
		"flag":   true,
		"style":  "atx",
		"names":  []any{"a", "b"},
		"single": "c",
		"mixed":  []any{"a", 1},
	}

	b, err := rc.Bool("flag", false)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = rc.Bool("style", false)
	assert.Error(t, err)

	s, err := rc.String("style", "")
	require.NoError(t, err)
	assert.Equal(t, "atx", s)

	_, err = rc.String("flag", "")
	assert.Error(t, err)

	list, err := rc.StringSlice("names", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, list)

	list, err = rc.StringSlice("single", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, list)

	_, err = rc.StringSlice("mixed", nil)
	assert.Error(t, err)

	assert.True(t, rc.Has("flag"))
	assert.False(t, rc.Has("nope"))
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := &config.Error{Path: "c.yml", Section: "MD013", Key: "line_length", Err: config.ErrInvalidValue}
	assert.Equal(t, "config c.yml: MD013.line_length: invalid value", err.Error())
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}
