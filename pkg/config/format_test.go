package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdbooklint/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "MD009", "no-trailing-spaces", "no-trailing-spaces"},
		{"id format", config.RuleFormatID, "MD009", "no-trailing-spaces", "MD009"},
		{"combined format", config.RuleFormatCombined, "MD009", "no-trailing-spaces", "MD009/no-trailing-spaces"},
		{"empty name falls back to id", config.RuleFormatName, "MD009", "", "MD009"},
		{"default is combined", config.RuleFormat(""), "MDBOOK001", "code-block-language", "MDBOOK001/code-block-language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName))
		})
	}
}
