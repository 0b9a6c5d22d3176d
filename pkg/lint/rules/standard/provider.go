// Package standard provides the markdownlint-compatible MDxxx rules.
package standard

import (
	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// ProviderID identifies the standard provider.
const ProviderID = "standard"

// Provider registers the MDxxx rules.
type Provider struct {
	lint.ProviderInfo
}

// New returns the standard provider.
func New() *Provider {
	return &Provider{
		ProviderInfo: lint.ProviderInfo{
			ID:   ProviderID,
			Desc: "Core Markdown rules compatible with markdownlint",
			Ver:  "0.1.0",
			RuleSet: []string{
				"MD001", "MD003", "MD009", "MD010", "MD012", "MD013", "MD018",
				"MD022", "MD025", "MD034", "MD040", "MD042", "MD045", "MD047",
			},
		},
	}
}

// RegisterRules adds every MDxxx rule to reg in ID order.
func (p *Provider) RegisterRules(reg *lint.RuleRegistry, cfg *config.Config) error {
	headingStyle, err := NewHeadingStyleRule(cfg)
	if err != nil {
		return err
	}
	trailing, err := NewTrailingSpacesRule(cfg)
	if err != nil {
		return err
	}
	tabs, err := NewHardTabsRule(cfg)
	if err != nil {
		return err
	}
	blanks, err := NewMultipleBlanksRule(cfg)
	if err != nil {
		return err
	}
	lineLength, err := NewLineLengthRule(cfg)
	if err != nil {
		return err
	}
	aroundHeadings, err := NewBlanksAroundHeadingsRule(cfg)
	if err != nil {
		return err
	}
	singleTitle, err := NewSingleTitleRule(cfg)
	if err != nil {
		return err
	}
	fenceLanguage, err := NewFencedCodeLanguageRule(cfg)
	if err != nil {
		return err
	}

	rules := []lint.Rule{
		lint.AdaptAST(NewHeadingIncrementRule()),  // MD001
		lint.AdaptAST(headingStyle),               // MD003
		lint.AdaptAST(trailing),                   // MD009
		tabs,                                      // MD010
		lint.AdaptAST(blanks),                     // MD012
		lineLength,                                // MD013
		lint.AdaptAST(NewNoMissingSpaceATXRule()), // MD018
		lint.AdaptAST(aroundHeadings),             // MD022
		lint.AdaptAST(singleTitle),                // MD025
		lint.AdaptAST(NewNoBareURLsRule()),        // MD034
		lint.AdaptAST(fenceLanguage),              // MD040
		lint.AdaptAST(NewNoEmptyLinksRule()),      // MD042
		lint.AdaptAST(NewImageAltTextRule()),      // MD045
		NewFinalNewlineRule(),                     // MD047
	}

	for _, rule := range rules {
		if err := reg.Register(rule); err != nil {
			return err
		}
	}
	return nil
}
