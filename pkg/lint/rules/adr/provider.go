// Package adr provides rules for Architecture Decision Records kept in a
// book or repository. A document is treated as a record when its path
// matches the adr_glob option and its file name starts with a number.
package adr

import (
	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// ProviderID identifies the ADR provider.
const ProviderID = "adr"

// Provider registers the ADRxxx rules.
type Provider struct {
	lint.ProviderInfo
}

// New returns the ADR provider.
func New() *Provider {
	return &Provider{
		ProviderInfo: lint.ProviderInfo{
			ID:      ProviderID,
			Desc:    "Architecture Decision Record rules",
			Ver:     "0.1.0",
			RuleSet: []string{"ADR001", "ADR002", "ADR003", "ADR004", "ADR010"},
		},
	}
}

// RegisterRules adds the ADR rules.
func (p *Provider) RegisterRules(reg *lint.RuleRegistry, cfg *config.Config) error {
	titleRule, err := NewTitleFormatRule(cfg)
	if err != nil {
		return err
	}
	sections, err := NewRequiredSectionsRule(cfg)
	if err != nil {
		return err
	}
	date, err := NewDateFormatRule(cfg)
	if err != nil {
		return err
	}
	status, err := NewStatusValueRule(cfg)
	if err != nil {
		return err
	}
	numbering, err := NewSequentialNumberingRule(cfg)
	if err != nil {
		return err
	}

	for _, rule := range []lint.ASTRule{titleRule, sections, date, status} {
		if err := reg.RegisterAST(rule); err != nil {
			return err
		}
	}
	return reg.RegisterCollectionRule(numbering)
}
