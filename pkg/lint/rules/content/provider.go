// Package content provides prose quality rules: leftover markers,
// placeholder text, empty sections and heading capitalisation.
package content

import (
	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// ProviderID identifies the content provider.
const ProviderID = "content"

// Provider registers the CONTENTxxx rules.
type Provider struct {
	lint.ProviderInfo
}

// New returns the content provider.
func New() *Provider {
	return &Provider{
		ProviderInfo: lint.ProviderInfo{
			ID:      ProviderID,
			Desc:    "Prose quality rules",
			Ver:     "0.1.0",
			RuleSet: []string{"CONTENT001", "CONTENT002", "CONTENT003", "CONTENT004"},
		},
	}
}

// RegisterRules adds the content rules.
func (p *Provider) RegisterRules(reg *lint.RuleRegistry, cfg *config.Config) error {
	markers, err := NewTodoMarkersRule(cfg)
	if err != nil {
		return err
	}
	placeholders, err := NewPlaceholderTextRule(cfg)
	if err != nil {
		return err
	}
	headingCase, err := NewHeadingCaseRule(cfg)
	if err != nil {
		return err
	}

	for _, rule := range []lint.ASTRule{markers, placeholders, NewEmptySectionsRule(), headingCase} {
		if err := reg.RegisterAST(rule); err != nil {
			return err
		}
	}
	return nil
}
