// Package mdbook provides rules for books built with mdBook: code fence
// tags, SUMMARY.md, links and titles across chapters, preprocessor
// directives and mermaid diagrams.
package mdbook

import (
	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// ProviderID identifies the mdBook provider.
const ProviderID = "mdbook"

// Provider registers the MDBOOKxxx rules.
type Provider struct {
	lint.ProviderInfo
}

// New returns the mdBook provider.
func New() *Provider {
	return &Provider{
		ProviderInfo: lint.ProviderInfo{
			ID:   ProviderID,
			Desc: "Rules for mdBook projects",
			Ver:  "0.1.0",
			RuleSet: []string{
				"MDBOOK001", "MDBOOK003", "MDBOOK010", "MDBOOK011",
				"MDBOOK002", "MDBOOK004", "MDBOOK005",
			},
		},
	}
}

// RegisterRules adds the document rules, then the collection rules.
func (p *Provider) RegisterRules(reg *lint.RuleRegistry, cfg *config.Config) error {
	language, err := NewCodeBlockLanguageRule(cfg)
	if err != nil {
		return err
	}
	includes, err := NewIncludeDirectiveRule(cfg)
	if err != nil {
		return err
	}
	orphans, err := NewOrphanedChaptersRule(cfg)
	if err != nil {
		return err
	}
	diagrams, err := NewMermaidRule(cfg)
	if err != nil {
		return err
	}

	if err := reg.RegisterAST(language); err != nil {
		return err
	}
	if err := reg.RegisterAST(NewSummaryStructureRule()); err != nil {
		return err
	}
	if err := reg.Register(includes); err != nil {
		return err
	}
	if err := reg.RegisterAST(diagrams); err != nil {
		return err
	}

	for _, rule := range []lint.CollectionRule{
		NewInternalLinksRule(),
		NewDuplicateTitlesRule(),
		orphans,
	} {
		if err := reg.RegisterCollectionRule(rule); err != nil {
			return err
		}
	}
	return nil
}
