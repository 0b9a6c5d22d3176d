package lint

import (
	"github.com/yaklabco/mdbooklint/pkg/config"
)

// RuleProvider is a named, versioned bundle of rules registered together.
// RegisterRules must register exactly the rules listed by RuleIDs.
type RuleProvider interface {
	ProviderID() string
	Description() string
	Version() string

	// RuleIDs lists every rule the provider registers.
	RuleIDs() []string

	// RegisterRules constructs the provider's rules, reading their options
	// from cfg (which may be nil), and adds them to reg.
	RegisterRules(reg *RuleRegistry, cfg *config.Config) error
}

// ProviderInfo supplies the descriptive half of RuleProvider.
// Embed it and add RegisterRules.
type ProviderInfo struct {
	ID      string
	Desc    string
	Ver     string
	RuleSet []string
}

func (p ProviderInfo) ProviderID() string  { return p.ID }
func (p ProviderInfo) Description() string { return p.Desc }
func (p ProviderInfo) Version() string     { return p.Ver }

// RuleIDs returns a copy of the advertised rule IDs.
func (p ProviderInfo) RuleIDs() []string {
	return append([]string(nil), p.RuleSet...)
}
