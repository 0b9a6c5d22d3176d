package lint

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdbooklint/internal/logging"
	"github.com/yaklabco/mdbooklint/pkg/config"
)

// PluginRegistry composes rule providers into a LintEngine.
type PluginRegistry struct {
	providers []RuleProvider
	byID      map[string]RuleProvider
	logger    *log.Logger
}

// NewPluginRegistry creates an empty plugin registry logging through the
// package default logger.
func NewPluginRegistry() *PluginRegistry {
	return &PluginRegistry{
		byID:   make(map[string]RuleProvider),
		logger: logging.Default(),
	}
}

// SetLogger replaces the logger used for registration messages.
func (p *PluginRegistry) SetLogger(logger *log.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// RegisterProvider adds a provider. Provider IDs must be unique.
func (p *PluginRegistry) RegisterProvider(provider RuleProvider) error {
	id := provider.ProviderID()
	if _, exists := p.byID[id]; exists {
		return &PluginError{Kind: DuplicateProvider, ProviderID: id}
	}

	p.providers = append(p.providers, provider)
	p.byID[id] = provider

	p.logger.Debug("registered provider",
		logging.FieldProvider, id,
		logging.FieldVersion, provider.Version(),
		logging.FieldRules, len(provider.RuleIDs()),
	)
	return nil
}

// Providers returns providers in registration order.
func (p *PluginRegistry) Providers() []RuleProvider {
	return append([]RuleProvider(nil), p.providers...)
}

// Provider looks up a provider by ID.
//
//nolint:ireturn // Registry hands out the registered interface values.
func (p *PluginRegistry) Provider(id string) (RuleProvider, bool) {
	provider, ok := p.byID[id]
	return provider, ok
}

// CreateEngine builds an engine with every rule at its default options.
func (p *PluginRegistry) CreateEngine() (*LintEngine, error) {
	return p.CreateEngineWithConfig(nil)
}

// CreateEngineWithConfig builds an engine whose rules are constructed with
// the per-rule options in cfg. Each provider registers into a scratch
// registry which must hold exactly the provider's advertised rules; the
// scratch registry is then merged into the combined one, failing on any ID
// already claimed by an earlier provider.
func (p *PluginRegistry) CreateEngineWithConfig(cfg *config.Config) (*LintEngine, error) {
	combined := NewRuleRegistry()
	owners := make(map[string]string)

	for _, provider := range p.providers {
		id := provider.ProviderID()

		scratch := NewRuleRegistry()
		if err := provider.RegisterRules(scratch, cfg); err != nil {
			return nil, fmt.Errorf("provider %s: %w", id, err)
		}

		if err := checkAdvertised(id, provider.RuleIDs(), scratch.IDs()); err != nil {
			return nil, err
		}

		if err := combined.Merge(scratch); err != nil {
			var pluginErr *PluginError
			if errors.As(err, &pluginErr) {
				pluginErr.ProviderID = id
				pluginErr.Detail = "already registered by " + owners[pluginErr.RuleID]
			}
			return nil, err
		}

		for _, ruleID := range scratch.IDs() {
			owners[ruleID] = id
		}
	}

	p.logger.Debug("engine built",
		logging.FieldProviders, len(p.providers),
		logging.FieldRules, combined.Len(),
	)

	return newLintEngine(combined, owners), nil
}

// checkAdvertised compares a provider's advertised rule IDs with the ones
// it actually registered.
func checkAdvertised(providerID string, advertised, registered []string) error {
	want := slices.Clone(advertised)
	got := slices.Clone(registered)
	slices.Sort(want)
	slices.Sort(got)

	if slices.Equal(want, got) {
		return nil
	}

	var missing, extra []string
	for _, id := range want {
		if _, found := slices.BinarySearch(got, id); !found {
			missing = append(missing, id)
		}
	}
	for _, id := range got {
		if _, found := slices.BinarySearch(want, id); !found {
			extra = append(extra, id)
		}
	}

	detail := fmt.Sprintf("advertised %d rules, registered %d", len(want), len(got))
	if len(missing) > 0 {
		detail += "; not registered: " + strings.Join(missing, ", ")
	}
	if len(extra) > 0 {
		detail += "; not advertised: " + strings.Join(extra, ", ")
	}

	return &PluginError{Kind: ProviderMismatch, ProviderID: providerID, Detail: detail}
}
