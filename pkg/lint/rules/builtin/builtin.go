// Package builtin wires the rule providers shipped with mdbooklint into a
// plugin registry.
package builtin

import (
	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/lint/rules/adr"
	"github.com/yaklabco/mdbooklint/pkg/lint/rules/content"
	"github.com/yaklabco/mdbooklint/pkg/lint/rules/mdbook"
	"github.com/yaklabco/mdbooklint/pkg/lint/rules/standard"
)

// Providers returns fresh instances of every shipped provider in
// registration order.
func Providers() []lint.RuleProvider {
	return []lint.RuleProvider{
		standard.New(),
		mdbook.New(),
		adr.New(),
		content.New(),
	}
}

// Registry returns a plugin registry holding every shipped provider.
func Registry() (*lint.PluginRegistry, error) {
	plugins := lint.NewPluginRegistry()
	for _, p := range Providers() {
		if err := plugins.RegisterProvider(p); err != nil {
			return nil, err
		}
	}
	return plugins, nil
}

// NewEngine builds an engine from every shipped provider, reading rule
// options from cfg. A nil cfg uses defaults.
func NewEngine(cfg *config.Config) (*lint.LintEngine, error) {
	plugins, err := Registry()
	if err != nil {
		return nil, err
	}
	return plugins.CreateEngineWithConfig(cfg)
}
