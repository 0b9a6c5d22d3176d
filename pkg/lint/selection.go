package lint

import (
	"fmt"

	"github.com/yaklabco/mdbooklint/pkg/config"
)

// ruleSelection answers which rules are active under one configuration.
//
// A rule is active when it is on the allowlist (or, with no allowlist,
// when rules run by default); the rules.enabled table then switches
// individual rules on or off; DisabledRules always has the last word.
type ruleSelection struct {
	allow     map[string]bool
	disabled  map[string]bool
	toggles   map[string]bool
	byDefault bool
}

func newRuleSelection(cfg *config.Config) ruleSelection {
	if cfg == nil {
		cfg = config.Default()
	}

	sel := ruleSelection{
		disabled:  make(map[string]bool, len(cfg.DisabledRules)),
		toggles:   make(map[string]bool, len(cfg.RuleToggles)),
		byDefault: cfg.DefaultEnabled,
	}

	if cfg.EnabledRules != nil {
		sel.allow = make(map[string]bool, len(cfg.EnabledRules))
		for _, id := range cfg.EnabledRules {
			sel.allow[config.NormalizeRuleID(id)] = true
		}
	}
	for _, id := range cfg.DisabledRules {
		sel.disabled[config.NormalizeRuleID(id)] = true
	}
	for id, on := range cfg.RuleToggles {
		sel.toggles[config.NormalizeRuleID(id)] = on
	}

	return sel
}

func (s ruleSelection) active(id string) bool {
	id = config.NormalizeRuleID(id)

	on := s.byDefault
	if s.allow != nil {
		on = s.allow[id]
	}
	if toggle, ok := s.toggles[id]; ok {
		on = toggle
	}
	if s.disabled[id] {
		on = false
	}
	return on
}

// severityOverride returns the severity configured for a rule, if any.
func severityOverride(cfg *config.Config, id string) (config.Severity, bool, error) {
	if cfg == nil {
		return "", false, nil
	}

	raw, err := cfg.RuleConfig(id).String("severity", "")
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", id, err)
	}
	if raw == "" {
		return "", false, nil
	}

	severity := config.Severity(raw)
	if !severity.IsValid() {
		return "", false, &config.Error{
			Path:    cfg.Path,
			Section: id,
			Key:     "severity",
			Err:     fmt.Errorf("%w: %q is not error, warning, or info", config.ErrInvalidValue, raw),
		}
	}
	return severity, true, nil
}
