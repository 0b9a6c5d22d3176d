package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/mdbooklint/pkg/config"
)

// merge combines two configurations, with override taking precedence:
//   - Rule lists and ignore patterns in override replace base when non-nil
//   - Toggles and rule option tables are merged key by key
//   - DefaultEnabled can only be switched off, since true is the zero state
//     of a parsed file
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if !override.DefaultEnabled {
		result.DefaultEnabled = false
	}
	if override.EnabledRules != nil {
		result.EnabledRules = slices.Clone(override.EnabledRules)
	}
	if override.DisabledRules != nil {
		result.DisabledRules = slices.Clone(override.DisabledRules)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	if len(override.RuleToggles) > 0 {
		if result.RuleToggles == nil {
			result.RuleToggles = make(map[string]bool, len(override.RuleToggles))
		}
		maps.Copy(result.RuleToggles, override.RuleToggles)
	}

	result.RuleConfigs = mergeRuleConfigs(result.RuleConfigs, override.RuleConfigs)

	if override.Path != "" {
		result.Path = override.Path
	}

	return result
}

// mergeRuleConfigs merges option tables per rule. Options set in override
// replace the same option in base; other base options survive.
func mergeRuleConfigs(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if len(override) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]config.RuleConfig, len(override))
	}

	for id, opts := range override {
		existing, ok := base[id]
		if !ok {
			base[id] = maps.Clone(opts)
			continue
		}
		merged := maps.Clone(existing)
		if merged == nil {
			merged = config.RuleConfig{}
		}
		maps.Copy(merged, opts)
		base[id] = merged
	}

	return base
}

// MergeAll merges configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, next := range configs[1:] {
		result = merge(result, next)
	}
	return result
}
