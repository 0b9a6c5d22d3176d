package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Top-level settings recognised in a configuration file, in normalised form.
const (
	keyEnabledRules  = "enabled_rules"
	keyDisabledRules = "disabled_rules"
	keyIgnore        = "ignore"
	keyRules         = "rules"
	keyDefault       = "default"
	keyEnabled       = "enabled"
)

// Parse decodes a YAML configuration. Every other top-level key is treated
// as a rule option table:
//
//	enabled-rules: [MD001]
//	disabled-rules: [MD013]
//	rules:
//	  default: true
//	  enabled: {CONTENT004: false}
//	MD013:
//	  line-length: 120
//
// Option keys are normalised once here, so rules never see hyphenated forms.
func Parse(data []byte) (*Config, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Err: fmt.Errorf("parse yaml: %w", err)}
	}

	cfg := New()

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := cfg.apply(key, raw[key]); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// LoadFile reads and parses a configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		var cfgErr *Error
		if errors.As(err, &cfgErr) {
			cfgErr.Path = path
		}
		return nil, err
	}

	cfg.Path = path
	return cfg, nil
}

func (c *Config) apply(key string, value any) error {
	switch NormalizeKey(key) {
	case keyEnabledRules:
		ids, err := stringList(key, value)
		if err != nil {
			return err
		}
		c.EnabledRules = normalizeIDs(ids)

	case keyDisabledRules:
		ids, err := stringList(key, value)
		if err != nil {
			return err
		}
		c.DisabledRules = normalizeIDs(ids)

	case keyIgnore:
		patterns, err := stringList(key, value)
		if err != nil {
			return err
		}
		c.Ignore = patterns

	case keyRules:
		return c.applyRulesSection(value)

	default:
		table, ok := value.(map[string]any)
		if !ok {
			return &Error{Section: key, Err: fmt.Errorf("%w: expected a rule table", ErrUnknownKey)}
		}
		id := NormalizeRuleID(key)
		rc := c.RuleConfigs[id]
		if rc == nil {
			rc = RuleConfig{}
		}
		for optKey, optValue := range table {
			rc[NormalizeKey(optKey)] = optValue
		}
		c.RuleConfigs[id] = rc
	}

	return nil
}

func (c *Config) applyRulesSection(value any) error {
	if value == nil {
		return nil
	}

	section, ok := value.(map[string]any)
	if !ok {
		return &Error{Section: keyRules, Err: fmt.Errorf("%w: expected a table", ErrInvalidValue)}
	}

	for key, v := range section {
		switch NormalizeKey(key) {
		case keyDefault:
			b, isBool := v.(bool)
			if !isBool {
				return &Error{Section: keyRules, Key: keyDefault, Err: fmt.Errorf("%w: expected boolean", ErrInvalidValue)}
			}
			c.DefaultEnabled = b

		case keyEnabled:
			toggles, isMap := v.(map[string]any)
			if !isMap {
				return &Error{Section: keyRules, Key: keyEnabled, Err: fmt.Errorf("%w: expected a table", ErrInvalidValue)}
			}
			for id, on := range toggles {
				b, isBool := on.(bool)
				if !isBool {
					return &Error{Section: "rules.enabled", Key: id, Err: fmt.Errorf("%w: expected boolean", ErrInvalidValue)}
				}
				c.RuleToggles[NormalizeRuleID(id)] = b
			}

		default:
			return &Error{Section: keyRules, Key: key, Err: ErrUnknownKey}
		}
	}

	return nil
}

func stringList(key string, value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	list, err := RuleConfig{NormalizeKey(key): value}.StringSlice(key, nil)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func normalizeIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, NormalizeRuleID(id))
	}
	return out
}
