// Package config defines the configuration consumed by the lint engine.
// These types are plain data; discovery and environment overrides live in
// internal/configloader.
package config

import (
	"maps"
	"slices"
	"strings"
)

// Severity represents the severity level of a violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is one of the known severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Config selects which rules run and carries per-rule options.
type Config struct {
	// EnabledRules is an explicit allowlist. Nil means no allowlist.
	EnabledRules []string

	// DisabledRules are removed from the active set.
	DisabledRules []string

	// DefaultEnabled controls whether every registered rule runs when there
	// is no allowlist.
	DefaultEnabled bool

	// RuleToggles holds the rules.enabled table: true switches a rule on,
	// false switches it off.
	RuleToggles map[string]bool

	// RuleConfigs holds per-rule option tables keyed by upper-case rule ID.
	RuleConfigs map[string]RuleConfig

	// Ignore contains glob patterns for files the runner skips.
	Ignore []string

	// Path is the file the configuration was loaded from, if any.
	Path string
}

// New returns an empty Config with every rule enabled by default.
func New() *Config {
	return &Config{
		DefaultEnabled: true,
		RuleToggles:    make(map[string]bool),
		RuleConfigs:    make(map[string]RuleConfig),
	}
}

// Default returns the configuration used when none is supplied.
func Default() *Config {
	return New()
}

// RuleConfig returns the option table for a rule. The result is never nil
// so lookups on it are always safe.
func (c *Config) RuleConfig(id string) RuleConfig {
	if c == nil {
		return RuleConfig{}
	}
	if rc, ok := c.RuleConfigs[NormalizeRuleID(id)]; ok {
		return rc
	}
	return RuleConfig{}
}

// Get returns a raw option value from a rule section.
func (c *Config) Get(section, key string) (any, bool) {
	value, ok := c.RuleConfig(section)[NormalizeKey(key)]
	return value, ok
}

// IsDisabled reports whether id appears in DisabledRules.
func (c *Config) IsDisabled(id string) bool {
	if c == nil {
		return false
	}
	return slices.ContainsFunc(c.DisabledRules, func(d string) bool {
		return strings.EqualFold(d, id)
	})
}

// Clone creates a deep copy of the configuration. Nested values inside
// rule option tables are shared.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		EnabledRules:   slices.Clone(c.EnabledRules),
		DisabledRules:  slices.Clone(c.DisabledRules),
		DefaultEnabled: c.DefaultEnabled,
		RuleToggles:    maps.Clone(c.RuleToggles),
		Ignore:         slices.Clone(c.Ignore),
		Path:           c.Path,
	}

	if c.RuleConfigs != nil {
		clone.RuleConfigs = make(map[string]RuleConfig, len(c.RuleConfigs))
		for id, rc := range c.RuleConfigs {
			clone.RuleConfigs[id] = maps.Clone(rc)
		}
	}

	return clone
}

// NormalizeKey maps hyphen- and underscore-separated option keys onto one
// form, so "siblings-only" and "siblings_only" name the same option.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", "_"))
}

// NormalizeRuleID upper-cases a rule ID.
func NormalizeRuleID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
