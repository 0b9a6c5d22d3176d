package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/config"
)

// envVarPrefix is the prefix for all mdbooklint environment variables.
const envVarPrefix = "MDBOOKLINT_"

type envFieldType int

const (
	envTypeBool envFieldType = iota
	envTypeSlice
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"ONLY":            {field: "enabled_rules", typ: envTypeSlice, description: "Comma-separated allowlist of rule IDs"},
	"ENABLE":          {field: "enable", typ: envTypeSlice, description: "Comma-separated rule IDs to switch on"},
	"DISABLE":         {field: "disabled_rules", typ: envTypeSlice, description: "Comma-separated rule IDs to switch off"},
	"IGNORE":          {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"DEFAULT_ENABLED": {field: "default_enabled", typ: envTypeBool, description: "Run every rule unless disabled: true or false"},
}

// LoadFromEnv applies MDBOOKLINT_* environment overrides to cfg.
// Lists are appended to what the config files set, except MDBOOKLINT_ONLY
// which replaces the allowlist.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	slices.Sort(suffixes)

	for _, suffix := range suffixes {
		envVar := envVarPrefix + suffix
		value, ok := lookup(envVar)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		cfg.DefaultEnabled = b
		return nil
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits a comma-separated value, dropping empty elements.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setSliceField(cfg *config.Config, field string, values []string) error {
	switch field {
	case "enabled_rules":
		cfg.EnabledRules = normalizeIDs(values)
	case "enable":
		if cfg.RuleToggles == nil {
			cfg.RuleToggles = make(map[string]bool, len(values))
		}
		for _, id := range normalizeIDs(values) {
			cfg.RuleToggles[id] = true
			cfg.DisabledRules = slices.DeleteFunc(cfg.DisabledRules, func(d string) bool {
				return strings.EqualFold(d, id)
			})
		}
	case "disabled_rules":
		cfg.DisabledRules = append(cfg.DisabledRules, normalizeIDs(values)...)
	case "ignore":
		cfg.Ignore = append(cfg.Ignore, values...)
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, config.NormalizeRuleID(id))
	}
	return out
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
