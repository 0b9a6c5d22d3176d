package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdbooklint/pkg/config"
)

// ValidationError represents a configuration validation finding.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "MD013.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues such as unknown rule IDs.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration. Rule IDs are checked against knownRules
// when it is non-empty; unknown IDs are warnings because a config may be
// shared with a build that carries extra providers.
func Validate(cfg *config.Config, knownRules []string) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if len(knownRules) > 0 {
		validateRuleIDs(cfg, knownRules, result)
	}
	validateSeverities(cfg, result)
	validateIgnorePatterns(cfg, result)

	for i := range result.Errors {
		result.Errors[i].FilePath = cfg.Path
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = cfg.Path
	}

	return result
}

func validateRuleIDs(cfg *config.Config, knownRules []string, result *ValidationResult) {
	known := make(map[string]bool, len(knownRules))
	for _, id := range knownRules {
		known[config.NormalizeRuleID(id)] = true
	}

	warn := func(field, id string) {
		if known[config.NormalizeRuleID(id)] {
			return
		}
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   field,
			Value:   id,
			Message: fmt.Sprintf("unknown rule %q; it will be ignored", id),
		})
	}

	for _, id := range cfg.EnabledRules {
		warn("enabled-rules", id)
	}
	for _, id := range cfg.DisabledRules {
		warn("disabled-rules", id)
	}
	for _, id := range sortedKeys(cfg.RuleToggles) {
		warn("rules.enabled", id)
	}
	for _, id := range sortedKeys(cfg.RuleConfigs) {
		warn(id, id)
	}
}

func validateSeverities(cfg *config.Config, result *ValidationResult) {
	for _, id := range sortedKeys(cfg.RuleConfigs) {
		raw, ok := cfg.RuleConfigs[id]["severity"]
		if !ok {
			continue
		}
		s, isString := raw.(string)
		if !isString || !config.Severity(s).IsValid() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   id + ".severity",
				Value:   raw,
				Message: fmt.Sprintf("invalid severity %v; must be one of: error, warning, info", raw),
			})
		}
	}
}

func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
