package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every rule with its documentation.
	// If false, generates a minimal template.
	Full bool

	// Rules describes the registered rules. Only used for full templates.
	Rules []RuleInfo

	// IncludeRules is a list of rule IDs to include.
	// If empty, all rules are included.
	IncludeRules []string
}

// RuleInfo contains rule metadata for template generation. It is filled in
// by the caller so this package stays independent of the lint package.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Provider    string
	Category    string
	CanFix      bool
	Deprecated  bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Rules to run exclusively (omit to run every enabled rule)
# enabled-rules:
#   - MD001
#   - MDBOOK001

# Rules to skip
# disabled-rules:
#   - MD013

# File patterns to ignore (glob patterns)
# ignore:
#   - "book/**"
#   - "theme/**"

rules:
  # Run every rule unless listed in disabled-rules
  default: true
  # Switch individual rules on or off
  # enabled:
  #   CONTENT004: false
`)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific options
# MD013:
#   line-length: 100
# MDBOOK005:
#   siblings-only: true
`)
		return buf.Bytes()
	}

	rules := filterRules(opts.Rules, opts.IncludeRules)
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})

	buf.WriteString("\n# Rule-specific options\n")
	for _, rule := range rules {
		buf.WriteString(fmt.Sprintf("\n# %s: %s (%s)\n", rule.ID, rule.Name, rule.Provider))
		buf.WriteString(fmt.Sprintf("# %s\n", wrapComment(rule.Description, commentWrapWidth)))
		if rule.Category != "" {
			buf.WriteString(fmt.Sprintf("# Category: %s\n", rule.Category))
		}
		if rule.CanFix {
			buf.WriteString("# Suggests fixes: yes\n")
		}
		if rule.Deprecated {
			buf.WriteString("# Deprecated\n")
		}
		buf.WriteString(fmt.Sprintf("# %s:\n", rule.ID))
		buf.WriteString("#   key: value\n")
	}

	return buf.Bytes()
}

func filterRules(rules []RuleInfo, include []string) []RuleInfo {
	if len(include) == 0 {
		return append([]RuleInfo(nil), rules...)
	}

	includeSet := make(map[string]bool, len(include))
	for _, id := range include {
		includeSet[NormalizeRuleID(id)] = true
	}

	filtered := make([]RuleInfo, 0, len(include))
	for _, r := range rules {
		if includeSet[r.ID] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdbooklint configuration
# See: https://github.com/yaklabco/mdbooklint`
}
