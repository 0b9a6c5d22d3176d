package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdbooklint/internal/ui/pretty"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/lint/rules/builtin"
	"github.com/yaklabco/mdbooklint/pkg/reporter"
)

type rulesFlags struct {
	provider string
	format   string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Provider         string `json:"provider"`
	Category         string `json:"category"`
	Stability        string `json:"stability"`
	IntroducedIn     string `json:"introduced_in,omitempty"`
	Overrides        string `json:"overrides,omitempty"`
	Collection       bool   `json:"collection"`
	Fixable          bool   `json:"fixable"`
	Deprecated       bool   `json:"deprecated"`
	DeprecatedReason string `json:"deprecated_reason,omitempty"`
	Replacement      string `json:"replacement,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List every rule from the bundled providers with its provider, category,
stability and the rule it overrides, if any. Deprecated rules name their
replacement.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := collectRules(flags.provider)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch flags.format {
			case formatJSON:
				return writeRulesJSON(out, infos)
			case "text", "":
				colorMode, err := cmd.Flags().GetString("color")
				if err != nil {
					colorMode = "auto"
				}
				return writeRulesTable(out, infos, colorMode)
			default:
				return fmt.Errorf("%w: %s", reporter.ErrUnknownFormat, flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.provider, "provider", "", "only list rules from this provider")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// collectRules describes every registered rule, sorted by ID.
func collectRules(providerID string) ([]ruleInfo, error) {
	plugins, err := builtin.Registry()
	if err != nil {
		return nil, fmt.Errorf("register providers: %w", err)
	}
	if providerID != "" {
		if _, ok := plugins.Provider(providerID); !ok {
			return nil, fmt.Errorf("unknown provider %q", providerID)
		}
	}

	engine, err := plugins.CreateEngine()
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	registry := engine.Registry()

	var infos []ruleInfo
	for _, id := range registry.IDs() {
		owner := engine.ProviderOf(id)
		if providerID != "" && owner != providerID {
			continue
		}

		var (
			ident      lint.Identity
			fixable    bool
			collection bool
		)
		if rule, ok := registry.Rule(id); ok {
			ident, fixable = rule, rule.CanFix()
		} else if rule, ok := registry.CollectionRule(id); ok {
			ident, collection = rule, true
		} else {
			continue
		}

		meta := ident.Metadata()
		infos = append(infos, ruleInfo{
			ID:               id,
			Name:             ident.Name(),
			Description:      ident.Description(),
			Provider:         owner,
			Category:         meta.Category.String(),
			Stability:        meta.Stability.String(),
			IntroducedIn:     meta.IntroducedIn,
			Overrides:        meta.Overrides,
			Collection:       collection,
			Fixable:          fixable,
			Deprecated:       meta.Deprecated,
			DeprecatedReason: meta.DeprecatedReason,
			Replacement:      meta.Replacement,
		})
	}

	slices.SortFunc(infos, func(a, b ruleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return infos, nil
}

func writeRulesTable(w io.Writer, infos []ruleInfo, colorMode string) error {
	rows := make([]pretty.RuleRow, 0, len(infos))
	for _, info := range infos {
		desc := info.Description
		if info.Deprecated {
			desc = "deprecated: " + info.DeprecatedReason
			if info.Replacement != "" {
				desc += "; use " + info.Replacement
			}
		}
		rows = append(rows, pretty.RuleRow{
			ID:          info.ID,
			Name:        info.Name,
			Provider:    info.Provider,
			Category:    info.Category,
			Stability:   info.Stability,
			Overrides:   info.Overrides,
			Description: desc,
		})
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))
	formatter := pretty.NewTableFormatter(styles, reporter.TerminalWidth(w))
	if _, err := io.WriteString(w, formatter.FormatRules(rows)); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}
	return nil
}

func writeRulesJSON(w io.Writer, infos []ruleInfo) error {
	if infos == nil {
		infos = []ruleInfo{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
