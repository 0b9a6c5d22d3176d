// Package cli provides the Cobra command structure for mdbooklint.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdbooklint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdbooklint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdbooklint",
		Short: "A pluggable linter for Markdown books",
		Long: `mdbooklint checks Markdown sources for structure, formatting and content
problems. Rules come from providers: the standard markdownlint-style rules,
mdBook checks (SUMMARY.md, includes, cross-chapter links), architecture
decision records and prose content rules.

Findings that two rules report at the same position are reconciled so that
the more specific rule wins.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
