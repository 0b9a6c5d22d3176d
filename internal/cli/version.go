package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdbooklint/internal/logging"
	"github.com/yaklabco/mdbooklint/pkg/lint/rules/builtin"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash and build date of mdbooklint, followed by the bundled rule providers.`,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{})
			logger.SetLevel(log.InfoLevel)

			logger.Info("mdbooklint",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
			for _, p := range builtin.Providers() {
				logger.Info("provider",
					logging.FieldProvider, p.ProviderID(),
					logging.FieldVersion, p.Version(),
					logging.FieldRules, len(p.RuleIDs()),
				)
			}
		},
	}
}
