package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdbooklint/internal/configloader"
	"github.com/yaklabco/mdbooklint/internal/logging"
	"github.com/yaklabco/mdbooklint/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

type initFlags struct {
	force  bool
	full   bool
	rules  []string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a mdbooklint configuration file",
		Long: `Create a .mdbooklint.yml configuration file in the current directory.

Examples:
  mdbooklint init                          Create a minimal .mdbooklint.yml
  mdbooklint init --full                   Document every rule in the file
  mdbooklint init --full --rules MD013     Document selected rules only
  mdbooklint init --output ci/lint.yml     Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule in the template")
	cmd.Flags().StringSliceVar(&flags.rules, "rules", nil, "with --full, document only these rule IDs")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0], "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, statErr := os.Stat(absPath)
	switch {
	case statErr == nil && !flags.force:
		return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
	case statErr == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	case !errors.Is(statErr, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", flags.output, statErr)
	}

	opts := config.TemplateOptions{Full: flags.full, IncludeRules: flags.rules}
	if flags.full {
		infos, err := collectRules("")
		if err != nil {
			return err
		}
		for _, info := range infos {
			opts.Rules = append(opts.Rules, config.RuleInfo{
				ID:          info.ID,
				Name:        info.Name,
				Description: info.Description,
				Provider:    info.Provider,
				Category:    info.Category,
				CanFix:      info.Fixable,
				Deprecated:  info.Deprecated,
			})
		}
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(absPath, config.GenerateTemplate(opts), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", flags.output)
	logger.Debug("configuration template written", logging.FieldPath, absPath)
	return nil
}
