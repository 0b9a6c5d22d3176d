package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdbooklint/internal/configloader"
	"github.com/yaklabco/mdbooklint/internal/logging"
	"github.com/yaklabco/mdbooklint/pkg/analysis"
	"github.com/yaklabco/mdbooklint/pkg/lint/rules/builtin"
	"github.com/yaklabco/mdbooklint/pkg/reporter"
	"github.com/yaklabco/mdbooklint/pkg/runner"
)

type lintFlags struct {
	format    string
	sort      string
	enable    []string
	disable   []string
	only      []string
	ignore    []string
	jobs      int
	noContext bool
	noSummary bool
	compact   bool
	noEnv     bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Markdown files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, info)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, diff, summary")
	cmd.Flags().StringVar(&flags.sort, "sort", "count", "summary ordering: count, alpha, severity")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to switch on")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to switch off")
	cmd.Flags().StringSliceVar(&flags.only, "only", nil, "run only these rule IDs")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = one per CPU)")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in text output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "write JSON and SARIF without indentation")
	cmd.Flags().BoolVar(&flags.noEnv, "no-env", false, "ignore MDBOOKLINT_* environment variables")

	return cmd
}

const lintLongDescription = `Lint Markdown files for structure, formatting and content issues.

By default, lints every .md and .markdown file under the current directory,
skipping hidden files and directories. Collection rules such as duplicate
chapter titles run once over every file that loaded.

Exit status is 0 when clean, 1 when violations were found and 2 when the
configuration was invalid or some files could not be checked.

Examples:
  mdbooklint lint                      # Lint current directory
  mdbooklint lint book/src             # Lint an mdBook source tree
  mdbooklint lint --disable MD013      # Skip the line length rule
  mdbooklint lint --only MDBOOK001     # Run a single rule
  mdbooklint lint --format sarif       # Output SARIF for code scanning
  mdbooklint lint --format diff        # Preview suggested fixes
  mdbooklint lint --format summary     # Count issues by rule and file

The diff format only previews fixes; files are never modified.`

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	sortBy, err := analysis.ParseSortField(flags.sort)
	if err != nil {
		return fmt.Errorf("invalid sort: %w", err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	plugins, err := builtin.Registry()
	if err != nil {
		return fmt.Errorf("register providers: %w", err)
	}
	plugins.SetLogger(logger)

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		IgnoreEnv:    flags.noEnv,
		KnownRules:   knownRuleIDs(),
		Enable:       flags.enable,
		Disable:      flags.disable,
		Only:         flags.only,
		Ignore:       flags.ignore,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("configuration loaded", logging.FieldPaths, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	engine, err := plugins.CreateEngineWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	logger.Debug("active rules", logging.FieldRules, engine.ActiveRuleIDs(cfg))

	lintRunner := runner.New(engine)
	lintRunner.Logger = logger

	runOpts := runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Jobs:       flags.jobs,
		Config:     cfg,
	}
	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		Version:     info.Version,
		SortBy:      sortBy,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return resultError(result)
}

// knownRuleIDs lists every rule the bundled providers advertise.
func knownRuleIDs() []string {
	var ids []string
	for _, p := range builtin.Providers() {
		ids = append(ids, p.RuleIDs()...)
	}
	return ids
}
