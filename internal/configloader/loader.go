// Package configloader resolves the configuration for a lint run.
// It discovers config files in XDG and project locations, merges them in
// precedence order, applies environment overrides and validates the result.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/mdbooklint/internal/logging"
	"github.com/yaklabco/mdbooklint/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// KnownRules lists the registered rule IDs. Configured IDs outside it
	// produce warnings. Empty disables the check.
	KnownRules []string

	// CLIConfig is merged over every other source.
	CLIConfig *config.Config

	// Enable, Disable, Only and Ignore come from command-line flags and
	// behave like their MDBOOKLINT_* counterparts, applied last.
	Enable  []string
	Disable []string
	Only    []string
	Ignore  []string
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.Enable and friends, then opts.CLIConfig)
//  2. Environment variables (MDBOOKLINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdbooklint.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdbooklint/config.yaml)
//  6. System config (/etc/mdbooklint/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.Default()

	sources := []struct {
		name string
		path string
		skip bool
	}{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{name: "explicit", path: opts.ExplicitPath},
	}

	for _, src := range sources {
		if src.skip || src.path == "" {
			continue
		}
		fileCfg, err := config.LoadFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.name, err)
		}
		logger.Debug("loaded config", logging.FieldConfig, src.path, logging.FieldSource, src.name)
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, src.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	if err := applyFlagOverrides(cfg, opts); err != nil {
		return nil, err
	}

	validation := Validate(cfg, opts.KnownRules)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

func applyFlagOverrides(cfg *config.Config, opts LoadOptions) error {
	overrides := []struct {
		field  string
		values []string
	}{
		{field: "enabled_rules", values: opts.Only},
		{field: "disabled_rules", values: opts.Disable},
		{field: "enable", values: opts.Enable},
		{field: "ignore", values: opts.Ignore},
	}
	for _, o := range overrides {
		if len(o.values) == 0 {
			continue
		}
		if err := setSliceField(cfg, o.field, o.values); err != nil {
			return err
		}
	}
	return nil
}
