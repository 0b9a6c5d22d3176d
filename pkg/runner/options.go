// Package runner lints many Markdown files on one shared engine.
package runner

import "github.com/yaklabco/mdbooklint/pkg/config"

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match globs. If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to
	// WorkingDir. Empty means every file with a Markdown extension.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories. The config's ignore
	// list is added to these.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the number of concurrent workers. 0 or negative means
	// runtime.NumCPU().
	Jobs int

	// Config selects rules and severities for this run. Nil means defaults.
	Config *config.Config
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return o.Config
}

// excludes merges ExcludeGlobs with the config's ignore list.
func (o Options) excludes() []string {
	out := append([]string(nil), o.ExcludeGlobs...)
	if o.Config != nil {
		out = append(out, o.Config.Ignore...)
	}
	return out
}
