package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidGlob reports an include or exclude pattern that does not compile.
var ErrInvalidGlob = errors.New("invalid glob pattern")

// matcher holds compiled include and exclude patterns.
type matcher struct {
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
}

func newMatcher(opts Options) (*matcher, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.excludes())
	if err != nil {
		return nil, err
	}
	return &matcher{extensions: opts.effectiveExtensions(), include: include, exclude: exclude}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidGlob, p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Discover finds Markdown files matching opts. It returns a sorted list of
// absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// Named files only need the right extension.
			if m.hasExtension(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, workDir, m, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory returns the matching Markdown files under root. Hidden
// files and directories are skipped.
func walkDirectory(ctx context.Context, root, workDir string, m *matcher, follow bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel := relSlash(workDir, path)

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && m.excluded(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !follow {
					return nil
				}
				// Walk the target; WalkDir does not descend into the link itself.
				sub, err := walkDirectory(ctx, realPath, workDir, m, follow)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if m.matches(path, rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func relSlash(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func (m *matcher) hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range m.extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func (m *matcher) matches(path, rel string) bool {
	if !m.hasExtension(path) || m.excluded(rel) {
		return false
	}
	if len(m.include) == 0 {
		return true
	}
	return anyMatch(m.include, rel)
}

// excluded matches a slash-separated relative path. A directory is passed
// with a trailing slash so "vendor/**" skips it as a whole.
func (m *matcher) excluded(rel string) bool {
	return anyMatch(m.exclude, rel)
}

// anyMatch tries each pattern against the path and against its base name,
// so "*.draft.md" excludes drafts at any depth.
func anyMatch(patterns []glob.Glob, rel string) bool {
	base := filepath.Base(strings.TrimSuffix(rel, "/"))
	trimmed := strings.TrimSuffix(rel, "/")
	for _, g := range patterns {
		if g.Match(rel) || g.Match(trimmed) || g.Match(base) {
			return true
		}
	}
	return false
}
