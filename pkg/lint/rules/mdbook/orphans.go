package mdbook

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// OrphanedChaptersRule checks that every chapter file is reachable from
// SUMMARY.md.
type OrphanedChaptersRule struct {
	lint.BaseRule

	siblingsOnly bool
	ignore       []glob.Glob
}

// NewOrphanedChaptersRule creates MDBOOK005. Options: siblings_only,
// ignore (glob patterns matched against paths relative to the book).
func NewOrphanedChaptersRule(cfg *config.Config) (*OrphanedChaptersRule, error) {
	opts := cfg.Options("MDBOOK005")
	siblingsOnly := opts.Bool("siblings_only", false)
	patterns := opts.StringSlice("ignore", nil)

	ignore := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			opts.Reject("ignore", fmt.Errorf("pattern %q: %w", p, err))
			break
		}
		ignore = append(ignore, g)
	}
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &OrphanedChaptersRule{
		BaseRule: lint.NewBaseRule(
			"MDBOOK005",
			"mdbook-orphaned-chapters",
			"Chapter files should be listed in SUMMARY.md",
			lint.StableMetadata(lint.CategoryMdBook, "0.1.0"),
		),
		siblingsOnly: siblingsOnly,
		ignore:       ignore,
	}, nil
}

// CheckCollection reports documents under a SUMMARY.md's directory that it
// does not list. A document belongs to the deepest summary above it.
// Without a SUMMARY.md in the collection there is nothing to check.
func (r *OrphanedChaptersRule) CheckCollection(docs []*document.Document) ([]lint.CollectionViolation, error) {
	listed := make(map[string]map[string]bool)
	for _, doc := range docs {
		if !IsSummary(doc) {
			continue
		}
		root := bookRoot(doc)
		set := make(map[string]bool)
		for _, ch := range summaryChapters(doc, doc.ParseAST()) {
			set[path.Join(root, ch.Target)] = true
		}
		listed[root] = set
	}
	if len(listed) == 0 {
		return nil, nil
	}

	var out []lint.CollectionViolation
	for _, doc := range docs {
		if IsSummary(doc) {
			continue
		}
		p := slashPath(doc)
		root, ok := owningBook(listed, p)
		if !ok || listed[root][p] || r.skip(root, p) {
			continue
		}
		out = append(out, lint.CollectionViolation{
			Path:      doc.Path,
			Violation: r.At(1, 1, "Chapter is not listed in "+SummaryFile).Build(),
		})
	}

	return out, nil
}

func (r *OrphanedChaptersRule) skip(root, p string) bool {
	rel := relativeTo(root, p)
	if r.siblingsOnly && strings.Contains(rel, "/") {
		return true
	}
	for _, g := range r.ignore {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// owningBook returns the deepest summary directory containing p.
func owningBook(listed map[string]map[string]bool, p string) (string, bool) {
	best, found := "", false
	for root := range listed {
		if !within(root, p) {
			continue
		}
		if !found || len(root) > len(best) {
			best, found = root, true
		}
	}
	return best, found
}

func within(root, p string) bool {
	if root == "." {
		return !strings.HasPrefix(p, "../") && !path.IsAbs(p)
	}
	return strings.HasPrefix(p, root+"/")
}

func relativeTo(root, p string) string {
	if root == "." {
		return p
	}
	return strings.TrimPrefix(p, root+"/")
}
