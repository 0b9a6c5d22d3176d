package mdbook

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/lint/refs"
)

// book indexes a collection by slash path.
type book struct {
	docs map[string]*document.Document
	ctx  map[string]*refs.Context
	root string
}

func newBook(docs []*document.Document) *book {
	b := &book{
		docs: make(map[string]*document.Document, len(docs)),
		ctx:  make(map[string]*refs.Context, len(docs)),
		root: ".",
	}
	for _, doc := range docs {
		b.docs[slashPath(doc)] = doc
		if IsSummary(doc) {
			b.root = bookRoot(doc)
		}
	}
	return b
}

func slashPath(doc *document.Document) string {
	return path.Clean(filepath.ToSlash(doc.Path))
}

// refs parses a document once and caches its links and anchors.
func (b *book) refs(p string) *refs.Context {
	if ctx, ok := b.ctx[p]; ok {
		return ctx
	}
	doc := b.docs[p]
	ctx := refs.Collect(doc, doc.ParseAST())
	b.ctx[p] = ctx
	return ctx
}

// chapterFor maps a resolved link target to the chapter mdBook renders it
// from: .html becomes .md and directories use README.md or index.md.
func (b *book) chapterFor(target string) (string, bool) {
	switch ext := path.Ext(target); {
	case ext == ".md":
		_, ok := b.docs[target]
		return target, ok
	case ext == ".html":
		md := strings.TrimSuffix(target, ext) + ".md"
		if _, ok := b.docs[md]; ok {
			return md, true
		}
		if strings.HasSuffix(target, "/index.html") || target == "index.html" {
			readme := path.Join(path.Dir(target), "README.md")
			_, ok := b.docs[readme]
			return readme, ok
		}
		return md, false
	case ext == "":
		for _, name := range []string{"README.md", "index.md"} {
			candidate := path.Join(target, name)
			if _, ok := b.docs[candidate]; ok {
				return candidate, true
			}
		}
	}
	return "", false
}

// InternalLinksRule checks links between chapters and to anchors.
type InternalLinksRule struct {
	lint.BaseRule

	exists func(path string) bool
}

// NewInternalLinksRule creates MDBOOK002.
func NewInternalLinksRule() *InternalLinksRule {
	return &InternalLinksRule{
		BaseRule: lint.NewBaseRule(
			"MDBOOK002",
			"mdbook-internal-links",
			"Links between chapters should resolve to a chapter and heading",
			lint.StableMetadata(lint.CategoryLinks, "0.1.0"),
		),
		exists: fileExists,
	}
}

// CheckCollection resolves every relative link. Targets outside the
// collection are only reported for .md files that are also absent on disk;
// anchors are checked only in documents of the collection.
func (r *InternalLinksRule) CheckCollection(docs []*document.Document) ([]lint.CollectionViolation, error) {
	b := newBook(docs)

	var out []lint.CollectionViolation
	for _, doc := range docs {
		from := slashPath(doc)
		for _, link := range b.refs(from).Links {
			if link.IsImage || link.IsExternal() || link.Destination == "" {
				continue
			}
			if msg := r.checkLink(b, from, link); msg != "" {
				out = append(out, lint.CollectionViolation{
					Path:      doc.Path,
					Violation: r.At(link.Line, link.Column, msg).Build(),
				})
			}
		}
	}

	return out, nil
}

func (r *InternalLinksRule) checkLink(b *book, from string, link refs.Link) string {
	target, fragment := link.Target()

	if target == "" {
		if !b.refs(from).HasFragment(fragment) {
			return fmt.Sprintf("Anchor #%s not found in this chapter", fragment)
		}
		return ""
	}

	resolved := refs.Resolve(path.Dir(from), b.root, target)
	chapter, ok := b.chapterFor(resolved)
	if !ok {
		if path.Ext(resolved) == ".md" && !r.exists(filepath.FromSlash(resolved)) {
			return fmt.Sprintf("Link target %s does not exist", target)
		}
		return ""
	}

	if fragment != "" && !b.refs(chapter).HasFragment(fragment) {
		return fmt.Sprintf("Anchor #%s not found in %s", fragment, target)
	}
	return ""
}
