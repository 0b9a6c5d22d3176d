package mdbook

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/lint/refs"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// SummaryFile is the table of contents mdBook builds a book from.
const SummaryFile = "SUMMARY.md"

// IsSummary reports whether doc is a book's SUMMARY.md.
func IsSummary(doc *document.Document) bool {
	return doc.FileName() == SummaryFile
}

// chapter is a link found in SUMMARY.md.
type chapter struct {
	// Target is the link destination without any fragment, as written.
	Target string

	// Draft chapters have an empty destination.
	Draft bool

	Line   int
	Column int
}

// summaryEntry is one block-level item of SUMMARY.md and the problems
// found in it.
type summaryEntry struct {
	node     *mdast.Node
	chapter  *chapter
	problems []string
}

// readSummary walks the blocks of a SUMMARY.md tree. Part titles and
// separators are accepted as they are; paragraphs and list items must hold
// exactly one link.
func readSummary(doc *document.Document, root *mdast.Node) []summaryEntry {
	var entries []summaryEntry

	for block := root.FirstChild; block != nil; block = block.Next {
		switch block.Kind {
		case mdast.NodeHeading, mdast.NodeThematicBreak, mdast.NodeHTMLBlock:
		case mdast.NodeParagraph:
			entries = append(entries, readLinkBlock(doc, block, "Prefix and suffix chapters must be a single link"))
		case mdast.NodeList:
			entries = append(entries, readList(doc, block)...)
		default:
			entries = append(entries, summaryEntry{
				node:     block,
				problems: []string{fmt.Sprintf("Unexpected %s in %s", strings.ToLower(block.Kind.String()), SummaryFile)},
			})
		}
	}

	return entries
}

func readList(doc *document.Document, list *mdast.Node) []summaryEntry {
	var entries []summaryEntry

	ordered := list.Block != nil && list.Block.List != nil && list.Block.List.Ordered
	for item := list.FirstChild; item != nil; item = item.Next {
		var entry summaryEntry
		var nested []*mdast.Node

		for child := item.FirstChild; child != nil; child = child.Next {
			switch child.Kind {
			case mdast.NodeParagraph:
				if entry.node == nil {
					entry = readLinkBlock(doc, child, "Chapter list items must be a single link")
				} else {
					entry.problems = append(entry.problems, "Chapter list items must be a single link")
				}
			case mdast.NodeList:
				nested = append(nested, child)
			default:
				entry.problems = append(entry.problems, fmt.Sprintf("Unexpected %s in chapter list", strings.ToLower(child.Kind.String())))
			}
		}

		if entry.node == nil {
			entry.node = item
			entry.problems = append(entry.problems, "Chapter list item has no link")
		}
		if ordered {
			entry.problems = append(entry.problems, "Chapter lists must use '-' or '*' markers, not numbers")
		}
		entries = append(entries, entry)

		for _, sub := range nested {
			entries = append(entries, readList(doc, sub)...)
		}
	}

	return entries
}

// readLinkBlock expects a paragraph holding one link and nothing else but
// whitespace.
func readLinkBlock(doc *document.Document, para *mdast.Node, problem string) summaryEntry {
	entry := summaryEntry{node: para}

	var links []*mdast.Node
	extra := false
	for child := para.FirstChild; child != nil; child = child.Next {
		switch {
		case child.Kind == mdast.NodeLink:
			links = append(links, child)
		case child.Kind == mdast.NodeText && strings.TrimSpace(doc.NodeText(child)) == "":
		case child.Kind == mdast.NodeSoftBreak:
		default:
			extra = true
		}
	}

	if len(links) != 1 || extra {
		entry.problems = append(entry.problems, problem)
	}
	if len(links) == 0 {
		return entry
	}

	link := links[0]
	line, col, _ := doc.NodePosition(link)
	target, _ := refs.SplitTarget(lint.LinkDestination(link))
	entry.chapter = &chapter{
		Target: target,
		Draft:  lint.LinkDestination(link) == "",
		Line:   line,
		Column: col,
	}
	return entry
}

// summaryChapters returns the chapters of SUMMARY.md with their paths
// resolved to slash paths relative to the summary's directory.
func summaryChapters(doc *document.Document, root *mdast.Node) []chapter {
	var chapters []chapter
	for _, entry := range readSummary(doc, root) {
		if entry.chapter == nil || entry.chapter.Draft || refs.IsExternal(entry.chapter.Target) {
			continue
		}
		ch := *entry.chapter
		ch.Target = path.Clean(strings.TrimPrefix(ch.Target, "/"))
		chapters = append(chapters, ch)
	}
	return chapters
}

// bookRoot returns the slash directory of a summary document.
func bookRoot(summary *document.Document) string {
	return path.Clean(filepath.ToSlash(summary.Dir()))
}

// SummaryStructureRule checks SUMMARY.md against the format mdBook parses.
type SummaryStructureRule struct {
	lint.BaseRule
}

// NewSummaryStructureRule creates MDBOOK003.
func NewSummaryStructureRule() *SummaryStructureRule {
	return &SummaryStructureRule{
		BaseRule: lint.NewBaseRule(
			"MDBOOK003",
			"mdbook-summary-structure",
			"SUMMARY.md should follow the mdBook table of contents format",
			lint.StableMetadata(lint.CategoryMdBook, "0.1.0"),
		),
	}
}

// CheckAST only looks at documents named SUMMARY.md.
func (r *SummaryStructureRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	if !IsSummary(doc) {
		return nil, nil
	}

	var violations []lint.Violation
	seen := make(map[string]int)

	for _, entry := range readSummary(doc, root) {
		for _, problem := range entry.problems {
			violations = append(violations, r.AtNode(doc, entry.node, problem).Build())
		}

		ch := entry.chapter
		if ch == nil || ch.Draft || refs.IsExternal(ch.Target) {
			continue
		}
		key := path.Clean(strings.TrimPrefix(ch.Target, "/"))
		if first, dup := seen[key]; dup {
			msg := fmt.Sprintf("Chapter %s is listed more than once (first on line %d)", ch.Target, first)
			violations = append(violations, r.At(ch.Line, ch.Column, msg).Build())
			continue
		}
		seen[key] = ch.Line
	}

	return violations, nil
}
