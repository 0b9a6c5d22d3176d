package lint

import (
	"bytes"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// Node query helpers.

// Headings returns all heading nodes in the document.
func Headings(root *mdast.Node) []*mdast.Node {
	return mdast.FindByKind(root, mdast.NodeHeading)
}

// CodeBlocks returns all code block nodes in the document.
func CodeBlocks(root *mdast.Node) []*mdast.Node {
	return mdast.FindByKind(root, mdast.NodeCodeBlock)
}

// Links returns all link nodes in the document.
func Links(root *mdast.Node) []*mdast.Node {
	return mdast.FindByKind(root, mdast.NodeLink)
}

// Images returns all image nodes in the document.
func Images(root *mdast.Node) []*mdast.Node {
	return mdast.FindByKind(root, mdast.NodeImage)
}

// Tables returns all GFM table nodes in the document.
func Tables(root *mdast.Node) []*mdast.Node {
	return mdast.FindByKind(root, mdast.NodeTable)
}

// Node accessor helpers.

// HeadingLevel returns the heading level for a heading node, or 0 if not a heading.
func HeadingLevel(n *mdast.Node) int {
	if n == nil || n.Kind != mdast.NodeHeading || n.Block == nil {
		return 0
	}
	return n.Block.HeadingLevel
}

// IsSetextHeading reports whether a heading is written with an underline.
func IsSetextHeading(n *mdast.Node) bool {
	return n != nil && n.Kind == mdast.NodeHeading && n.Block != nil && n.Block.Setext
}

// CodeBlockInfo returns the info string for a code block, or empty string.
func CodeBlockInfo(n *mdast.Node) string {
	if n == nil || n.Kind != mdast.NodeCodeBlock || n.Block == nil || n.Block.CodeBlock == nil {
		return ""
	}
	return n.Block.CodeBlock.Info
}

// CodeBlockLanguage returns the first word of a code block's info string.
func CodeBlockLanguage(n *mdast.Node) string {
	fields := strings.Fields(CodeBlockInfo(n))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// CodeBlockContent returns the body of a code block without fences.
func CodeBlockContent(n *mdast.Node) []byte {
	if n == nil || n.Kind != mdast.NodeCodeBlock || n.Block == nil || n.Block.CodeBlock == nil {
		return nil
	}
	return n.Block.CodeBlock.Content
}

// IsFencedCodeBlock returns true if the code block is fenced (not indented).
func IsFencedCodeBlock(n *mdast.Node) bool {
	if n == nil || n.Kind != mdast.NodeCodeBlock || n.Block == nil || n.Block.CodeBlock == nil {
		return false
	}
	return !n.Block.CodeBlock.Indented
}

// LinkDestination returns the destination URL for a link or image.
func LinkDestination(n *mdast.Node) string {
	if n == nil || n.Inline == nil || n.Inline.Link == nil {
		return ""
	}
	return n.Inline.Link.Destination
}

// IsAutolink reports whether a link was written as <url> or a bare GFM URL.
func IsAutolink(n *mdast.Node) bool {
	return n != nil && n.Kind == mdast.NodeLink && n.Inline != nil && n.Inline.Link != nil &&
		n.Inline.Link.ReferenceStyle == mdast.RefStyleAutolink
}

// HasText reports whether node renders any non-blank text.
func HasText(doc *document.Document, n *mdast.Node) bool {
	return strings.TrimSpace(doc.NodeText(n)) != ""
}

// Line helpers.

// NodeLines returns the first and last 1-based lines a node covers.
// ok is false for nodes without source.
func NodeLines(doc *document.Document, n *mdast.Node) (int, int, bool) {
	start, _, ok := doc.NodePosition(n)
	if !ok {
		return 0, 0, false
	}

	endOffset := n.Span.EndOffset
	if endOffset > n.Span.StartOffset {
		endOffset--
	}
	end, _ := doc.OffsetPosition(endOffset)
	if end < start {
		end = start
	}
	return start, end, true
}

// LineSet is a set of 1-based line numbers.
type LineSet map[int]bool

// CodeBlockLines returns the lines covered by code blocks, fences included.
func CodeBlockLines(doc *document.Document, root *mdast.Node) LineSet {
	return nodeLineSet(doc, CodeBlocks(root))
}

// VerbatimLines returns the lines covered by code blocks and HTML blocks,
// where Markdown syntax has no meaning.
func VerbatimLines(doc *document.Document, root *mdast.Node) LineSet {
	nodes := CodeBlocks(root)
	nodes = append(nodes, mdast.FindByKind(root, mdast.NodeHTMLBlock)...)
	return nodeLineSet(doc, nodes)
}

// TableLines returns the lines covered by tables.
func TableLines(doc *document.Document, root *mdast.Node) LineSet {
	return nodeLineSet(doc, Tables(root))
}

func nodeLineSet(doc *document.Document, nodes []*mdast.Node) LineSet {
	set := LineSet{}
	for _, n := range nodes {
		start, end, ok := NodeLines(doc, n)
		if !ok {
			continue
		}
		for line := start; line <= end; line++ {
			set[line] = true
		}
	}
	return set
}

// IsBlankLine returns true if the 1-based line contains only whitespace.
// Lines outside the document count as blank.
func IsBlankLine(doc *document.Document, lineNum int) bool {
	return strings.TrimSpace(doc.Line(lineNum)) == ""
}

// TrailingWhitespaceStart returns the 1-based column where trailing spaces
// and tabs begin on a line, or 0 when there are none.
func TrailingWhitespaceStart(line string) int {
	trimmed := strings.TrimRight(line, " \t")
	if len(trimmed) == len(line) {
		return 0
	}
	return len(trimmed) + 1
}

// LineContainsURL returns true if the line contains a URL (http:// or https://).
func LineContainsURL(line string) bool {
	return strings.Contains(line, "http://") || strings.Contains(line, "https://")
}

// CountBlankLinesBefore counts consecutive blank lines before a given line.
func CountBlankLinesBefore(doc *document.Document, lineNum int) int {
	count := 0
	for ln := lineNum - 1; ln >= doc.BodyStartLine(); ln-- {
		if !IsBlankLine(doc, ln) {
			break
		}
		count++
	}
	return count
}

// CountBlankLinesAfter counts consecutive blank lines after a given line.
func CountBlankLinesAfter(doc *document.Document, lineNum int) int {
	count := 0
	for ln := lineNum + 1; ln <= doc.LineCount(); ln++ {
		if !IsBlankLine(doc, ln) {
			break
		}
		count++
	}
	return count
}

// Heading helpers.

// FirstHeading returns the first heading in the document, or nil if none.
func FirstHeading(root *mdast.Node) *mdast.Node {
	return mdast.FindFirst(root, func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeHeading
	})
}

// FirstBlock returns the first block-level node in the document (excluding Document itself).
func FirstBlock(root *mdast.Node) *mdast.Node {
	if root == nil {
		return nil
	}
	return root.FirstChild
}

// HeadingText returns the rendered text of a heading, trimmed.
func HeadingText(doc *document.Document, n *mdast.Node) string {
	if n == nil || n.Kind != mdast.NodeHeading {
		return ""
	}
	return strings.TrimSpace(doc.NodeText(n))
}

// Section is a heading with the top-level blocks that follow it, up to the
// next heading of the same or higher rank. Blocks of nested sections are
// included.
type Section struct {
	Heading *mdast.Node
	Blocks  []*mdast.Node
}

// SectionsOf returns the sections of root in document order. Blocks before
// the first heading are dropped.
func SectionsOf(root *mdast.Node) []Section {
	var sections []Section
	for block := FirstBlock(root); block != nil; block = block.Next {
		if block.Kind == mdast.NodeHeading {
			sections = append(sections, Section{Heading: block})
			continue
		}
		for i := range sections {
			if closesBefore(sections[i], sections[i+1:]) {
				continue
			}
			sections[i].Blocks = append(sections[i].Blocks, block)
		}
	}
	return sections
}

// closesBefore reports whether a later heading of the same or higher rank
// has closed s.
func closesBefore(s Section, later []Section) bool {
	level := HeadingLevel(s.Heading)
	for _, next := range later {
		if HeadingLevel(next.Heading) <= level {
			return true
		}
	}
	return false
}

// HTML helpers.

// ExtractHTMLTagName extracts the tag name from an HTML element.
// Returns empty string if no valid tag found.
func ExtractHTMLTagName(content []byte) string {
	content = bytes.TrimSpace(content)
	if len(content) < 2 || content[0] != '<' {
		return ""
	}

	idx := 1
	if idx < len(content) && content[idx] == '/' {
		idx++
	}

	start := idx
	for idx < len(content) {
		ch := content[idx]
		isAlphaNum := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-'
		if !isAlphaNum {
			break
		}
		idx++
	}

	if idx == start {
		return ""
	}

	return string(bytes.ToLower(content[start:idx]))
}
