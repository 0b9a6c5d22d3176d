// Package refs collects link targets and anchors from a parsed document for
// rules that check links within a chapter and between chapters.
package refs

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// Link is a link or image found in a document.
type Link struct {
	// Destination is the target as written.
	Destination string

	// Text is the rendered link text or image alt text.
	Text string

	IsImage bool

	// Line and Column locate the link's opening bracket.
	Line   int
	Column int

	Node *mdast.Node
}

// Target splits the destination into a decoded path and a fragment
// without its leading '#'.
func (l Link) Target() (string, string) {
	return SplitTarget(l.Destination)
}

// IsExternal reports whether the link leaves the book: it has a URL scheme
// or is protocol-relative.
func (l Link) IsExternal() bool {
	return IsExternal(l.Destination)
}

// Context holds the links and anchors of one document.
type Context struct {
	Links   []Link
	Anchors *AnchorMap
}

// htmlAttrPattern matches HTML attributes like id="value" or id='value'.
var htmlAttrPattern = regexp.MustCompile(`(?i)\b(id|name)\s*=\s*["']([^"']+)["']`)

// Collect walks root to gather anchors and links. root must be doc's tree.
func Collect(doc *document.Document, root *mdast.Node) *Context {
	ctx := &Context{Anchors: NewAnchorMap()}
	if root == nil {
		return ctx
	}

	_ = mdast.Walk(root, func(n *mdast.Node) error {
		switch n.Kind {
		case mdast.NodeHeading:
			text := strings.TrimSpace(doc.NodeText(n))
			if text == "" {
				return nil
			}
			line, _, _ := doc.NodePosition(n)
			ctx.Anchors.AddFromHeading(text, line)

		case mdast.NodeHTMLBlock, mdast.NodeHTMLInline:
			collectHTMLAnchors(ctx, doc, n)

		case mdast.NodeLink, mdast.NodeImage:
			if n.Inline == nil || n.Inline.Link == nil {
				return nil
			}
			line, col, _ := doc.NodePosition(n)
			ctx.Links = append(ctx.Links, Link{
				Destination: n.Inline.Link.Destination,
				Text:        doc.NodeText(n),
				IsImage:     n.Kind == mdast.NodeImage,
				Line:        line,
				Column:      col,
				Node:        n,
			})

		default:
		}
		return nil
	})

	return ctx
}

func collectHTMLAnchors(ctx *Context, doc *document.Document, n *mdast.Node) {
	if !n.HasSource() || n.Span.EndOffset > len(doc.Bytes()) {
		return
	}
	line, _, _ := doc.NodePosition(n)
	content := doc.Bytes()[n.Span.StartOffset:n.Span.EndOffset]

	for _, match := range htmlAttrPattern.FindAllSubmatch(content, -1) {
		source := AnchorFromHTMLID
		if strings.EqualFold(string(match[1]), "name") {
			source = AnchorFromHTMLName
		}
		ctx.Anchors.Add(&Anchor{ID: string(match[2]), Source: source, Line: line})
	}
}

// HasFragment reports whether fragment names an anchor of the document.
// An empty fragment and "top" always resolve.
func (c *Context) HasFragment(fragment string) bool {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" || strings.EqualFold(fragment, "top") {
		return true
	}
	return c.Anchors.Has(fragment)
}

// SplitTarget splits a link destination into a percent-decoded path and a
// fragment without its '#'. Undecodable paths are returned as written.
func SplitTarget(dest string) (string, string) {
	target, fragment, _ := strings.Cut(dest, "#")
	if q := strings.IndexByte(target, '?'); q >= 0 {
		target = target[:q]
	}
	if decoded, err := url.PathUnescape(target); err == nil {
		target = decoded
	}
	return target, fragment
}

// IsExternal reports whether dest has a URL scheme or is protocol-relative.
func IsExternal(dest string) bool {
	if strings.HasPrefix(dest, "//") {
		return true
	}
	u, err := url.Parse(dest)
	if err != nil {
		return strings.Contains(dest, "://")
	}
	return u.Scheme != ""
}

// Resolve joins a relative link target onto the directory of the linking
// document. Targets starting with '/' are taken relative to root.
func Resolve(fromDir, root, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(path.Join(root, target))
	}
	return path.Clean(path.Join(fromDir, target))
}
