package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeTable
	NodeTableRow
	NodeTableCell

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	// Fallback for unrecognized content.
	NodeRaw
)

// String returns the kind name without the Node prefix.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [...]string{
	NodeDocument:      "Document",
	NodeParagraph:     "Paragraph",
	NodeHeading:       "Heading",
	NodeList:          "List",
	NodeListItem:      "ListItem",
	NodeBlockquote:    "Blockquote",
	NodeCodeBlock:     "CodeBlock",
	NodeThematicBreak: "ThematicBreak",
	NodeHTMLBlock:     "HTMLBlock",
	NodeTable:         "Table",
	NodeTableRow:      "TableRow",
	NodeTableCell:     "TableCell",
	NodeText:          "Text",
	NodeEmphasis:      "Emphasis",
	NodeStrong:        "Strong",
	NodeCodeSpan:      "CodeSpan",
	NodeLink:          "Link",
	NodeImage:         "Image",
	NodeSoftBreak:     "SoftBreak",
	NodeHardBreak:     "HardBreak",
	NodeHTMLInline:    "HTMLInline",
	NodeRaw:           "Raw",
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
//
// A tree is produced once per lint pass and then shared read-only between
// every rule that inspects it. Rules must not mutate nodes.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Span is the byte range of the node in the document content.
	// Both offsets are -1 for synthetic nodes with no source.
	Span SourceRange

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs

	// Ext holds extension-specific attributes (e.g., GFM).
	Ext map[string]any
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock,
		NodeTable, NodeTableRow, NodeTableCell:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeCodeSpan, NodeLink,
		NodeImage, NodeSoftBreak, NodeHardBreak, NodeHTMLInline:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// HasSource reports whether the node carries a usable source span.
func (n *Node) HasSource() bool {
	return n.Span.StartOffset >= 0 && n.Span.EndOffset >= n.Span.StartOffset
}
