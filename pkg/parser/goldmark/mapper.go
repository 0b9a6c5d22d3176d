package goldmark

import (
	"bytes"

	"github.com/yaklabco/mdbooklint/pkg/mdast"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

const (
	defaultFenceLength = 3
	maxATXLevel        = 6
)

// mapper converts a goldmark AST into an mdast.Node tree.
//
// goldmark records line segments for leaf blocks and text segments for
// inline content. Everything else (containers, markers, fences) is located
// relative to those segments.
type mapper struct {
	content []byte

	// cursor is the end offset of the last block given a span. Blocks that
	// goldmark reports without segments are placed on the next content line.
	cursor int

	// inlineCursor is the end offset of the last inline span.
	inlineCursor int
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	m.settleContainers(doc)
	mdast.SetSpan(doc, 0, len(m.content))
	return doc
}

// mapChildren recursively maps all children of a goldmark node to mdast nodes.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		textNode, isText := child.(*ast.Text)
		if !isText || textNode.Segment.Len() > 0 {
			if mdNode := m.mapNode(child); mdNode != nil {
				mdast.AppendChild(parent, mdNode)
			}
		}
		if isText {
			if brk := m.mapLineBreak(textNode); brk != nil {
				mdast.AppendChild(parent, brk)
			}
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = m.mapHeading(gmn)

	case *ast.Paragraph:
		node = mdast.NewNode(mdast.NodeParagraph)
		m.mapLeafBlock(gmn, node)

	case *ast.TextBlock:
		// Tight list items wrap their text in a TextBlock; treat it as a
		// paragraph so rules see one shape.
		node = mdast.NewNode(mdast.NodeParagraph)
		m.mapLeafBlock(gmn, node)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeListItem)
		m.mapChildren(gmNode, node)
		if node.FirstChild == nil {
			m.placeOnNextLine(node, false)
		}

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmNode, node)
		if node.FirstChild == nil {
			m.placeOnNextLine(node, false)
		}

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = m.mapIndentedCodeBlock(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)
		m.placeOnNextLine(node, true)

	case *ast.HTMLBlock:
		node = m.mapHTMLBlock(gmn)

	// Inline-level nodes.
	case *ast.Text:
		node = m.mapText(gmn)

	case *ast.Emphasis:
		node = m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = m.mapLink(gmn)

	case *ast.Image:
		node = m.mapImage(gmn)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		node = m.mapRawHTML(gmn)

	case *ast.String:
		node = mdast.NewNode(mdast.NodeText)
		node.Inline = mdast.NewInlineAttrs().WithText(gmn.Value)

	// GFM extension nodes.
	case *east.Strikethrough:
		node = m.mapStrikethrough(gmn)

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeText)
		node.Ext = map[string]any{
			"taskCheckbox": true,
			"checked":      gmn.IsChecked,
		}

	case *east.Table:
		node = m.mapTable(gmn)

	case *east.TableHeader:
		node = mdast.NewNode(mdast.NodeTableRow)
		node.Ext = map[string]any{"tableHeader": true}
		m.mapChildren(gmn, node)

	case *east.TableRow:
		node = mdast.NewNode(mdast.NodeTableRow)
		m.mapChildren(gmn, node)

	case *east.TableCell:
		node = mdast.NewNode(mdast.NodeTableCell)
		node.Ext = map[string]any{"alignment": gmn.Alignment}
		m.mapChildren(gmn, node)

	default:
		// Footnotes and anything else goldmark adds map to raw containers.
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)
	}

	return node
}

// mapLeafBlock spans a block from its line segments and maps its inlines.
func (m *mapper) mapLeafBlock(gmNode ast.Node, node *mdast.Node) {
	start, end, ok := m.linesRange(gmNode)
	if ok {
		m.inlineCursor = max(m.inlineCursor, start)
	}
	m.mapChildren(gmNode, node)
	if ok {
		m.setBlockSpan(node, start, end)
	}
}

// mapHeading converts a goldmark Heading to an mdast node.
// ATX headings span their whole line; setext headings include the underline.
func (m *mapper) mapHeading(h *ast.Heading) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHeading)

	start, end, ok := m.linesRange(h)
	if !ok {
		// Empty ATX heading ("#") has no text segment.
		node.Block = mdast.NewBlockAttrs().WithHeadingLevel(h.Level)
		m.placeOnNextLine(node, true)
		return node
	}

	m.inlineCursor = max(m.inlineCursor, start)
	m.mapChildren(h, node)

	start = m.backOver(start, " \t#")
	start = m.skipSpaces(start, end)

	setext := !m.isATXMarker(start)
	if setext {
		end = m.nextLineEnd(end)
	} else {
		end = m.lineEnd(start)
	}

	node.Block = mdast.NewBlockAttrs().WithHeadingLevel(h.Level).WithSetext(setext)
	m.setBlockSpan(node, start, end)
	return node
}

// mapList converts a goldmark List to an mdast node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	listAttrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}

	if list.IsOrdered() {
		listAttrs.Delimiter = string(list.Marker)
	} else {
		listAttrs.BulletMarker = string(list.Marker)
	}

	node.Block = mdast.NewBlockAttrs().WithList(listAttrs)
	m.mapChildren(list, node)
	return node
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to an mdast node.
// The span runs from the opening fence through the closing fence when one
// exists, or through the last content line otherwise.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	info := ""
	if codeBlock.Info != nil {
		info = string(codeBlock.Info.Segment.Value(m.content))
	}

	var fenceStart, fenceEnd int
	lines := codeBlock.Lines()
	if lines.Len() > 0 {
		first := lines.At(0).Start
		fenceEnd = m.lineStart(first) - 1
		if fenceEnd < 0 {
			fenceEnd = 0
		}
		fenceStart = m.lineStart(fenceEnd)
	} else {
		fenceStart, fenceEnd = m.nextContentLine(m.cursor, true)
	}

	fenceChar, fenceLength := m.extractFenceFromLine(fenceStart, fenceEnd)
	if pos := bytes.IndexByte(m.content[fenceStart:fenceEnd], fenceChar); pos >= 0 {
		fenceStart += pos
	}

	var body []byte
	bodyEnd := fenceEnd
	for i := range lines.Len() {
		seg := lines.At(i)
		body = append(body, seg.Value(m.content)...)
		bodyEnd = seg.Stop
	}

	end, closed := m.closingFence(bodyEnd, fenceChar, fenceLength)

	node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
		FenceChar:   fenceChar,
		FenceLength: fenceLength,
		Info:        info,
		Content:     body,
		Closed:      closed,
	})
	m.setBlockSpan(node, fenceStart, end)
	return node
}

// closingFence looks for a closing fence on the line at or after from.
// Returns the end of the block and whether a closing fence was found.
func (m *mapper) closingFence(from int, fenceChar byte, fenceLength int) (int, bool) {
	pos := from
	if pos > 0 && pos <= len(m.content) && m.content[pos-1] != '\n' {
		pos = m.lineEnd(pos) + 1
	}
	if pos >= len(m.content) {
		return m.trimEOL(from), false
	}

	lineEnd := m.lineEnd(pos)
	line := stripContainerPrefix(m.content[pos:lineEnd])
	run := 0
	for run < len(line) && line[run] == fenceChar {
		run++
	}
	if run >= fenceLength && len(bytes.TrimSpace(line[run:])) == 0 {
		return lineEnd, true
	}
	return m.trimEOL(from), false
}

// extractFenceFromLine extracts fence character and length from a line.
func (m *mapper) extractFenceFromLine(start, end int) (byte, int) {
	if start >= end || start >= len(m.content) {
		return '`', defaultFenceLength
	}

	line := stripContainerPrefix(m.content[start:min(end, len(m.content))])
	if len(line) == 0 || (line[0] != '`' && line[0] != '~') {
		return '`', defaultFenceLength
	}

	fenceChar := line[0]
	fenceLength := 0
	for fenceLength < len(line) && line[fenceLength] == fenceChar {
		fenceLength++
	}

	return fenceChar, max(fenceLength, defaultFenceLength)
}

// mapIndentedCodeBlock converts a goldmark indented CodeBlock to an mdast node.
func (m *mapper) mapIndentedCodeBlock(codeBlock *ast.CodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	var body []byte
	lines := codeBlock.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		body = append(body, seg.Value(m.content)...)
	}

	node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
		Indented: true,
		Content:  body,
		Closed:   true,
	})

	if start, end, ok := m.linesRange(codeBlock); ok {
		m.setBlockSpan(node, m.lineContentStart(start), end)
	}
	return node
}

// mapHTMLBlock converts a goldmark HTMLBlock, including its closure line.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTMLBlock)

	start, end, ok := m.linesRange(block)
	if block.HasClosure() {
		closure := block.ClosureLine
		if !ok {
			start = closure.Start
			ok = true
		}
		end = max(end, closure.Stop)
	}
	if ok {
		m.setBlockSpan(node, start, end)
	}
	return node
}

// mapTable converts a GFM Table. The table is spanned eagerly so blocks
// following it are placed after it.
func (m *mapper) mapTable(table *east.Table) *mdast.Node {
	node := mdast.NewNode(mdast.NodeTable)
	node.Ext = map[string]any{"alignments": table.Alignments}
	m.mapChildren(table, node)

	mdast.PropagateSpans(node)
	for row := node.FirstChild; row != nil; row = row.Next {
		m.extendToLines(row)
	}
	if node.HasSource() {
		m.extendToLines(node)
		m.cursor = max(m.cursor, node.Span.EndOffset)
	}
	return node
}

// mapText converts a goldmark Text node to an mdast node.
func (m *mapper) mapText(textNode *ast.Text) *mdast.Node {
	node := mdast.NewNode(mdast.NodeText)
	seg := textNode.Segment
	node.Inline = mdast.NewInlineAttrs().WithText(seg.Value(m.content))
	m.setInlineSpan(node, seg.Start, seg.Stop)
	return node
}

// mapLineBreak returns the break node that follows a text node, if any.
func (m *mapper) mapLineBreak(textNode *ast.Text) *mdast.Node {
	var node *mdast.Node
	switch {
	case textNode.HardLineBreak():
		node = mdast.NewNode(mdast.NodeHardBreak)
	case textNode.SoftLineBreak():
		node = mdast.NewNode(mdast.NodeSoftBreak)
	default:
		return nil
	}

	start := textNode.Segment.Stop
	if start >= 0 && start <= len(m.content) {
		mdast.SetSpan(node, start, max(start, m.lineEnd(start)))
	}
	return node
}

// mapEmphasis converts a goldmark Emphasis node to an mdast node.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	var node *mdast.Node

	if emphasis.Level == 2 {
		node = mdast.NewNode(mdast.NodeStrong)
		node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(2)
	} else {
		node = mdast.NewNode(mdast.NodeEmphasis)
		node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(1)
	}

	m.mapChildren(emphasis, node)
	m.spanDelimited(node, "*_", emphasis.Level)
	return node
}

// mapStrikethrough converts a GFM Strikethrough to an mdast node.
func (m *mapper) mapStrikethrough(s *east.Strikethrough) *mdast.Node {
	node := mdast.NewNode(mdast.NodeEmphasis)
	node.Ext = map[string]any{"strikethrough": true}
	m.mapChildren(s, node)
	m.spanDelimited(node, "~", 2)
	return node
}

// spanDelimited spans an inline container from its children and widens the
// span over up to n delimiter characters on each side.
func (m *mapper) spanDelimited(node *mdast.Node, delims string, n int) {
	span := childrenSpan(node)
	if span.StartOffset < 0 {
		return
	}

	start, end := span.StartOffset, span.EndOffset
	for i := 0; i < n && start > 0 && bytes.IndexByte([]byte(delims), m.content[start-1]) >= 0; i++ {
		start--
	}
	for i := 0; i < n && end < len(m.content) && bytes.IndexByte([]byte(delims), m.content[end]) >= 0; i++ {
		end++
	}
	m.setInlineSpan(node, start, end)
}

// mapCodeSpan converts a goldmark CodeSpan to an mdast node.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var text []byte
	span := mdast.NoSource
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			text = append(text, textNode.Segment.Value(m.content)...)
			span = span.Union(mdast.SourceRange{
				StartOffset: textNode.Segment.Start,
				EndOffset:   textNode.Segment.Stop,
			})
		}
	}
	node.Inline = mdast.NewInlineAttrs().WithText(text)

	if span.StartOffset >= 0 {
		start, end := span.StartOffset, span.EndOffset
		if start > 1 && m.content[start-1] == ' ' && m.content[start-2] == '`' {
			start--
		}
		start = m.backOver(start, "`")
		if end+1 < len(m.content) && m.content[end] == ' ' && m.content[end+1] == '`' {
			end++
		}
		end = m.forwardOver(end, "`")
		m.setInlineSpan(node, start, end)
	}
	return node
}

// mapLink converts a goldmark Link to an mdast node.
// goldmark resolves reference links during parsing, so every link is
// recorded as inline style.
func (m *mapper) mapLink(link *ast.Link) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination:    string(link.Destination),
		Title:          string(link.Title),
		ReferenceStyle: mdast.RefStyleInline,
	})
	m.mapChildren(link, node)
	m.spanBracketed(node, "[")
	return node
}

// mapImage converts a goldmark Image to an mdast node.
func (m *mapper) mapImage(img *ast.Image) *mdast.Node {
	node := mdast.NewNode(mdast.NodeImage)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination:    string(img.Destination),
		Title:          string(img.Title),
		ReferenceStyle: mdast.RefStyleInline,
	})
	m.mapChildren(img, node)
	m.spanBracketed(node, "![")
	return node
}

// spanBracketed spans a link or image from its opening marker through the
// destination or reference label that follows the closing bracket.
func (m *mapper) spanBracketed(node *mdast.Node, opener string) {
	span := childrenSpan(node)

	var start, end int
	if span.StartOffset >= 0 {
		start, end = span.StartOffset, span.EndOffset
		if start >= len(opener) && string(m.content[start-len(opener):start]) == opener {
			start -= len(opener)
		}
	} else {
		// Empty link text: locate the bare brackets.
		pos := m.indexFrom(m.inlineCursor, []byte(opener+"]"))
		if pos < 0 {
			return
		}
		start = pos
		end = pos + len(opener)
	}

	if end < len(m.content) && m.content[end] == ']' {
		end++
	}
	end = m.skipDestination(end)
	m.setInlineSpan(node, start, end)
}

// skipDestination advances past "(...)" or "[...]" at pos.
func (m *mapper) skipDestination(pos int) int {
	if pos >= len(m.content) {
		return pos
	}

	var open, closer byte
	switch m.content[pos] {
	case '(':
		open, closer = '(', ')'
	case '[':
		open, closer = '[', ']'
	default:
		return pos
	}

	depth := 0
	for i := pos; i < len(m.content); i++ {
		switch m.content[i] {
		case '\\':
			i++
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return pos
}

// mapAutoLink converts a goldmark AutoLink to an mdast node.
func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination:    string(al.URL(m.content)),
		ReferenceStyle: mdast.RefStyleAutolink,
	})

	label := al.Label(m.content)
	textNode := mdast.NewNode(mdast.NodeText)
	textNode.Inline = mdast.NewInlineAttrs().WithText(label)
	mdast.AppendChild(node, textNode)

	if pos := m.indexFrom(m.inlineCursor, label); pos >= 0 && len(label) > 0 {
		start, end := pos, pos+len(label)
		mdast.SetSpan(textNode, start, end)
		if start > 0 && m.content[start-1] == '<' && end < len(m.content) && m.content[end] == '>' {
			start--
			end++
		}
		m.setInlineSpan(node, start, end)
	}
	return node
}

// mapRawHTML converts inline HTML using its segments.
func (m *mapper) mapRawHTML(raw *ast.RawHTML) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTMLInline)
	span := mdast.NoSource
	for i := range raw.Segments.Len() {
		seg := raw.Segments.At(i)
		span = span.Union(mdast.SourceRange{StartOffset: seg.Start, EndOffset: seg.Stop})
	}
	if span.StartOffset >= 0 {
		m.setInlineSpan(node, span.StartOffset, span.EndOffset)
	}
	return node
}

// settleContainers spans container nodes from their children, post-order,
// then widens list items and blockquotes over their markers.
func (m *mapper) settleContainers(node *mdast.Node) {
	for child := node.FirstChild; child != nil; child = child.Next {
		m.settleContainers(child)
	}

	if node.Kind == mdast.NodeDocument {
		return
	}

	if !node.HasSource() || node.Kind == mdast.NodeList ||
		node.Kind == mdast.NodeListItem || node.Kind == mdast.NodeBlockquote {
		if span := node.Span.Union(childrenSpan(node)); span.StartOffset >= 0 {
			node.Span = span
		}
	}
	if !node.HasSource() {
		return
	}

	switch node.Kind {
	case mdast.NodeListItem:
		node.Span.StartOffset = m.listMarkerStart(node.Span.StartOffset)
	case mdast.NodeBlockquote:
		node.Span.StartOffset = m.quoteMarkerStart(node.Span.StartOffset)
	case mdast.NodeList:
		if first := node.FirstChild; first != nil && first.HasSource() {
			node.Span.StartOffset = min(node.Span.StartOffset, first.Span.StartOffset)
		}
	default:
	}
}

// listMarkerStart backs up from item content over a bullet or ordinal marker.
func (m *mapper) listMarkerStart(start int) int {
	pos := m.backOver(start, " \t")
	if pos == 0 {
		return start
	}

	switch c := m.content[pos-1]; {
	case c == '-' || c == '*' || c == '+':
		return pos - 1
	case c == '.' || c == ')':
		digits := pos - 1
		for digits > 0 && m.content[digits-1] >= '0' && m.content[digits-1] <= '9' {
			digits--
		}
		if digits < pos-1 {
			return digits
		}
	}
	return start
}

// quoteMarkerStart backs up from quote content over its '>' marker.
func (m *mapper) quoteMarkerStart(start int) int {
	pos := m.backOver(start, " \t")
	if pos > 0 && m.content[pos-1] == '>' {
		return pos - 1
	}
	return start
}

// placeOnNextLine spans a segment-less block over the next content line.
func (m *mapper) placeOnNextLine(node *mdast.Node, skipQuote bool) {
	start, end := m.nextContentLine(m.cursor, skipQuote)
	if start < end {
		m.setBlockSpan(node, start, end)
	}
}

// nextContentLine returns the first non-blank line at or after the line
// following from. Leading whitespace (and '>' markers when skipQuote is set)
// are excluded from the returned start.
func (m *mapper) nextContentLine(from int, skipQuote bool) (int, int) {
	pos := from
	if pos > 0 && pos <= len(m.content) && m.content[pos-1] != '\n' {
		pos = m.lineEnd(pos) + 1
	}

	for pos < len(m.content) {
		end := m.lineEnd(pos)
		start := pos
		for start < end {
			c := m.content[start]
			if c == ' ' || c == '\t' || (skipQuote && c == '>') {
				start++
				continue
			}
			break
		}
		if start < m.trimEOL(end) {
			return start, m.trimEOL(end)
		}
		pos = end + 1
	}
	return len(m.content), len(m.content)
}

// setBlockSpan records a block span and advances the block cursor.
func (m *mapper) setBlockSpan(node *mdast.Node, start, end int) {
	end = max(start, m.trimEOL(end))
	mdast.SetSpan(node, start, end)
	m.cursor = max(m.cursor, end)
}

// setInlineSpan records an inline span and advances the inline cursor.
func (m *mapper) setInlineSpan(node *mdast.Node, start, end int) {
	mdast.SetSpan(node, start, end)
	m.inlineCursor = max(m.inlineCursor, end)
}

// extendToLines widens a span to the full lines it touches, minus indentation.
func (m *mapper) extendToLines(node *mdast.Node) {
	if !node.HasSource() {
		return
	}
	start := m.lineContentStart(node.Span.StartOffset)
	end := m.trimEOL(m.lineEnd(max(node.Span.StartOffset, node.Span.EndOffset-1)))
	mdast.SetSpan(node, start, max(start, end))
}

// linesRange returns the byte range covered by a block's line segments.
func (m *mapper) linesRange(gmNode ast.Node) (int, int, bool) {
	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0, 0, false
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	if first.Start < 0 || last.Stop > len(m.content) || last.Stop < first.Start {
		return 0, 0, false
	}
	return first.Start, last.Stop, true
}

// isATXMarker reports whether pos starts an ATX heading marker.
func (m *mapper) isATXMarker(pos int) bool {
	n := 0
	for pos+n < len(m.content) && m.content[pos+n] == '#' {
		n++
	}
	if n == 0 || n > maxATXLevel {
		return false
	}
	if pos+n == len(m.content) {
		return true
	}
	c := m.content[pos+n]
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// lineStart returns the offset of the first byte of the line holding pos.
func (m *mapper) lineStart(pos int) int {
	pos = min(pos, len(m.content))
	for pos > 0 && m.content[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineEnd returns the offset of the newline ending the line holding pos,
// or the content length for the last line.
func (m *mapper) lineEnd(pos int) int {
	if pos >= len(m.content) {
		return len(m.content)
	}
	if i := bytes.IndexByte(m.content[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(m.content)
}

// nextLineEnd returns the end of the line after the one holding pos.
func (m *mapper) nextLineEnd(pos int) int {
	end := m.lineEnd(pos)
	if end >= len(m.content) {
		return end
	}
	return m.lineEnd(end + 1)
}

// lineContentStart returns the first non-indentation offset on pos's line.
func (m *mapper) lineContentStart(pos int) int {
	start := m.lineStart(pos)
	return m.skipSpaces(start, m.lineEnd(start))
}

// trimEOL backs end off any trailing line terminator bytes.
func (m *mapper) trimEOL(end int) int {
	end = min(end, len(m.content))
	for end > 0 && (m.content[end-1] == '\n' || m.content[end-1] == '\r') {
		end--
	}
	return end
}

func (m *mapper) backOver(pos int, chars string) int {
	for pos > 0 && m.content[pos-1] != '\n' && bytes.IndexByte([]byte(chars), m.content[pos-1]) >= 0 {
		pos--
	}
	return pos
}

func (m *mapper) forwardOver(pos int, chars string) int {
	for pos < len(m.content) && m.content[pos] != '\n' && bytes.IndexByte([]byte(chars), m.content[pos]) >= 0 {
		pos++
	}
	return pos
}

func (m *mapper) skipSpaces(pos, limit int) int {
	for pos < limit && pos < len(m.content) && (m.content[pos] == ' ' || m.content[pos] == '\t') {
		pos++
	}
	return pos
}

func (m *mapper) indexFrom(from int, needle []byte) int {
	if from < 0 || from > len(m.content) {
		return -1
	}
	if i := bytes.Index(m.content[from:], needle); i >= 0 {
		return from + i
	}
	return -1
}

// childrenSpan unions the spans of a node's children.
func childrenSpan(node *mdast.Node) mdast.SourceRange {
	span := mdast.NoSource
	for child := node.FirstChild; child != nil; child = child.Next {
		if child.HasSource() {
			span = span.Union(child.Span)
		}
	}
	return span
}

// stripContainerPrefix removes indentation and blockquote markers.
func stripContainerPrefix(line []byte) []byte {
	for len(line) > 0 && (line[0] == ' ' || line[0] == '\t' || line[0] == '>') {
		line = line[1:]
	}
	return line
}
