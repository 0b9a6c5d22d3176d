// Package document holds the source text of one Markdown file together with
// its line index and the helpers rules use to translate AST spans back into
// document coordinates.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/mdast"
	goldmarkparser "github.com/yaklabco/mdbooklint/pkg/parser/goldmark"
)

// ErrInvalidPath is returned when a document path cannot be represented.
var ErrInvalidPath = errors.New("invalid document path")

// Error reports a document that could not be constructed.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("document %q: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// parser is shared by every document; it holds no per-parse state.
//
//nolint:gochecknoglobals // Stateless parser instance.
var parser = goldmarkparser.New(goldmarkparser.FlavorGFM)

// Document is an immutable Markdown source file.
type Document struct {
	// Path identifies the document. It may be empty for in-memory buffers.
	Path string

	// Content is the raw source text.
	Content string

	// Lines is Content split on "\n" with any trailing "\r" removed.
	// A final newline does not produce a trailing empty line.
	Lines []string

	raw   []byte
	index *mdast.LineIndex
	front frontMatter
}

// New creates a Document. Any text is accepted; only paths that cannot be
// represented on a filesystem (those containing NUL bytes) are rejected.
func New(content, path string) (*Document, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return nil, &Error{Path: path, Err: ErrInvalidPath}
	}

	raw := []byte(content)
	return &Document{
		Path:    path,
		Content: content,
		Lines:   splitLines(content),
		raw:     raw,
		index:   mdast.NewLineIndex(raw),
		front:   detectFrontMatter(raw),
	}, nil
}

// ParseAST parses the document into a fresh tree owned by the caller.
// Repeated calls return structurally equal, independent trees. YAML front
// matter is blanked before parsing so it never shows up as Markdown, while
// byte offsets still line up with Content.
func (d *Document) ParseAST() *mdast.Node {
	src := d.raw
	if d.front.end > 0 {
		src = bytes.Clone(d.raw)
		for i := range d.front.end {
			if src[i] != '\n' && src[i] != '\r' {
				src[i] = ' '
			}
		}
	}
	return parser.Parse(src)
}

// NodePosition returns the 1-based line and column where node starts.
// ok is false for nodes that carry no source span.
func (d *Document) NodePosition(node *mdast.Node) (int, int, bool) {
	if node == nil || !node.HasSource() || node.Span.StartOffset > len(d.raw) {
		return 0, 0, false
	}
	line, col := d.index.LineAt(node.Span.StartOffset)
	if line == 0 {
		return 0, 0, false
	}
	return line, col, true
}

// NodeText returns the rendered text of node: the concatenation of every
// descendant text and code span, with line breaks rendered as spaces.
func (d *Document) NodeText(node *mdast.Node) string {
	if node == nil {
		return ""
	}

	var sb strings.Builder
	_ = mdast.Walk(node, func(n *mdast.Node) error {
		switch n.Kind {
		case mdast.NodeText, mdast.NodeCodeSpan:
			if n.Inline != nil {
				sb.Write(n.Inline.Text)
			}
		case mdast.NodeSoftBreak, mdast.NodeHardBreak:
			sb.WriteByte(' ')
		default:
		}
		return nil
	})
	return sb.String()
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// Line returns the 1-based line n, or "" when n is out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.Lines) {
		return ""
	}
	return d.Lines[n-1]
}

// OffsetPosition converts a byte offset into a 1-based line and column.
// Returns (0, 0) for offsets outside the document.
func (d *Document) OffsetPosition(offset int) (int, int) {
	if offset < 0 || offset > len(d.raw) {
		return 0, 0
	}
	return d.index.LineAt(offset)
}

// PositionOffset converts a 1-based line and column into a byte offset. A
// column one past the end of a line addresses its line break, and line
// LineCount()+1 column 1 addresses the end of the document.
func (d *Document) PositionOffset(line, col int) (int, bool) {
	if line == len(d.Lines)+1 && col == 1 {
		return len(d.raw), true
	}
	return d.index.Offset(line, col)
}

// Bytes returns the raw content. Callers must not modify the result.
func (d *Document) Bytes() []byte {
	return d.raw
}

// FileName returns the base name of the document path.
func (d *Document) FileName() string {
	if d.Path == "" {
		return ""
	}
	return filepath.Base(d.Path)
}

// Dir returns the directory holding the document, "." for bare names.
func (d *Document) Dir() string {
	return filepath.Dir(d.Path)
}

// splitLines splits content on "\n", dropping a trailing "\r" from each line
// and the empty remainder after a final newline.
func splitLines(content string) []string {
	if content == "" {
		return []string{}
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
