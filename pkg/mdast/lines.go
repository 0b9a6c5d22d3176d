package mdast

import "sort"

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// LineIndex maps byte offsets to 1-based line and column numbers.
type LineIndex struct {
	lines   []LineInfo
	content []byte
}

// NewLineIndex builds a line index for content.
func NewLineIndex(content []byte) *LineIndex {
	return &LineIndex{lines: BuildLines(content), content: content}
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			// Check for CRLF.
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Handle last line (may not have trailing newline).
	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// Lines returns the line table. Do not mutate the returned slice.
func (li *LineIndex) Lines() []LineInfo {
	return li.lines
}

// LineCount returns the number of lines in the index.
func (li *LineIndex) LineCount() int {
	return len(li.lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (li *LineIndex) LineAt(offset int) (int, int) {
	if offset < 0 || len(li.lines) == 0 {
		return 0, 0
	}

	// Handle offset at or past end of content.
	if offset >= len(li.content) {
		lastLine := li.lines[len(li.lines)-1]
		return len(li.lines), offset - lastLine.StartOffset + 1
	}

	// Binary search to find the line containing the offset.
	lineIdx := sort.Search(len(li.lines), func(i int) bool {
		return li.lines[i].EndOffset > offset
	})

	if lineIdx >= len(li.lines) {
		lineIdx = len(li.lines) - 1
	}

	lineInfo := li.lines[lineIdx]
	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (li *LineIndex) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(li.lines) || col < 1 {
		return 0, false
	}

	lineInfo := li.lines[line-1]
	offset := lineInfo.StartOffset + col - 1

	// Allow column to point to end of line (for cursor positioning).
	if offset > lineInfo.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (li *LineIndex) LineContent(line int) []byte {
	if line < 1 || line > len(li.lines) {
		return nil
	}

	lineInfo := li.lines[line-1]
	return li.content[lineInfo.StartOffset:lineInfo.NewlineStart]
}

// Position converts a source range into a line/column range.
// Returns a zero SourcePosition when the range carries no source.
func (li *LineIndex) Position(r SourceRange) SourcePosition {
	if r.StartOffset < 0 || r.EndOffset < r.StartOffset {
		return SourcePosition{}
	}
	startLine, startCol := li.LineAt(r.StartOffset)
	endLine, endCol := li.LineAt(r.EndOffset)
	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}
