package fix

import (
	"fmt"
	"io"
	"strings"
)

// contextLines is how many unchanged lines surround each change.
const contextLines = 3

// LineKind classifies a line of a hunk.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdd
	LineRemove
)

// Prefix is the unified diff marker for the kind.
func (k LineKind) Prefix() string {
	switch k {
	case LineAdd:
		return "+"
	case LineRemove:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk, without its marker or newline.
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// Header renders the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// Diff is a line-based unified diff of one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// GenerateDiff diffs original against modified line by line. It returns nil
// when the two have the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	ops := diffLines(splitLines(original), splitLines(modified))

	changed := false
	for _, op := range ops {
		if op.Kind != LineContext {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	d := &Diff{Path: path, Hunks: groupHunks(ops)}
	for _, op := range ops {
		switch op.Kind {
		case LineAdd:
			d.Additions++
		case LineRemove:
			d.Deletions++
		}
	}
	return d
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Styler decorates diff output.
type Styler interface {
	Header(s string) string
	HunkHeader(s string) string
	Added(s string) string
	Removed(s string) string
}

type plainStyler struct{}

func (plainStyler) Header(s string) string     { return s }
func (plainStyler) HunkHeader(s string) string { return s }
func (plainStyler) Added(s string) string      { return s }
func (plainStyler) Removed(s string) string    { return s }

// Write renders d in unified format to w. A nil styler writes plain text.
func (d *Diff) Write(w io.Writer, styler Styler) error {
	if !d.HasChanges() {
		return nil
	}
	if styler == nil {
		styler = plainStyler{}
	}

	path := strings.TrimPrefix(d.Path, "/")
	var b strings.Builder
	b.WriteString(styler.Header("--- a/"+path) + "\n")
	b.WriteString(styler.Header("+++ b/"+path) + "\n")
	for _, h := range d.Hunks {
		b.WriteString(styler.HunkHeader(h.Header()) + "\n")
		for _, l := range h.Lines {
			text := l.Kind.Prefix() + l.Content
			switch l.Kind {
			case LineAdd:
				text = styler.Added(text)
			case LineRemove:
				text = styler.Removed(text)
			case LineContext:
			}
			b.WriteString(text + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// String renders d in unified format without styling.
func (d *Diff) String() string {
	var b strings.Builder
	_ = d.Write(&b, nil)
	return b.String()
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffLines walks an LCS table to produce context, remove and add lines.
// Removals are emitted before additions within a changed run.
func diffLines(a, b []string) []Line {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var ops []Line
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			ops = append(ops, Line{Kind: LineContext, Content: a[i]})
			i++
			j++
		case i < n && (j == m || lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, Line{Kind: LineRemove, Content: a[i]})
			i++
		default:
			ops = append(ops, Line{Kind: LineAdd, Content: b[j]})
			j++
		}
	}
	return ops
}

// groupHunks splits ops into hunks, joining changes separated by no more
// than twice the context width.
func groupHunks(ops []Line) []Hunk {
	type span struct{ start, end int }

	var spans []span
	for idx := 0; idx < len(ops); {
		if ops[idx].Kind == LineContext {
			idx++
			continue
		}
		start := idx
		for idx < len(ops) && ops[idx].Kind != LineContext {
			idx++
		}
		if len(spans) > 0 && start-spans[len(spans)-1].end <= 2*contextLines {
			spans[len(spans)-1].end = idx
			continue
		}
		spans = append(spans, span{start, idx})
	}

	hunks := make([]Hunk, 0, len(spans))
	for _, s := range spans {
		from := max(s.start-contextLines, 0)
		to := min(s.end+contextLines, len(ops))

		h := Hunk{OriginalStart: 1, ModifiedStart: 1}
		for _, op := range ops[:from] {
			if op.Kind != LineAdd {
				h.OriginalStart++
			}
			if op.Kind != LineRemove {
				h.ModifiedStart++
			}
		}
		for _, op := range ops[from:to] {
			if op.Kind != LineAdd {
				h.OriginalCount++
			}
			if op.Kind != LineRemove {
				h.ModifiedCount++
			}
			h.Lines = append(h.Lines, op)
		}
		hunks = append(hunks, h)
	}
	return hunks
}
