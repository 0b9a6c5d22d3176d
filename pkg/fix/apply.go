package fix

import (
	"bytes"

	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// ApplyEdits applies sorted, non-overlapping edits to content and returns
// the new content. content is not modified.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// Preview is the outcome of applying a document's fix suggestions in memory.
type Preview struct {
	// Original and Modified are the document content before and after.
	Original []byte
	Modified []byte

	// Applied are the edits that made it into Modified.
	Applied []TextEdit

	// Skipped overlapped an earlier edit and were left out.
	Skipped []TextEdit

	// Merged counts overlapping deletions folded into one.
	Merged int

	// Invalid holds suggestions that did not map onto the document.
	Invalid []error
}

// Diff renders the preview as a unified diff, or nil when nothing changes.
func (p *Preview) Diff(path string) *Diff {
	return GenerateDiff(path, p.Original, p.Modified)
}

// PreviewFixes applies every fix suggestion in violations to doc in memory.
// Overlapping suggestions are resolved with Resolve; the earliest wins.
func PreviewFixes(doc *document.Document, violations []lint.Violation) *Preview {
	edits, invalid := FromViolations(doc, violations)

	content := doc.Bytes()
	valid := edits[:0:0]
	for _, e := range edits {
		if err := ValidateEdits([]TextEdit{e}, len(content)); err != nil {
			invalid = append(invalid, err)
			continue
		}
		valid = append(valid, e)
	}

	SortEdits(valid)
	applied, skipped, merged := Resolve(valid)

	return &Preview{
		Original: content,
		Modified: ApplyEdits(content, applied),
		Applied:  applied,
		Skipped:  skipped,
		Merged:   merged,
		Invalid:  invalid,
	}
}
