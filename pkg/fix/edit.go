// Package fix turns the fix suggestions attached to violations into byte
// edits, previews their combined effect in memory and renders the result as
// a unified diff. Nothing here writes files.
package fix

import (
	"fmt"

	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string

	// RuleID names the rule whose suggestion produced the edit.
	RuleID string
}

// IsDeletion reports whether the edit only removes text.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == ""
}

// FromFix converts a fix suggestion on doc into a byte edit.
func FromFix(doc *document.Document, ruleID string, f *lint.Fix) (TextEdit, error) {
	start, ok := doc.PositionOffset(f.Start.Line, f.Start.Column)
	if !ok {
		return TextEdit{}, &ValidationError{RuleID: ruleID, Message: fmt.Sprintf("start %d:%d is outside the document", f.Start.Line, f.Start.Column)}
	}
	end, ok := doc.PositionOffset(f.End.Line, f.End.Column)
	if !ok {
		return TextEdit{}, &ValidationError{RuleID: ruleID, Message: fmt.Sprintf("end %d:%d is outside the document", f.End.Line, f.End.Column)}
	}

	edit := TextEdit{StartOffset: start, EndOffset: end, RuleID: ruleID}
	if f.Replacement != nil {
		edit.NewText = *f.Replacement
	}
	return edit, nil
}

// FromViolations collects an edit for every violation carrying a fix.
// Suggestions that do not map onto doc are returned as invalid rather than
// failing the whole set.
func FromViolations(doc *document.Document, violations []lint.Violation) ([]TextEdit, []error) {
	var (
		edits   []TextEdit
		invalid []error
	)
	for i := range violations {
		v := &violations[i]
		if !v.HasFix() {
			continue
		}
		edit, err := FromFix(doc, v.RuleID, v.Fix)
		if err != nil {
			invalid = append(invalid, err)
			continue
		}
		edits = append(edits, edit)
	}
	return edits, invalid
}
