package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an edit that cannot apply to the content.
type ValidationError struct {
	RuleID  string
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	if e.RuleID != "" {
		return fmt.Sprintf("invalid fix from %s [%d:%d]: %s", e.RuleID, e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
	}
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ValidateEdits checks that every edit has a valid range for contentLen.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{RuleID: edit.RuleID, Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{RuleID: edit.RuleID, Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				RuleID:  edit.RuleID,
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		return cmp.Or(cmp.Compare(a.StartOffset, b.StartOffset), cmp.Compare(a.EndOffset, b.EndOffset))
	})
}

// Resolve drops edits that overlap an earlier one. Overlapping deletions
// are merged into one deletion covering both ranges instead. Edits must be
// sorted. It returns the edits to apply, the ones skipped and how many
// deletions were merged.
func Resolve(edits []TextEdit) ([]TextEdit, []TextEdit, int) {
	if len(edits) == 0 {
		return nil, nil, 0
	}

	var (
		accepted []TextEdit
		skipped  []TextEdit
		merged   int
	)

	current := edits[0]
	for _, edit := range edits[1:] {
		switch {
		case edit.StartOffset >= current.EndOffset && !(edit.StartOffset == current.StartOffset && edit.EndOffset == current.EndOffset):
			accepted = append(accepted, current)
			current = edit
		case current.IsDeletion() && edit.IsDeletion():
			current.EndOffset = max(current.EndOffset, edit.EndOffset)
			merged++
		default:
			skipped = append(skipped, edit)
		}
	}
	accepted = append(accepted, current)

	return accepted, skipped, merged
}
