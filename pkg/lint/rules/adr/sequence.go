package adr

import (
	"cmp"
	"fmt"
	"path"
	"path/filepath"
	"slices"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

// SequentialNumberingRule checks that records in a directory are numbered
// without duplicates or gaps.
type SequentialNumberingRule struct {
	lint.BaseRule
	settings

	allowGaps bool
}

// NewSequentialNumberingRule creates ADR010. Option: allow_gaps.
func NewSequentialNumberingRule(cfg *config.Config) (*SequentialNumberingRule, error) {
	opts := newOptionReader(cfg, "ADR010")
	s := opts.settings()
	allowGaps := opts.Bool("allow_gaps", false)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &SequentialNumberingRule{
		BaseRule: lint.NewBaseRule(
			"ADR010",
			"adr-sequential-numbering",
			"ADR numbers should be unique and consecutive",
			lint.StableMetadata(lint.CategoryStructure, "0.1.0"),
		),
		settings:  s,
		allowGaps: allowGaps,
	}, nil
}

// CheckCollection groups records by directory. A duplicate is reported on
// every record after the first holding the number; a gap is reported on
// the record that follows it.
func (r *SequentialNumberingRule) CheckCollection(docs []*document.Document) ([]lint.CollectionViolation, error) {
	var dirs []string
	byDir := make(map[string][]record)
	for _, doc := range docs {
		rec, ok := r.recordOf(doc)
		if !ok {
			continue
		}
		dir := path.Dir(filepath.ToSlash(doc.Path))
		if _, seen := byDir[dir]; !seen {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], rec)
	}

	var out []lint.CollectionViolation
	for _, dir := range dirs {
		records := byDir[dir]
		slices.SortStableFunc(records, func(a, b record) int {
			return cmp.Compare(a.number, b.number)
		})

		for i, rec := range records {
			if i == 0 {
				continue
			}
			prev := records[i-1]

			var msg string
			switch {
			case rec.number == prev.number:
				msg = fmt.Sprintf("ADR number %d is also used by %s", rec.number, prev.doc.Path)
			case rec.number > prev.number+1 && !r.allowGaps:
				msg = fmt.Sprintf("ADR numbers skip from %d to %d", prev.number, rec.number)
			default:
				continue
			}
			out = append(out, lint.CollectionViolation{
				Path:      rec.doc.Path,
				Violation: r.At(1, 1, msg).Build(),
			})
		}
	}

	return out, nil
}
