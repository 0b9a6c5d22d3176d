package mdbook

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// DuplicateTitlesRule checks that chapters have distinct titles.
type DuplicateTitlesRule struct {
	lint.BaseRule
}

// NewDuplicateTitlesRule creates MDBOOK004.
func NewDuplicateTitlesRule() *DuplicateTitlesRule {
	return &DuplicateTitlesRule{
		BaseRule: lint.NewBaseRule(
			"MDBOOK004",
			"mdbook-duplicate-titles",
			"Chapters should not share a title",
			lint.StableMetadata(lint.CategoryMdBook, "0.1.0"),
		),
	}
}

type titled struct {
	doc   *document.Document
	title string
	line  int
	col   int
}

// CheckCollection compares the first level-one heading of each document,
// ignoring case and spacing. Each document sharing a title gets one
// violation naming the others.
func (r *DuplicateTitlesRule) CheckCollection(docs []*document.Document) ([]lint.CollectionViolation, error) {
	fold := cases.Fold()

	var order []string
	groups := make(map[string][]titled)
	for _, doc := range docs {
		if IsSummary(doc) {
			continue
		}
		t, ok := chapterTitle(doc)
		if !ok {
			continue
		}
		key := fold.String(strings.Join(strings.Fields(t.title), " "))
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}

	var out []lint.CollectionViolation
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		for i, t := range group {
			var others []string
			for j, o := range group {
				if i != j {
					others = append(others, fmt.Sprintf("%s:%d", o.doc.Path, o.line))
				}
			}
			msg := fmt.Sprintf("Chapter title %q is also used by %s", t.title, strings.Join(others, ", "))
			out = append(out, lint.CollectionViolation{
				Path:      t.doc.Path,
				Violation: r.At(t.line, t.col, msg).Build(),
			})
		}
	}

	return out, nil
}

func chapterTitle(doc *document.Document) (titled, bool) {
	root := doc.ParseAST()
	heading := mdast.FindFirst(root, func(n *mdast.Node) bool {
		return lint.HeadingLevel(n) == 1
	})
	title := lint.HeadingText(doc, heading)
	if title == "" {
		return titled{}, false
	}
	line, col, _ := doc.NodePosition(heading)
	return titled{doc: doc, title: title, line: line, col: col}, true
}
