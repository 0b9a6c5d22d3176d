package adr

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// field is a metadata value found in a record, and where.
type field struct {
	Value  string
	Line   int
	Column int
}

// fieldLine matches "Status: Accepted", "**Date:** 2024-01-02" and
// "* Date: 2024-01-02".
func fieldLine(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*(?:[-*+]\s+)?[*_]{0,2}` + regexp.QuoteMeta(name) + `[*_]{0,2}\s*:\s*[*_]{0,2}\s*(.*?)\s*$`)
}

var (
	statusLine = fieldLine("status")
	dateLine   = fieldLine("date")
)

// lookup finds a field in front matter, then as a "Name: value" line,
// then as the first paragraph of a section with that name.
func lookup(doc *document.Document, root *mdast.Node, key string, line *regexp.Regexp) (field, bool) {
	if values, err := doc.FrontMatter(); err == nil {
		if v, ok := values[key]; ok && v != nil {
			return field{Value: frontMatterString(v), Line: frontMatterLine(doc, key), Column: 1}, true
		}
	}

	for n := doc.BodyStartLine(); n <= doc.LineCount(); n++ {
		if m := line.FindStringSubmatchIndex(doc.Line(n)); m != nil {
			value := strings.Trim(doc.Line(n)[m[2]:m[3]], "*_ ")
			if value != "" {
				return field{Value: value, Line: n, Column: m[2] + 1}, true
			}
		}
	}

	for _, section := range lint.SectionsOf(root) {
		if !strings.EqualFold(lint.HeadingText(doc, section.Heading), key) {
			continue
		}
		for _, block := range section.Blocks {
			if block.Kind != mdast.NodeParagraph {
				continue
			}
			text := strings.TrimSpace(doc.NodeText(block))
			if text == "" {
				continue
			}
			line, col, _ := doc.NodePosition(block)
			return field{Value: text, Line: line, Column: col}, true
		}
	}

	return field{}, false
}

// frontMatterString renders a decoded YAML value. Unquoted dates decode
// as time.Time.
func frontMatterString(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.DateOnly)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// frontMatterLine returns the line of key in the front matter block.
func frontMatterLine(doc *document.Document, key string) int {
	prefix := key + ":"
	for n := 2; n < doc.BodyStartLine(); n++ {
		if strings.HasPrefix(doc.Line(n), prefix) {
			return n
		}
	}
	return 1
}

// title returns the record's first level-one heading.
func title(doc *document.Document, root *mdast.Node) (*mdast.Node, string) {
	heading := mdast.FindFirst(root, func(n *mdast.Node) bool {
		return lint.HeadingLevel(n) == 1
	})
	return heading, lint.HeadingText(doc, heading)
}
