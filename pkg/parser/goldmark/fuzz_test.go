package goldmark

import (
	"testing"

	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// FuzzParse fuzzes the parser and span mapping with random input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"#",
		"- list item",
		"-",
		"1. ordered item",
		"> blockquote",
		">",
		"```\ncode\n```",
		"```go\nfunc main() {}",
		"> ```\n> x\n",
		"*emphasis*",
		"**strong**",
		"`code`",
		"[link](url)",
		"[](url)",
		"![image](src)",
		"<https://example.com>",
		"---",
		"Title\n=====",
		"line1\r\nline2",
		"| a |\n|---|\n| b |",
		"{{#include file.rs:1:5}}",
		"[^1]\n\n[^1]: note",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	p := New(FlavorGFM)

	f.Fuzz(func(t *testing.T, data []byte) {
		root := p.Parse(data)
		if root == nil {
			t.Fatal("Parse returned nil")
		}
		if root.Span.StartOffset != 0 || root.Span.EndOffset != len(data) {
			t.Fatalf("document span = %+v, want [0,%d)", root.Span, len(data))
		}

		_ = mdast.Walk(root, func(n *mdast.Node) error {
			if !n.HasSource() {
				return nil
			}
			if n.Span.EndOffset > len(data) {
				t.Errorf("%s span %+v exceeds content length %d", n.Kind, n.Span, len(data))
			}
			return nil
		})
	})
}
