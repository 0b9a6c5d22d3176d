// Package goldmark parses Markdown with goldmark and maps the result onto
// an mdast tree whose nodes carry byte spans into the original content.
package goldmark

import (
	"github.com/yaklabco/mdbooklint/pkg/mdast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser maps goldmark output onto mdast trees. A Parser holds no per-parse
// state and may be shared between goroutines.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "gfm", which matches what mdBook renders.
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into an mdast tree rooted at a
// NodeDocument spanning the whole input. Parsing is a pure function of
// content and never fails; malformed Markdown still yields a tree.
func (p *Parser) Parse(content []byte) *mdast.Node {
	reader := text.NewReader(content)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	m := newMapper(content)
	return m.mapDocument(gmDoc)
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to GFM.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts,
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
			),
		)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}
