package content

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

// Heading case styles.
const (
	styleTitle    = "title"
	styleSentence = "sentence"
)

// minorWords stay lower case inside a title.
var minorWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"and": true, "but": true, "or": true, "nor": true, "for": true, "so": true, "yet": true,
	"as": true, "at": true, "by": true, "in": true, "of": true, "off": true, "on": true,
	"per": true, "to": true, "up": true, "via": true, "vs": true, "with": true, "from": true, "into": true,
}

// HeadingCaseRule checks heading capitalisation.
type HeadingCaseRule struct {
	lint.BaseRule

	style    string
	maxLevel int
}

// NewHeadingCaseRule creates CONTENT004. Options: style (title or
// sentence), max_level.
func NewHeadingCaseRule(cfg *config.Config) (*HeadingCaseRule, error) {
	opts := cfg.Options("CONTENT004")
	style := opts.OneOf("style", styleTitle, styleTitle, styleSentence)
	maxLevel := opts.PositiveInt("max_level", 6)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &HeadingCaseRule{
		BaseRule: lint.NewBaseRule(
			"CONTENT004",
			"heading-case",
			"Headings should use a consistent capitalisation style",
			lint.StableMetadata(lint.CategoryContent, "0.1.0"),
		),
		style:    style,
		maxLevel: maxLevel,
	}, nil
}

// CheckAST looks at the words of each heading's text nodes; code spans
// and link targets are not words. Words with inner capitals, digits, or
// punctuation are left as written.
func (r *HeadingCaseRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	// Casers keep state, so each check gets its own.
	title := cases.Title(language.English, cases.NoLower)

	var violations []lint.Violation
	for _, heading := range lint.Headings(root) {
		if lint.HeadingLevel(heading) > r.maxLevel {
			continue
		}

		words := headingWords(heading)
		if len(words) == 0 {
			continue
		}

		want, ok := r.expected(title, words)
		if ok {
			continue
		}
		msg := fmt.Sprintf("Heading should be in %s case: %q", r.style, want)
		violations = append(violations, r.AtNode(doc, heading, msg).Build())
	}

	return violations, nil
}

// expected returns the heading as it should read and whether it already
// does.
func (r *HeadingCaseRule) expected(title cases.Caser, words []string) (string, bool) {
	out := make([]string, len(words))
	ok := true

	for i, w := range words {
		out[i] = w
		if !plainWord(w) {
			continue
		}

		first, last := i == 0, i == len(words)-1
		var want string
		switch {
		case first:
			want = title.String(w)
		case r.style == styleSentence:
			continue
		case minorWords[strings.ToLower(w)] && !last:
			continue
		default:
			want = title.String(w)
		}

		if want != w {
			out[i] = want
			ok = false
		}
	}

	return strings.Join(out, " "), ok
}

// plainWord reports whether w is letters only with no capital after the
// first, so "iOS", "GitHub", "v2" and "API" are skipped.
func plainWord(w string) bool {
	first, size := utf8.DecodeRuneInString(w)
	if !unicode.IsLetter(first) {
		return false
	}
	for _, r := range w[size:] {
		if !unicode.IsLetter(r) || unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// headingWords splits the text nodes of a heading into words.
func headingWords(heading *mdast.Node) []string {
	var words []string
	_ = mdast.Walk(heading, func(n *mdast.Node) error {
		if n.Kind == mdast.NodeText && n.Inline != nil {
			words = append(words, strings.Fields(string(n.Inline.Text))...)
		}
		return nil
	})
	return words
}
