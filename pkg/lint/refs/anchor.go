package refs

import (
	"strconv"
	"strings"
	"unicode"
)

// AnchorSource indicates the origin of an anchor.
type AnchorSource int

const (
	// AnchorFromHeading is generated from a Markdown heading.
	AnchorFromHeading AnchorSource = iota

	// AnchorFromHTMLID is from an HTML element's id attribute.
	AnchorFromHTMLID

	// AnchorFromHTMLName is from an HTML anchor's name attribute.
	AnchorFromHTMLName
)

// Anchor is a fragment target within a document.
type Anchor struct {
	ID     string
	Source AnchorSource

	// Line is the 1-based line of the heading or HTML element.
	Line int

	// Text is the rendered heading text; empty for HTML anchors.
	Text string
}

// AnchorMap provides anchor lookup.
type AnchorMap struct {
	anchors    map[string][]*Anchor
	order      []string
	seenCounts map[string]int
}

// NewAnchorMap creates an empty AnchorMap.
func NewAnchorMap() *AnchorMap {
	return &AnchorMap{
		anchors:    make(map[string][]*Anchor),
		seenCounts: make(map[string]int),
	}
}

// Add adds an anchor to the map.
func (m *AnchorMap) Add(anchor *Anchor) {
	if _, ok := m.anchors[anchor.ID]; !ok {
		m.order = append(m.order, anchor.ID)
	}
	m.anchors[anchor.ID] = append(m.anchors[anchor.ID], anchor)
}

// AddFromHeading generates and adds the anchor mdBook assigns to a heading.
// Returns the generated anchor ID.
func (m *AnchorMap) AddFromHeading(text string, line int) string {
	id := m.GenerateAnchor(text)
	m.Add(&Anchor{
		ID:     id,
		Source: AnchorFromHeading,
		Line:   line,
		Text:   text,
	})
	return id
}

// GenerateAnchor converts heading text to an anchor ID. Repeated headings
// get "-1", "-2", ... suffixes in document order.
func (m *AnchorMap) GenerateAnchor(text string) string {
	base := HeadingID(text)

	count := m.seenCounts[base]
	m.seenCounts[base] = count + 1

	if count == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}

// HeadingID converts heading text to the ID mdBook renders for it: letters,
// digits, underscores, and hyphens are kept and lower-cased; whitespace
// becomes a hyphen; everything else is dropped.
func HeadingID(text string) string {
	var buf strings.Builder
	buf.Grow(len(text))

	for _, ch := range strings.TrimSpace(text) {
		switch {
		case unicode.IsLetter(ch) || unicode.IsNumber(ch) || ch == '_' || ch == '-':
			buf.WriteString(strings.ToLower(string(ch)))
		case unicode.IsSpace(ch):
			buf.WriteByte('-')
		default:
		}
	}
	return buf.String()
}

// Has returns true if the anchor ID exists.
func (m *AnchorMap) Has(id string) bool {
	_, ok := m.anchors[id]
	return ok
}

// Lookup returns the first anchor with the given ID, or nil.
func (m *AnchorMap) Lookup(id string) *Anchor {
	anchors := m.anchors[id]
	if len(anchors) == 0 {
		return nil
	}
	return anchors[0]
}

// All returns every anchor, grouped by ID in first-seen order.
func (m *AnchorMap) All() []*Anchor {
	all := make([]*Anchor, 0, len(m.order))
	for _, id := range m.order {
		all = append(all, m.anchors[id]...)
	}
	return all
}

// Count returns the number of unique anchor IDs.
func (m *AnchorMap) Count() int {
	return len(m.anchors)
}
