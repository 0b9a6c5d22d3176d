package document

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// frontMatter locates a leading YAML block delimited by "---" lines.
type frontMatter struct {
	// end is the byte offset just past the closing delimiter line; 0 if none.
	end int

	// lines is the number of lines occupied, delimiters included.
	lines int

	body []byte
}

func detectFrontMatter(raw []byte) frontMatter {
	first, rest, ok := cutLine(raw)
	if !ok || string(bytes.TrimRight(first, "\r")) != "---" {
		return frontMatter{}
	}

	offset := len(raw) - len(rest)
	bodyStart := offset
	lines := 1
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = cutLine(rest)
		lines++
		trimmed := string(bytes.TrimRight(line, "\r"))
		if trimmed == "---" || trimmed == "..." {
			return frontMatter{
				end:   len(raw) - len(rest),
				lines: lines,
				body:  raw[bodyStart:offset],
			}
		}
		offset = len(raw) - len(rest)
	}
	return frontMatter{}
}

// cutLine splits off the first line; ok is false when no newline is present.
func cutLine(b []byte) ([]byte, []byte, bool) {
	line, rest, found := bytes.Cut(b, []byte{'\n'})
	return line, rest, found
}

// HasFrontMatter reports whether the document opens with a YAML front matter block.
func (d *Document) HasFrontMatter() bool {
	return d.front.end > 0
}

// BodyStartLine returns the first line after any front matter (1 when there is none).
func (d *Document) BodyStartLine() int {
	return d.front.lines + 1
}

// FrontMatter decodes the leading YAML block. It returns nil without error
// when the document has none.
func (d *Document) FrontMatter() (map[string]any, error) {
	if d.front.end == 0 {
		return nil, nil //nolint:nilnil // absence is not an error
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(d.front.body, &values); err != nil {
		return nil, fmt.Errorf("parse front matter in %s: %w", d.Path, err)
	}
	return values, nil
}
