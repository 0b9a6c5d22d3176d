package mdbook

import (
	"regexp"
	"strings"
)

// directivePattern matches {{#name args}} preprocessor directives.
var directivePattern = regexp.MustCompile(`\{\{#([A-Za-z_][A-Za-z0-9_]*)((?:[^}]|\}[^}])*)\}\}`)

// directive is one {{#name args}} occurrence on a line.
type directive struct {
	Name string
	Args string

	// Column is the 1-based column of the opening braces.
	Column int
}

// findDirectives returns the unescaped directives on line. A directive
// preceded by a backslash is rendered literally by mdBook.
func findDirectives(line string) []directive {
	var found []directive
	for _, m := range directivePattern.FindAllStringSubmatchIndex(line, -1) {
		if m[0] > 0 && line[m[0]-1] == '\\' {
			continue
		}
		found = append(found, directive{
			Name:   line[m[2]:m[3]],
			Args:   strings.TrimSpace(line[m[4]:m[5]]),
			Column: m[0] + 1,
		})
	}
	return found
}

// includePath returns the file part of an include argument, without any
// ":anchor" or ":start:end" suffix.
func includePath(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}
	file, _, _ := strings.Cut(fields[0], ":")
	return file
}

// includeTarget returns the file an include-only code block pulls in. The
// block must hold nothing but a single include directive.
func includeTarget(content []byte) (string, bool) {
	text := strings.TrimSpace(string(content))
	if strings.Contains(text, "\n") {
		return "", false
	}
	found := findDirectives(text)
	if len(found) != 1 || found[0].Column != 1 || !strings.HasSuffix(text, "}}") {
		return "", false
	}
	switch found[0].Name {
	case "include", "rustdoc_include", "playground":
	default:
		return "", false
	}
	file := includePath(found[0].Args)
	return file, file != ""
}
