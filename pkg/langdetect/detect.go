// Package langdetect guesses the language of a code snippet so that lint
// rules can suggest an info string for unlabelled code fences. Results are
// the lower-case tags mdBook's highlighter accepts.
package langdetect

import (
	"bytes"
	"regexp"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined with confidence.
const Text = "text"

// Tags for the languages recognised by pattern.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langTOML       = "toml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// classifierCandidates limits the go-enry classifier to languages that
// commonly appear in books.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "TOML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// enryTags maps go-enry language names whose fence tag is not simply the
// lower-cased name.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryTags = map[string]string{
	"Shell":      langBash,
	"C++":        "cpp",
	"C#":         "csharp",
	"Emacs Lisp": "elisp",
	"Vim Script": "vim",
}

// matcher recognises a language from distinctive source patterns.
type matcher struct {
	lang  string
	match func(content, trimmed []byte) bool
}

// matchers run in order; earlier entries are more specific.
//
//nolint:gochecknoglobals // Read-only matcher table.
var matchers = []matcher{
	{langGo, isGo},
	{langPython, isPython},
	{langHTML, isHTML},
	{langTOML, isTOML},
	{langJSON, isJSON},
	{langDockerfile, isDockerfile},
	{langSQL, isSQL},
	{langRust, isRust},
	{langJavaScript, isJavaScript},
	{langYAML, isYAML},
}

// Detect returns the fence tag for content, or Text when unsure.
// Shebangs win, then distinctive patterns, then the go-enry classifier
// when it reports a confident result.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Normalize(lang)
	}

	trimmed := bytes.TrimSpace(content)
	for _, m := range matchers {
		if m.match(content, trimmed) {
			return m.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return Normalize(lang)
	}

	return Text
}

// Suggest is Detect for fix suggestions: ok is false when nothing better
// than Text was found.
func Suggest(content []byte) (string, bool) {
	lang := Detect(content)
	return lang, lang != Text
}

// FromFilename returns the fence tag for a file by its extension, as for
// a chapter that includes source with {{#include}}. Extensions shared by
// several languages resolve to the first of classifierCandidates.
func FromFilename(name string) (string, bool) {
	langs := enry.GetLanguagesByExtension(name, nil, nil)
	switch len(langs) {
	case 0:
		return "", false
	case 1:
		return Normalize(langs[0]), true
	}

	for _, candidate := range classifierCandidates {
		if slices.Contains(langs, candidate) {
			return Normalize(candidate), true
		}
	}
	return "", false
}

// Normalize converts a go-enry language name to a fence tag.
func Normalize(lang string) string {
	if tag, ok := enryTags[lang]; ok {
		return tag
	}
	return strings.ToLower(lang)
}

// IsKnown reports whether tag names a language go-enry recognises, by name
// or alias.
func IsKnown(tag string) bool {
	if tag == "" {
		return false
	}
	if strings.EqualFold(tag, Text) || strings.EqualFold(tag, "plaintext") {
		return true
	}
	_, ok := enry.GetLanguageByAlias(tag)
	return ok
}

func isGo(_, trimmed []byte) bool {
	return bytes.HasPrefix(trimmed, []byte("package "))
}

func isPython(content, _ []byte) bool {
	src := string(content)
	if strings.Contains(src, "def ") && strings.Contains(src, "):") {
		return true
	}
	// Go imports use "import (".
	if strings.Contains(src, "import ") && !strings.Contains(src, "import (") {
		if strings.Contains(src, "from ") || strings.HasPrefix(strings.TrimSpace(src), "import ") {
			return true
		}
	}
	return strings.Contains(src, "__name__") || strings.Contains(src, "__main__")
}

func isHTML(_, trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

var (
	tomlTable = regexp.MustCompile(`^\[\[?[A-Za-z0-9_.\-"]+\]\]?$`)
	tomlPair  = regexp.MustCompile(`^[A-Za-z0-9_.\-"]+\s*=\s*\S`)
)

// isTOML wants a table header and at least one key = value pair, as in
// book.toml snippets.
func isTOML(content, _ []byte) bool {
	var tables, pairs int
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		switch {
		case tomlTable.Match(line):
			tables++
		case tomlPair.Match(line):
			pairs++
		}
	}
	return tables > 0 && pairs > 0
}

func isJSON(_, trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

func isDockerfile(content, trimmed []byte) bool {
	return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY ")))
}

func isSQL(_, trimmed []byte) bool {
	upper := strings.ToUpper(string(trimmed))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, verb) {
			return true
		}
	}
	return false
}

func isRust(content, _ []byte) bool {
	src := string(content)
	return strings.Contains(src, "fn main()") ||
		strings.Contains(src, "println!") ||
		strings.Contains(src, "let mut ")
}

func isJavaScript(content, _ []byte) bool {
	src := string(content)
	return strings.Contains(src, "=>") ||
		strings.Contains(src, "const ") ||
		strings.Contains(src, "let ") ||
		strings.Contains(src, "console.log")
}

// isYAML counts key: value pairs and root list items.
func isYAML(content, _ []byte) bool {
	count := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}
