package mdbook

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

var anchorName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IncludeDirectiveRule checks {{#include}} and related preprocessor
// directives.
type IncludeDirectiveRule struct {
	lint.BaseRule

	checkFiles bool
	exists     func(path string) bool
}

// NewIncludeDirectiveRule creates MDBOOK010. Option: check_files.
func NewIncludeDirectiveRule(cfg *config.Config) (*IncludeDirectiveRule, error) {
	opts := cfg.Options("MDBOOK010")
	checkFiles := opts.Bool("check_files", true)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &IncludeDirectiveRule{
		BaseRule: lint.NewBaseRule(
			"MDBOOK010",
			"mdbook-include-syntax",
			"mdBook preprocessor directives should be well formed",
			lint.StableMetadata(lint.CategoryMdBook, "0.1.0"),
		),
		checkFiles: checkFiles,
		exists:     fileExists,
	}, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Check is CheckWithAST without a tree.
func (r *IncludeDirectiveRule) Check(doc *document.Document) ([]lint.Violation, error) {
	return r.CheckWithAST(doc, nil)
}

// CheckWithAST scans raw lines, code blocks included, since directives are
// expanded before Markdown is parsed.
func (r *IncludeDirectiveRule) CheckWithAST(doc *document.Document, _ *mdast.Node) ([]lint.Violation, error) {
	var violations []lint.Violation

	for lineNum := doc.BodyStartLine(); lineNum <= doc.LineCount(); lineNum++ {
		line := doc.Line(lineNum)
		if !strings.Contains(line, "{{#") {
			continue
		}

		for _, d := range findDirectives(line) {
			if msg := r.checkDirective(doc, d); msg != "" {
				violations = append(violations, r.At(lineNum, d.Column, msg).Build())
			}
		}

		if col := unclosedDirective(line); col > 0 {
			violations = append(violations, r.At(lineNum, col, "Unclosed directive: missing \"}}\"").Build())
		}
	}

	return violations, nil
}

func (r *IncludeDirectiveRule) checkDirective(doc *document.Document, d directive) string {
	switch d.Name {
	case "include", "rustdoc_include", "playground", "template":
		file := includePath(d.Args)
		if file == "" {
			return fmt.Sprintf("{{#%s}} needs a file path", d.Name)
		}
		if d.Name != "template" {
			if msg := checkRange(d.Args); msg != "" {
				return msg
			}
		}
		if r.checkFiles && doc.Path != "" && !r.exists(filepath.Join(doc.Dir(), filepath.FromSlash(file))) {
			return fmt.Sprintf("Included file %q does not exist", file)
		}
		return ""
	case "title":
		if d.Args == "" {
			return "{{#title}} needs a title"
		}
		return ""
	case "playpen":
		return "{{#playpen}} is deprecated; use {{#playground}}"
	default:
		return fmt.Sprintf("Unknown directive {{#%s}}", d.Name)
	}
}

// checkRange validates the ":anchor" or ":start:end" suffix of an include
// path. Line numbers are 1-based and either bound may be omitted.
func checkRange(args string) string {
	spec := strings.Fields(args)[0]
	_, rest, found := strings.Cut(spec, ":")
	if !found {
		return ""
	}

	parts := strings.Split(rest, ":")
	switch len(parts) {
	case 1:
		if _, err := strconv.Atoi(parts[0]); err == nil {
			return checkLines(parts[0], "")
		}
		if !anchorName.MatchString(parts[0]) {
			return fmt.Sprintf("Invalid include anchor %q", parts[0])
		}
		return ""
	case 2:
		return checkLines(parts[0], parts[1])
	default:
		return fmt.Sprintf("Invalid include range %q", rest)
	}
}

func checkLines(start, end string) string {
	from, err := lineBound(start)
	if err != nil {
		return fmt.Sprintf("Invalid include line %q", start)
	}
	to, err := lineBound(end)
	if err != nil {
		return fmt.Sprintf("Invalid include line %q", end)
	}
	if from > 0 && to > 0 && from > to {
		return fmt.Sprintf("Include range starts after it ends (%d > %d)", from, to)
	}
	return ""
}

// lineBound parses an optional 1-based line number; "" yields 0.
func lineBound(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// unclosedDirective returns the column of a "{{#" with no closing "}}"
// after it, or 0.
func unclosedDirective(line string) int {
	idx := strings.LastIndex(line, "{{#")
	if idx < 0 || strings.Contains(line[idx:], "}}") {
		return 0
	}
	if idx > 0 && line[idx-1] == '\\' {
		return 0
	}
	return idx + 1
}
