package adr

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
	"github.com/yaklabco/mdbooklint/pkg/mdast"
)

var numberedTitle = regexp.MustCompile(`^(\d+)\.\s+\S`)

// TitleFormatRule checks the record title.
type TitleFormatRule struct {
	lint.BaseRule
	settings
}

// NewTitleFormatRule creates ADR001.
func NewTitleFormatRule(cfg *config.Config) (*TitleFormatRule, error) {
	opts := newOptionReader(cfg, "ADR001")
	s := opts.settings()
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &TitleFormatRule{
		BaseRule: lint.NewBaseRule(
			"ADR001",
			"adr-title-format",
			"ADR titles should be a level-one heading, numbered like the file in Nygard format",
			lint.StableMetadata(lint.CategoryStructure, "0.1.0"),
		),
		settings: s,
	}, nil
}

// CheckAST requires a title. Nygard records must title themselves
// "N. Title" with N equal to the file number.
func (r *TitleFormatRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	rec, ok := r.recordOf(doc)
	if !ok {
		return nil, nil
	}

	heading, text := title(doc, root)
	if heading == nil || text == "" {
		return []lint.Violation{r.At(doc.BodyStartLine(), 1, "ADR has no level-one title").Build()}, nil
	}
	if r.format != FormatNygard {
		return nil, nil
	}

	m := numberedTitle.FindStringSubmatch(text)
	if m == nil {
		msg := fmt.Sprintf("Title should read \"%d. %s\"", rec.number, text)
		return []lint.Violation{r.AtNode(doc, heading, msg).Build()}, nil
	}
	if n, _ := strconv.Atoi(m[1]); n != rec.number {
		msg := fmt.Sprintf("Title number %d does not match file number %d", n, rec.number)
		return []lint.Violation{r.AtNode(doc, heading, msg).Build()}, nil
	}
	return nil, nil
}

// Section sets required by each format.
var defaultSections = map[string][]string{
	FormatNygard: {"Status", "Context", "Decision", "Consequences"},
	FormatMADR:   {"Context and Problem Statement", "Considered Options", "Decision Outcome"},
}

// RequiredSectionsRule checks that a record has its format's sections.
type RequiredSectionsRule struct {
	lint.BaseRule
	settings

	sections []string
}

// NewRequiredSectionsRule creates ADR002. Option: sections.
func NewRequiredSectionsRule(cfg *config.Config) (*RequiredSectionsRule, error) {
	opts := newOptionReader(cfg, "ADR002")
	s := opts.settings()
	sections := opts.StringSlice("sections", nil)
	if err := opts.Err(); err != nil {
		return nil, err
	}
	if sections == nil {
		sections = defaultSections[s.format]
	}

	return &RequiredSectionsRule{
		BaseRule: lint.NewBaseRule(
			"ADR002",
			"adr-required-sections",
			"ADRs should contain the sections their format requires",
			lint.StableMetadata(lint.CategoryStructure, "0.1.0"),
		),
		settings: s,
		sections: sections,
	}, nil
}

// CheckAST reports each missing section at the title. Heading text is
// compared without case.
func (r *RequiredSectionsRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	if _, ok := r.recordOf(doc); !ok {
		return nil, nil
	}

	present := make(map[string]bool)
	for _, heading := range lint.Headings(root) {
		if lint.HeadingLevel(heading) > 1 {
			present[strings.ToLower(lint.HeadingText(doc, heading))] = true
		}
	}

	line, col := doc.BodyStartLine(), 1
	if heading, _ := title(doc, root); heading != nil {
		line, col, _ = doc.NodePosition(heading)
	}

	var violations []lint.Violation
	for _, name := range r.sections {
		if !present[strings.ToLower(name)] {
			violations = append(violations, r.At(line, col, fmt.Sprintf("Missing required section %q", name)).Build())
		}
	}
	return violations, nil
}

// DateFormatRule checks the record date.
type DateFormatRule struct {
	lint.BaseRule
	settings

	required bool
}

// NewDateFormatRule creates ADR003. Option: required.
func NewDateFormatRule(cfg *config.Config) (*DateFormatRule, error) {
	opts := newOptionReader(cfg, "ADR003")
	s := opts.settings()
	required := opts.Bool("required", true)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	return &DateFormatRule{
		BaseRule: lint.NewBaseRule(
			"ADR003",
			"adr-date-format",
			"ADR dates should be written as YYYY-MM-DD",
			lint.StableMetadata(lint.CategoryContent, "0.1.0"),
		),
		settings: s,
		required: required,
	}, nil
}

// CheckAST reads the date from front matter or a "Date:" line.
func (r *DateFormatRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	if _, ok := r.recordOf(doc); !ok {
		return nil, nil
	}

	date, found := lookup(doc, root, "date", dateLine)
	if !found {
		if r.required {
			return []lint.Violation{r.At(doc.BodyStartLine(), 1, "ADR has no date").Build()}, nil
		}
		return nil, nil
	}

	if _, err := time.Parse(time.DateOnly, date.Value); err != nil {
		msg := fmt.Sprintf("Date %q is not in YYYY-MM-DD format", date.Value)
		return []lint.Violation{r.At(date.Line, date.Column, msg).Build()}, nil
	}
	return nil, nil
}

var defaultStatuses = []string{"proposed", "accepted", "rejected", "deprecated", "superseded"}

// StatusValueRule checks the record status.
type StatusValueRule struct {
	lint.BaseRule
	settings

	statuses []string
}

// NewStatusValueRule creates ADR004. Option: statuses.
func NewStatusValueRule(cfg *config.Config) (*StatusValueRule, error) {
	opts := newOptionReader(cfg, "ADR004")
	s := opts.settings()
	statuses := opts.StringSlice("statuses", defaultStatuses)
	if err := opts.Err(); err != nil {
		return nil, err
	}

	lower := make([]string, 0, len(statuses))
	for _, st := range statuses {
		lower = append(lower, strings.ToLower(st))
	}

	return &StatusValueRule{
		BaseRule: lint.NewBaseRule(
			"ADR004",
			"adr-status-value",
			"ADR status should be one of the known values",
			lint.StableMetadata(lint.CategoryContent, "0.1.0"),
		),
		settings: s,
		statuses: lower,
	}, nil
}

// CheckAST takes the first word of the status, so "Superseded by ADR 7"
// reads as superseded.
func (r *StatusValueRule) CheckAST(doc *document.Document, root *mdast.Node) ([]lint.Violation, error) {
	if _, ok := r.recordOf(doc); !ok {
		return nil, nil
	}

	status, found := lookup(doc, root, "status", statusLine)
	words := strings.Fields(status.Value)
	if !found || len(words) == 0 {
		return []lint.Violation{r.At(doc.BodyStartLine(), 1, "ADR has no status").Build()}, nil
	}

	word := strings.ToLower(strings.Trim(words[0], ".,;:!*_"))
	if !slices.Contains(r.statuses, word) {
		msg := fmt.Sprintf("Status %q is not one of %s", status.Value, strings.Join(r.statuses, ", "))
		return []lint.Violation{r.At(status.Line, status.Column, msg).Build()}, nil
	}
	return nil, nil
}
