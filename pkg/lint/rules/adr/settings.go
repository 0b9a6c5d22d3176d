package adr

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
)

// SharedSection holds options every ADR rule reads. A rule's own table
// overrides it key by key.
const SharedSection = "ADR"

// DefaultGlob selects numbered records under the usual ADR directories.
const DefaultGlob = "**/{adr,adrs,decisions}/*.md"

// Record formats.
const (
	FormatNygard = "nygard"
	FormatMADR   = "madr"
)

var fileNumber = regexp.MustCompile(`^(\d+)[-_ ]`)

// settings are the options shared by the ADR rules.
type settings struct {
	match  glob.Glob
	format string
}

// optionReader reads a key from the rule's table, falling back to the
// shared one.
type optionReader struct {
	rule   *config.Options
	shared *config.Options
}

func newOptionReader(cfg *config.Config, id string) optionReader {
	return optionReader{rule: cfg.Options(id), shared: cfg.Options(SharedSection)}
}

func (o optionReader) pick(key string) *config.Options {
	if o.rule.Has(key) {
		return o.rule
	}
	return o.shared
}

func (o optionReader) String(key, def string) string {
	return o.pick(key).String(key, def)
}

func (o optionReader) OneOf(key, def string, allowed ...string) string {
	return o.pick(key).OneOf(key, def, allowed...)
}

func (o optionReader) StringSlice(key string, def []string) []string {
	return o.pick(key).StringSlice(key, def)
}

func (o optionReader) Bool(key string, def bool) bool {
	return o.pick(key).Bool(key, def)
}

func (o optionReader) Err() error {
	if err := o.shared.Err(); err != nil {
		return err
	}
	return o.rule.Err()
}

// settings reads adr_glob and format.
func (o optionReader) settings() settings {
	pattern := o.String("adr_glob", DefaultGlob)
	format := o.OneOf("format", FormatNygard, FormatNygard, FormatMADR)

	match, err := glob.Compile(pattern, '/')
	if err != nil {
		o.pick("adr_glob").Reject("adr_glob", fmt.Errorf("pattern %q: %w", pattern, err))
		match = glob.MustCompile(DefaultGlob, '/')
	}
	return settings{match: match, format: format}
}

// record is an ADR document and its number from the file name.
type record struct {
	doc    *document.Document
	number int
}

// recordOf reports whether doc is an ADR: its path matches the glob and
// its file name starts with a number.
func (s settings) recordOf(doc *document.Document) (record, bool) {
	if doc.Path == "" {
		return record{}, false
	}
	slash := "/" + strings.TrimPrefix(path.Clean(filepath.ToSlash(doc.Path)), "/")
	if !s.match.Match(slash) {
		return record{}, false
	}

	m := fileNumber.FindStringSubmatch(doc.FileName())
	if m == nil {
		return record{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return record{}, false
	}
	return record{doc: doc, number: n}, true
}
