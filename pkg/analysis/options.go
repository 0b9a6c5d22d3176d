package analysis

import "fmt"

// SortField specifies how to order the per-rule and per-file views.
type SortField string

const (
	// SortByCount orders by issue count.
	SortByCount SortField = "count"
	// SortByAlpha orders by rule ID or path, ascending.
	SortByAlpha SortField = "alpha"
	// SortBySeverity puts entries with the most errors first.
	SortBySeverity SortField = "severity"
)

// ParseSortField parses a sort field name. The empty string means count.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortByCount, nil
	}
	f := SortField(s)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown sort field %q; valid: count, alpha, severity", s)
	}
	return f, nil
}

// IsValid returns true if the sort field is known.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	// IncludeByFile computes the per-file view.
	IncludeByFile bool

	// IncludeByRule computes the per-rule view.
	IncludeByRule bool

	// SortBy orders ByFile and ByRule.
	SortBy SortField

	// SortDesc reverses count ordering so the largest come first.
	SortDesc bool
}

// DefaultOptions computes both views, largest counts first.
func DefaultOptions() Options {
	return Options{
		IncludeByFile: true,
		IncludeByRule: true,
		SortBy:        SortByCount,
		SortDesc:      true,
	}
}
