package lint

// Category groups rules by the aspect of a document they examine.
type Category uint8

const (
	CategoryStructure Category = iota
	CategoryFormatting
	CategoryContent
	CategoryLinks
	CategoryAccessibility
	CategoryMdBook
)

func (c Category) String() string {
	switch c {
	case CategoryStructure:
		return "structure"
	case CategoryFormatting:
		return "formatting"
	case CategoryContent:
		return "content"
	case CategoryLinks:
		return "links"
	case CategoryAccessibility:
		return "accessibility"
	case CategoryMdBook:
		return "mdbook"
	default:
		return "unknown"
	}
}

// Stability describes how settled a rule is.
type Stability uint8

const (
	StabilityStable Stability = iota
	StabilityExperimental
	StabilityDeprecated
	StabilityReserved
)

func (s Stability) String() string {
	switch s {
	case StabilityStable:
		return "stable"
	case StabilityExperimental:
		return "experimental"
	case StabilityDeprecated:
		return "deprecated"
	case StabilityReserved:
		return "reserved"
	default:
		return "unknown"
	}
}

// RuleMetadata records a rule's status and precedence.
type RuleMetadata struct {
	Deprecated       bool
	DeprecatedReason string

	// Replacement names the rule to use instead of a deprecated one.
	Replacement string

	Category     Category
	IntroducedIn string
	Stability    Stability

	// Overrides names a rule whose findings this rule supersedes when both
	// report the same position. Empty means none. It is consulted only by
	// Deduplicate.
	Overrides string
}

// StableMetadata returns metadata for a stable rule in category c.
func StableMetadata(c Category, introducedIn string) RuleMetadata {
	return RuleMetadata{
		Category:     c,
		IntroducedIn: introducedIn,
		Stability:    StabilityStable,
	}
}

// WithOverrides returns a copy of m that supersedes rule id.
func (m RuleMetadata) WithOverrides(id string) RuleMetadata {
	m.Overrides = id
	return m
}

// AsDeprecated returns a copy of m marked deprecated in favour of replacement.
func (m RuleMetadata) AsDeprecated(reason, replacement string) RuleMetadata {
	m.Deprecated = true
	m.DeprecatedReason = reason
	m.Replacement = replacement
	m.Stability = StabilityDeprecated
	return m
}
