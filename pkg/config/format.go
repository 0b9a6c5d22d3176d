package config

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "no-trailing-spaces"
	RuleFormatID       RuleFormat = "id"       // "MD009"
	RuleFormatCombined RuleFormat = "combined" // "MD009/no-trailing-spaces"
)

// FormatRuleID formats a rule identifier based on the given format.
// Falls back to ID if name is empty.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatName:
		return ruleName
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleID + "/" + ruleName
	}
}
