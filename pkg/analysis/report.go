package analysis

// Report holds aggregate views of one run.
type Report struct {
	ByFile []FileAnalysis `json:"byFile,omitempty"`
	ByRule []RuleAnalysis `json:"byRule,omitempty"`
	Totals Totals         `json:"summary"`
}

// Totals are counts over the whole run.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Fixable         int `json:"fixable"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if any issue has error severity.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// counts is the severity breakdown shared by the file and rule views.
type counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// FileAnalysis aggregates one file's violations.
type FileAnalysis struct {
	Path string `json:"path"`
	counts
	Rules []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates one rule's violations across files.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	counts
	Fixable bool     `json:"fixable"`
	Files   []string `json:"files,omitempty"`
}
