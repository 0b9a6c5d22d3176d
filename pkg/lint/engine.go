package lint

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
)

// ErrUnknownDocument is wrapped in a RuleError when a collection rule
// attributes a finding to a path outside the collection.
var ErrUnknownDocument = errors.New("violation attributed to unknown document")

// LintEngine runs a fixed set of rules against documents. It is immutable
// once built and may be shared by any number of goroutines.
type LintEngine struct {
	registry *RuleRegistry
	metadata map[string]RuleMetadata
	owners   map[string]string
}

func newLintEngine(registry *RuleRegistry, owners map[string]string) *LintEngine {
	return &LintEngine{
		registry: registry,
		metadata: registry.Metadata(),
		owners:   owners,
	}
}

// NewLintEngine wraps a registry directly, without providers.
func NewLintEngine(registry *RuleRegistry) *LintEngine {
	return newLintEngine(registry, map[string]string{})
}

// Registry returns the engine's rules.
func (e *LintEngine) Registry() *RuleRegistry {
	return e.registry
}

// RuleMetadata returns the metadata of a registered rule.
func (e *LintEngine) RuleMetadata(id string) (RuleMetadata, bool) {
	meta, ok := e.metadata[id]
	return meta, ok
}

// ProviderOf returns the ID of the provider that registered a rule, or ""
// for rules added without a provider.
func (e *LintEngine) ProviderOf(ruleID string) string {
	return e.owners[ruleID]
}

// ActiveRuleIDs lists the rules cfg selects, document rules first, each in
// registration order.
func (e *LintEngine) ActiveRuleIDs(cfg *config.Config) []string {
	sel := newRuleSelection(cfg)

	var ids []string
	for _, id := range e.registry.IDs() {
		if sel.active(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// LintDocument lints doc with the default configuration.
func (e *LintEngine) LintDocument(doc *document.Document) ([]Violation, error) {
	return e.LintDocumentWithConfig(doc, config.Default())
}

// LintDocumentWithConfig lints doc with the rules cfg selects.
//
// The document is parsed once and the tree is shared by every rule. Rules
// run in registration order; the first rule error stops the pass and is
// returned as a *RuleError. Findings are deduplicated and returned in
// rule execution order.
func (e *LintEngine) LintDocumentWithConfig(doc *document.Document, cfg *config.Config) ([]Violation, error) {
	sel := newRuleSelection(cfg)

	var active []Rule
	for _, rule := range e.registry.Rules() {
		if sel.active(rule.ID()) {
			active = append(active, rule)
		}
	}

	violations := []Violation{}
	if len(active) == 0 {
		return violations, nil
	}

	root := doc.ParseAST()
	activeMeta := make(map[string]RuleMetadata, len(active))

	for _, rule := range active {
		found, err := rule.CheckWithAST(doc, root)
		if err != nil {
			return nil, &RuleError{RuleID: rule.ID(), Path: doc.Path, Err: err}
		}

		if err := stamp(found, rule, cfg); err != nil {
			return nil, err
		}

		activeMeta[rule.ID()] = rule.Metadata()
		violations = append(violations, found...)
	}

	return Deduplicate(violations, activeMeta), nil
}

// LintCollection lints every document, then runs the active collection
// rules over the whole set and merges their findings into the owning
// document's results. Results are keyed by document path.
func (e *LintEngine) LintCollection(docs []*document.Document, cfg *config.Config) (map[string][]Violation, error) {
	results := make(map[string][]Violation, len(docs))
	for _, doc := range docs {
		violations, err := e.LintDocumentWithConfig(doc, cfg)
		if err != nil {
			return nil, err
		}
		results[doc.Path] = violations
	}

	if err := e.MergeCollection(docs, cfg, results); err != nil {
		return nil, err
	}
	return results, nil
}

// MergeCollection runs the active collection rules over docs and appends
// their findings to results, which must already hold each document's
// per-document violations. Callers that lint documents concurrently use it
// for the second phase, once every document is done. results is left
// untouched when any collection rule fails.
func (e *LintEngine) MergeCollection(docs []*document.Document, cfg *config.Config, results map[string][]Violation) error {
	sel := newRuleSelection(cfg)

	known := make(map[string]bool, len(docs))
	for _, doc := range docs {
		known[doc.Path] = true
	}

	found := make(map[string][]Violation)
	activeMeta := e.activeMetadata(sel)

	for _, rule := range e.registry.CollectionRules() {
		if !sel.active(rule.ID()) {
			continue
		}

		batch, err := rule.CheckCollection(docs)
		if err != nil {
			return &RuleError{RuleID: rule.ID(), Err: err}
		}

		for _, cv := range batch {
			if !known[cv.Path] {
				return &RuleError{RuleID: rule.ID(), Path: cv.Path, Err: ErrUnknownDocument}
			}

			stamped := []Violation{cv.Violation}
			if err := stamp(stamped, rule, cfg); err != nil {
				return err
			}
			found[cv.Path] = append(found[cv.Path], stamped[0])
		}
	}

	for path, vs := range found {
		merged := append(slices.Clone(results[path]), vs...)
		results[path] = Deduplicate(merged, activeMeta)
	}
	return nil
}

func (e *LintEngine) activeMetadata(sel ruleSelection) map[string]RuleMetadata {
	meta := make(map[string]RuleMetadata, len(e.metadata))
	for id, m := range e.metadata {
		if sel.active(id) {
			meta[id] = m
		}
	}
	return meta
}

// stamp fills in rule identity on violations and applies any configured
// severity.
func stamp(violations []Violation, rule Identity, cfg *config.Config) error {
	severity, override, err := severityOverride(cfg, rule.ID())
	if err != nil {
		return fmt.Errorf("rule %s: %w", rule.ID(), err)
	}

	for i := range violations {
		if violations[i].RuleID == "" {
			violations[i].RuleID = rule.ID()
		}
		if violations[i].RuleName == "" {
			violations[i].RuleName = rule.Name()
		}
		if violations[i].Severity == "" {
			violations[i].Severity = config.SeverityWarning
		}
		if override {
			violations[i].Severity = severity
		}
	}
	return nil
}
