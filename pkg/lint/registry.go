package lint

import (
	"sync"
)

// RuleRegistry holds document and collection rules keyed by ID.
// Registration order is preserved and is the order rules run in.
// An ID is unique across both kinds of rule.
type RuleRegistry struct {
	mu sync.RWMutex

	rules []Rule
	byID  map[string]Rule

	collection []CollectionRule
	collByID   map[string]CollectionRule
}

// NewRuleRegistry creates an empty rule registry.
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		byID:     make(map[string]Rule),
		collByID: make(map[string]CollectionRule),
	}
}

// Register adds a document rule. A rule whose ID is already present is
// rejected with a DuplicateRule PluginError.
func (r *RuleRegistry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if r.hasLocked(id) {
		return &PluginError{Kind: DuplicateRule, RuleID: id}
	}
	r.rules = append(r.rules, rule)
	r.byID[id] = rule
	return nil
}

// RegisterAST adds an ASTRule through AdaptAST.
func (r *RuleRegistry) RegisterAST(rule ASTRule) error {
	return r.Register(AdaptAST(rule))
}

// RegisterCollectionRule adds a collection rule.
func (r *RuleRegistry) RegisterCollectionRule(rule CollectionRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if r.hasLocked(id) {
		return &PluginError{Kind: DuplicateRule, RuleID: id}
	}
	r.collection = append(r.collection, rule)
	r.collByID[id] = rule
	return nil
}

// Merge adds every rule of other. Either all rules are added or, when any
// ID collides, none are and a DuplicateRule PluginError is returned.
func (r *RuleRegistry) Merge(other *RuleRegistry) error {
	if other == nil || other == r {
		return nil
	}

	other.mu.RLock()
	rules := append([]Rule(nil), other.rules...)
	collection := append([]CollectionRule(nil), other.collection...)
	other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rule := range rules {
		if r.hasLocked(rule.ID()) {
			return &PluginError{Kind: DuplicateRule, RuleID: rule.ID()}
		}
	}
	for _, rule := range collection {
		if r.hasLocked(rule.ID()) {
			return &PluginError{Kind: DuplicateRule, RuleID: rule.ID()}
		}
	}

	for _, rule := range rules {
		r.rules = append(r.rules, rule)
		r.byID[rule.ID()] = rule
	}
	for _, rule := range collection {
		r.collection = append(r.collection, rule)
		r.collByID[rule.ID()] = rule
	}
	return nil
}

// Rule retrieves a document rule by ID.
//
//nolint:ireturn // Registry hands out the registered interface values.
func (r *RuleRegistry) Rule(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// CollectionRule retrieves a collection rule by ID.
//
//nolint:ireturn // Registry hands out the registered interface values.
func (r *RuleRegistry) CollectionRule(id string) (CollectionRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.collByID[id]
	return rule, ok
}

// Has reports whether any rule uses id.
func (r *RuleRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasLocked(id)
}

func (r *RuleRegistry) hasLocked(id string) bool {
	if _, ok := r.byID[id]; ok {
		return true
	}
	_, ok := r.collByID[id]
	return ok
}

// Rules returns document rules in registration order.
func (r *RuleRegistry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Rule(nil), r.rules...)
}

// CollectionRules returns collection rules in registration order.
func (r *RuleRegistry) CollectionRules() []CollectionRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]CollectionRule(nil), r.collection...)
}

// IDs returns document rule IDs followed by collection rule IDs, each in
// registration order.
func (r *RuleRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.rules)+len(r.collection))
	for _, rule := range r.rules {
		ids = append(ids, rule.ID())
	}
	for _, rule := range r.collection {
		ids = append(ids, rule.ID())
	}
	return ids
}

// Metadata returns metadata for every registered rule keyed by ID.
func (r *RuleRegistry) Metadata() map[string]RuleMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta := make(map[string]RuleMetadata, len(r.rules)+len(r.collection))
	for _, rule := range r.rules {
		meta[rule.ID()] = rule.Metadata()
	}
	for _, rule := range r.collection {
		meta[rule.ID()] = rule.Metadata()
	}
	return meta
}

// Len returns the number of registered rules of both kinds.
func (r *RuleRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules) + len(r.collection)
}

// IsEmpty reports whether no rules are registered.
func (r *RuleRegistry) IsEmpty() bool {
	return r.Len() == 0
}
