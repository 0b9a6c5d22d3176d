package lint

// position keys violations for deduplication.
type position struct {
	line   int
	column int
}

// Deduplicate drops violations superseded by an overriding rule that fired
// at the same line and column. metadata should hold only the rules that
// ran: an edge A overrides B is built from A's metadata, and B's violation
// at a position is dropped only when A reported that exact position too.
// Edges are not followed transitively. When two rules override each other
// and both fire at one position, the rule whose violation comes first in
// the input is kept; the engine emits violations in registration order.
// Violations from rules with no edge between them are all kept. Input
// order is preserved.
func Deduplicate(violations []Violation, metadata map[string]RuleMetadata) []Violation {
	overriders := make(map[string][]string)
	for id, meta := range metadata {
		if meta.Overrides != "" && meta.Overrides != id {
			overriders[meta.Overrides] = append(overriders[meta.Overrides], id)
		}
	}
	if len(overriders) == 0 || len(violations) < 2 {
		return violations
	}

	// first index at which each rule fired per position
	fired := make(map[position]map[string]int)
	for i, v := range violations {
		key := position{line: v.Line, column: v.Column}
		if fired[key] == nil {
			fired[key] = make(map[string]int)
		}
		if _, seen := fired[key][v.RuleID]; !seen {
			fired[key][v.RuleID] = i
		}
	}

	kept := make([]Violation, 0, len(violations))
	for _, v := range violations {
		if superseded(v, overriders[v.RuleID], metadata[v.RuleID].Overrides, fired) {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

func superseded(v Violation, by []string, overrides string, fired map[position]map[string]int) bool {
	rules := fired[position{line: v.Line, column: v.Column}]
	for _, id := range by {
		at, ok := rules[id]
		if !ok {
			continue
		}
		if id == overrides && rules[v.RuleID] < at {
			continue
		}
		return true
	}
	return false
}
