package family

import (
	"cmp"
	"slices"

	"github.com/heliosip/countryrules/rulestore"
)

// Connection is a valid directed edge between two rules.
type Connection struct {
	ParentRuleID int64
	ChildRuleID  int64
}

// ValidConnections returns the distinct valid connections of the input, sorted by parent and child ID.
//
// A connection ParentRuleID→ChildRuleID exists when an outcome label of the parent equals a condition
// value of the child and both rules are active and share at least one attribute pair.
func ValidConnections(in Input) []Connection {
	pairsByRule := activeRulePairs(in.Rules)

	childrenByValue := make(map[string][]int64)
	for _, c := range in.Conditions {
		if _, ok := pairsByRule[c.RuleID]; !ok {
			continue
		}

		childrenByValue[c.Value] = append(childrenByValue[c.Value], c.RuleID)
	}

	seen := make(map[Connection]struct{})
	connections := make([]Connection, 0)

	for _, o := range in.Outcomes {
		parentPairs, ok := pairsByRule[o.RuleID]
		if !ok {
			continue
		}

		for _, childID := range childrenByValue[o.Label] {
			if !parentPairs.sharesAnyWith(pairsByRule[childID]) {
				continue
			}

			connection := Connection{ParentRuleID: o.RuleID, ChildRuleID: childID}
			if _, dup := seen[connection]; dup {
				continue
			}

			seen[connection] = struct{}{}
			connections = append(connections, connection)
		}
	}

	slices.SortFunc(connections, func(a, b Connection) int {
		return cmp.Or(
			cmp.Compare(a.ParentRuleID, b.ParentRuleID),
			cmp.Compare(a.ChildRuleID, b.ChildRuleID),
		)
	})

	return connections
}

// activeRulePairs indexes the attribute pairs of all active rules by rule ID.
func activeRulePairs(rules []rulestore.RuleDefinition) map[int64]pairSet {
	pairsByRule := make(map[int64]pairSet, len(rules))

	for _, r := range rules {
		if !r.Active {
			continue
		}

		set, ok := pairsByRule[r.ID]
		if !ok {
			set = make(pairSet)
			pairsByRule[r.ID] = set
		}

		for p := range newPairSet(AttributePairs(r)) {
			set[p] = struct{}{}
		}
	}

	return pairsByRule
}
