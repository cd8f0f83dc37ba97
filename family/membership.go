package family

import (
	"slices"
	"strings"
)

// Selector chooses which families ReferencesFor returns.
// RuleID takes precedence over RuleName, which takes precedence over Outcome; zero values are unset.
type Selector struct {
	RuleID   int64
	RuleName string
	Outcome  string
}

// IsEmpty reports whether no selector field is set.
func (s Selector) IsEmpty() bool {
	return s.RuleID <= 0 && s.RuleName == "" && s.Outcome == ""
}

// ReferencesFor returns the distinct, sorted family references selected by the selector.
//
//   - RuleID: every family in which the rule appears anywhere in a chain path (root, interior or leaf)
//   - RuleName: every family containing a row for a rule with exactly this name
//   - Outcome: every family containing a row whose outcome text contains the substring, case-insensitively
//
// An empty selector selects nothing.
func ReferencesFor(families []RuleFamily, selector Selector) []string {
	var matches func(f RuleFamily) bool

	switch {
	case selector.RuleID > 0:
		matches = func(f RuleFamily) bool {
			return f.Contains(selector.RuleID)
		}

	case selector.RuleName != "":
		matches = func(f RuleFamily) bool {
			return f.RuleName == selector.RuleName
		}

	case selector.Outcome != "":
		needle := strings.ToLower(selector.Outcome)
		matches = func(f RuleFamily) bool {
			return slices.ContainsFunc(f.Outcomes, func(label string) bool {
				return strings.Contains(strings.ToLower(label), needle)
			})
		}

	default:
		return []string{}
	}

	references := make([]string, 0)
	for _, f := range families {
		if matches(f) {
			references = append(references, f.FamilyReference)
		}
	}

	slices.Sort(references)

	return slices.Compact(references)
}
