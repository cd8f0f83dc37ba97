package rulefamilies

import (
	"github.com/heliosip/countryrules/family"
	"github.com/heliosip/countryrules/shared/core"
)

// Project implements the search logic. This is a pure function: rows must be the report rows of
// families, in the same order.
//
// Query Logic:
//
//	GIVEN: All resolved families and their report rows
//	WHEN: RuleFamilies query is executed
//	THEN: RuleFamilies struct is returned with the matching rows and dashboard metrics
//	INCLUDES: Every row of a family selected by rule ID, rule name or outcome (all families if none is set)
//	EXCLUDES: Rows whose jurisdictions or matter types do not contain the filter text
func Project(families []family.RuleFamily, rows []core.ReportRow, query Query) RuleFamilies {
	criteria := query.Criteria

	var selected map[string]struct{}
	if criteria.SelectsFamilies() {
		selected = make(map[string]struct{})
		for _, ref := range family.ReferencesFor(families, SelectorFor(criteria)) {
			selected[ref] = struct{}{}
		}
	}

	matching := make([]core.ReportRow, 0, len(rows))
	for _, row := range rows {
		if selected != nil {
			if _, ok := selected[row.FamilyReference]; !ok {
				continue
			}
		}

		if !criteria.MatchesJurisdictions(row.Jurisdictions) || !criteria.MatchesMatterTypes(row.MatterType) {
			continue
		}

		matching = append(matching, row)
	}

	return RuleFamilies{
		Rows:      matching,
		Dashboard: core.BuildDashboard(matching),
		Count:     len(matching),
	}
}

// SelectorFor maps the family-selecting part of the criteria to a family selector.
func SelectorFor(criteria core.SearchCriteria) family.Selector {
	return family.Selector{
		RuleID:   criteria.RuleID,
		RuleName: criteria.RuleName,
		Outcome:  criteria.Outcome,
	}
}
