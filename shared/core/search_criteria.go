package core

import "strings"

// AllJurisdictions is the jurisdiction choice that disables jurisdiction filtering.
const AllJurisdictions = "All"

// SearchCriteria is the user's search input. Zero values mean "not set".
type SearchCriteria struct {
	Jurisdiction string
	MatterType   string
	Outcome      string
	RuleID       int64
	RuleName     string
}

// FiltersJurisdiction reports whether the jurisdiction filter is active.
func (c SearchCriteria) FiltersJurisdiction() bool {
	j := strings.TrimSpace(c.Jurisdiction)

	return j != "" && j != AllJurisdictions
}

// FiltersMatterType reports whether the matter-type filter is active.
func (c SearchCriteria) FiltersMatterType() bool {
	return strings.TrimSpace(c.MatterType) != ""
}

// SelectsFamilies reports whether a rule or outcome selects specific families.
func (c SearchCriteria) SelectsFamilies() bool {
	return c.RuleID > 0 || c.RuleName != "" || c.Outcome != ""
}

// MatchesJurisdictions reports whether the comma-joined jurisdiction names contain the filter text,
// case-insensitively. An inactive filter matches everything.
func (c SearchCriteria) MatchesJurisdictions(jurisdictions string) bool {
	if !c.FiltersJurisdiction() {
		return true
	}

	return containsFold(jurisdictions, strings.TrimSpace(c.Jurisdiction))
}

// MatchesMatterTypes reports whether the comma-joined matter-type names contain the filter text,
// case-insensitively. An inactive filter matches everything.
func (c SearchCriteria) MatchesMatterTypes(matterTypes string) bool {
	if !c.FiltersMatterType() {
		return true
	}

	return containsFold(matterTypes, strings.TrimSpace(c.MatterType))
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
