package core

import (
	"slices"
	"strings"

	"github.com/heliosip/countryrules/rulestore"
)

// Dashboard summarizes a set of report rows.
type Dashboard struct {
	Jurisdictions string
	MatterTypes   string
	Actions       int
	Tasks         int
}

// BuildDashboard computes the distinct jurisdictions and matter types of the rows (sorted, joined with ", ")
// and counts the Action and Task rows.
func BuildDashboard(rows []ReportRow) Dashboard {
	jurisdictions := make([]string, 0)
	matterTypes := make([]string, 0)
	dashboard := Dashboard{}

	for _, r := range rows {
		jurisdictions = append(jurisdictions, splitNames(r.Jurisdictions)...)
		matterTypes = append(matterTypes, splitNames(r.MatterType)...)

		switch r.RuleType {
		case rulestore.RuleTypeAction:
			dashboard.Actions++
		case rulestore.RuleTypeTask:
			dashboard.Tasks++
		}
	}

	dashboard.Jurisdictions = joinSortedDistinct(jurisdictions)
	dashboard.MatterTypes = joinSortedDistinct(matterTypes)

	return dashboard
}

func splitNames(joined string) []string {
	names := make([]string, 0)
	for _, part := range strings.Split(joined, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}

	return names
}

func joinSortedDistinct(values []string) string {
	slices.Sort(values)

	return strings.Join(slices.Compact(values), ", ")
}
