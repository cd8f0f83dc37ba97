package rulefamilies

import "github.com/heliosip/countryrules/shared/core"

// RuleFamilies represents the query result: the matching report rows and their dashboard metrics.
type RuleFamilies struct {
	Rows      []core.ReportRow
	Dashboard core.Dashboard
	Count     int
}

// Empty reports whether nothing matched the search.
func (r RuleFamilies) Empty() bool {
	return r.Count == 0
}

// ResultCount returns the number of rows.
func (r RuleFamilies) ResultCount() int {
	return r.Count
}
