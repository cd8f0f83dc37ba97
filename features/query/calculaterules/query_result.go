package calculaterules

import (
	"time"

	"github.com/heliosip/countryrules/shared/core"
)

// CalculatedRules represents the query result.
type CalculatedRules struct {
	BaseDate  time.Time
	Rows      []core.CalculatedRow
	Dashboard core.Dashboard
	Count     int
}

// Empty reports whether nothing matched.
func (r CalculatedRules) Empty() bool {
	return r.Count == 0
}

// ResultCount returns the number of rows.
func (r CalculatedRules) ResultCount() int {
	return r.Count
}
