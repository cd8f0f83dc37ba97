package calculaterules

import (
	"time"

	"github.com/heliosip/countryrules/dateformula"
	"github.com/heliosip/countryrules/features/query/rulefamilies"
	"github.com/heliosip/countryrules/shared/core"
)

// Project evaluates the date formulas of a search result. This is a pure function.
//
// Query Logic:
//
//	GIVEN: The rows of a rule family search
//	WHEN: CalculateRules query is executed
//	THEN: CalculatedRules struct is returned with due dates relative to the base date
//	INCLUDES: All rows when no window is set, rows with a due date inside the window otherwise
//	EXCLUDES: Rows without a computable due date when a window is set
func Project(search rulefamilies.RuleFamilies, query Query) CalculatedRules {
	rows := make([]core.CalculatedRow, 0, len(search.Rows))
	kept := make([]core.ReportRow, 0, len(search.Rows))

	for _, row := range search.Rows {
		calculated := core.CalculatedRow{
			ReportRow:              row,
			BaseDate:               query.BaseDate,
			CalculatedDueDate:      calculate(query.BaseDate, row.DueDate),
			CalculatedFinalDueDate: calculate(query.BaseDate, row.FinalDueDate),
		}

		if query.Window.IsSet() {
			if calculated.CalculatedDueDate == nil || !query.Window.Contains(*calculated.CalculatedDueDate) {
				continue
			}
		}

		rows = append(rows, calculated)
		kept = append(kept, row)
	}

	return CalculatedRules{
		BaseDate:  query.BaseDate,
		Rows:      rows,
		Dashboard: core.BuildDashboard(kept),
		Count:     len(rows),
	}
}

func calculate(base time.Time, formula string) *time.Time {
	date, ok := dateformula.Calculate(base, formula)
	if !ok {
		return nil
	}

	return &date
}
