package export

import (
	"strconv"
	"time"

	"github.com/heliosip/countryrules/dateformula"
	"github.com/heliosip/countryrules/shared/core"
)

// ReportColumns are the column names of a report export, in order.
var ReportColumns = []string{
	"FamilyReference",
	"RuleID",
	"ChainPath",
	"RuleType",
	"RuleName",
	"MatterType",
	"Jurisdictions",
	"TriggeredBy",
	"TriggerCondition",
	"Output Type",
	"Outcome",
	"DueDate",
	"FinalDueDate",
}

// CalculatedColumns are appended to ReportColumns for calculated rows.
var CalculatedColumns = []string{
	"BaseDate",
	"CalculatedDueDate",
	"CalculatedFinalDueDate",
}

func reportRecord(row core.ReportRow) []string {
	return []string{
		row.FamilyReference,
		strconv.FormatInt(row.RuleID, 10),
		row.ChainPath,
		row.RuleType,
		row.RuleName,
		row.MatterType,
		row.Jurisdictions,
		row.TriggeredBy,
		row.TriggerCondition,
		row.OutputType,
		row.Outcome,
		row.DueDate,
		row.FinalDueDate,
	}
}

func calculatedRecord(row core.CalculatedRow) []string {
	return append(
		reportRecord(row.ReportRow),
		dateformula.FormatDate(row.BaseDate),
		formatOptionalDate(row.CalculatedDueDate),
		formatOptionalDate(row.CalculatedFinalDueDate),
	)
}

func formatOptionalDate(date *time.Time) string {
	if date == nil {
		return ""
	}

	return dateformula.FormatDate(*date)
}
