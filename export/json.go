package export

import (
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/heliosip/countryrules/dateformula"
	"github.com/heliosip/countryrules/shared/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonReportRow struct {
	FamilyReference  string `json:"FamilyReference"`
	RuleID           int64  `json:"RuleID"`
	ChainPath        string `json:"ChainPath"`
	RuleType         string `json:"RuleType"`
	RuleName         string `json:"RuleName"`
	MatterType       string `json:"MatterType"`
	Jurisdictions    string `json:"Jurisdictions"`
	TriggeredBy      string `json:"TriggeredBy"`
	TriggerCondition string `json:"TriggerCondition"`
	OutputType       string `json:"Output Type"`
	Outcome          string `json:"Outcome"`
	DueDate          string `json:"DueDate"`
	FinalDueDate     string `json:"FinalDueDate"`
}

type jsonCalculatedRow struct {
	jsonReportRow
	BaseDate               string  `json:"BaseDate"`
	CalculatedDueDate      *string `json:"CalculatedDueDate"`
	CalculatedFinalDueDate *string `json:"CalculatedFinalDueDate"`
}

// WriteJSON writes the rows as a JSON array of objects keyed by the report column names.
func WriteJSON(w io.Writer, rows []core.ReportRow) error {
	out := make([]jsonReportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, toJSONRow(row))
	}

	return encode(w, out)
}

// WriteCalculatedJSON writes calculated rows as a JSON array. Dates that could not be calculated are null.
func WriteCalculatedJSON(w io.Writer, rows []core.CalculatedRow) error {
	out := make([]jsonCalculatedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, jsonCalculatedRow{
			jsonReportRow:          toJSONRow(row.ReportRow),
			BaseDate:               dateformula.FormatDate(row.BaseDate),
			CalculatedDueDate:      optionalDate(row.CalculatedDueDate),
			CalculatedFinalDueDate: optionalDate(row.CalculatedFinalDueDate),
		})
	}

	return encode(w, out)
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

func toJSONRow(row core.ReportRow) jsonReportRow {
	return jsonReportRow{
		FamilyReference:  row.FamilyReference,
		RuleID:           row.RuleID,
		ChainPath:        row.ChainPath,
		RuleType:         row.RuleType,
		RuleName:         row.RuleName,
		MatterType:       row.MatterType,
		Jurisdictions:    row.Jurisdictions,
		TriggeredBy:      row.TriggeredBy,
		TriggerCondition: row.TriggerCondition,
		OutputType:       row.OutputType,
		Outcome:          row.Outcome,
		DueDate:          row.DueDate,
		FinalDueDate:     row.FinalDueDate,
	}
}

func optionalDate(date *time.Time) *string {
	if date == nil {
		return nil
	}

	formatted := dateformula.FormatDate(*date)

	return &formatted
}
