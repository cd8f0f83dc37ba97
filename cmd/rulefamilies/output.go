package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/heliosip/countryrules/dateformula"
	"github.com/heliosip/countryrules/export"
	"github.com/heliosip/countryrules/features/query/calculaterules"
	"github.com/heliosip/countryrules/features/query/filteroptions"
	"github.com/heliosip/countryrules/features/query/rulefamilies"
	"github.com/heliosip/countryrules/shared/core"
)

const noResults = "No results found."

var tableColumns = []string{"FAMILY", "RULE", "CHAIN", "NAME", "JURISDICTIONS", "TRIGGERED BY", "OUTCOME", "DUE", "FINAL DUE"}

func writeRuleFamilies(w io.Writer, format string, result rulefamilies.RuleFamilies) error {
	switch format {
	case formatCSV:
		return export.WriteCSV(w, result.Rows)
	case formatJSON:
		return export.WriteJSON(w, result.Rows)
	}

	if result.Empty() {
		_, err := fmt.Fprintln(w, noResults)
		return err
	}

	tw := newTableWriter(w)
	writeDashboard(tw, result.Dashboard)
	writeTableRow(tw, tableColumns...)

	for _, row := range result.Rows {
		writeTableRow(tw, tableRecord(row)...)
	}

	return tw.Flush()
}

func writeCalculatedRules(w io.Writer, format string, result calculaterules.CalculatedRules) error {
	switch format {
	case formatCSV:
		return export.WriteCalculatedCSV(w, result.Rows)
	case formatJSON:
		return export.WriteCalculatedJSON(w, result.Rows)
	}

	if result.Empty() {
		_, err := fmt.Fprintln(w, noResults)
		return err
	}

	tw := newTableWriter(w)
	_, _ = fmt.Fprintf(tw, "Base date:\t%s\n", dateformula.FormatDate(result.BaseDate))
	writeDashboard(tw, result.Dashboard)
	writeTableRow(tw, append(tableColumns, "CALCULATED DUE", "CALCULATED FINAL DUE")...)

	for _, row := range result.Rows {
		writeTableRow(tw, append(
			tableRecord(row.ReportRow),
			optionalDate(row.CalculatedDueDate),
			optionalDate(row.CalculatedFinalDueDate),
		)...)
	}

	return tw.Flush()
}

func writeFilterOptions(w io.Writer, format string, options filteroptions.FilterOptions) error {
	groups := []struct {
		kind   string
		values []string
	}{
		{"Jurisdiction", options.Jurisdictions},
		{"Matter type", options.MatterTypes},
		{"Rule", options.Rules},
		{"Outcome", options.Outcomes},
	}

	switch format {
	case formatJSON:
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(map[string][]string{
			"jurisdictions": nonNil(options.Jurisdictions),
			"matterTypes":   nonNil(options.MatterTypes),
			"rules":         nonNil(options.Rules),
			"outcomes":      nonNil(options.Outcomes),
		})

	case formatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"Kind", "Value"})

		for _, group := range groups {
			for _, value := range group.values {
				_ = cw.Write([]string{group.kind, value})
			}
		}
		cw.Flush()

		return cw.Error()
	}

	for i, group := range groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "%ss (%d):\n", group.kind, len(group.values)); err != nil {
			return err
		}

		for _, value := range group.values {
			if _, err := fmt.Fprintf(w, "  %s\n", value); err != nil {
				return err
			}
		}
	}

	return nil
}

func newTableWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Errors are reported by the final Flush.
func writeTableRow(tw *tabwriter.Writer, cells ...string) {
	_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

func writeDashboard(tw *tabwriter.Writer, dashboard core.Dashboard) {
	_, _ = fmt.Fprintf(tw, "Jurisdictions:\t%s\n", dashboard.Jurisdictions)
	_, _ = fmt.Fprintf(tw, "Matter types:\t%s\n", dashboard.MatterTypes)
	_, _ = fmt.Fprintf(tw, "Actions:\t%d\n", dashboard.Actions)
	_, _ = fmt.Fprintf(tw, "Tasks:\t%d\n\n", dashboard.Tasks)
}

func tableRecord(row core.ReportRow) []string {
	return []string{
		row.FamilyReference,
		strconv.FormatInt(row.RuleID, 10),
		row.ChainPath,
		row.RuleName,
		row.Jurisdictions,
		row.TriggeredBy,
		row.Outcome,
		row.DueDate,
		row.FinalDueDate,
	}
}

func optionalDate(date *time.Time) string {
	if date == nil {
		return ""
	}

	return dateformula.FormatDate(*date)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
