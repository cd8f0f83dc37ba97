package export

import (
	"encoding/csv"
	"io"
	"slices"

	"github.com/heliosip/countryrules/shared/core"
)

// WriteCSV writes a header row followed by one record per report row.
func WriteCSV(w io.Writer, rows []core.ReportRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, ReportColumns)
	for _, row := range rows {
		records = append(records, reportRecord(row))
	}

	return csv.NewWriter(w).WriteAll(records)
}

// WriteCalculatedCSV writes a header row followed by one record per calculated row.
func WriteCalculatedCSV(w io.Writer, rows []core.CalculatedRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, slices.Concat(ReportColumns, CalculatedColumns))
	for _, row := range rows {
		records = append(records, calculatedRecord(row))
	}

	return csv.NewWriter(w).WriteAll(records)
}
