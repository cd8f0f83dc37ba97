// Package export writes report rows as CSV or JSON.
//
// Both formats use the report column names. Calculated dates are written as YYYY-MM-DD and
// dates that could not be calculated are written empty (CSV) or null (JSON).
package export
