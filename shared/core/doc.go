// Package core contains the report model of the rule family analyzer: search criteria, report rows,
// calculated rows, dashboard metrics and the rule display-name format used by option lists.
//
// Everything in this package is pure; it has no dependencies on storage or observability.
package core
