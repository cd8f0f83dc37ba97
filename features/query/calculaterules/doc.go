// Package calculaterules implements the rule calculation use case.
//
// It runs the rule family search and evaluates every row's due-date and final-due-date formulas
// against a base date. When a date window is given, only rows whose calculated due date falls
// inside the window are kept; otherwise rows whose formulas cannot be evaluated are kept with
// empty calculated dates.
package calculaterules
