// Package dateformula evaluates relative due-date formulas of the form "add <n> <unit>".
//
// A formula adds a signed number of days, weeks or months to a base date. Month arithmetic carries
// into the year and clamps the day-of-month to the end of the target month, so 2024-01-31 plus one
// month is 2024-02-29. Anything that does not parse yields no result rather than an error.
package dateformula
