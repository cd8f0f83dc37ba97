// Package rulefamilies implements the rule family search use case.
//
// The query handler loads a snapshot of the rule database, resolves every rule family,
// turns the families into report rows and projects them through the search criteria.
// A rule or outcome in the criteria selects whole families; jurisdiction and matter type
// then filter individual rows.
//
// The result carries the matching rows, dashboard metrics and a count. An empty result is the
// "no results found" state, not an error.
package rulefamilies
