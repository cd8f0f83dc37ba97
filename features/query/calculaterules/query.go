package calculaterules

import (
	"time"

	"github.com/heliosip/countryrules/shared/core"
)

const (
	queryType = "CalculateRules"
)

// DateWindow is an inclusive range of calendar dates. A zero bound is open.
type DateWindow struct {
	From time.Time
	To   time.Time
}

// IsSet reports whether at least one bound is set.
func (w DateWindow) IsSet() bool {
	return !w.From.IsZero() || !w.To.IsZero()
}

// Contains reports whether the date lies within the window, bounds included.
func (w DateWindow) Contains(date time.Time) bool {
	if !w.From.IsZero() && date.Before(w.From) {
		return false
	}

	if !w.To.IsZero() && date.After(w.To) {
		return false
	}

	return true
}

// Query represents the input for calculating rule dates.
type Query struct {
	Criteria core.SearchCriteria
	BaseDate time.Time
	Window   DateWindow
}

// BuildQuery creates a new Query. The base date and the window bounds are reduced to UTC calendar dates.
func BuildQuery(criteria core.SearchCriteria, baseDate time.Time, window DateWindow) Query {
	return Query{
		Criteria: criteria,
		BaseDate: calendarDate(baseDate),
		Window: DateWindow{
			From: calendarDate(window.From),
			To:   calendarDate(window.To),
		},
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

func calendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
