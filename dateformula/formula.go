package dateformula

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Unit is the time unit of a formula.
type Unit string

const (
	UnitDay   Unit = "day"
	UnitWeek  Unit = "week"
	UnitMonth Unit = "month"
)

// DateLayout is the rendering of calendar dates in reports and exports.
const DateLayout = "2006-01-02"

const daysPerWeek = 7

// Amounts beyond these bounds cannot land on a renderable date from any base date.
var maxAmount = map[Unit]int{
	UnitDay:   3_660_000,
	UnitWeek:  523_000,
	UnitMonth: 120_000,
}

const (
	minYear = 1
	maxYear = 9999
)

var formulaPattern = regexp.MustCompile(`(?i)^add\s+([+-]?\d+)\s+(day|week|month)s?$`)

// Formula is a parsed "add <Amount> <Unit>" expression.
type Formula struct {
	Amount int
	Unit   Unit
}

// Parse parses a formula. Matching is case-insensitive and tolerates surrounding whitespace.
// It returns false for empty input, unknown units, amounts whose magnitude exceeds the unit's bound,
// and any other shape.
func Parse(formula string) (Formula, bool) {
	m := formulaPattern.FindStringSubmatch(strings.TrimSpace(formula))
	if m == nil {
		return Formula{}, false
	}

	unit := Unit(strings.ToLower(m[2]))

	amount, err := strconv.Atoi(m[1])
	if err != nil || amount > maxAmount[unit] || amount < -maxAmount[unit] {
		return Formula{}, false
	}

	return Formula{Amount: amount, Unit: unit}, true
}

// Apply adds the formula to the calendar date of base. The result is midnight UTC.
func (f Formula) Apply(base time.Time) time.Time {
	year, month, day := base.Date()

	switch f.Unit {
	case UnitDay:
		return time.Date(year, month, day+f.Amount, 0, 0, 0, 0, time.UTC)

	case UnitWeek:
		return time.Date(year, month, day+f.Amount*daysPerWeek, 0, 0, 0, 0, time.UTC)

	default:
		return addMonths(year, month, day, f.Amount)
	}
}

// Calculate evaluates formula against base. The second result is false when the formula cannot be parsed
// or the result falls outside years 1 to 9999, which callers display as "date not computable".
func Calculate(base time.Time, formula string) (time.Time, bool) {
	f, ok := Parse(formula)
	if !ok {
		return time.Time{}, false
	}

	result := f.Apply(base)
	if year := result.Year(); year < minYear || year > maxYear {
		return time.Time{}, false
	}

	return result, true
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
}

func addMonths(year int, month time.Month, day, n int) time.Time {
	total := int(month) - 1 + n
	yearDelta := floorDiv(total, 12)
	newMonth := time.Month(total-yearDelta*12) + 1
	newYear := year + yearDelta

	if last := daysIn(newYear, newMonth); day > last {
		day = last
	}

	return time.Date(newYear, newMonth, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
