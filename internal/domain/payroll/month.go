package payroll

import (
	"fmt"
	"time"

	"github.com/shopledger/backend/internal/domain/shared"
)

// monthLayout is the wire format for month keys ("2025-07").
const monthLayout = "2006-01"

// Month identifies a calendar month. It is the key under which attendance,
// transactions and balance snapshots are grouped.
type Month struct {
	year  int
	month time.Month
}

// NewMonth creates a Month from a year and a month number.
func NewMonth(year int, month time.Month) (Month, error) {
	if year < 1 || month < time.January || month > time.December {
		return Month{}, shared.NewDomainError("INVALID_MONTH", fmt.Sprintf("invalid month: year=%d month=%d", year, month))
	}
	return Month{year: year, month: month}, nil
}

// ParseMonth parses a month key in "YYYY-MM" format.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, shared.NewDomainError("INVALID_MONTH", fmt.Sprintf("invalid month %q: expected YYYY-MM", s))
	}
	return Month{year: t.Year(), month: t.Month()}, nil
}

// MonthOf returns the Month containing the given time.
func MonthOf(t time.Time) Month {
	return Month{year: t.Year(), month: t.Month()}
}

// String returns the month key in "YYYY-MM" format.
func (m Month) String() string {
	return m.FirstDay().Format(monthLayout)
}

// Year returns the calendar year.
func (m Month) Year() int {
	return m.year
}

// Month returns the calendar month.
func (m Month) Month() time.Month {
	return m.month
}

// IsZero reports whether m is the zero value.
func (m Month) IsZero() bool {
	return m.year == 0 && m.month == 0
}

// Prev returns the immediately preceding calendar month.
func (m Month) Prev() Month {
	t := m.FirstDay().AddDate(0, -1, 0)
	return MonthOf(t)
}

// Next returns the immediately following calendar month.
func (m Month) Next() Month {
	t := m.FirstDay().AddDate(0, 1, 0)
	return MonthOf(t)
}

// FirstDay returns the first day of the month at UTC midnight.
func (m Month) FirstDay() time.Time {
	return time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay returns the last day of the month at UTC midnight.
func (m Month) LastDay() time.Time {
	return m.FirstDay().AddDate(0, 1, -1)
}

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	return m.LastDay().Day()
}

// Contains reports whether the given time falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.year && t.Month() == m.month
}

// IsFuture reports whether the month starts after the given reference time.
// Salary cannot be computed for a month that has not begun.
func (m Month) IsFuture(now time.Time) bool {
	return m.FirstDay().After(now)
}

// DateRange returns the inclusive [first, last] day bounds of the month,
// both at UTC midnight. Used for range queries against storage.
func (m Month) DateRange() (time.Time, time.Time) {
	return m.FirstDay(), m.LastDay()
}
