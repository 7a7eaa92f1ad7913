package payroll

import "time"

// maxWeekOffs caps the number of paid week-off days per month. Only the first
// four Wednesdays are exempt from attendance deductions; a fifth Wednesday is
// an ordinary working day.
const maxWeekOffs = 4

// WorkingDays summarizes the working-day arithmetic for a month.
type WorkingDays struct {
	TotalDays   int
	WeekOffs    int
	WorkingDays int
}

// WorkingDaysFor computes the day counts for a month. WeekOffs counts the
// Wednesdays in the month, capped at four.
func WorkingDaysFor(m Month) WorkingDays {
	total := m.Days()
	weekOffs := len(WeekOffDates(m))
	return WorkingDays{
		TotalDays:   total,
		WeekOffs:    weekOffs,
		WorkingDays: total - weekOffs,
	}
}

// WeekOffDates returns the first four Wednesdays of the month in date order,
// at UTC midnight. Attendance marked on these dates never contributes to
// deductions, regardless of status.
func WeekOffDates(m Month) []time.Time {
	dates := make([]time.Time, 0, maxWeekOffs)
	for d := m.FirstDay(); m.Contains(d); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Wednesday {
			continue
		}
		dates = append(dates, d)
		if len(dates) == maxWeekOffs {
			break
		}
	}
	return dates
}

// weekOffSet returns the week-off dates of a month keyed by day-precision
// normalized time, for O(1) membership checks.
func weekOffSet(m Month) map[time.Time]struct{} {
	set := make(map[time.Time]struct{}, maxWeekOffs)
	for _, d := range WeekOffDates(m) {
		set[d] = struct{}{}
	}
	return set
}

// DateOnly normalizes a time to its calendar day at UTC midnight. All
// attendance and transaction dates are stored at day precision.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
