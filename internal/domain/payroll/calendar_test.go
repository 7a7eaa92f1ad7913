package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMonth(t *testing.T, s string) Month {
	t.Helper()
	m, err := ParseMonth(s)
	require.NoError(t, err)
	return m
}

func TestWeekOffDates(t *testing.T) {
	t.Run("returns first four Wednesdays in order", func(t *testing.T) {
		// June 2025 has exactly four Wednesdays: 4, 11, 18, 25.
		dates := WeekOffDates(mustMonth(t, "2025-06"))
		require.Len(t, dates, 4)
		assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), dates[0])
		assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), dates[1])
		assert.Equal(t, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), dates[2])
		assert.Equal(t, time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC), dates[3])
	})

	t.Run("caps at four when the month has five Wednesdays", func(t *testing.T) {
		// July 2025 has five Wednesdays: 2, 9, 16, 23, 30.
		dates := WeekOffDates(mustMonth(t, "2025-07"))
		require.Len(t, dates, 4)
		assert.Equal(t, time.Date(2025, 7, 23, 0, 0, 0, 0, time.UTC), dates[3])
		for _, d := range dates {
			assert.Equal(t, time.Wednesday, d.Weekday())
		}
	})
}

func TestWorkingDaysFor(t *testing.T) {
	t.Run("30-day month with four Wednesdays", func(t *testing.T) {
		wd := WorkingDaysFor(mustMonth(t, "2025-06"))
		assert.Equal(t, 30, wd.TotalDays)
		assert.Equal(t, 4, wd.WeekOffs)
		assert.Equal(t, 26, wd.WorkingDays)
	})

	t.Run("31-day month with five Wednesdays still counts four week-offs", func(t *testing.T) {
		wd := WorkingDaysFor(mustMonth(t, "2025-07"))
		assert.Equal(t, 31, wd.TotalDays)
		assert.Equal(t, 4, wd.WeekOffs)
		assert.Equal(t, 27, wd.WorkingDays)
	})

	t.Run("February", func(t *testing.T) {
		wd := WorkingDaysFor(mustMonth(t, "2025-02"))
		assert.Equal(t, 28, wd.TotalDays)
		assert.Equal(t, 4, wd.WeekOffs)
		assert.Equal(t, 24, wd.WorkingDays)
	})
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 7, 15, 18, 30, 45, 123, time.FixedZone("IST", 5*3600+1800))
	day := DateOnly(ts)
	assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), day)
}
