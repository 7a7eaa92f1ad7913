package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	t.Run("parses valid month key", func(t *testing.T) {
		m, err := ParseMonth("2025-07")
		require.NoError(t, err)
		assert.Equal(t, 2025, m.Year())
		assert.Equal(t, time.July, m.Month())
		assert.Equal(t, "2025-07", m.String())
	})

	t.Run("rejects malformed keys", func(t *testing.T) {
		for _, s := range []string{"", "2025", "2025-13", "2025-7", "07-2025", "garbage"} {
			_, err := ParseMonth(s)
			assert.Error(t, err, "expected %q to be rejected", s)
		}
	})
}

func TestMonthNavigation(t *testing.T) {
	t.Run("Prev crosses year boundary", func(t *testing.T) {
		m, err := ParseMonth("2025-01")
		require.NoError(t, err)
		assert.Equal(t, "2024-12", m.Prev().String())
	})

	t.Run("Next crosses year boundary", func(t *testing.T) {
		m, err := ParseMonth("2024-12")
		require.NoError(t, err)
		assert.Equal(t, "2025-01", m.Next().String())
	})

	t.Run("FirstDay and LastDay bound the month", func(t *testing.T) {
		m, err := ParseMonth("2025-02")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), m.FirstDay())
		assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), m.LastDay())
		assert.Equal(t, 28, m.Days())
	})

	t.Run("Days handles leap February", func(t *testing.T) {
		m, err := ParseMonth("2024-02")
		require.NoError(t, err)
		assert.Equal(t, 29, m.Days())
	})
}

func TestMonthIsFuture(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	t.Run("current month is not future", func(t *testing.T) {
		m := MonthOf(now)
		assert.False(t, m.IsFuture(now))
	})

	t.Run("next month is future", func(t *testing.T) {
		m := MonthOf(now).Next()
		assert.True(t, m.IsFuture(now))
	})

	t.Run("past month is not future", func(t *testing.T) {
		m := MonthOf(now).Prev()
		assert.False(t, m.IsFuture(now))
	})
}

func TestMonthContains(t *testing.T) {
	m, err := ParseMonth("2025-07")
	require.NoError(t, err)

	assert.True(t, m.Contains(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, m.Contains(time.Date(2025, 7, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)))
}
