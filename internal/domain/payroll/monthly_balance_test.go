package payroll

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarryForwardFrom(t *testing.T) {
	t.Run("shortfall carries forward as positive debt", func(t *testing.T) {
		got := CarryForwardFrom(decimal.NewFromInt(-250))
		assert.True(t, got.Equal(decimal.NewFromInt(250)), "got %s", got)
	})

	t.Run("surplus carries nothing forward", func(t *testing.T) {
		assert.True(t, CarryForwardFrom(decimal.NewFromInt(1200)).IsZero())
	})

	t.Run("zero carries nothing forward", func(t *testing.T) {
		assert.True(t, CarryForwardFrom(decimal.Zero).IsZero())
	})
}

func TestNewMonthlyBalance(t *testing.T) {
	employeeID := uuid.New()
	month := mustMonth(t, "2025-06")

	t.Run("derives carry-forward from the raw net", func(t *testing.T) {
		// Deductions exceed salary: 2850 - 3100 = -250.
		mb, err := NewMonthlyBalance(employeeID, month,
			decimal.NewFromInt(100),  // carry forward in
			decimal.NewFromInt(2850), // salary earned
			decimal.NewFromInt(3100), // total deductions
			decimal.Zero,             // net payable (clamped by caller)
			decimal.Zero,             // amount paid
		)
		require.NoError(t, err)

		assert.True(t, mb.NewCarryForward.Equal(decimal.NewFromInt(250)), "got %s", mb.NewCarryForward)
		assert.True(t, mb.NetPayable.IsZero())
	})

	t.Run("positive net leaves no carry-forward", func(t *testing.T) {
		mb, err := NewMonthlyBalance(employeeID, month,
			decimal.Zero,
			decimal.NewFromInt(3000),
			decimal.NewFromInt(500),
			decimal.NewFromInt(2500),
			decimal.NewFromInt(2500),
		)
		require.NoError(t, err)

		assert.True(t, mb.NewCarryForward.IsZero())
	})

	t.Run("rejects missing identity", func(t *testing.T) {
		_, err := NewMonthlyBalance(uuid.Nil, month, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
		assert.Error(t, err)

		_, err = NewMonthlyBalance(employeeID, Month{}, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})
}
