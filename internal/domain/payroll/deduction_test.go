package payroll

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(t *testing.T, employeeID uuid.UUID, txType TransactionType, amount int64, description string, date time.Time) *Transaction {
	t.Helper()
	tx, err := NewTransaction(employeeID, txType, decimal.NewFromInt(amount), description, date)
	require.NoError(t, err)
	return tx
}

func TestCalculateDeductions(t *testing.T) {
	employeeID := uuid.New()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("buckets advances separately from other deductions", func(t *testing.T) {
		txs := []*Transaction{
			txn(t, employeeID, TransactionTypeAdvance, 500, "advance", day),
			txn(t, employeeID, TransactionTypeAdvance, 300, "advance 2", day),
			txn(t, employeeID, TransactionTypeDeduction, 200, "breakage", day),
			txn(t, employeeID, TransactionTypeOther, 100, "canteen", day),
		}

		got := CalculateDeductions(txs, decimal.Zero)

		assert.True(t, got.AdvanceAmount.Equal(decimal.NewFromInt(800)), "got %s", got.AdvanceAmount)
		assert.True(t, got.OtherDeductions.Equal(decimal.NewFromInt(300)), "got %s", got.OtherDeductions)
		assert.True(t, got.TotalDeductions.Equal(decimal.NewFromInt(1100)), "got %s", got.TotalDeductions)
	})

	t.Run("salary payouts never count as deductions", func(t *testing.T) {
		txs := []*Transaction{
			txn(t, employeeID, TransactionTypeSalary, 3000, "june salary", day),
			txn(t, employeeID, TransactionTypeAdvance, 500, "advance", day),
		}

		got := CalculateDeductions(txs, decimal.Zero)

		assert.True(t, got.TotalDeductions.Equal(decimal.NewFromInt(500)))
	})

	t.Run("previous carry-forward is added into the total", func(t *testing.T) {
		txs := []*Transaction{
			txn(t, employeeID, TransactionTypeAdvance, 500, "advance", day),
		}

		got := CalculateDeductions(txs, decimal.NewFromInt(250))

		assert.True(t, got.TotalDeductions.Equal(decimal.NewFromInt(750)))
		assert.True(t, got.AdvanceAmount.Equal(decimal.NewFromInt(500)))
	})

	t.Run("no transactions leaves only the carry-forward", func(t *testing.T) {
		got := CalculateDeductions(nil, decimal.NewFromInt(120))

		assert.True(t, got.TotalDeductions.Equal(decimal.NewFromInt(120)))
		assert.True(t, got.AdvanceAmount.IsZero())
		assert.True(t, got.OtherDeductions.IsZero())
	})
}
