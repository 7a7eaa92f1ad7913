package payroll

import (
	"context"

	"github.com/shopledger/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CarryForwardLedger owns every write to the carry-forward chain: the
// MonthlyBalance rows and the cached Employee.CurrentBalance. No other
// component holds the payroll.EmployeeBalanceWriter capability, so the cache
// can never drift from the snapshots through a side channel.
type CarryForwardLedger struct{}

// Append persists a new balance snapshot and syncs the employee's cached
// balance to its carry-forward. Snapshots are append-only; the repository
// assigns the next sequence within (employee, month).
func (CarryForwardLedger) Append(
	ctx context.Context,
	balances payroll.MonthlyBalanceRepository,
	employees payroll.EmployeeBalanceWriter,
	snapshot *payroll.MonthlyBalance,
) error {
	if err := balances.Create(ctx, snapshot); err != nil {
		return err
	}
	return employees.UpdateBalance(ctx, snapshot.EmployeeID, snapshot.NewCarryForward)
}

// Update overwrites the carry-forward of an existing snapshot in place and
// syncs the employee's cached balance. This is the attendance-edit path, which
// refines the current month's figures without appending a new row.
func (CarryForwardLedger) Update(
	ctx context.Context,
	balances payroll.MonthlyBalanceRepository,
	employees payroll.EmployeeBalanceWriter,
	snapshot *payroll.MonthlyBalance,
	carryForward decimal.Decimal,
) error {
	if err := balances.UpdateCarryForward(ctx, snapshot.ID, carryForward); err != nil {
		return err
	}
	return employees.UpdateBalance(ctx, snapshot.EmployeeID, carryForward)
}
