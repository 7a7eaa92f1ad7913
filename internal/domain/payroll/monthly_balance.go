package payroll

import (
	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MonthlyBalance is one snapshot of the ledger's understanding of a month.
// Snapshots are append-only: every recompute for a month appends a new row,
// and the one with the highest sequence is authoritative. Older rows are
// historical residue kept for audit and never deleted.
type MonthlyBalance struct {
	shared.BaseEntity
	EmployeeID      uuid.UUID
	Month           Month
	CarryForward    decimal.Decimal
	SalaryEarned    decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPayable      decimal.Decimal
	AmountPaid      decimal.Decimal
	NewCarryForward decimal.Decimal
	// Sequence orders snapshots within (employee, month); assigned by storage.
	Sequence int64
}

// NewMonthlyBalance creates a snapshot for a month's computation pass.
// NewCarryForward is derived from the raw net payable (salary minus
// deductions), not from the possibly overridden NetPayable.
func NewMonthlyBalance(
	employeeID uuid.UUID,
	month Month,
	carryForward decimal.Decimal,
	salaryEarned decimal.Decimal,
	totalDeductions decimal.Decimal,
	netPayable decimal.Decimal,
	amountPaid decimal.Decimal,
) (*MonthlyBalance, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Employee ID cannot be empty")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Month is required")
	}

	raw := salaryEarned.Sub(totalDeductions)
	return &MonthlyBalance{
		BaseEntity:      shared.NewBaseEntity(),
		EmployeeID:      employeeID,
		Month:           month,
		CarryForward:    carryForward,
		SalaryEarned:    salaryEarned,
		TotalDeductions: totalDeductions,
		NetPayable:      netPayable,
		AmountPaid:      amountPaid,
		NewCarryForward: CarryForwardFrom(raw),
	}, nil
}

// CarryForwardFrom computes the carry-forward from a raw net payable:
// a shortfall (negative net) becomes debt owed by the employee, a surplus
// carries nothing forward. The result is never negative. Overpaid months are
// intentionally not tracked as employee credit.
func CarryForwardFrom(rawNetPayable decimal.Decimal) decimal.Decimal {
	if rawNetPayable.IsNegative() {
		return rawNetPayable.Neg()
	}
	return decimal.Zero
}
