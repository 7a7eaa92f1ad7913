package payroll

import (
	"strings"
	"time"

	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Employee represents a salaried shop employee.
//
// CurrentBalance is a denormalized cache of the latest carry-forward (the
// unpaid deduction shortfall rolling into the next month). It is written only
// by the carry-forward ledger; no other component mutates it.
type Employee struct {
	shared.BaseEntity
	Name           string
	JoiningDate    time.Time
	BaseSalary     decimal.Decimal
	CurrentBalance decimal.Decimal
}

// NewEmployee creates a new employee after validating required fields.
func NewEmployee(name string, joiningDate time.Time, baseSalary, currentBalance decimal.Decimal) (*Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee name is required")
	}
	if joiningDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Joining date is required")
	}
	if baseSalary.IsNegative() {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Base salary cannot be negative")
	}
	if currentBalance.IsNegative() {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Current balance cannot be negative")
	}

	return &Employee{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		JoiningDate:    DateOnly(joiningDate),
		BaseSalary:     baseSalary,
		CurrentBalance: currentBalance,
	}, nil
}
