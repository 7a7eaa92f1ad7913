package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of a payroll transaction.
type TransactionType string

const (
	// TransactionTypeSalary records a salary payout. Payout records are not
	// obligations and never enter deduction math.
	TransactionTypeSalary TransactionType = "SALARY"
	// TransactionTypeAdvance records money given to the employee ahead of
	// salary; recovered as a deduction in the month it falls in.
	TransactionTypeAdvance TransactionType = "ADVANCE"
	// TransactionTypeDeduction records an explicit deduction (damage, fine).
	TransactionTypeDeduction TransactionType = "DEDUCTION"
	// TransactionTypeOther records any other amount recoverable from salary.
	TransactionTypeOther TransactionType = "OTHER"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeSalary, TransactionTypeAdvance, TransactionTypeDeduction, TransactionTypeOther:
		return true
	}
	return false
}

// Transaction represents one discrete financial event against an employee.
// Transactions are immutable once created; the correction path is delete and
// recreate. The date determines the month the amount is attributed to.
type Transaction struct {
	shared.BaseEntity
	EmployeeID  uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// NewTransaction creates a new payroll transaction.
func NewTransaction(employeeID uuid.UUID, txType TransactionType, amount decimal.Decimal, description string, date time.Time) (*Transaction, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRANSACTION", "Employee ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION", "Transaction date is required")
	}

	return &Transaction{
		BaseEntity:  shared.NewBaseEntity(),
		EmployeeID:  employeeID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Date:        DateOnly(date),
	}, nil
}

// Month returns the calendar month the transaction is attributed to.
func (t *Transaction) Month() Month {
	return MonthOf(t.Date)
}

// Matches reports whether two transactions are the same financial event:
// same type, amount, description and calendar day. Resubmitting a payload
// containing an already-persisted transaction must not insert it twice.
func (t *Transaction) Matches(other *Transaction) bool {
	return t.Type == other.Type &&
		t.Amount.Equal(other.Amount) &&
		t.Description == other.Description &&
		DateOnly(t.Date).Equal(DateOnly(other.Date))
}

// FilterNew returns the subset of incoming transactions that have no match
// among existing ones. Each existing transaction absorbs at most one incoming
// duplicate, so a payload legitimately carrying two identical events keeps
// the second.
func FilterNew(existing, incoming []*Transaction) []*Transaction {
	used := make([]bool, len(existing))
	newOnly := make([]*Transaction, 0, len(incoming))

	for _, in := range incoming {
		matched := false
		for i, ex := range existing {
			if used[i] {
				continue
			}
			if ex.Matches(in) {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			newOnly = append(newOnly, in)
		}
	}
	return newOnly
}
