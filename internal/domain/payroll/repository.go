package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeBalanceWriter is the write capability for the cached
// Employee.CurrentBalance. It is segregated from EmployeeRepository so only
// the carry-forward ledger can hold it.
type EmployeeBalanceWriter interface {
	// UpdateBalance sets the cached carry-forward balance of an employee.
	UpdateBalance(ctx context.Context, employeeID uuid.UUID, balance decimal.Decimal) error
}

// EmployeeRepository defines the persistence interface for employees.
type EmployeeRepository interface {
	EmployeeBalanceWriter

	// Create persists a new employee.
	Create(ctx context.Context, employee *Employee) error

	// FindByID finds an employee by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)

	// FindByName finds an employee by name, matched case-insensitively.
	FindByName(ctx context.Context, name string) (*Employee, error)

	// FindAll lists all employees ordered by name.
	FindAll(ctx context.Context) ([]*Employee, error)
}

// AttendanceRepository defines the persistence interface for attendance.
type AttendanceRepository interface {
	// FindByEmployeeAndRange returns the attendance records for an employee
	// with dates in [from, to], ordered by date.
	FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]*Attendance, error)

	// Upsert writes the status for (employee, date), replacing any existing
	// record for that day. There is never more than one row per day.
	Upsert(ctx context.Context, attendance *Attendance) error
}

// TransactionRepository defines the persistence interface for transactions.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, transaction *Transaction) error

	// FindByID finds a transaction by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindByEmployeeAndRange returns the transactions for an employee with
	// dates in [from, to], ordered by date.
	FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]*Transaction, error)

	// Delete removes a transaction by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MonthlyBalanceRepository defines the persistence interface for balance
// snapshots.
type MonthlyBalanceRepository interface {
	// Create appends a new snapshot, assigning it the next sequence within
	// (employee, month).
	Create(ctx context.Context, balance *MonthlyBalance) error

	// FindLatest returns the snapshot with the highest sequence for
	// (employee, month), or shared.ErrNotFound if the month has none.
	FindLatest(ctx context.Context, employeeID uuid.UUID, month Month) (*MonthlyBalance, error)

	// FindByEmployee returns the latest snapshot of every month for an
	// employee, most recent month first.
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*MonthlyBalance, error)

	// UpdateCarryForward overwrites the NewCarryForward column of a snapshot
	// in place. This is the only mutation ever applied to a persisted
	// snapshot; all other changes append new rows.
	UpdateCarryForward(ctx context.Context, id uuid.UUID, value decimal.Decimal) error
}
