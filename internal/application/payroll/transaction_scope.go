package payroll

import (
	"context"

	"github.com/shopledger/backend/internal/domain/payroll"
)

// TransactionScope provides transactional access to payroll repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed or
// rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all payroll repositories within
// a transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// EmployeeRepo returns the employee repository scoped to the current transaction
	EmployeeRepo() payroll.EmployeeRepository
	// AttendanceRepo returns the attendance repository scoped to the current transaction
	AttendanceRepo() payroll.AttendanceRepository
	// TransactionRepo returns the payroll transaction repository scoped to the current transaction
	TransactionRepo() payroll.TransactionRepository
	// BalanceRepo returns the monthly balance repository scoped to the current transaction
	BalanceRepo() payroll.MonthlyBalanceRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	employeeRepo    payroll.EmployeeRepository
	attendanceRepo  payroll.AttendanceRepository
	transactionRepo payroll.TransactionRepository
	balanceRepo     payroll.MonthlyBalanceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	employeeRepo payroll.EmployeeRepository,
	attendanceRepo payroll.AttendanceRepository,
	transactionRepo payroll.TransactionRepository,
	balanceRepo payroll.MonthlyBalanceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		employeeRepo:    employeeRepo,
		attendanceRepo:  attendanceRepo,
		transactionRepo: transactionRepo,
		balanceRepo:     balanceRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// EmployeeRepo returns the employee repository.
func (s *NoOpTransactionScope) EmployeeRepo() payroll.EmployeeRepository {
	return s.employeeRepo
}

// AttendanceRepo returns the attendance repository.
func (s *NoOpTransactionScope) AttendanceRepo() payroll.AttendanceRepository {
	return s.attendanceRepo
}

// TransactionRepo returns the payroll transaction repository.
func (s *NoOpTransactionScope) TransactionRepo() payroll.TransactionRepository {
	return s.transactionRepo
}

// BalanceRepo returns the monthly balance repository.
func (s *NoOpTransactionScope) BalanceRepo() payroll.MonthlyBalanceRepository {
	return s.balanceRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
