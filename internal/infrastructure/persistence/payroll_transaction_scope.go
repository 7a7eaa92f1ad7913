package persistence

import (
	"context"

	apppayroll "github.com/shopledger/backend/internal/application/payroll"
	"github.com/shopledger/backend/internal/domain/payroll"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apppayroll.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// EmployeeRepo returns the employee repository scoped to the current transaction.
func (r *gormTransactionalRepositories) EmployeeRepo() payroll.EmployeeRepository {
	return NewGormEmployeeRepository(r.tx)
}

// AttendanceRepo returns the attendance repository scoped to the current transaction.
func (r *gormTransactionalRepositories) AttendanceRepo() payroll.AttendanceRepository {
	return NewGormAttendanceRepository(r.tx)
}

// TransactionRepo returns the payroll transaction repository scoped to the current transaction.
func (r *gormTransactionalRepositories) TransactionRepo() payroll.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// BalanceRepo returns the monthly balance repository scoped to the current transaction.
func (r *gormTransactionalRepositories) BalanceRepo() payroll.MonthlyBalanceRepository {
	return NewGormMonthlyBalanceRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ apppayroll.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ apppayroll.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
