package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for payroll.Employee.
type EmployeeModel struct {
	BaseModel
	Name           string          `gorm:"size:255;not null;index"`
	JoiningDate    time.Time       `gorm:"not null"`
	BaseSalary     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for EmployeeModel
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts EmployeeModel to a domain Employee
func (m *EmployeeModel) ToDomain() *payroll.Employee {
	return &payroll.Employee{
		BaseEntity:     m.BaseModel.ToDomain(),
		Name:           m.Name,
		JoiningDate:    m.JoiningDate,
		BaseSalary:     m.BaseSalary,
		CurrentBalance: m.CurrentBalance,
	}
}

// EmployeeModelFromDomain creates an EmployeeModel from a domain Employee
func EmployeeModelFromDomain(e *payroll.Employee) *EmployeeModel {
	model := &EmployeeModel{
		Name:           e.Name,
		JoiningDate:    e.JoiningDate,
		BaseSalary:     e.BaseSalary,
		CurrentBalance: e.CurrentBalance,
	}
	model.FromDomainBaseEntity(e.BaseEntity)
	return model
}

// AttendanceModel is the persistence model for payroll.Attendance.
// The unique index enforces at most one row per (employee, date).
type AttendanceModel struct {
	BaseModel
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_employee_date"`
	Date       time.Time `gorm:"not null;uniqueIndex:idx_attendance_employee_date"`
	Status     string    `gorm:"size:20;not null"`
}

// TableName returns the table name for AttendanceModel
func (AttendanceModel) TableName() string {
	return "attendance_records"
}

// ToDomain converts AttendanceModel to a domain Attendance
func (m *AttendanceModel) ToDomain() *payroll.Attendance {
	return &payroll.Attendance{
		BaseEntity: m.BaseModel.ToDomain(),
		EmployeeID: m.EmployeeID,
		Date:       payroll.DateOnly(m.Date),
		Status:     payroll.AttendanceStatus(m.Status),
	}
}

// AttendanceModelFromDomain creates an AttendanceModel from a domain Attendance
func AttendanceModelFromDomain(a *payroll.Attendance) *AttendanceModel {
	model := &AttendanceModel{
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		Status:     a.Status.String(),
	}
	model.FromDomainBaseEntity(a.BaseEntity)
	return model
}

// TransactionModel is the persistence model for payroll.Transaction.
type TransactionModel struct {
	BaseModel
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_transaction_employee_date"`
	Type        string          `gorm:"size:20;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"size:500"`
	Date        time.Time       `gorm:"not null;index:idx_transaction_employee_date"`
}

// TableName returns the table name for TransactionModel
func (TransactionModel) TableName() string {
	return "payroll_transactions"
}

// ToDomain converts TransactionModel to a domain Transaction
func (m *TransactionModel) ToDomain() *payroll.Transaction {
	return &payroll.Transaction{
		BaseEntity:  m.BaseModel.ToDomain(),
		EmployeeID:  m.EmployeeID,
		Type:        payroll.TransactionType(m.Type),
		Amount:      m.Amount,
		Description: m.Description,
		Date:        payroll.DateOnly(m.Date),
	}
}

// TransactionModelFromDomain creates a TransactionModel from a domain Transaction
func TransactionModelFromDomain(t *payroll.Transaction) *TransactionModel {
	model := &TransactionModel{
		EmployeeID:  t.EmployeeID,
		Type:        t.Type.String(),
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
	}
	model.FromDomainBaseEntity(t.BaseEntity)
	return model
}

// MonthlyBalanceModel is the persistence model for payroll.MonthlyBalance.
// Rows are append-only; Sequence orders the snapshots within (employee, month)
// and the highest sequence is the authoritative one.
type MonthlyBalanceModel struct {
	BaseModel
	EmployeeID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_balance_employee_month"`
	Month           string          `gorm:"size:7;not null;index:idx_balance_employee_month"`
	CarryForward    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SalaryEarned    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalDeductions decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NetPayable      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AmountPaid      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NewCarryForward decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Sequence        int64           `gorm:"not null"`
}

// TableName returns the table name for MonthlyBalanceModel
func (MonthlyBalanceModel) TableName() string {
	return "monthly_balances"
}

// ToDomain converts MonthlyBalanceModel to a domain MonthlyBalance
func (m *MonthlyBalanceModel) ToDomain() (*payroll.MonthlyBalance, error) {
	month, err := payroll.ParseMonth(m.Month)
	if err != nil {
		return nil, err
	}
	return &payroll.MonthlyBalance{
		BaseEntity:      m.BaseModel.ToDomain(),
		EmployeeID:      m.EmployeeID,
		Month:           month,
		CarryForward:    m.CarryForward,
		SalaryEarned:    m.SalaryEarned,
		TotalDeductions: m.TotalDeductions,
		NetPayable:      m.NetPayable,
		AmountPaid:      m.AmountPaid,
		NewCarryForward: m.NewCarryForward,
		Sequence:        m.Sequence,
	}, nil
}

// MonthlyBalanceModelFromDomain creates a MonthlyBalanceModel from a domain MonthlyBalance
func MonthlyBalanceModelFromDomain(b *payroll.MonthlyBalance) *MonthlyBalanceModel {
	model := &MonthlyBalanceModel{
		EmployeeID:      b.EmployeeID,
		Month:           b.Month.String(),
		CarryForward:    b.CarryForward,
		SalaryEarned:    b.SalaryEarned,
		TotalDeductions: b.TotalDeductions,
		NetPayable:      b.NetPayable,
		AmountPaid:      b.AmountPaid,
		NewCarryForward: b.NewCarryForward,
		Sequence:        b.Sequence,
	}
	model.FromDomainBaseEntity(b.BaseEntity)
	return model
}
