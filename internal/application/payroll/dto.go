package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CreateEmployeeInput carries the fields required to register an employee.
type CreateEmployeeInput struct {
	Name           string
	JoiningDate    time.Time
	BaseSalary     decimal.Decimal
	CurrentBalance decimal.Decimal
}

// EmployeeResponse is the external representation of an employee.
type EmployeeResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	JoiningDate    time.Time       `json:"joining_date"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// EmployeeDetailResponse is an employee with their monthly balance history,
// latest snapshot per month, most recent month first.
type EmployeeDetailResponse struct {
	EmployeeResponse
	Months []MonthlyBalanceResponse `json:"months"`
}

// MonthlyBalanceResponse is the external representation of a balance snapshot.
type MonthlyBalanceResponse struct {
	Month           string          `json:"month"`
	CarryForward    decimal.Decimal `json:"carry_forward"`
	SalaryEarned    decimal.Decimal `json:"salary_earned"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPayable      decimal.Decimal `json:"net_payable"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	NewCarryForward decimal.Decimal `json:"new_carry_forward"`
}

// TransactionInput carries one transaction submitted for a month.
type TransactionInput struct {
	Type        payroll.TransactionType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// TransactionResponse is the external representation of a transaction.
type TransactionResponse struct {
	ID          uuid.UUID               `json:"id"`
	Type        payroll.TransactionType `json:"type"`
	Amount      decimal.Decimal         `json:"amount"`
	Description string                  `json:"description"`
	Date        time.Time               `json:"date"`
}

// AttendanceInput carries one attendance edit for a month.
type AttendanceInput struct {
	Date   time.Time
	Status payroll.AttendanceStatus
}

// AttendanceResponse is the external representation of an attendance record.
type AttendanceResponse struct {
	Date   time.Time                `json:"date"`
	Status payroll.AttendanceStatus `json:"status"`
}

// RecomputeMonthInput carries the transaction payload for a month recompute.
// ManualNetPayable, when set, overrides the computed net payable; the
// carry-forward is still derived from the computed figure.
type RecomputeMonthInput struct {
	Transactions     []TransactionInput
	ManualNetPayable *decimal.Decimal
}

// RecomputeMonthResult reports the full state of a month after a recompute.
type RecomputeMonthResult struct {
	FinalSalary     decimal.Decimal       `json:"final_salary"`
	UpdatedBalance  decimal.Decimal       `json:"updated_balance"`
	TotalDeductions decimal.Decimal       `json:"total_deductions"`
	AdvanceAmount   decimal.Decimal       `json:"advance_amount"`
	OtherDeductions decimal.Decimal       `json:"other_deductions"`
	NewCarryForward decimal.Decimal       `json:"new_carry_forward"`
	NewTransactions []TransactionResponse `json:"new_transactions"`
	Attendance      []AttendanceResponse  `json:"attendance"`
	PresentDays     decimal.Decimal       `json:"present_days"`
	Absents         int                   `json:"absents"`
	HalfDays        int                   `json:"half_days"`
	WorkingDays     int                   `json:"working_days"`
}

// UpdateAttendanceResult reports the recomputed figures after attendance edits.
type UpdateAttendanceResult struct {
	CalculatedSalary decimal.Decimal      `json:"calculated_salary"`
	NetPayable       decimal.Decimal      `json:"net_payable"`
	TotalDeductions  decimal.Decimal      `json:"total_deductions"`
	AdvanceAmount    decimal.Decimal      `json:"advance_amount"`
	OtherDeductions  decimal.Decimal      `json:"other_deductions"`
	NewCarryForward  decimal.Decimal      `json:"new_carry_forward"`
	Attendance       []AttendanceResponse `json:"attendance"`
	PresentDays      decimal.Decimal      `json:"present_days"`
	Absents          int                  `json:"absents"`
	HalfDays         int                  `json:"half_days"`
	WorkingDays      int                  `json:"working_days"`
}

// DeleteTransactionResult reports the month's figures after a deletion.
type DeleteTransactionResult struct {
	UpdatedBalance  decimal.Decimal `json:"updated_balance"`
	UpdatedSalary   decimal.Decimal `json:"updated_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
}

// DailyAttendanceEntry is one employee's status in a daily bulk marking.
type DailyAttendanceEntry struct {
	EmployeeName string
	Status       payroll.AttendanceStatus
}

// DailyAttendanceResult reports one applied entry of a daily bulk marking.
// Entries whose employee name did not resolve are absent from the results.
type DailyAttendanceResult struct {
	EmployeeID   uuid.UUID                `json:"employee_id"`
	EmployeeName string                   `json:"employee_name"`
	Status       payroll.AttendanceStatus `json:"status"`
}

// ToEmployeeResponse converts a domain employee to its external representation.
func ToEmployeeResponse(e *payroll.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		JoiningDate:    e.JoiningDate,
		BaseSalary:     e.BaseSalary,
		CurrentBalance: e.CurrentBalance,
		CreatedAt:      e.CreatedAt,
	}
}

// ToTransactionResponse converts a domain transaction to its external representation.
func ToTransactionResponse(t *payroll.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
	}
}

// ToMonthlyBalanceResponse converts a domain snapshot to its external representation.
func ToMonthlyBalanceResponse(b *payroll.MonthlyBalance) MonthlyBalanceResponse {
	return MonthlyBalanceResponse{
		Month:           b.Month.String(),
		CarryForward:    b.CarryForward,
		SalaryEarned:    b.SalaryEarned,
		TotalDeductions: b.TotalDeductions,
		NetPayable:      b.NetPayable,
		AmountPaid:      b.AmountPaid,
		NewCarryForward: b.NewCarryForward,
	}
}

func toAttendanceResponses(records []*payroll.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, AttendanceResponse{Date: a.Date, Status: a.Status})
	}
	return out
}

func toTransactionResponses(transactions []*payroll.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}
