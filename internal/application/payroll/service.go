package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/payroll"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PayrollService orchestrates the payroll ledger: employee registration,
// month recomputation, attendance edits, transaction deletion and daily bulk
// marking. Every read-modify-write sequence holds the employee's lock and runs
// its writes inside one database transaction, so concurrent edits for the same
// employee serialize and partial failures roll back together.
type PayrollService struct {
	employeeRepo   payroll.EmployeeRepository
	attendanceRepo payroll.AttendanceRepository
	balanceRepo    payroll.MonthlyBalanceRepository
	scope          TransactionScope
	ledger         CarryForwardLedger
	locks          *employeeLocks
	logger         *zap.Logger
	now            func() time.Time
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(
	employeeRepo payroll.EmployeeRepository,
	attendanceRepo payroll.AttendanceRepository,
	balanceRepo payroll.MonthlyBalanceRepository,
	scope TransactionScope,
	logger *zap.Logger,
) *PayrollService {
	return &PayrollService{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		balanceRepo:    balanceRepo,
		scope:          scope,
		locks:          newEmployeeLocks(),
		logger:         logger,
		now:            time.Now,
	}
}

// CreateEmployee registers a new employee.
func (s *PayrollService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*EmployeeResponse, error) {
	employee, err := payroll.NewEmployee(input.Name, input.JoiningDate, input.BaseSalary, input.CurrentBalance)
	if err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("create employee %q: %w", input.Name, err)
	}

	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// GetEmployee returns an employee with their monthly balance history.
func (s *PayrollService) GetEmployee(ctx context.Context, employeeID uuid.UUID) (*EmployeeDetailResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	balances, err := s.balanceRepo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("load balance history for employee %s: %w", employeeID, err)
	}

	months := make([]MonthlyBalanceResponse, 0, len(balances))
	for _, b := range balances {
		months = append(months, ToMonthlyBalanceResponse(b))
	}

	return &EmployeeDetailResponse{
		EmployeeResponse: ToEmployeeResponse(employee),
		Months:           months,
	}, nil
}

// ListEmployees returns all employees ordered by name.
func (s *PayrollService) ListEmployees(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.employeeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, ToEmployeeResponse(e))
	}
	return out, nil
}

// RecomputeMonth applies a transaction payload to a month and recomputes its
// figures. Transactions already persisted for the month are filtered out of
// the payload, so resubmitting the same payload never inserts duplicates. A
// new balance snapshot is appended and the employee's cached balance updated.
func (s *PayrollService) RecomputeMonth(
	ctx context.Context,
	employeeID uuid.UUID,
	month payroll.Month,
	input RecomputeMonthInput,
) (*RecomputeMonthResult, error) {
	if month.IsFuture(s.now()) {
		return nil, shared.ErrFutureMonth
	}

	release := s.locks.acquire(employeeID)
	defer release()

	var result *RecomputeMonthResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		employee, err := repos.EmployeeRepo().FindByID(ctx, employeeID)
		if err != nil {
			return err
		}

		from, to := month.DateRange()
		attendance, err := repos.AttendanceRepo().FindByEmployeeAndRange(ctx, employeeID, from, to)
		if err != nil {
			return fmt.Errorf("load attendance for %s %s: %w", employeeID, month, err)
		}

		workingDays := payroll.WorkingDaysFor(month)
		salary := payroll.CalculateSalary(attendance, employee.BaseSalary, workingDays.WorkingDays)

		existing, err := repos.TransactionRepo().FindByEmployeeAndRange(ctx, employeeID, from, to)
		if err != nil {
			return fmt.Errorf("load transactions for %s %s: %w", employeeID, month, err)
		}

		incoming := make([]*payroll.Transaction, 0, len(input.Transactions))
		for _, in := range input.Transactions {
			tx, err := payroll.NewTransaction(employeeID, in.Type, in.Amount, in.Description, in.Date)
			if err != nil {
				return err
			}
			incoming = append(incoming, tx)
		}
		newOnly := payroll.FilterNew(existing, incoming)

		previousCF, err := s.previousCarryForward(ctx, repos.BalanceRepo(), employeeID, month)
		if err != nil {
			return err
		}

		deductions := payroll.CalculateDeductions(append(existing, newOnly...), previousCF)
		raw := salary.CalculatedSalary.Sub(deductions.TotalDeductions)
		net := clampNonNegative(raw)
		if input.ManualNetPayable != nil {
			net = *input.ManualNetPayable
		}

		for _, tx := range newOnly {
			if err := repos.TransactionRepo().Create(ctx, tx); err != nil {
				return fmt.Errorf("create transaction for %s %s: %w", employeeID, month, err)
			}
		}

		snapshot, err := payroll.NewMonthlyBalance(
			employeeID, month, previousCF,
			salary.CalculatedSalary, deductions.TotalDeductions, net, net,
		)
		if err != nil {
			return err
		}
		if err := s.ledger.Append(ctx, repos.BalanceRepo(), repos.EmployeeRepo(), snapshot); err != nil {
			return fmt.Errorf("append balance snapshot for %s %s: %w", employeeID, month, err)
		}

		result = &RecomputeMonthResult{
			FinalSalary:     net,
			UpdatedBalance:  previousCF,
			TotalDeductions: deductions.TotalDeductions,
			AdvanceAmount:   deductions.AdvanceAmount,
			OtherDeductions: deductions.OtherDeductions,
			NewCarryForward: snapshot.NewCarryForward,
			NewTransactions: toTransactionResponses(newOnly),
			Attendance:      toAttendanceResponses(attendance),
			PresentDays:     salary.PresentDays,
			Absents:         salary.Absents,
			HalfDays:        salary.HalfDays,
			WorkingDays:     workingDays.WorkingDays,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("month recomputed",
		zap.String("employee_id", employeeID.String()),
		zap.String("month", month.String()),
		zap.Int("new_transactions", len(result.NewTransactions)),
		zap.String("net_payable", result.FinalSalary.String()),
		zap.String("new_carry_forward", result.NewCarryForward.String()),
	)
	return result, nil
}

// UpdateAttendance overlays attendance edits onto a month and recomputes its
// figures. The month's transactions are untouched; the current snapshot's
// carry-forward is updated in place. When the month has no snapshot yet, one
// is created so persisted state matches the returned figures.
func (s *PayrollService) UpdateAttendance(
	ctx context.Context,
	employeeID uuid.UUID,
	month payroll.Month,
	entries []AttendanceInput,
) (*UpdateAttendanceResult, error) {
	if month.IsFuture(s.now()) {
		return nil, shared.ErrFutureMonth
	}

	release := s.locks.acquire(employeeID)
	defer release()

	var result *UpdateAttendanceResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		employee, err := repos.EmployeeRepo().FindByID(ctx, employeeID)
		if err != nil {
			return err
		}

		incoming := make([]*payroll.Attendance, 0, len(entries))
		for _, entry := range entries {
			if !month.Contains(entry.Date) {
				return shared.NewDomainError("INVALID_ATTENDANCE",
					fmt.Sprintf("Attendance date %s is outside month %s", entry.Date.Format(time.DateOnly), month))
			}
			record, err := payroll.NewAttendance(employeeID, entry.Date, entry.Status)
			if err != nil {
				return err
			}
			incoming = append(incoming, record)
		}

		from, to := month.DateRange()
		existing, err := repos.AttendanceRepo().FindByEmployeeAndRange(ctx, employeeID, from, to)
		if err != nil {
			return fmt.Errorf("load attendance for %s %s: %w", employeeID, month, err)
		}

		merged := payroll.MergeAttendance(existing, incoming)
		for _, record := range incoming {
			if err := repos.AttendanceRepo().Upsert(ctx, record); err != nil {
				return fmt.Errorf("upsert attendance for %s on %s: %w", employeeID, record.Date.Format(time.DateOnly), err)
			}
		}

		workingDays := payroll.WorkingDaysFor(month)
		salary := payroll.CalculateSalary(merged, employee.BaseSalary, workingDays.WorkingDays)

		transactions, err := repos.TransactionRepo().FindByEmployeeAndRange(ctx, employeeID, from, to)
		if err != nil {
			return fmt.Errorf("load transactions for %s %s: %w", employeeID, month, err)
		}

		previousCF, err := s.previousCarryForward(ctx, repos.BalanceRepo(), employeeID, month)
		if err != nil {
			return err
		}

		deductions := payroll.CalculateDeductions(transactions, previousCF)
		raw := salary.CalculatedSalary.Sub(deductions.TotalDeductions)
		net := clampNonNegative(raw)
		carryForward := payroll.CarryForwardFrom(raw)

		latest, err := repos.BalanceRepo().FindLatest(ctx, employeeID, month)
		switch {
		case err == nil:
			if err := s.ledger.Update(ctx, repos.BalanceRepo(), repos.EmployeeRepo(), latest, carryForward); err != nil {
				return fmt.Errorf("update carry-forward for %s %s: %w", employeeID, month, err)
			}
		case errors.Is(err, shared.ErrNotFound):
			snapshot, err := payroll.NewMonthlyBalance(
				employeeID, month, previousCF,
				salary.CalculatedSalary, deductions.TotalDeductions, net, net,
			)
			if err != nil {
				return err
			}
			if err := s.ledger.Append(ctx, repos.BalanceRepo(), repos.EmployeeRepo(), snapshot); err != nil {
				return fmt.Errorf("append balance snapshot for %s %s: %w", employeeID, month, err)
			}
		default:
			return fmt.Errorf("load balance snapshot for %s %s: %w", employeeID, month, err)
		}

		result = &UpdateAttendanceResult{
			CalculatedSalary: salary.CalculatedSalary,
			NetPayable:       net,
			TotalDeductions:  deductions.TotalDeductions,
			AdvanceAmount:    deductions.AdvanceAmount,
			OtherDeductions:  deductions.OtherDeductions,
			NewCarryForward:  carryForward,
			Attendance:       toAttendanceResponses(merged),
			PresentDays:      salary.PresentDays,
			Absents:          salary.Absents,
			HalfDays:         salary.HalfDays,
			WorkingDays:      workingDays.WorkingDays,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("attendance updated",
		zap.String("employee_id", employeeID.String()),
		zap.String("month", month.String()),
		zap.Int("entries", len(entries)),
		zap.String("new_carry_forward", result.NewCarryForward.String()),
	)
	return result, nil
}

// DeleteTransaction removes a transaction and recomputes its month from the
// remaining ones, appending a fresh balance snapshot. This is the correction
// path for a wrongly entered transaction; re-adding an identical one through
// RecomputeMonth restores the prior figures.
func (s *PayrollService) DeleteTransaction(
	ctx context.Context,
	employeeID uuid.UUID,
	transactionID uuid.UUID,
) (*DeleteTransactionResult, error) {
	release := s.locks.acquire(employeeID)
	defer release()

	var result *DeleteTransactionResult
	var month payroll.Month
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		employee, err := repos.EmployeeRepo().FindByID(ctx, employeeID)
		if err != nil {
			return err
		}

		tx, err := repos.TransactionRepo().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if tx.EmployeeID != employeeID {
			return shared.ErrNotFound
		}

		month = tx.Month()
		if err := repos.TransactionRepo().Delete(ctx, transactionID); err != nil {
			return fmt.Errorf("delete transaction %s: %w", transactionID, err)
		}

		from, to := month.DateRange()
		attendance, err := repos.AttendanceRepo().FindByEmployeeAndRange(ctx, employeeID, from, to)
		if err != nil {
			return fmt.Errorf("load attendance for %s %s: %w", employeeID, month, err)
		}

		workingDays := payroll.WorkingDaysFor(month)
		salary := payroll.CalculateSalary(attendance, employee.BaseSalary, workingDays.WorkingDays)

		remaining, err := repos.TransactionRepo().FindByEmployeeAndRange(ctx, employeeID, from, to)
		if err != nil {
			return fmt.Errorf("load transactions for %s %s: %w", employeeID, month, err)
		}

		previousCF, err := s.previousCarryForward(ctx, repos.BalanceRepo(), employeeID, month)
		if err != nil {
			return err
		}

		deductions := payroll.CalculateDeductions(remaining, previousCF)
		net := salary.CalculatedSalary.Sub(deductions.TotalDeductions)

		snapshot, err := payroll.NewMonthlyBalance(
			employeeID, month, previousCF,
			salary.CalculatedSalary, deductions.TotalDeductions, net, clampNonNegative(net),
		)
		if err != nil {
			return err
		}
		if err := s.ledger.Append(ctx, repos.BalanceRepo(), repos.EmployeeRepo(), snapshot); err != nil {
			return fmt.Errorf("append balance snapshot for %s %s: %w", employeeID, month, err)
		}

		result = &DeleteTransactionResult{
			UpdatedBalance:  previousCF,
			UpdatedSalary:   net,
			TotalDeductions: deductions.TotalDeductions,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transaction deleted",
		zap.String("employee_id", employeeID.String()),
		zap.String("transaction_id", transactionID.String()),
		zap.String("month", month.String()),
		zap.String("updated_salary", result.UpdatedSalary.String()),
	)
	return result, nil
}

// BulkDailyAttendance marks one day's attendance for many employees at once,
// resolving each by name. Entries whose name does not resolve are logged and
// skipped; the rest of the batch proceeds.
func (s *PayrollService) BulkDailyAttendance(
	ctx context.Context,
	date time.Time,
	entries []DailyAttendanceEntry,
) ([]DailyAttendanceResult, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_ATTENDANCE", "Attendance date is required")
	}
	for _, entry := range entries {
		if !entry.Status.IsValid() {
			return nil, shared.NewDomainError("INVALID_ATTENDANCE",
				fmt.Sprintf("Invalid attendance status %q for %q", entry.Status, entry.EmployeeName))
		}
	}

	results := make([]DailyAttendanceResult, 0, len(entries))
	for _, entry := range entries {
		employee, err := s.employeeRepo.FindByName(ctx, entry.EmployeeName)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("skipping daily attendance for unknown employee",
					zap.String("employee_name", entry.EmployeeName),
					zap.Time("date", date),
				)
				continue
			}
			return nil, fmt.Errorf("resolve employee %q: %w", entry.EmployeeName, err)
		}

		record, err := payroll.NewAttendance(employee.ID, date, entry.Status)
		if err != nil {
			return nil, err
		}

		release := s.locks.acquire(employee.ID)
		err = s.attendanceRepo.Upsert(ctx, record)
		release()
		if err != nil {
			return nil, fmt.Errorf("upsert attendance for %q on %s: %w", entry.EmployeeName, date.Format(time.DateOnly), err)
		}

		results = append(results, DailyAttendanceResult{
			EmployeeID:   employee.ID,
			EmployeeName: employee.Name,
			Status:       entry.Status,
		})
	}

	s.logger.Info("daily attendance recorded",
		zap.Time("date", date),
		zap.Int("requested", len(entries)),
		zap.Int("applied", len(results)),
	)
	return results, nil
}

// previousCarryForward returns the carry-forward rolling into a month: the
// NewCarryForward of the previous month's latest snapshot, or zero when that
// month has none.
func (s *PayrollService) previousCarryForward(
	ctx context.Context,
	balances payroll.MonthlyBalanceRepository,
	employeeID uuid.UUID,
	month payroll.Month,
) (decimal.Decimal, error) {
	latest, err := balances.FindLatest(ctx, employeeID, month.Prev())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Decimal{}, fmt.Errorf("load previous balance for %s %s: %w", employeeID, month.Prev(), err)
	}
	return latest.NewCarryForward, nil
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
