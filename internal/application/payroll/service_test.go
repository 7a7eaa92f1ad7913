package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/payroll"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockEmployeeRepository is a mock implementation of payroll.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *payroll.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByName(ctx context.Context, name string) (*payroll.Employee, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context) ([]*payroll.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payroll.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) UpdateBalance(ctx context.Context, employeeID uuid.UUID, balance decimal.Decimal) error {
	args := m.Called(ctx, employeeID, balance)
	return args.Error(0)
}

// MockAttendanceRepository is a mock implementation of payroll.AttendanceRepository
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]*payroll.Attendance, error) {
	args := m.Called(ctx, employeeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payroll.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) Upsert(ctx context.Context, attendance *payroll.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of payroll.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *payroll.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]*payroll.Transaction, error) {
	args := m.Called(ctx, employeeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payroll.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMonthlyBalanceRepository is a mock implementation of payroll.MonthlyBalanceRepository
type MockMonthlyBalanceRepository struct {
	mock.Mock
}

func (m *MockMonthlyBalanceRepository) Create(ctx context.Context, balance *payroll.MonthlyBalance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

func (m *MockMonthlyBalanceRepository) FindLatest(ctx context.Context, employeeID uuid.UUID, month payroll.Month) (*payroll.MonthlyBalance, error) {
	args := m.Called(ctx, employeeID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.MonthlyBalance), args.Error(1)
}

func (m *MockMonthlyBalanceRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*payroll.MonthlyBalance, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payroll.MonthlyBalance), args.Error(1)
}

func (m *MockMonthlyBalanceRepository) UpdateCarryForward(ctx context.Context, id uuid.UUID, value decimal.Decimal) error {
	args := m.Called(ctx, id, value)
	return args.Error(0)
}

type serviceMocks struct {
	employees    *MockEmployeeRepository
	attendance   *MockAttendanceRepository
	transactions *MockTransactionRepository
	balances     *MockMonthlyBalanceRepository
}

func newServiceForTest(now time.Time) (*PayrollService, serviceMocks) {
	mocks := serviceMocks{
		employees:    new(MockEmployeeRepository),
		attendance:   new(MockAttendanceRepository),
		transactions: new(MockTransactionRepository),
		balances:     new(MockMonthlyBalanceRepository),
	}
	scope := NewNoOpTransactionScope(mocks.employees, mocks.attendance, mocks.transactions, mocks.balances)
	svc := NewPayrollService(mocks.employees, mocks.attendance, mocks.balances, scope, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc, mocks
}

func testEmployee(t *testing.T, name string, baseSalary int64) *payroll.Employee {
	t.Helper()
	e, err := payroll.NewEmployee(name,
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(baseSalary), decimal.Zero)
	require.NoError(t, err)
	return e
}

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

var testNow = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

func TestCreateEmployee(t *testing.T) {
	t.Run("persists a valid employee", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)
		mocks.employees.On("Create", mock.Anything, mock.AnythingOfType("*payroll.Employee")).Return(nil)

		resp, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{
			Name:           "Ravi Kumar",
			JoiningDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			BaseSalary:     dec(3000),
			CurrentBalance: decimal.Zero,
		})

		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", resp.Name)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		mocks.employees.AssertExpectations(t)
	})

	t.Run("rejects missing name without touching storage", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)

		_, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{
			JoiningDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			BaseSalary:  dec(3000),
		})

		assert.Error(t, err)
		mocks.employees.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRecomputeMonth(t *testing.T) {
	ctx := context.Background()
	june, err := payroll.ParseMonth("2025-06")
	require.NoError(t, err)
	from, to := june.DateRange()

	t.Run("rejects a future month", func(t *testing.T) {
		svc, _ := newServiceForTest(testNow)

		_, err := svc.RecomputeMonth(ctx, uuid.New(), payroll.MonthOf(testNow).Next(), RecomputeMonthInput{})

		assert.ErrorIs(t, err, shared.ErrFutureMonth)
	})

	t.Run("fails when the employee does not exist", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)
		employeeID := uuid.New()
		mocks.employees.On("FindByID", mock.Anything, employeeID).Return(nil, shared.ErrNotFound)

		_, err := svc.RecomputeMonth(ctx, employeeID, june, RecomputeMonthInput{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("chains the previous month's carry-forward into deductions", func(t *testing.T) {
		// Prior month ended 500 short; this month earns 2000 with a 300 advance:
		// deductions = 300 + 500 = 800, net = 1200, nothing carries forward.
		svc, mocks := newServiceForTest(testNow)
		employee := testEmployee(t, "Ravi Kumar", 2000)

		mocks.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
		mocks.attendance.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).Return(nil, nil)
		mocks.transactions.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).Return(nil, nil)
		mocks.balances.On("FindLatest", mock.Anything, employee.ID, june.Prev()).
			Return(&payroll.MonthlyBalance{NewCarryForward: dec(500)}, nil)
		mocks.transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *payroll.Transaction) bool {
			return tx.Type == payroll.TransactionTypeAdvance && tx.Amount.Equal(dec(300))
		})).Return(nil)
		mocks.balances.On("Create", mock.Anything, mock.MatchedBy(func(b *payroll.MonthlyBalance) bool {
			return b.NetPayable.Equal(dec(1200)) &&
				b.CarryForward.Equal(dec(500)) &&
				b.TotalDeductions.Equal(dec(800)) &&
				b.NewCarryForward.IsZero()
		})).Return(nil)
		mocks.employees.On("UpdateBalance", mock.Anything, employee.ID, decimal.Zero).Return(nil)

		result, err := svc.RecomputeMonth(ctx, employee.ID, june, RecomputeMonthInput{
			Transactions: []TransactionInput{{
				Type:        payroll.TransactionTypeAdvance,
				Amount:      dec(300),
				Description: "advance",
				Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			}},
		})

		require.NoError(t, err)
		assert.True(t, result.FinalSalary.Equal(dec(1200)), "got %s", result.FinalSalary)
		assert.True(t, result.UpdatedBalance.Equal(dec(500)))
		assert.True(t, result.TotalDeductions.Equal(dec(800)))
		assert.True(t, result.AdvanceAmount.Equal(dec(300)))
		assert.True(t, result.NewCarryForward.IsZero())
		assert.Len(t, result.NewTransactions, 1)
		assert.Equal(t, 26, result.WorkingDays)
		mocks.balances.AssertExpectations(t)
		mocks.transactions.AssertExpectations(t)
	})

	t.Run("resubmitting the same payload inserts no duplicates", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)
		employee := testEmployee(t, "Ravi Kumar", 3000)

		stored, err := payroll.NewTransaction(employee.ID, payroll.TransactionTypeAdvance,
			dec(300), "advance", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		mocks.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
		mocks.attendance.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).Return(nil, nil)
		mocks.transactions.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).
			Return([]*payroll.Transaction{stored}, nil)
		mocks.balances.On("FindLatest", mock.Anything, employee.ID, june.Prev()).Return(nil, shared.ErrNotFound)
		mocks.balances.On("Create", mock.Anything, mock.AnythingOfType("*payroll.MonthlyBalance")).Return(nil)
		mocks.employees.On("UpdateBalance", mock.Anything, employee.ID, decimal.Zero).Return(nil)

		result, err := svc.RecomputeMonth(ctx, employee.ID, june, RecomputeMonthInput{
			Transactions: []TransactionInput{{
				Type:        payroll.TransactionTypeAdvance,
				Amount:      dec(300),
				Description: "advance",
				Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			}},
		})

		require.NoError(t, err)
		assert.Empty(t, result.NewTransactions)
		// The stored transaction still counts toward deductions.
		assert.True(t, result.TotalDeductions.Equal(dec(300)))
		mocks.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("manual override replaces the net payable but not the carry-forward", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)
		employee := testEmployee(t, "Ravi Kumar", 3000)
		override := dec(2500)

		mocks.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
		mocks.attendance.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).Return(nil, nil)
		mocks.transactions.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).Return(nil, nil)
		mocks.balances.On("FindLatest", mock.Anything, employee.ID, june.Prev()).Return(nil, shared.ErrNotFound)
		mocks.balances.On("Create", mock.Anything, mock.MatchedBy(func(b *payroll.MonthlyBalance) bool {
			return b.NetPayable.Equal(override) && b.NewCarryForward.IsZero()
		})).Return(nil)
		mocks.employees.On("UpdateBalance", mock.Anything, employee.ID, decimal.Zero).Return(nil)

		result, err := svc.RecomputeMonth(ctx, employee.ID, june, RecomputeMonthInput{
			ManualNetPayable: &override,
		})

		require.NoError(t, err)
		assert.True(t, result.FinalSalary.Equal(override))
		assert.True(t, result.NewCarryForward.IsZero())
		mocks.balances.AssertExpectations(t)
	})
}

func TestUpdateAttendance(t *testing.T) {
	ctx := context.Background()
	june, err := payroll.ParseMonth("2025-06")
	require.NoError(t, err)
	from, to := june.DateRange()

	t.Run("updates the existing snapshot in place", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)
		employee := testEmployee(t, "Ravi Kumar", 3000)
		snapshot := &payroll.MonthlyBalance{BaseEntity: shared.NewBaseEntity(), EmployeeID: employee.ID, Month: june}

		mocks.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
		mocks.attendance.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).Return(nil, nil)
		mocks.attendance.On("Upsert", mock.Anything, mock.MatchedBy(func(a *payroll.Attendance) bool {
			return a.Status == payroll.AttendanceAbsent
		})).Return(nil)
		mocks.transactions.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).Return(nil, nil)
		mocks.balances.On("FindLatest", mock.Anything, employee.ID, june.Prev()).Return(nil, shared.ErrNotFound)
		mocks.balances.On("FindLatest", mock.Anything, employee.ID, june).Return(snapshot, nil)
		mocks.balances.On("UpdateCarryForward", mock.Anything, snapshot.ID, decimal.Zero).Return(nil)
		mocks.employees.On("UpdateBalance", mock.Anything, employee.ID, decimal.Zero).Return(nil)

		result, err := svc.UpdateAttendance(ctx, employee.ID, june, []AttendanceInput{{
			Date:   time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
			Status: payroll.AttendanceAbsent,
		}})

		require.NoError(t, err)
		// One absence at 3000/30 = 100 per day.
		assert.True(t, result.CalculatedSalary.Equal(dec(2900)), "got %s", result.CalculatedSalary)
		assert.True(t, result.NetPayable.Equal(dec(2900)))
		assert.Equal(t, 1, result.Absents)
		assert.Len(t, result.Attendance, 1)
		mocks.balances.AssertExpectations(t)
		mocks.balances.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates the snapshot when the month has none", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)
		employee := testEmployee(t, "Ravi Kumar", 3000)

		mocks.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
		mocks.attendance.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).Return(nil, nil)
		mocks.attendance.On("Upsert", mock.Anything, mock.AnythingOfType("*payroll.Attendance")).Return(nil)
		mocks.transactions.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).Return(nil, nil)
		mocks.balances.On("FindLatest", mock.Anything, employee.ID, june.Prev()).Return(nil, shared.ErrNotFound)
		mocks.balances.On("FindLatest", mock.Anything, employee.ID, june).Return(nil, shared.ErrNotFound)
		mocks.balances.On("Create", mock.Anything, mock.MatchedBy(func(b *payroll.MonthlyBalance) bool {
			return b.Month == june && b.NetPayable.Equal(dec(2900))
		})).Return(nil)
		mocks.employees.On("UpdateBalance", mock.Anything, employee.ID, decimal.Zero).Return(nil)

		_, err := svc.UpdateAttendance(ctx, employee.ID, june, []AttendanceInput{{
			Date:   time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
			Status: payroll.AttendanceAbsent,
		}})

		require.NoError(t, err)
		mocks.balances.AssertExpectations(t)
	})

	t.Run("rejects a date outside the month", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)
		employee := testEmployee(t, "Ravi Kumar", 3000)
		mocks.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)

		_, err := svc.UpdateAttendance(ctx, employee.ID, june, []AttendanceInput{{
			Date:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			Status: payroll.AttendancePresent,
		}})

		assert.Error(t, err)
		mocks.attendance.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("removing an advance restores the full salary", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)
		employee := testEmployee(t, "Ravi Kumar", 1000)
		june, err := payroll.ParseMonth("2025-06")
		require.NoError(t, err)
		from, to := june.DateRange()

		advance, err := payroll.NewTransaction(employee.ID, payroll.TransactionTypeAdvance,
			dec(200), "advance", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		mocks.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
		mocks.transactions.On("FindByID", mock.Anything, advance.ID).Return(advance, nil)
		mocks.transactions.On("Delete", mock.Anything, advance.ID).Return(nil)
		mocks.attendance.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).Return(nil, nil)
		mocks.transactions.On("FindByEmployeeAndRange", mock.Anything, employee.ID, from, to).Return(nil, nil)
		mocks.balances.On("FindLatest", mock.Anything, employee.ID, june.Prev()).Return(nil, shared.ErrNotFound)
		mocks.balances.On("Create", mock.Anything, mock.MatchedBy(func(b *payroll.MonthlyBalance) bool {
			return b.NetPayable.Equal(dec(1000)) && b.TotalDeductions.IsZero()
		})).Return(nil)
		mocks.employees.On("UpdateBalance", mock.Anything, employee.ID, decimal.Zero).Return(nil)

		result, err := svc.DeleteTransaction(ctx, employee.ID, advance.ID)

		require.NoError(t, err)
		assert.True(t, result.UpdatedSalary.Equal(dec(1000)), "got %s", result.UpdatedSalary)
		assert.True(t, result.TotalDeductions.IsZero())
		assert.True(t, result.UpdatedBalance.IsZero())
		mocks.transactions.AssertExpectations(t)
		mocks.balances.AssertExpectations(t)
	})

	t.Run("refuses a transaction owned by another employee", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)
		employee := testEmployee(t, "Ravi Kumar", 1000)

		foreign, err := payroll.NewTransaction(uuid.New(), payroll.TransactionTypeAdvance,
			dec(200), "advance", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		mocks.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
		mocks.transactions.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)

		_, err = svc.DeleteTransaction(ctx, employee.ID, foreign.ID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		mocks.transactions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestBulkDailyAttendance(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

	t.Run("skips unresolved names and applies the rest", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)
		employee := testEmployee(t, "Ravi Kumar", 3000)

		mocks.employees.On("FindByName", mock.Anything, "ravi kumar").Return(employee, nil)
		mocks.employees.On("FindByName", mock.Anything, "Nobody").Return(nil, shared.ErrNotFound)
		mocks.attendance.On("Upsert", mock.Anything, mock.MatchedBy(func(a *payroll.Attendance) bool {
			return a.EmployeeID == employee.ID && a.Date.Equal(date) && a.Status == payroll.AttendancePresent
		})).Return(nil)

		results, err := svc.BulkDailyAttendance(ctx, date, []DailyAttendanceEntry{
			{EmployeeName: "ravi kumar", Status: payroll.AttendancePresent},
			{EmployeeName: "Nobody", Status: payroll.AttendanceAbsent},
		})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, employee.ID, results[0].EmployeeID)
		assert.Equal(t, "Ravi Kumar", results[0].EmployeeName)
		assert.Equal(t, payroll.AttendancePresent, results[0].Status)
		mocks.attendance.AssertExpectations(t)
	})

	t.Run("rejects an invalid status before writing anything", func(t *testing.T) {
		svc, mocks := newServiceForTest(testNow)

		_, err := svc.BulkDailyAttendance(ctx, date, []DailyAttendanceEntry{
			{EmployeeName: "Ravi Kumar", Status: payroll.AttendanceStatus("SICK")},
		})

		assert.Error(t, err)
		mocks.attendance.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
