package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/payroll"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMonthlyBalanceRepository implements MonthlyBalanceRepository using GORM
type GormMonthlyBalanceRepository struct {
	db *gorm.DB
}

// NewGormMonthlyBalanceRepository creates a new GormMonthlyBalanceRepository
func NewGormMonthlyBalanceRepository(db *gorm.DB) *GormMonthlyBalanceRepository {
	return &GormMonthlyBalanceRepository{db: db}
}

// Create appends a new snapshot, assigning it the next sequence within
// (employee, month). Callers serialize writes per employee, so the max query
// and the insert do not race.
func (r *GormMonthlyBalanceRepository) Create(ctx context.Context, balance *payroll.MonthlyBalance) error {
	model := models.MonthlyBalanceModelFromDomain(balance)

	var maxSequence int64
	if err := r.db.WithContext(ctx).
		Model(&models.MonthlyBalanceModel{}).
		Where("employee_id = ? AND month = ?", model.EmployeeID, model.Month).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&maxSequence).Error; err != nil {
		return err
	}

	model.Sequence = maxSequence + 1
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	balance.Sequence = model.Sequence
	return nil
}

// FindLatest returns the snapshot with the highest sequence for
// (employee, month)
func (r *GormMonthlyBalanceRepository) FindLatest(ctx context.Context, employeeID uuid.UUID, month payroll.Month) (*payroll.MonthlyBalance, error) {
	var model models.MonthlyBalanceModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND month = ?", employeeID, month.String()).
		Order("sequence DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByEmployee returns the latest snapshot of every month for an employee,
// most recent month first
func (r *GormMonthlyBalanceRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*payroll.MonthlyBalance, error) {
	var balanceModels []models.MonthlyBalanceModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("month DESC, sequence DESC").
		Find(&balanceModels).Error; err != nil {
		return nil, err
	}

	// Rows are ordered latest-first within each month; keep the first per month.
	seen := make(map[string]struct{}, len(balanceModels))
	balances := make([]*payroll.MonthlyBalance, 0, len(balanceModels))
	for i := range balanceModels {
		if _, ok := seen[balanceModels[i].Month]; ok {
			continue
		}
		seen[balanceModels[i].Month] = struct{}{}
		balance, err := balanceModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, nil
}

// UpdateCarryForward overwrites the NewCarryForward column of a snapshot in place
func (r *GormMonthlyBalanceRepository) UpdateCarryForward(ctx context.Context, id uuid.UUID, value decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.MonthlyBalanceModel{}).
		Where("id = ?", id).
		Update("new_carry_forward", value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMonthlyBalanceRepository implements MonthlyBalanceRepository
var _ payroll.MonthlyBalanceRepository = (*GormMonthlyBalanceRepository)(nil)
