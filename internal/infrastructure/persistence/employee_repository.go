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

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(ctx context.Context, employee *payroll.Employee) error {
	model := models.EmployeeModelFromDomain(employee)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds an employee by name, matched case-insensitively
func (r *GormEmployeeRepository) FindByName(ctx context.Context, name string) (*payroll.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all employees ordered by name
func (r *GormEmployeeRepository) FindAll(ctx context.Context) ([]*payroll.Employee, error) {
	var employeeModels []models.EmployeeModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&employeeModels).Error; err != nil {
		return nil, err
	}
	employees := make([]*payroll.Employee, len(employeeModels))
	for i := range employeeModels {
		employees[i] = employeeModels[i].ToDomain()
	}
	return employees, nil
}

// UpdateBalance sets the cached carry-forward balance of an employee
func (r *GormEmployeeRepository) UpdateBalance(ctx context.Context, employeeID uuid.UUID, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Where("id = ?", employeeID).
		Update("current_balance", balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormEmployeeRepository implements EmployeeRepository
var _ payroll.EmployeeRepository = (*GormEmployeeRepository)(nil)
