package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/payroll"
	"github.com/shopledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAttendanceRepository implements AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// FindByEmployeeAndRange returns the attendance records for an employee with
// dates in [from, to], ordered by date
func (r *GormAttendanceRepository) FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]*payroll.Attendance, error) {
	var attendanceModels []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date >= ? AND date <= ?", employeeID, from, to).
		Order("date ASC").
		Find(&attendanceModels).Error; err != nil {
		return nil, err
	}
	records := make([]*payroll.Attendance, len(attendanceModels))
	for i := range attendanceModels {
		records[i] = attendanceModels[i].ToDomain()
	}
	return records, nil
}

// Upsert writes the status for (employee, date), replacing any existing row
// for that day
func (r *GormAttendanceRepository) Upsert(ctx context.Context, attendance *payroll.Attendance) error {
	model := models.AttendanceModelFromDomain(attendance)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(model).Error
}

// Ensure GormAttendanceRepository implements AttendanceRepository
var _ payroll.AttendanceRepository = (*GormAttendanceRepository)(nil)
