package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/shared"
)

// AttendanceStatus represents the recorded status for one employee-day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceHalfDay AttendanceStatus = "HALF_DAY"
	AttendanceLeave   AttendanceStatus = "LEAVE"
)

// String returns the string representation of AttendanceStatus
func (s AttendanceStatus) String() string {
	return string(s)
}

// IsValid returns true if the attendance status is valid
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceHalfDay, AttendanceLeave:
		return true
	}
	return false
}

// DeductionUnits returns the normalized absence measure for the status:
// 1 for a full absence, 0.5 for a half day, 0 otherwise.
func (s AttendanceStatus) DeductionUnits() float64 {
	switch s {
	case AttendanceAbsent:
		return 1
	case AttendanceHalfDay:
		return 0.5
	}
	return 0
}

// Attendance records the status of one employee on one calendar day.
// At most one record exists per (employee, date); edits replace the status.
type Attendance struct {
	shared.BaseEntity
	EmployeeID uuid.UUID
	Date       time.Time
	Status     AttendanceStatus
}

// NewAttendance creates an attendance record for a single day.
func NewAttendance(employeeID uuid.UUID, date time.Time, status AttendanceStatus) (*Attendance, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ATTENDANCE", "Employee ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_ATTENDANCE", "Attendance date is required")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_ATTENDANCE", "Invalid attendance status")
	}

	return &Attendance{
		BaseEntity: shared.NewBaseEntity(),
		EmployeeID: employeeID,
		Date:       DateOnly(date),
		Status:     status,
	}, nil
}

// MergeAttendance overlays incoming records onto existing ones by date.
// Incoming records win on conflict; existing records for other dates are kept.
// The result is the full attendance set for recomputation.
func MergeAttendance(existing, incoming []*Attendance) []*Attendance {
	byDate := make(map[time.Time]*Attendance, len(existing)+len(incoming))
	order := make([]time.Time, 0, len(existing)+len(incoming))

	for _, a := range existing {
		day := DateOnly(a.Date)
		if _, ok := byDate[day]; !ok {
			order = append(order, day)
		}
		byDate[day] = a
	}
	for _, a := range incoming {
		day := DateOnly(a.Date)
		if _, ok := byDate[day]; !ok {
			order = append(order, day)
		}
		byDate[day] = a
	}

	merged := make([]*Attendance, 0, len(order))
	for _, day := range order {
		merged = append(merged, byDate[day])
	}
	return merged
}
