package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// salaryDivisor is the fixed per-day rate divisor. Salary is always
// normalized to a 30-day month regardless of the actual calendar length.
var salaryDivisor = decimal.NewFromInt(30)

var halfUnit = decimal.NewFromFloat(0.5)

// SalaryBreakdown holds the attendance-derived salary figures for a month.
type SalaryBreakdown struct {
	// CalculatedSalary is the gross salary for the month, rounded to a whole
	// currency unit. This is the single rounding point in the pipeline.
	CalculatedSalary decimal.Decimal
	// PresentDays is workingDays minus deduction units; a display figure that
	// may be fractional when half days are involved.
	PresentDays decimal.Decimal
	Absents     int
	HalfDays    int
}

// CalculateSalary derives the gross salary for a month from attendance.
//
// Records dated on one of the first four Wednesdays of their month are
// skipped entirely: they contribute no deduction and are not counted as
// absences even if marked ABSENT or HALF_DAY. For the remaining records an
// ABSENT day costs one deduction unit and a HALF_DAY half a unit; PRESENT
// and LEAVE cost nothing. Days with no record contribute nothing; absence
// is never inferred from a missing record.
func CalculateSalary(records []*Attendance, baseSalary decimal.Decimal, workingDays int) SalaryBreakdown {
	weekOffs := make(map[Month]map[time.Time]struct{})
	absents := 0
	halfDays := 0

	for _, rec := range records {
		day := DateOnly(rec.Date)
		m := MonthOf(day)
		offs, ok := weekOffs[m]
		if !ok {
			offs = weekOffSet(m)
			weekOffs[m] = offs
		}
		if _, off := offs[day]; off {
			continue
		}
		switch rec.Status {
		case AttendanceAbsent:
			absents++
		case AttendanceHalfDay:
			halfDays++
		}
	}

	units := decimal.NewFromInt(int64(absents)).Add(halfUnit.Mul(decimal.NewFromInt(int64(halfDays))))
	perDay := baseSalary.Div(salaryDivisor)
	salary := baseSalary.Sub(units.Mul(perDay)).Round(0)
	presentDays := decimal.NewFromInt(int64(workingDays)).Sub(units)

	return SalaryBreakdown{
		CalculatedSalary: salary,
		PresentDays:      presentDays,
		Absents:          absents,
		HalfDays:         halfDays,
	}
}
