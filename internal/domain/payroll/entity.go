package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period describes the date range a payroll reconciliation covers for one
// employee. Dates are calendar dates; the time component is ignored.
type Period struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
}

// TotalCalendarDays is the inclusive day count of the period. An inverted
// range yields zero.
func (p Period) TotalCalendarDays() int {
	days := int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// PayableDay is the classification of one calendar day inside a period.
// Exactly one of IsWeekend, IsHoliday, IsWorkingDay is set; PayFactor is the
// fraction of that day's pay the employee is entitled to, in [0, 1].
type PayableDay struct {
	Date             time.Time
	IsWorkingDay     bool
	IsHoliday        bool
	IsWeekend        bool
	IsLeave          bool
	IsPaidLeave      bool
	IsPresent        bool
	LeaveType        *string
	AttendanceStatus *string
	PayFactor        float64
}

// CalculationResult is the aggregate outcome of reconciling a period.
// It is recomputed on every call and never persisted by the reconciler
// itself. Callers must inspect ValidationErrors to distinguish success from
// failure; there is no separate success flag.
type CalculationResult struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time

	TotalCalendarDays    int
	TotalWorkingDays     int
	TotalHolidays        int
	TotalWeekendDays     int
	TotalPresentDays     float64
	TotalAbsentDays      float64
	TotalLeaveDays       float64
	TotalPaidLeaveDays   float64
	TotalUnpaidLeaveDays float64

	TotalPayableDays  float64
	PayableDaysFactor float64

	Days []PayableDay

	ValidationErrors   []string
	ValidationWarnings []string
}

// OK reports whether the reconciliation completed without errors.
// Warnings do not count against success.
func (r CalculationResult) OK() bool {
	return len(r.ValidationErrors) == 0
}

// PayrollSettings - Company payroll configuration
type PayrollSettings struct {
	ID              string
	CompanyID       string
	Currency        string
	OvertimeEnabled bool
	OvertimeRate    decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "draft"
	PayrollStatusPaid  PayrollStatus = "paid"
)

// PayrollRecord - Generated payroll result for one employee and period.
// The attendance summary block is a flattened copy of the reconciliation
// aggregates at generation time.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	PeriodMonth int
	PeriodYear  int

	BaseSalary       decimal.Decimal
	ProportionalBase decimal.Decimal
	OvertimeAmount   decimal.Decimal
	TotalDeductions  decimal.Decimal
	BonusAmount      decimal.Decimal
	NetSalary        decimal.Decimal

	// Attendance summary
	TotalCalendarDays    int
	TotalWorkingDays     int
	TotalHolidays        int
	TotalWeekendDays     int
	TotalPresentDays     float64
	TotalAbsentDays      float64
	TotalLeaveDays       float64
	TotalPaidLeaveDays   float64
	TotalUnpaidLeaveDays float64
	TotalPayableDays     float64
	PayableDaysFactor    float64

	Status    PayrollStatus
	PaidAt    *time.Time
	PaidBy    *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
