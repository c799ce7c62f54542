package payroll

import (
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ReconcilePeriodRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r ReconcilePeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GeneratePayrollRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "period_month must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "period_year is out of range"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayrollSettingsRequest struct {
	Currency        *string          `json:"currency,omitempty"`
	OvertimeEnabled *bool            `json:"overtime_enabled,omitempty"`
	OvertimeRate    *decimal.Decimal `json:"overtime_rate,omitempty"`
}

func (r UpdatePayrollSettingsRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Currency != nil && validator.IsEmpty(*r.Currency) {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "currency must not be empty"})
	}
	if r.OvertimeRate != nil && r.OvertimeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_rate", Message: "overtime_rate must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePayrollRecordRequest adjusts the manual amounts on a draft record.
// The net salary is recomputed from the stored proportional base.
type UpdatePayrollRecordRequest struct {
	ID              string           `json:"-"`
	OvertimeAmount  *decimal.Decimal `json:"overtime_amount,omitempty"`
	TotalDeductions *decimal.Decimal `json:"total_deductions,omitempty"`
	BonusAmount     *decimal.Decimal `json:"bonus_amount,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

type FinalizePayrollRequest struct {
	RecordIDs []string `json:"record_ids"`
}

func (r FinalizePayrollRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "record_ids must not be empty"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollFilter struct {
	PeriodMonth *int
	PeriodYear  *int
	EmployeeID  *string
	Status      *string
	Page        int
	Limit       int
}

type PayrollSettingsResponse struct {
	ID              string          `json:"id,omitempty"`
	CompanyID       string          `json:"company_id"`
	Currency        string          `json:"currency"`
	OvertimeEnabled bool            `json:"overtime_enabled"`
	OvertimeRate    decimal.Decimal `json:"overtime_rate"`
}

type PayableDayResponse struct {
	Date             string  `json:"date"`
	IsWorkingDay     bool    `json:"is_working_day"`
	IsHoliday        bool    `json:"is_holiday"`
	IsWeekend        bool    `json:"is_weekend"`
	IsLeave          bool    `json:"is_leave"`
	IsPaidLeave      bool    `json:"is_paid_leave"`
	IsPresent        bool    `json:"is_present"`
	LeaveType        *string `json:"leave_type,omitempty"`
	AttendanceStatus *string `json:"attendance_status,omitempty"`
	PayFactor        float64 `json:"pay_factor"`
}

type CalculationResultResponse struct {
	EmployeeID           string               `json:"employee_id"`
	StartDate            string               `json:"start_date"`
	EndDate              string               `json:"end_date"`
	TotalCalendarDays    int                  `json:"total_calendar_days"`
	TotalWorkingDays     int                  `json:"total_working_days"`
	TotalHolidays        int                  `json:"total_holidays"`
	TotalWeekendDays     int                  `json:"total_weekend_days"`
	TotalPresentDays     float64              `json:"total_present_days"`
	TotalAbsentDays      float64              `json:"total_absent_days"`
	TotalLeaveDays       float64              `json:"total_leave_days"`
	TotalPaidLeaveDays   float64              `json:"total_paid_leave_days"`
	TotalUnpaidLeaveDays float64              `json:"total_unpaid_leave_days"`
	TotalPayableDays     float64              `json:"total_payable_days"`
	PayableDaysFactor    float64              `json:"payable_days_factor"`
	Days                 []PayableDayResponse `json:"days"`
	ValidationErrors     []string             `json:"validation_errors"`
	ValidationWarnings   []string             `json:"validation_warnings"`
}

type PayrollRecordResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	PeriodMonth  int    `json:"period_month"`
	PeriodYear   int    `json:"period_year"`

	BaseSalary       decimal.Decimal `json:"base_salary"`
	ProportionalBase decimal.Decimal `json:"proportional_base"`
	OvertimeAmount   decimal.Decimal `json:"overtime_amount"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	BonusAmount      decimal.Decimal `json:"bonus_amount"`
	NetSalary        decimal.Decimal `json:"net_salary"`

	TotalCalendarDays    int     `json:"total_calendar_days"`
	TotalWorkingDays     int     `json:"total_working_days"`
	TotalHolidays        int     `json:"total_holidays"`
	TotalWeekendDays     int     `json:"total_weekend_days"`
	TotalPresentDays     float64 `json:"total_present_days"`
	TotalAbsentDays      float64 `json:"total_absent_days"`
	TotalLeaveDays       float64 `json:"total_leave_days"`
	TotalPaidLeaveDays   float64 `json:"total_paid_leave_days"`
	TotalUnpaidLeaveDays float64 `json:"total_unpaid_leave_days"`
	TotalPayableDays     float64 `json:"total_payable_days"`
	PayableDaysFactor    float64 `json:"payable_days_factor"`

	Status string  `json:"status"`
	PaidAt *string `json:"paid_at,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}
