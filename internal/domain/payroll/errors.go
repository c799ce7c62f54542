package payroll

import "errors"

var (
	ErrPayrollSettingsNotFound     = errors.New("payroll settings not found")
	ErrPayrollRecordNotFound       = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists  = errors.New("payroll record already exists for this period")
	ErrPayrollRecordAlreadyPaid    = errors.New("payroll record already paid, cannot modify")
	ErrPayrollRecordNotFinalizable = errors.New("payroll record missing or already paid")
)
