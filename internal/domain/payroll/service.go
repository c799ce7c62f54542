package payroll

import "context"

// PayrollService defines business logic for payroll calculation and records.
type PayrollService interface {
	// Settings
	GetSettings(ctx context.Context) (PayrollSettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdatePayrollSettingsRequest) (PayrollSettingsResponse, error)

	// ReconcilePeriod classifies every calendar day of the period and
	// returns the aggregate counts and payable-days factor without
	// persisting anything. Fetch and computation failures are reported
	// inside the result, never as a returned error.
	ReconcilePeriod(ctx context.Context, req ReconcilePeriodRequest) (CalculationResultResponse, error)

	// Payroll records
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) ([]PayrollRecordResponse, error)
	GetPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	UpdatePayrollRecord(ctx context.Context, req UpdatePayrollRecordRequest) (PayrollRecordResponse, error)
	FinalizePayroll(ctx context.Context, req FinalizePayrollRequest) error
	DeletePayrollRecord(ctx context.Context, id string) error

	// GeneratePayslipPDF renders a payslip document for a payroll record.
	GeneratePayslipPDF(ctx context.Context, recordID string) ([]byte, error)
}
