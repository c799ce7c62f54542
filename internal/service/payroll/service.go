package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/employee"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/payroll"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/database"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/pdf"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/validator"
	"github.com/kirana-hr/kirana-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	reconciler   *Reconciler
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	reconciler *Reconciler,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		reconciler:   reconciler,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ========== SETTINGS ==========

func defaultSettings(companyID string) payroll.PayrollSettings {
	return payroll.PayrollSettings{
		CompanyID:       companyID,
		Currency:        "IDR",
		OvertimeEnabled: true,
		OvertimeRate:    decimal.Zero,
	}
}

func (s *PayrollServiceImpl) GetSettings(ctx context.Context) (payroll.PayrollSettingsResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	settings, err := s.payrollRepo.GetSettings(ctx, companyID)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
			settings = defaultSettings(companyID)
			return mapToSettingsResponse(settings), nil
		}
		return payroll.PayrollSettingsResponse{}, err
	}

	return mapToSettingsResponse(settings), nil
}

func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.UpdatePayrollSettingsRequest) (payroll.PayrollSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	current, err := s.payrollRepo.GetSettings(ctx, companyID)
	if err != nil && !errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
		return payroll.PayrollSettingsResponse{}, err
	}
	if errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
		current = defaultSettings(companyID)
	}

	if req.Currency != nil {
		current.Currency = *req.Currency
	}
	if req.OvertimeEnabled != nil {
		current.OvertimeEnabled = *req.OvertimeEnabled
	}
	if req.OvertimeRate != nil {
		current.OvertimeRate = *req.OvertimeRate
	}

	updated, err := s.payrollRepo.UpsertSettings(ctx, current)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	return mapToSettingsResponse(updated), nil
}

// ========== RECONCILIATION ==========

func (s *PayrollServiceImpl) ReconcilePeriod(ctx context.Context, req payroll.ReconcilePeriodRequest) (payroll.CalculationResultResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculationResultResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.CalculationResultResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	result := s.reconciler.Reconcile(ctx, companyID, payroll.Period{
		EmployeeID: req.EmployeeID,
		StartDate:  startDate,
		EndDate:    endDate,
	})

	return mapToCalculationResponse(result), nil
}

// ========== PAYROLL GENERATION ==========

func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) ([]payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	periodStart := time.Date(req.PeriodYear, time.Month(req.PeriodMonth), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	if len(req.EmployeeIDs) > 0 {
		wanted := make(map[string]bool)
		for _, id := range req.EmployeeIDs {
			wanted[id] = true
		}
		filtered := employees[:0]
		for _, emp := range employees {
			if wanted[emp.ID] {
				filtered = append(filtered, emp)
			}
		}
		employees = filtered
	}

	var records []payroll.PayrollRecord
	for _, emp := range employees {
		if emp.BaseSalary == nil || emp.BaseSalary.IsZero() {
			continue // Skip employees without base salary
		}

		calc := s.reconciler.Reconcile(ctx, companyID, payroll.Period{
			EmployeeID: emp.ID,
			StartDate:  periodStart,
			EndDate:    periodEnd,
		})
		if !calc.OK() {
			return nil, fmt.Errorf("reconcile employee %s: %s", emp.ID, calc.ValidationErrors[0])
		}

		proportionalBase := CalculateProportionalAmount(*emp.BaseSalary, calc.PayableDaysFactor)
		netSalary := CalculateFinalPayrollAmount(proportionalBase, decimal.Zero, decimal.Zero, decimal.Zero)

		record := payroll.PayrollRecord{
			ID:          uuid.NewString(),
			EmployeeID:  emp.ID,
			CompanyID:   companyID,
			PeriodMonth: req.PeriodMonth,
			PeriodYear:  req.PeriodYear,

			BaseSalary:       *emp.BaseSalary,
			ProportionalBase: proportionalBase,
			OvertimeAmount:   decimal.Zero,
			TotalDeductions:  decimal.Zero,
			BonusAmount:      decimal.Zero,
			NetSalary:        netSalary,

			TotalCalendarDays:    calc.TotalCalendarDays,
			TotalWorkingDays:     calc.TotalWorkingDays,
			TotalHolidays:        calc.TotalHolidays,
			TotalWeekendDays:     calc.TotalWeekendDays,
			TotalPresentDays:     calc.TotalPresentDays,
			TotalAbsentDays:      calc.TotalAbsentDays,
			TotalLeaveDays:       calc.TotalLeaveDays,
			TotalPaidLeaveDays:   calc.TotalPaidLeaveDays,
			TotalUnpaidLeaveDays: calc.TotalUnpaidLeaveDays,
			TotalPayableDays:     calc.TotalPayableDays,
			PayableDaysFactor:    calc.PayableDaysFactor,

			Status: payroll.PayrollStatusDraft,
		}

		// Existence check and insert run in one transaction; a concurrent
		// generation must not slip a record in between them.
		var created payroll.PayrollRecord
		exists := false
		err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			_, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(txCtx, emp.ID, req.PeriodMonth, req.PeriodYear, companyID)
			if err == nil {
				exists = true
				return nil
			}
			if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
				return fmt.Errorf("failed to check existing payroll record: %w", err)
			}

			created, err = s.payrollRepo.CreatePayrollRecord(txCtx, record)
			return err
		})
		if err != nil {
			if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("failed to create payroll record for employee %s: %w", emp.ID, err)
		}
		if exists {
			continue // Skip if already exists
		}
		records = append(records, created)
	}

	return mapToRecordResponses(records), nil
}

func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, totalCount, err := s.payrollRepo.ListPayrollRecords(ctx, companyID, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	return payroll.ListPayrollRecordResponse{
		Data:       mapToRecordResponses(records),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) UpdatePayrollRecord(ctx context.Context, req payroll.UpdatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, req.ID, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if record.Status == payroll.PayrollStatusPaid {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyPaid
	}

	if req.OvertimeAmount != nil {
		record.OvertimeAmount = *req.OvertimeAmount
	}
	if req.TotalDeductions != nil {
		record.TotalDeductions = *req.TotalDeductions
	}
	if req.BonusAmount != nil {
		record.BonusAmount = *req.BonusAmount
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	record.NetSalary = CalculateFinalPayrollAmount(
		record.ProportionalBase,
		record.OvertimeAmount,
		record.TotalDeductions,
		record.BonusAmount,
	)

	if err := s.payrollRepo.UpdatePayrollRecord(ctx, record); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return s.GetPayrollRecord(ctx, req.ID)
}

func (s *PayrollServiceImpl) FinalizePayroll(ctx context.Context, req payroll.FinalizePayrollRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.FinalizePayrollRecords(ctx, req.RecordIDs, userID, companyID)
}

func (s *PayrollServiceImpl) DeletePayrollRecord(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.DeletePayrollRecord(ctx, id, companyID)
}

// ========== PAYSLIP ==========

func (s *PayrollServiceImpl) GeneratePayslipPDF(ctx context.Context, recordID string) ([]byte, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, recordID, companyID)
	if err != nil {
		return nil, err
	}

	currency := "IDR"
	settings, err := s.payrollRepo.GetSettings(ctx, companyID)
	if err == nil {
		currency = settings.Currency
	} else if !errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
		return nil, err
	}

	employeeName := ""
	employeeCode := ""
	if record.EmployeeName != nil {
		employeeName = *record.EmployeeName
	}
	if record.EmployeeCode != nil {
		employeeCode = *record.EmployeeCode
	}

	periodStart := time.Date(record.PeriodYear, time.Month(record.PeriodMonth), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	return pdf.RenderPayslip(pdf.Payslip{
		EmployeeName: employeeName,
		EmployeeCode: employeeCode,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		Currency:     currency,

		BaseSalary:       record.BaseSalary,
		ProportionalBase: record.ProportionalBase,
		OvertimeAmount:   record.OvertimeAmount,
		TotalDeductions:  record.TotalDeductions,
		BonusAmount:      record.BonusAmount,
		NetSalary:        record.NetSalary,

		TotalWorkingDays:  record.TotalWorkingDays,
		TotalPresentDays:  record.TotalPresentDays,
		TotalLeaveDays:    record.TotalLeaveDays,
		TotalPayableDays:  record.TotalPayableDays,
		PayableDaysFactor: record.PayableDaysFactor,
	})
}

// ========== HELPERS ==========

func mapToSettingsResponse(s payroll.PayrollSettings) payroll.PayrollSettingsResponse {
	return payroll.PayrollSettingsResponse{
		ID:              s.ID,
		CompanyID:       s.CompanyID,
		Currency:        s.Currency,
		OvertimeEnabled: s.OvertimeEnabled,
		OvertimeRate:    s.OvertimeRate,
	}
}

func mapToCalculationResponse(r payroll.CalculationResult) payroll.CalculationResultResponse {
	days := make([]payroll.PayableDayResponse, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, payroll.PayableDayResponse{
			Date:             d.Date.Format(dateKeyLayout),
			IsWorkingDay:     d.IsWorkingDay,
			IsHoliday:        d.IsHoliday,
			IsWeekend:        d.IsWeekend,
			IsLeave:          d.IsLeave,
			IsPaidLeave:      d.IsPaidLeave,
			IsPresent:        d.IsPresent,
			LeaveType:        d.LeaveType,
			AttendanceStatus: d.AttendanceStatus,
			PayFactor:        d.PayFactor,
		})
	}

	return payroll.CalculationResultResponse{
		EmployeeID:           r.EmployeeID,
		StartDate:            r.StartDate.Format(dateKeyLayout),
		EndDate:              r.EndDate.Format(dateKeyLayout),
		TotalCalendarDays:    r.TotalCalendarDays,
		TotalWorkingDays:     r.TotalWorkingDays,
		TotalHolidays:        r.TotalHolidays,
		TotalWeekendDays:     r.TotalWeekendDays,
		TotalPresentDays:     r.TotalPresentDays,
		TotalAbsentDays:      r.TotalAbsentDays,
		TotalLeaveDays:       r.TotalLeaveDays,
		TotalPaidLeaveDays:   r.TotalPaidLeaveDays,
		TotalUnpaidLeaveDays: r.TotalUnpaidLeaveDays,
		TotalPayableDays:     r.TotalPayableDays,
		PayableDaysFactor:    r.PayableDaysFactor,
		Days:                 days,
		ValidationErrors:     r.ValidationErrors,
		ValidationWarnings:   r.ValidationWarnings,
	}
}

func mapToRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	var paidAtStr *string
	if r.PaidAt != nil {
		str := r.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	employeeName := ""
	employeeCode := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		employeeCode = *r.EmployeeCode
	}

	return payroll.PayrollRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: employeeName,
		EmployeeCode: employeeCode,
		PeriodMonth:  r.PeriodMonth,
		PeriodYear:   r.PeriodYear,

		BaseSalary:       r.BaseSalary,
		ProportionalBase: r.ProportionalBase,
		OvertimeAmount:   r.OvertimeAmount,
		TotalDeductions:  r.TotalDeductions,
		BonusAmount:      r.BonusAmount,
		NetSalary:        r.NetSalary,

		TotalCalendarDays:    r.TotalCalendarDays,
		TotalWorkingDays:     r.TotalWorkingDays,
		TotalHolidays:        r.TotalHolidays,
		TotalWeekendDays:     r.TotalWeekendDays,
		TotalPresentDays:     r.TotalPresentDays,
		TotalAbsentDays:      r.TotalAbsentDays,
		TotalLeaveDays:       r.TotalLeaveDays,
		TotalPaidLeaveDays:   r.TotalPaidLeaveDays,
		TotalUnpaidLeaveDays: r.TotalUnpaidLeaveDays,
		TotalPayableDays:     r.TotalPayableDays,
		PayableDaysFactor:    r.PayableDaysFactor,

		Status: string(r.Status),
		PaidAt: paidAtStr,
		Notes:  r.Notes,
	}
}

func mapToRecordResponses(records []payroll.PayrollRecord) []payroll.PayrollRecordResponse {
	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}
