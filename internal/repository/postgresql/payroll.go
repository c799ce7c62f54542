package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/payroll"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// GetSettings implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetSettings(ctx context.Context, companyID string) (payroll.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, currency, overtime_enabled, overtime_rate, created_at, updated_at
		FROM payroll_settings
		WHERE company_id = $1
	`
	var s payroll.PayrollSettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Currency, &s.OvertimeEnabled, &s.OvertimeRate,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollSettings{}, payroll.ErrPayrollSettingsNotFound
		}
		return payroll.PayrollSettings{}, err
	}
	return s, nil
}

// UpsertSettings implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) UpsertSettings(ctx context.Context, settings payroll.PayrollSettings) (payroll.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO payroll_settings (id, company_id, currency, overtime_enabled, overtime_rate, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (company_id) DO UPDATE
		SET currency = EXCLUDED.currency,
			overtime_enabled = EXCLUDED.overtime_enabled,
			overtime_rate = EXCLUDED.overtime_rate,
			updated_at = NOW()
		RETURNING id, company_id, currency, overtime_enabled, overtime_rate, created_at, updated_at
	`
	var s payroll.PayrollSettings
	err := q.QueryRow(ctx, query,
		settings.CompanyID, settings.Currency, settings.OvertimeEnabled, settings.OvertimeRate,
	).Scan(
		&s.ID, &s.CompanyID, &s.Currency, &s.OvertimeEnabled, &s.OvertimeRate,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollSettings{}, err
	}
	return s, nil
}

const payrollRecordColumns = `
	pr.id, pr.employee_id, pr.company_id, pr.period_month, pr.period_year,
	pr.base_salary, pr.proportional_base, pr.overtime_amount, pr.total_deductions, pr.bonus_amount, pr.net_salary,
	pr.total_calendar_days, pr.total_working_days, pr.total_holidays, pr.total_weekend_days,
	pr.total_present_days, pr.total_absent_days, pr.total_leave_days,
	pr.total_paid_leave_days, pr.total_unpaid_leave_days, pr.total_payable_days, pr.payable_days_factor,
	pr.status, pr.paid_at, pr.paid_by, pr.notes, pr.created_at, pr.updated_at,
	CONCAT(e.first_name, ' ', e.last_name) AS employee_name, e.employee_code`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.BaseSalary, &rec.ProportionalBase, &rec.OvertimeAmount, &rec.TotalDeductions, &rec.BonusAmount, &rec.NetSalary,
		&rec.TotalCalendarDays, &rec.TotalWorkingDays, &rec.TotalHolidays, &rec.TotalWeekendDays,
		&rec.TotalPresentDays, &rec.TotalAbsentDays, &rec.TotalLeaveDays,
		&rec.TotalPaidLeaveDays, &rec.TotalUnpaidLeaveDays, &rec.TotalPayableDays, &rec.PayableDaysFactor,
		&rec.Status, &rec.PaidAt, &rec.PaidBy, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, err
	}
	return rec, nil
}

// CreatePayrollRecord implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	checkQuery := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_records
			WHERE employee_id = $1 AND period_month = $2 AND period_year = $3
		)
	`
	if err := q.QueryRow(ctx, checkQuery, record.EmployeeID, record.PeriodMonth, record.PeriodYear).Scan(&exists); err != nil {
		return payroll.PayrollRecord{}, err
	}
	if exists {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
	}

	query := `
		INSERT INTO payroll_records (
			id, employee_id, company_id, period_month, period_year,
			base_salary, proportional_base, overtime_amount, total_deductions, bonus_amount, net_salary,
			total_calendar_days, total_working_days, total_holidays, total_weekend_days,
			total_present_days, total_absent_days, total_leave_days,
			total_paid_leave_days, total_unpaid_leave_days, total_payable_days, payable_days_factor,
			status, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18,
			$19, $20, $21, $22,
			$23, $24, NOW(), NOW()
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.CompanyID, record.PeriodMonth, record.PeriodYear,
		record.BaseSalary, record.ProportionalBase, record.OvertimeAmount, record.TotalDeductions, record.BonusAmount, record.NetSalary,
		record.TotalCalendarDays, record.TotalWorkingDays, record.TotalHolidays, record.TotalWeekendDays,
		record.TotalPresentDays, record.TotalAbsentDays, record.TotalLeaveDays,
		record.TotalPaidLeaveDays, record.TotalUnpaidLeaveDays, record.TotalPayableDays, record.PayableDaysFactor,
		record.Status, record.Notes,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	return record, nil
}

// GetPayrollRecordByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetPayrollRecordByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.id = $1 AND pr.company_id = $2
	`
	return scanPayrollRecord(q.QueryRow(ctx, query, id, companyID))
}

// GetPayrollRecordByEmployeePeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3 AND pr.company_id = $4
	`
	return scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year, companyID))
}

// ListPayrollRecords implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListPayrollRecords(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE pr.company_id = $1`
	args := []interface{}{companyID}

	if filter.PeriodMonth != nil {
		args = append(args, *filter.PeriodMonth)
		where += fmt.Sprintf(" AND pr.period_month = $%d", len(args))
	}
	if filter.PeriodYear != nil {
		args = append(args, *filter.PeriodYear)
		where += fmt.Sprintf(" AND pr.period_year = $%d", len(args))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		where += fmt.Sprintf(" AND pr.employee_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND pr.status = $%d", len(args))
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM payroll_records pr ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		` + where + fmt.Sprintf(`
		ORDER BY pr.period_year DESC, pr.period_month DESC, e.employee_code
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, totalCount, rows.Err()
}

// UpdatePayrollRecord implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) UpdatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE payroll_records
		SET overtime_amount = $1, total_deductions = $2, bonus_amount = $3,
			net_salary = $4, notes = $5, updated_at = NOW()
		WHERE id = $6 AND company_id = $7 AND status = 'draft'
	`
	commandTag, err := q.Exec(ctx, query,
		record.OvertimeAmount, record.TotalDeductions, record.BonusAmount,
		record.NetSalary, record.Notes,
		record.ID, record.CompanyID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

// FinalizePayrollRecords implements payroll.PayrollRepository.
// All records are finalized in one transaction; a single missing or already
// paid record rolls back the whole batch.
func (r *payrollRepositoryImpl) FinalizePayrollRecords(ctx context.Context, ids []string, paidBy string, companyID string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE payroll_records
			SET status = 'paid', paid_at = NOW(), paid_by = $1, updated_at = NOW()
			WHERE id = $2 AND company_id = $3 AND status = 'draft'
		`
		for _, id := range ids {
			commandTag, err := tx.Exec(ctx, query, paidBy, id, companyID)
			if err != nil {
				return err
			}
			if commandTag.RowsAffected() != 1 {
				return fmt.Errorf("payroll record %s: %w", id, payroll.ErrPayrollRecordNotFinalizable)
			}
		}
		return nil
	})
}

// DeletePayrollRecord implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) DeletePayrollRecord(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)
	query := `DELETE FROM payroll_records WHERE id = $1 AND company_id = $2 AND status = 'draft'`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}
