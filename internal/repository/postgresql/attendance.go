package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/attendance"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendances (id, employee_id, company_id, date, status, clock_in, clock_out, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		att.ID, att.EmployeeID, att.CompanyID, att.Date, att.Status,
		att.ClockIn, att.ClockOut, att.Notes,
	).Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, err
	}
	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT a.id, a.employee_id, a.company_id, a.date, a.status, a.clock_in, a.clock_out, a.notes,
			   a.created_at, a.updated_at,
			   CONCAT(e.first_name, ' ', e.last_name) AS employee_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`
	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.Status,
		&att.ClockIn, &att.ClockOut, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, company_id, date, status, clock_in, clock_out, notes, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`
	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date, companyID).Scan(
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.Status,
		&att.ClockIn, &att.ClockOut, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return att, nil
}

// GetByEmployeeAndDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDateRange(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, company_id, date, status, clock_in, clock_out, notes, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3 AND company_id = $4
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, employeeID, startDate, endDate, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.Status,
			&att.ClockIn, &att.ClockOut, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, att)
	}
	return records, rows.Err()
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE a.company_id = $1`
	args := []interface{}{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		where += fmt.Sprintf(" AND a.employee_id = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND a.date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND a.date <= $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND a.status = $%d", len(args))
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM attendances a ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `
		SELECT a.id, a.employee_id, a.company_id, a.date, a.status, a.clock_in, a.clock_out, a.notes,
			   a.created_at, a.updated_at,
			   CONCAT(e.first_name, ' ', e.last_name) AS employee_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		` + where + fmt.Sprintf(`
		ORDER BY a.date DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.Status,
			&att.ClockIn, &att.ClockOut, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		); err != nil {
			return nil, 0, err
		}
		records = append(records, att)
	}
	return records, totalCount, rows.Err()
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE attendances
		SET date = $1, status = $2, clock_in = $3, clock_out = $4, notes = $5, updated_at = NOW()
		WHERE id = $6 AND company_id = $7
	`
	commandTag, err := q.Exec(ctx, query,
		att.Date, att.Status, att.ClockIn, att.ClockOut, att.Notes,
		att.ID, att.CompanyID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
