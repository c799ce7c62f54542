package postgresql

import (
	"context"
	"time"

	"github.com/kirana-hr/kirana-backend-go/internal/domain/calendar"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h calendar.Holiday) (calendar.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM holidays WHERE company_id = $1 AND date = $2)`
	if err := q.QueryRow(ctx, checkQuery, h.CompanyID, h.Date).Scan(&exists); err != nil {
		return calendar.Holiday{}, err
	}
	if exists {
		return calendar.Holiday{}, calendar.ErrHolidayExists
	}

	query := `
		INSERT INTO holidays (id, company_id, name, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, h.ID, h.CompanyID, h.Name, h.Date).Scan(&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return calendar.Holiday{}, err
	}
	return h, nil
}

// GetByDateRange implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) GetByDateRange(ctx context.Context, startDate, endDate time.Time, companyID string) ([]calendar.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, name, date, created_at, updated_at
		FROM holidays
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, companyID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []calendar.Holiday
	for rows.Next() {
		var h calendar.Holiday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Name, &h.Date, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// ListByCompany implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) ListByCompany(ctx context.Context, companyID string, year int) ([]calendar.Holiday, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return r.GetByDateRange(ctx, start, end, companyID)
}

// Delete implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)
	query := `DELETE FROM holidays WHERE id = $1 AND company_id = $2`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return calendar.ErrHolidayNotFound
	}
	return nil
}

type weeklyOffRepositoryImpl struct {
	db *database.DB
}

func NewWeeklyOffRepository(db *database.DB) calendar.WeeklyOffRepository {
	return &weeklyOffRepositoryImpl{db: db}
}

// Create implements calendar.WeeklyOffRepository.
func (r *weeklyOffRepositoryImpl) Create(ctx context.Context, w calendar.WeeklyOff) (calendar.WeeklyOff, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM weekly_offs WHERE employee_id = $1 AND date = $2)`
	if err := q.QueryRow(ctx, checkQuery, w.EmployeeID, w.Date).Scan(&exists); err != nil {
		return calendar.WeeklyOff{}, err
	}
	if exists {
		return calendar.WeeklyOff{}, calendar.ErrWeeklyOffExists
	}

	query := `
		INSERT INTO weekly_offs (id, company_id, employee_id, date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query, w.ID, w.CompanyID, w.EmployeeID, w.Date).Scan(&w.CreatedAt)
	if err != nil {
		return calendar.WeeklyOff{}, err
	}
	return w, nil
}

// GetByEmployeeAndDateRange implements calendar.WeeklyOffRepository.
func (r *weeklyOffRepositoryImpl) GetByEmployeeAndDateRange(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]calendar.WeeklyOff, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, employee_id, date, created_at
		FROM weekly_offs
		WHERE employee_id = $1 AND company_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, employeeID, companyID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offs []calendar.WeeklyOff
	for rows.Next() {
		var w calendar.WeeklyOff
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.EmployeeID, &w.Date, &w.CreatedAt); err != nil {
			return nil, err
		}
		offs = append(offs, w)
	}
	return offs, rows.Err()
}

// ListByEmployee implements calendar.WeeklyOffRepository.
func (r *weeklyOffRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]calendar.WeeklyOff, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, employee_id, date, created_at
		FROM weekly_offs
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offs []calendar.WeeklyOff
	for rows.Next() {
		var w calendar.WeeklyOff
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.EmployeeID, &w.Date, &w.CreatedAt); err != nil {
			return nil, err
		}
		offs = append(offs, w)
	}
	return offs, rows.Err()
}

// Delete implements calendar.WeeklyOffRepository.
func (r *weeklyOffRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)
	query := `DELETE FROM weekly_offs WHERE id = $1 AND company_id = $2`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return calendar.ErrWeeklyOffNotFound
	}
	return nil
}
