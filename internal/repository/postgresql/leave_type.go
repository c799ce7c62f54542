package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/leave"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM leave_types WHERE company_id = $1 AND LOWER(name) = LOWER($2))`
	if err := q.QueryRow(ctx, checkQuery, lt.CompanyID, lt.Name).Scan(&exists); err != nil {
		return leave.LeaveType{}, err
	}
	if exists {
		return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
	}

	query := `
		INSERT INTO leave_types (id, company_id, name, code, description, is_paid, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		lt.ID, lt.CompanyID, lt.Name, lt.Code, lt.Description, lt.IsPaid, lt.IsActive,
	).Scan(&lt.CreatedAt, &lt.UpdatedAt)
	if err != nil {
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, name, code, description, is_paid, is_active, created_at, updated_at
		FROM leave_types
		WHERE id = $1 AND company_id = $2
	`
	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&lt.ID, &lt.CompanyID, &lt.Name, &lt.Code, &lt.Description,
		&lt.IsPaid, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// ListByCompany implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) ListByCompany(ctx context.Context, companyID string, activeOnly bool) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, name, code, description, is_paid, is_active, created_at, updated_at
		FROM leave_types
		WHERE company_id = $1 AND ($2 = false OR is_active = true)
		ORDER BY name
	`
	rows, err := q.Query(ctx, query, companyID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.CompanyID, &lt.Name, &lt.Code, &lt.Description,
			&lt.IsPaid, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

// Delete implements leave.LeaveTypeRepository.
// Leave types referenced by requests are deactivated instead of removed so
// historical reconciliation keeps resolving the paid flag.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	var referenced bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM leave_requests WHERE leave_type_id = $1)`
	if err := q.QueryRow(ctx, checkQuery, id).Scan(&referenced); err != nil {
		return err
	}

	if referenced {
		query := `UPDATE leave_types SET is_active = false, updated_at = NOW() WHERE id = $1 AND company_id = $2`
		commandTag, err := q.Exec(ctx, query, id, companyID)
		if err != nil {
			return err
		}
		if commandTag.RowsAffected() != 1 {
			return leave.ErrLeaveTypeNotFound
		}
		return nil
	}

	query := `DELETE FROM leave_types WHERE id = $1 AND company_id = $2`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}
