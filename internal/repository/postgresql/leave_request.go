package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/leave"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestJoinedColumns = `
	lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
	lr.total_days, lr.is_half_day_start, lr.is_half_day_end, lr.reason,
	lr.status, lr.approved_by, lr.approved_at, lr.rejection_reason,
	lr.submitted_at, lr.created_at, lr.updated_at,
	lt.name AS leave_type_name, lt.is_paid AS leave_type_is_paid,
	CONCAT(e.first_name, ' ', e.last_name) AS employee_name`

func scanLeaveRequestJoined(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate,
		&lr.TotalDays, &lr.IsHalfDayStart, &lr.IsHalfDayEnd, &lr.Reason,
		&lr.Status, &lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectionReason,
		&lr.SubmittedAt, &lr.CreatedAt, &lr.UpdatedAt,
		&lr.LeaveTypeName, &lr.LeaveTypeIsPaid,
		&lr.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id, start_date, end_date,
			total_days, is_half_day_start, is_half_day_end, reason,
			status, submitted_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.LeaveTypeID, request.StartDate, request.EndDate,
		request.TotalDays, request.IsHalfDayStart, request.IsHalfDayEnd, request.Reason,
		request.Status, request.SubmittedAt,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveRequestJoinedColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.id = $1 AND e.company_id = $2
	`
	return scanLeaveRequestJoined(q.QueryRow(ctx, query, id, companyID))
}

// GetOverlapping implements leave.LeaveRequestRepository.
// Every status is included; reconciliation decides what an unapproved
// request means. Ordering by submitted_at makes overlap resolution
// deterministic when ranges collide.
func (r *leaveRequestRepositoryImpl) GetOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveRequestJoinedColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.employee_id = $1
		  AND e.company_id = $2
		  AND lr.start_date <= $3
		  AND lr.end_date >= $4
		ORDER BY lr.submitted_at
	`
	rows, err := q.Query(ctx, query, employeeID, companyID, endDate, startDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequestJoined(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	var totalCount int64
	countQuery := `
		SELECT COUNT(*)
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.employee_id = $1 AND e.company_id = $2
	`
	if err := q.QueryRow(ctx, countQuery, employeeID, companyID).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + leaveRequestJoinedColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.employee_id = $1 AND e.company_id = $2
		ORDER BY lr.submitted_at DESC
	`
	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequestJoined(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, lr)
	}
	return requests, totalCount, rows.Err()
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, companyID string, status leave.LeaveRequestStatus, actorID string, reason *string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_requests lr
		SET status = $1,
			approved_by = CASE WHEN $1 = 'approved' THEN $2 ELSE lr.approved_by END,
			approved_at = CASE WHEN $1 = 'approved' THEN NOW() ELSE lr.approved_at END,
			rejection_reason = $3,
			updated_at = NOW()
		FROM employees e
		WHERE lr.id = $4 AND e.id = lr.employee_id AND e.company_id = $5
	`
	commandTag, err := q.Exec(ctx, query, status, actorID, reason, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}
