package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository defines data access methods for leave types.
type LeaveTypeRepository interface {
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string, companyID string) (LeaveType, error)
	ListByCompany(ctx context.Context, companyID string, activeOnly bool) ([]LeaveType, error)
	Delete(ctx context.Context, id string, companyID string) error
}

// LeaveRequestRepository defines data access methods for leave requests.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, companyID string) (LeaveRequest, error)

	// GetOverlapping retrieves every leave request whose range overlaps
	// [startDate, endDate] for the employee, REGARDLESS of approval status,
	// with the leave type name and paid flag joined in. Ordered by
	// submitted_at so that overlap resolution is deterministic.
	GetOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]LeaveRequest, error)

	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]LeaveRequest, int64, error)

	UpdateStatus(ctx context.Context, id string, companyID string, status LeaveRequestStatus, actorID string, reason *string) error
}
