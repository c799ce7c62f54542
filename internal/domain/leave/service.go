package leave

import "context"

// LeaveService defines business logic for leave types and requests.
type LeaveService interface {
	// Leave types
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error)
	DeleteLeaveType(ctx context.Context, id string) error

	// Leave requests
	SubmitRequest(ctx context.Context, req SubmitLeaveRequestRequest) (LeaveRequestResponse, error)
	GetRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListEmployeeRequests(ctx context.Context, employeeID string) (ListLeaveRequestResponse, error)
	ApproveRequest(ctx context.Context, req ProcessLeaveRequestRequest) error
	RejectRequest(ctx context.Context, req ProcessLeaveRequestRequest) error
	CancelRequest(ctx context.Context, id string) error
}
