package attendance

import "context"

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// RecordAttendance creates a daily attendance record for an employee.
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin/manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// UpdateAttendance updates an attendance record - for fixing wrong data
	UpdateAttendance(ctx context.Context, id string, req RecordAttendanceRequest) (AttendanceResponse, error)
}
