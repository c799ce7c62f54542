package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID parameter to prevent cross-company data access.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetByEmployeeAndDate retrieves attendance for a specific employee on a
	// specific date, or ErrAttendanceNotFound. Used to prevent duplicate
	// daily records.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (Attendance, error)

	// GetByEmployeeAndDateRange retrieves all attendance records for an
	// employee within [startDate, endDate] inclusive, ordered by date.
	GetByEmployeeAndDateRange(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]Attendance, error)

	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	Update(ctx context.Context, att Attendance) error
}
