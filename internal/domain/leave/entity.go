package leave

import "time"

// LeaveType entity
type LeaveType struct {
	ID          string
	CompanyID   string
	Name        string
	Code        *string
	Description *string
	IsPaid      bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusWaitingApproval LeaveRequestStatus = "waiting_approval"
	LeaveRequestStatusApproved        LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected        LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled       LeaveRequestStatus = "cancelled"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time

	TotalDays      float64
	IsHalfDayStart bool
	IsHalfDayEnd   bool

	Reason string

	Status          LeaveRequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields (for responses and reconciliation)
	LeaveTypeName   *string
	LeaveTypeIsPaid *bool
	EmployeeName    *string
}

// Covers reports whether the request's inclusive date range contains day.
// Only calendar dates are compared; time of day and zone offsets are ignored.
func (r LeaveRequest) Covers(day time.Time) bool {
	d := calendarDate(day)
	return !d.Before(calendarDate(r.StartDate)) && !d.After(calendarDate(r.EndDate))
}

// IsSingleDay reports whether the request starts and ends on the same date.
func (r LeaveRequest) IsSingleDay() bool {
	return calendarDate(r.StartDate).Equal(calendarDate(r.EndDate))
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
