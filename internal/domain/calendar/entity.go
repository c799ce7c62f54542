package calendar

import "time"

// Holiday is a company-wide or public holiday on a single date.
type Holiday struct {
	ID        string
	CompanyID string
	Name      string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeeklyOff marks a scheduled rest day for one employee on one date.
// Rest days are stored per date rather than as a fixed weekday because
// they can vary with the employee's shift roster.
type WeeklyOff struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       time.Time
	CreatedAt  time.Time
}
