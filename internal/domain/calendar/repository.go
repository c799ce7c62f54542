package calendar

import (
	"context"
	"time"
)

// HolidayRepository defines data access methods for company holidays.
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)

	// GetByDateRange retrieves holidays within [startDate, endDate] inclusive.
	GetByDateRange(ctx context.Context, startDate, endDate time.Time, companyID string) ([]Holiday, error)

	ListByCompany(ctx context.Context, companyID string, year int) ([]Holiday, error)
	Delete(ctx context.Context, id string, companyID string) error
}

// WeeklyOffRepository defines data access methods for per-employee rest days.
type WeeklyOffRepository interface {
	Create(ctx context.Context, w WeeklyOff) (WeeklyOff, error)

	// GetByEmployeeAndDateRange retrieves an employee's rest days within
	// [startDate, endDate] inclusive.
	GetByEmployeeAndDateRange(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]WeeklyOff, error)

	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]WeeklyOff, error)
	Delete(ctx context.Context, id string, companyID string) error
}
