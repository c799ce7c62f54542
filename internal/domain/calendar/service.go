package calendar

import "context"

// CalendarService manages holidays and per-employee weekly-off days.
type CalendarService interface {
	AddHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	RemoveHoliday(ctx context.Context, id string) error

	AssignWeeklyOff(ctx context.Context, req AssignWeeklyOffRequest) (WeeklyOffResponse, error)
	ListWeeklyOffs(ctx context.Context, employeeID string) ([]WeeklyOffResponse, error)
	RemoveWeeklyOff(ctx context.Context, id string) error
}
