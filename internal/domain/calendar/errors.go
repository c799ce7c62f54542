package calendar

import "errors"

var (
	ErrHolidayNotFound   = errors.New("holiday not found")
	ErrHolidayExists     = errors.New("holiday already exists on this date")
	ErrWeeklyOffNotFound = errors.New("weekly off entry not found")
	ErrWeeklyOffExists   = errors.New("weekly off already assigned for this date")
)
