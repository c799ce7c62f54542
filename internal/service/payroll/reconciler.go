package payroll

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kirana-hr/kirana-backend-go/internal/domain/attendance"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/calendar"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/leave"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/payroll"
	"golang.org/x/sync/errgroup"
)

const dateKeyLayout = "2006-01-02"

// The reconciler only reads; it depends on the narrowest slice of each
// repository it needs so tests can substitute in-memory sources.

type AttendanceSource interface {
	GetByEmployeeAndDateRange(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]attendance.Attendance, error)
}

type LeaveRequestSource interface {
	GetOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]leave.LeaveRequest, error)
}

type HolidaySource interface {
	GetByDateRange(ctx context.Context, startDate, endDate time.Time, companyID string) ([]calendar.Holiday, error)
}

type WeeklyOffSource interface {
	GetByEmployeeAndDateRange(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]calendar.WeeklyOff, error)
}

// Reconciler walks a pay period one calendar day at a time and classifies
// each day as weekly off, holiday or working day, resolving working days
// against overlapping leave requests and attendance records. It holds no
// state between calls; every call fetches its own snapshot of the four
// datasets and computes independently.
type Reconciler struct {
	attendanceSource AttendanceSource
	leaveSource      LeaveRequestSource
	holidaySource    HolidaySource
	weeklyOffSource  WeeklyOffSource
}

func NewReconciler(
	attendanceSource AttendanceSource,
	leaveSource LeaveRequestSource,
	holidaySource HolidaySource,
	weeklyOffSource WeeklyOffSource,
) *Reconciler {
	return &Reconciler{
		attendanceSource: attendanceSource,
		leaveSource:      leaveSource,
		holidaySource:    holidaySource,
		weeklyOffSource:  weeklyOffSource,
	}
}

// periodData is the immutable snapshot the per-day loop classifies against.
// Attendance, holidays and weekly offs are indexed by date key so each
// lookup inside the loop is O(1); leave requests stay in fetch order because
// the first request covering a day wins.
type periodData struct {
	attendanceByDate map[string]attendance.Attendance
	leaveRequests    []leave.LeaveRequest
	holidayDates     map[string]struct{}
	weeklyOffDates   map[string]struct{}
	attendanceCount  int
}

// Reconcile classifies every calendar day in the period and returns the
// aggregate counts plus the payable-days factor. It never returns an error:
// fetch failures and loop panics are recorded in ValidationErrors with the
// partial aggregates computed so far, and degenerate inputs surface as
// ValidationWarnings on an otherwise complete result.
func (r *Reconciler) Reconcile(ctx context.Context, companyID string, period payroll.Period) payroll.CalculationResult {
	startDate := dateOnly(period.StartDate)
	endDate := dateOnly(period.EndDate)

	result := payroll.CalculationResult{
		EmployeeID:        period.EmployeeID,
		StartDate:         startDate,
		EndDate:           endDate,
		TotalCalendarDays: payroll.Period{StartDate: startDate, EndDate: endDate}.TotalCalendarDays(),
	}

	data, err := r.loadPeriodData(ctx, companyID, period.EmployeeID, startDate, endDate)
	if err != nil {
		// A source failure aborts the calculation; the caller gets the
		// zeroed aggregates plus the captured error.
		result.ValidationErrors = append(result.ValidationErrors, err.Error())
		return result
	}

	r.walkPeriod(&result, data)

	if result.TotalWorkingDays > 0 {
		// The divisor is calendar days, not working days, even though the
		// guard checks working days. Downstream proration depends on this
		// exact ratio.
		result.PayableDaysFactor = result.TotalPayableDays / float64(result.TotalCalendarDays)
	}

	if len(result.ValidationErrors) == 0 {
		result.ValidationWarnings = append(result.ValidationWarnings, diagnose(&result, data)...)
	}

	return result
}

// loadPeriodData fetches the four datasets concurrently. All fetches settle
// before the day loop starts; the first failure wins and is reported as the
// fetch error.
func (r *Reconciler) loadPeriodData(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (*periodData, error) {
	data := &periodData{
		attendanceByDate: make(map[string]attendance.Attendance),
		holidayDates:     make(map[string]struct{}),
		weeklyOffDates:   make(map[string]struct{}),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := r.attendanceSource.GetByEmployeeAndDateRange(gctx, employeeID, startDate, endDate, companyID)
		if err != nil {
			return fmt.Errorf("fetch attendance records: %w", err)
		}
		for _, rec := range records {
			data.attendanceByDate[dateKey(rec.Date)] = rec
		}
		data.attendanceCount = len(records)
		return nil
	})

	g.Go(func() error {
		requests, err := r.leaveSource.GetOverlapping(gctx, employeeID, startDate, endDate, companyID)
		if err != nil {
			return fmt.Errorf("fetch leave requests: %w", err)
		}
		data.leaveRequests = requests
		return nil
	})

	g.Go(func() error {
		holidays, err := r.holidaySource.GetByDateRange(gctx, startDate, endDate, companyID)
		if err != nil {
			return fmt.Errorf("fetch holidays: %w", err)
		}
		for _, h := range holidays {
			data.holidayDates[dateKey(h.Date)] = struct{}{}
		}
		return nil
	})

	g.Go(func() error {
		offs, err := r.weeklyOffSource.GetByEmployeeAndDateRange(gctx, employeeID, startDate, endDate, companyID)
		if err != nil {
			return fmt.Errorf("fetch weekly offs: %w", err)
		}
		for _, w := range offs {
			data.weeklyOffDates[dateKey(w.Date)] = struct{}{}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// dayClassifier is one entry of the ordered classification table. The table
// is evaluated top-down per day and the first matching classifier wins, so
// the priority contract (weekly off > holiday > working day) is explicit
// rather than buried in nested conditionals.
type dayClassifier struct {
	name    string
	matches func(day time.Time, data *periodData) bool
	apply   func(day time.Time, data *periodData, result *payroll.CalculationResult) payroll.PayableDay
}

func (r *Reconciler) classifiers() []dayClassifier {
	return []dayClassifier{
		{
			name: "weekly_off",
			matches: func(day time.Time, data *periodData) bool {
				_, ok := data.weeklyOffDates[dateKey(day)]
				return ok
			},
			apply: classifyWeeklyOff,
		},
		{
			name: "holiday",
			matches: func(day time.Time, data *periodData) bool {
				_, ok := data.holidayDates[dateKey(day)]
				return ok
			},
			apply: classifyHoliday,
		},
		{
			name:    "working_day",
			matches: func(time.Time, *periodData) bool { return true },
			apply:   classifyWorkingDay,
		},
	}
}

// walkPeriod runs the per-day loop over the inclusive date range in
// ascending order. The cursor is advanced functionally with AddDate; the
// loop never mutates a shared date value. A panic inside classification is
// captured as a validation error and the partial result stands.
func (r *Reconciler) walkPeriod(result *payroll.CalculationResult, data *periodData) {
	defer func() {
		if p := recover(); p != nil {
			result.ValidationErrors = append(result.ValidationErrors,
				fmt.Sprintf("payroll calculation failed: %v", p))
		}
	}()

	classifiers := r.classifiers()
	for day := result.StartDate; !day.After(result.EndDate); day = day.AddDate(0, 0, 1) {
		for _, c := range classifiers {
			if !c.matches(day, data) {
				continue
			}
			payableDay := c.apply(day, data, result)
			result.TotalPayableDays += payableDay.PayFactor
			result.Days = append(result.Days, payableDay)
			break
		}
	}
}

func classifyWeeklyOff(day time.Time, _ *periodData, result *payroll.CalculationResult) payroll.PayableDay {
	result.TotalWeekendDays++
	// Scheduled rest days are paid in full.
	return payroll.PayableDay{Date: day, IsWeekend: true, PayFactor: 1}
}

func classifyHoliday(day time.Time, _ *periodData, result *payroll.CalculationResult) payroll.PayableDay {
	result.TotalHolidays++
	return payroll.PayableDay{Date: day, IsHoliday: true, PayFactor: 1}
}

func classifyWorkingDay(day time.Time, data *periodData, result *payroll.CalculationResult) payroll.PayableDay {
	result.TotalWorkingDays++
	payableDay := payroll.PayableDay{Date: day, IsWorkingDay: true}

	if request, ok := findLeaveCovering(data.leaveRequests, day); ok {
		applyLeave(&payableDay, request, result)
		return payableDay
	}

	if record, ok := data.attendanceByDate[dateKey(day)]; ok {
		applyAttendance(&payableDay, record, result)
		return payableDay
	}

	// No leave and no attendance record: assume a full present day rather
	// than docking pay for missing data.
	payableDay.IsPresent = true
	payableDay.PayFactor = 1
	result.TotalPresentDays++
	return payableDay
}

// findLeaveCovering returns the first request in fetch order whose inclusive
// range contains day.
func findLeaveCovering(requests []leave.LeaveRequest, day time.Time) (leave.LeaveRequest, bool) {
	for _, request := range requests {
		if request.Covers(day) {
			return request, true
		}
	}
	return leave.LeaveRequest{}, false
}

// leaveFactor is the fraction of the day consumed by the leave request:
// 0.5 for a half-day single-day request, 0.5 on the start/end day of a
// multi-day request with the matching half-day flag and a fractional total,
// 1 otherwise.
func leaveFactor(request leave.LeaveRequest, day time.Time) float64 {
	if request.IsSingleDay() && request.TotalDays == 0.5 {
		return 0.5
	}
	if !request.IsSingleDay() && request.TotalDays != math.Trunc(request.TotalDays) {
		if sameDate(day, request.StartDate) && request.IsHalfDayStart {
			return 0.5
		}
		if sameDate(day, request.EndDate) && request.IsHalfDayEnd {
			return 0.5
		}
	}
	return 1
}

func applyLeave(payableDay *payroll.PayableDay, request leave.LeaveRequest, result *payroll.CalculationResult) {
	factor := leaveFactor(request, payableDay.Date)

	payableDay.IsLeave = true
	payableDay.LeaveType = request.LeaveTypeName

	typeName := ""
	if request.LeaveTypeName != nil {
		typeName = *request.LeaveTypeName
	}

	result.TotalLeaveDays += factor

	approved := request.Status == leave.LeaveRequestStatusApproved
	if !approved || isLossOfPay(typeName) {
		// Pending, rejected and cancelled requests still block the day,
		// so they count as loss of pay whatever the leave type says.
		result.TotalUnpaidLeaveDays += factor
		payableDay.PayFactor = 1 - factor
		return
	}

	if request.LeaveTypeIsPaid != nil && *request.LeaveTypeIsPaid {
		payableDay.IsPaidLeave = true
		result.TotalPaidLeaveDays += factor
		payableDay.PayFactor = 1
		return
	}

	result.TotalUnpaidLeaveDays += factor
	payableDay.PayFactor = 1 - factor
}

func applyAttendance(payableDay *payroll.PayableDay, record attendance.Attendance, result *payroll.CalculationResult) {
	status := string(record.Status)
	payableDay.AttendanceStatus = &status

	switch record.Status {
	case attendance.StatusHalfDay:
		payableDay.IsPresent = true
		payableDay.PayFactor = 0.5
		result.TotalPresentDays += 0.5
	case attendance.StatusAbsent:
		payableDay.PayFactor = 0
		result.TotalAbsentDays++
	default:
		// Present and late both pay in full; lateness is handled by
		// deductions, not by the payable-days factor.
		payableDay.IsPresent = true
		payableDay.PayFactor = 1
		result.TotalPresentDays++
	}
}

// isLossOfPay reports whether a leave type name marks an unpaid
// loss-of-pay category.
func isLossOfPay(typeName string) bool {
	upper := strings.ToUpper(typeName)
	return strings.Contains(upper, "LOP") || strings.Contains(upper, "LOSS OF PAY")
}

// diagnose collects the non-fatal data-quality warnings for a completed
// calculation.
func diagnose(result *payroll.CalculationResult, data *periodData) []string {
	var warnings []string
	if result.TotalWorkingDays == 0 {
		warnings = append(warnings, "period contains no working days")
	}
	if result.TotalAbsentDays > 0 {
		warnings = append(warnings, fmt.Sprintf("period contains %g absent day(s)", result.TotalAbsentDays))
	}
	if data.attendanceCount == 0 {
		warnings = append(warnings, "no attendance records found for period")
	}
	return warnings
}

func dateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// dateOnly strips the time component, keeping only the calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	return dateKey(a) == dateKey(b)
}
