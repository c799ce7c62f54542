package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kirana-hr/kirana-backend-go/internal/domain/attendance"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/calendar"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/leave"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSources struct {
	attendances   []attendance.Attendance
	leaveRequests []leave.LeaveRequest
	holidays      []calendar.Holiday
	weeklyOffs    []calendar.WeeklyOff

	attendanceErr error
	leaveErr      error
	holidayErr    error
	weeklyOffErr  error
}

func (f *fakeSources) GetByEmployeeAndDateRange(_ context.Context, _ string, _, _ time.Time, _ string) ([]attendance.Attendance, error) {
	return f.attendances, f.attendanceErr
}

func (f *fakeSources) GetOverlapping(_ context.Context, _ string, _, _ time.Time, _ string) ([]leave.LeaveRequest, error) {
	return f.leaveRequests, f.leaveErr
}

type fakeHolidaySource struct{ f *fakeSources }

func (h fakeHolidaySource) GetByDateRange(_ context.Context, _, _ time.Time, _ string) ([]calendar.Holiday, error) {
	return h.f.holidays, h.f.holidayErr
}

type fakeWeeklyOffSource struct{ f *fakeSources }

func (w fakeWeeklyOffSource) GetByEmployeeAndDateRange(_ context.Context, _ string, _, _ time.Time, _ string) ([]calendar.WeeklyOff, error) {
	return w.f.weeklyOffs, w.f.weeklyOffErr
}

func newTestReconciler(f *fakeSources) *Reconciler {
	return NewReconciler(f, f, fakeHolidaySource{f}, fakeWeeklyOffSource{f})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func approvedLeave(typeName string, isPaid bool, start, end time.Time, totalDays float64) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:              "lr-1",
		EmployeeID:      "emp-1",
		StartDate:       start,
		EndDate:         end,
		TotalDays:       totalDays,
		Status:          leave.LeaveRequestStatusApproved,
		LeaveTypeName:   strPtr(typeName),
		LeaveTypeIsPaid: boolPtr(isPaid),
	}
}

func monToFri() payroll.Period {
	// 2025-06-02 is a Monday.
	return payroll.Period{
		EmployeeID: "emp-1",
		StartDate:  date(2025, time.June, 2),
		EndDate:    date(2025, time.June, 6),
	}
}

func TestReconcile_AllDaysPresentByDefault(t *testing.T) {
	r := newTestReconciler(&fakeSources{})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, 5, result.TotalCalendarDays)
	assert.Equal(t, 5, result.TotalWorkingDays)
	assert.Equal(t, float64(5), result.TotalPresentDays)
	assert.Equal(t, float64(5), result.TotalPayableDays)
	assert.InDelta(t, 1.0, result.PayableDaysFactor, 1e-9)
	assert.Len(t, result.Days, 5)

	// Missing data warns but never fails.
	assert.Contains(t, result.ValidationWarnings, "no attendance records found for period")
}

func TestReconcile_ApprovedPaidLeaveMidWeek(t *testing.T) {
	wednesday := date(2025, time.June, 4)
	r := newTestReconciler(&fakeSources{
		leaveRequests: []leave.LeaveRequest{
			approvedLeave("Annual Leave", true, wednesday, wednesday, 1),
		},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, float64(1), result.TotalLeaveDays)
	assert.Equal(t, float64(1), result.TotalPaidLeaveDays)
	assert.Equal(t, float64(0), result.TotalUnpaidLeaveDays)
	// Paid leave keeps the full day payable.
	assert.Equal(t, float64(5), result.TotalPayableDays)
	assert.InDelta(t, 1.0, result.PayableDaysFactor, 1e-9)

	day := result.Days[2]
	assert.True(t, day.IsLeave)
	assert.True(t, day.IsPaidLeave)
	assert.Equal(t, float64(1), day.PayFactor)
}

func TestReconcile_PendingLeaveCountsAsUnpaid(t *testing.T) {
	wednesday := date(2025, time.June, 4)
	pending := approvedLeave("Annual Leave", true, wednesday, wednesday, 1)
	pending.Status = leave.LeaveRequestStatusWaitingApproval

	r := newTestReconciler(&fakeSources{
		leaveRequests: []leave.LeaveRequest{pending},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, float64(1), result.TotalUnpaidLeaveDays)
	assert.Equal(t, float64(0), result.TotalPaidLeaveDays)
	assert.Equal(t, float64(4), result.TotalPayableDays)
	assert.InDelta(t, 0.8, result.PayableDaysFactor, 1e-9)
}

func TestReconcile_LossOfPayTypeIsUnpaidEvenWhenApproved(t *testing.T) {
	wednesday := date(2025, time.June, 4)
	for _, typeName := range []string{"LOP", "Loss of Pay", "loss of pay leave"} {
		r := newTestReconciler(&fakeSources{
			leaveRequests: []leave.LeaveRequest{
				// Paid flag set, but the name marks it loss of pay.
				approvedLeave(typeName, true, wednesday, wednesday, 1),
			},
		})

		result := r.Reconcile(context.Background(), "co-1", monToFri())

		require.True(t, result.OK())
		assert.Equal(t, float64(1), result.TotalUnpaidLeaveDays, typeName)
		assert.Equal(t, float64(4), result.TotalPayableDays, typeName)
	}
}

func TestReconcile_ApprovedUnpaidLeave(t *testing.T) {
	wednesday := date(2025, time.June, 4)
	r := newTestReconciler(&fakeSources{
		leaveRequests: []leave.LeaveRequest{
			approvedLeave("Sabbatical", false, wednesday, wednesday, 1),
		},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, float64(1), result.TotalUnpaidLeaveDays)
	assert.Equal(t, float64(4), result.TotalPayableDays)
}

func TestReconcile_HalfDaySingleDayLeave(t *testing.T) {
	wednesday := date(2025, time.June, 4)
	request := approvedLeave("Sabbatical", false, wednesday, wednesday, 0.5)
	request.IsHalfDayStart = true

	r := newTestReconciler(&fakeSources{
		leaveRequests: []leave.LeaveRequest{request},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, 0.5, result.TotalLeaveDays)
	assert.Equal(t, 0.5, result.TotalUnpaidLeaveDays)
	// Half the day is still payable.
	assert.Equal(t, 4.5, result.TotalPayableDays)
	assert.Equal(t, 0.5, result.Days[2].PayFactor)
}

func TestReconcile_MultiDayLeaveWithHalfDayEdges(t *testing.T) {
	// Tuesday through Thursday, half day on both edges: 2.0 total days.
	request := approvedLeave("Sabbatical", false,
		date(2025, time.June, 3), date(2025, time.June, 5), 2.0)
	request.IsHalfDayStart = true
	request.IsHalfDayEnd = true

	r := newTestReconciler(&fakeSources{
		leaveRequests: []leave.LeaveRequest{request},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	// Whole-number total: half-day flags are ignored, all three days full.
	assert.Equal(t, float64(3), result.TotalLeaveDays)
	assert.Equal(t, float64(0), result.Days[1].PayFactor)
	assert.Equal(t, float64(0), result.Days[3].PayFactor)
	assert.Equal(t, float64(2), result.TotalPayableDays)
}

func TestReconcile_MultiDayFractionalLeaveHalfDayEdges(t *testing.T) {
	// Tuesday through Thursday, half day start only: 2.5 total days.
	request := approvedLeave("Sabbatical", false,
		date(2025, time.June, 3), date(2025, time.June, 5), 2.5)
	request.IsHalfDayStart = true

	r := newTestReconciler(&fakeSources{
		leaveRequests: []leave.LeaveRequest{request},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, 2.5, result.TotalLeaveDays)
	// Tuesday is half leave, half worked.
	assert.Equal(t, 0.5, result.Days[1].PayFactor)
	// Wednesday and Thursday are full leave days.
	assert.Equal(t, float64(0), result.Days[2].PayFactor)
	assert.Equal(t, float64(0), result.Days[3].PayFactor)
	assert.Equal(t, 2.5, result.TotalPayableDays)
}

func TestReconcile_WeeklyOffBeatsHolidayBeatsWorkingDay(t *testing.T) {
	wednesday := date(2025, time.June, 4)
	r := newTestReconciler(&fakeSources{
		holidays:   []calendar.Holiday{{Date: wednesday, Name: "Founders Day"}},
		weeklyOffs: []calendar.WeeklyOff{{EmployeeID: "emp-1", Date: wednesday}},
		// Leave covering the same day must not be consulted.
		leaveRequests: []leave.LeaveRequest{
			approvedLeave("Sabbatical", false, wednesday, wednesday, 1),
		},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, 1, result.TotalWeekendDays)
	assert.Equal(t, 0, result.TotalHolidays)
	assert.Equal(t, 4, result.TotalWorkingDays)
	assert.Equal(t, float64(0), result.TotalLeaveDays)

	day := result.Days[2]
	assert.True(t, day.IsWeekend)
	assert.False(t, day.IsHoliday)
	assert.False(t, day.IsWorkingDay)
	assert.Equal(t, float64(1), day.PayFactor)
}

func TestReconcile_HolidayPaysInFull(t *testing.T) {
	wednesday := date(2025, time.June, 4)
	r := newTestReconciler(&fakeSources{
		holidays: []calendar.Holiday{{Date: wednesday, Name: "Founders Day"}},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, 1, result.TotalHolidays)
	assert.Equal(t, 4, result.TotalWorkingDays)
	assert.Equal(t, float64(5), result.TotalPayableDays)
	assert.True(t, result.Days[2].IsHoliday)
}

func TestReconcile_AttendanceStatuses(t *testing.T) {
	r := newTestReconciler(&fakeSources{
		attendances: []attendance.Attendance{
			{EmployeeID: "emp-1", Date: date(2025, time.June, 2), Status: attendance.StatusPresent},
			{EmployeeID: "emp-1", Date: date(2025, time.June, 3), Status: attendance.StatusLate},
			{EmployeeID: "emp-1", Date: date(2025, time.June, 4), Status: attendance.StatusHalfDay},
			{EmployeeID: "emp-1", Date: date(2025, time.June, 5), Status: attendance.StatusAbsent},
			// Friday has no record: presence assumed.
		},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, 3.5, result.TotalPresentDays)
	assert.Equal(t, float64(1), result.TotalAbsentDays)
	assert.Equal(t, 3.5, result.TotalPayableDays)
	assert.InDelta(t, 0.7, result.PayableDaysFactor, 1e-9)

	assert.Equal(t, float64(1), result.Days[0].PayFactor)
	assert.Equal(t, float64(1), result.Days[1].PayFactor)
	assert.Equal(t, 0.5, result.Days[2].PayFactor)
	assert.Equal(t, float64(0), result.Days[3].PayFactor)
	assert.Equal(t, float64(1), result.Days[4].PayFactor)

	assert.Contains(t, result.ValidationWarnings, "period contains 1 absent day(s)")
}

func TestReconcile_LeaveWinsOverAttendance(t *testing.T) {
	wednesday := date(2025, time.June, 4)
	r := newTestReconciler(&fakeSources{
		attendances: []attendance.Attendance{
			{EmployeeID: "emp-1", Date: wednesday, Status: attendance.StatusPresent},
		},
		leaveRequests: []leave.LeaveRequest{
			approvedLeave("Sabbatical", false, wednesday, wednesday, 1),
		},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	day := result.Days[2]
	assert.True(t, day.IsLeave)
	assert.Nil(t, day.AttendanceStatus)
	assert.Equal(t, float64(0), day.PayFactor)
}

func TestReconcile_FirstOverlappingLeaveWins(t *testing.T) {
	wednesday := date(2025, time.June, 4)
	first := approvedLeave("Annual Leave", true, wednesday, wednesday, 1)
	second := approvedLeave("Sabbatical", false, wednesday, wednesday, 1)
	second.ID = "lr-2"

	r := newTestReconciler(&fakeSources{
		leaveRequests: []leave.LeaveRequest{first, second},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	// Fetch order decides; the paid request was fetched first.
	assert.Equal(t, float64(1), result.TotalPaidLeaveDays)
	assert.Equal(t, float64(0), result.TotalUnpaidLeaveDays)
}

func TestReconcile_FetchErrorZeroesAggregates(t *testing.T) {
	r := newTestReconciler(&fakeSources{
		attendanceErr: errors.New("connection refused"),
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.False(t, result.OK())
	require.Len(t, result.ValidationErrors, 1)
	assert.Contains(t, result.ValidationErrors[0], "fetch attendance records")
	assert.Contains(t, result.ValidationErrors[0], "connection refused")

	assert.Equal(t, 5, result.TotalCalendarDays)
	assert.Equal(t, 0, result.TotalWorkingDays)
	assert.Equal(t, float64(0), result.TotalPayableDays)
	assert.Equal(t, float64(0), result.PayableDaysFactor)
	assert.Empty(t, result.Days)
	// Errors suppress warnings.
	assert.Empty(t, result.ValidationWarnings)
}

func TestReconcile_LeaveFetchErrorReported(t *testing.T) {
	r := newTestReconciler(&fakeSources{
		leaveErr: errors.New("timeout"),
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.False(t, result.OK())
	assert.Contains(t, result.ValidationErrors[0], "fetch leave requests")
}

func TestReconcile_InvertedRangeYieldsZeroDays(t *testing.T) {
	r := newTestReconciler(&fakeSources{})

	result := r.Reconcile(context.Background(), "co-1", payroll.Period{
		EmployeeID: "emp-1",
		StartDate:  date(2025, time.June, 6),
		EndDate:    date(2025, time.June, 2),
	})

	require.True(t, result.OK())
	assert.Equal(t, 0, result.TotalCalendarDays)
	assert.Equal(t, 0, result.TotalWorkingDays)
	assert.Empty(t, result.Days)
	assert.Equal(t, float64(0), result.PayableDaysFactor)
	assert.Contains(t, result.ValidationWarnings, "period contains no working days")
}

func TestReconcile_SingleDayPeriod(t *testing.T) {
	day := date(2025, time.June, 4)
	r := newTestReconciler(&fakeSources{})

	result := r.Reconcile(context.Background(), "co-1", payroll.Period{
		EmployeeID: "emp-1",
		StartDate:  day,
		EndDate:    day,
	})

	require.True(t, result.OK())
	assert.Equal(t, 1, result.TotalCalendarDays)
	assert.Equal(t, float64(1), result.TotalPayableDays)
	assert.InDelta(t, 1.0, result.PayableDaysFactor, 1e-9)
}

func TestReconcile_AllWeeklyOffPeriodHasZeroFactor(t *testing.T) {
	period := monToFri()
	var offs []calendar.WeeklyOff
	for d := period.StartDate; !d.After(period.EndDate); d = d.AddDate(0, 0, 1) {
		offs = append(offs, calendar.WeeklyOff{EmployeeID: "emp-1", Date: d})
	}

	r := newTestReconciler(&fakeSources{weeklyOffs: offs})

	result := r.Reconcile(context.Background(), "co-1", period)

	require.True(t, result.OK())
	assert.Equal(t, 5, result.TotalWeekendDays)
	assert.Equal(t, 0, result.TotalWorkingDays)
	assert.Equal(t, float64(5), result.TotalPayableDays)
	// No working days: the factor stays zero by contract.
	assert.Equal(t, float64(0), result.PayableDaysFactor)
	assert.Contains(t, result.ValidationWarnings, "period contains no working days")
}

// The factor divides by calendar days even though the guard checks working
// days. A period mixing rest days, holidays and an absence makes the two
// divisors disagree, pinning the ratio down.
func TestReconcile_FactorDividesByCalendarDays(t *testing.T) {
	r := newTestReconciler(&fakeSources{
		weeklyOffs: []calendar.WeeklyOff{{EmployeeID: "emp-1", Date: date(2025, time.June, 2)}},
		holidays:   []calendar.Holiday{{Date: date(2025, time.June, 3), Name: "Founders Day"}},
		attendances: []attendance.Attendance{
			{EmployeeID: "emp-1", Date: date(2025, time.June, 4), Status: attendance.StatusAbsent},
		},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, 3, result.TotalWorkingDays)
	assert.Equal(t, float64(4), result.TotalPayableDays)
	// 4 payable / 5 calendar days, not 4 / 3 working days.
	assert.InDelta(t, 0.8, result.PayableDaysFactor, 1e-9)
}

func TestReconcile_DayPartitionInvariant(t *testing.T) {
	wednesday := date(2025, time.June, 4)
	r := newTestReconciler(&fakeSources{
		holidays:   []calendar.Holiday{{Date: date(2025, time.June, 5), Name: "Founders Day"}},
		weeklyOffs: []calendar.WeeklyOff{{EmployeeID: "emp-1", Date: wednesday}},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, result.TotalCalendarDays,
		result.TotalWorkingDays+result.TotalHolidays+result.TotalWeekendDays)

	for _, day := range result.Days {
		classifications := 0
		for _, set := range []bool{day.IsWorkingDay, day.IsHoliday, day.IsWeekend} {
			if set {
				classifications++
			}
		}
		assert.Equal(t, 1, classifications, day.Date)
		assert.GreaterOrEqual(t, day.PayFactor, float64(0))
		assert.LessOrEqual(t, day.PayFactor, float64(1))
	}
}

func TestReconcile_TimeComponentsIgnored(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	r := newTestReconciler(&fakeSources{})

	result := r.Reconcile(context.Background(), "co-1", payroll.Period{
		EmployeeID: "emp-1",
		StartDate:  time.Date(2025, time.June, 2, 23, 15, 0, 0, loc),
		EndDate:    time.Date(2025, time.June, 6, 1, 30, 0, 0, loc),
	})

	require.True(t, result.OK())
	assert.Equal(t, 5, result.TotalCalendarDays)
	assert.Len(t, result.Days, 5)
}

func TestReconcile_LeaveDatesWithZoneOffset(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	wednesday := time.Date(2025, time.June, 4, 0, 0, 0, 0, loc)
	pending := approvedLeave("Annual Leave", true, wednesday, wednesday, 1)
	pending.Status = leave.LeaveRequestStatusWaitingApproval

	r := newTestReconciler(&fakeSources{
		leaveRequests: []leave.LeaveRequest{pending},
	})

	result := r.Reconcile(context.Background(), "co-1", monToFri())

	require.True(t, result.OK())
	assert.Equal(t, float64(1), result.TotalLeaveDays)
	assert.Equal(t, float64(1), result.TotalUnpaidLeaveDays)
	assert.Equal(t, float64(4), result.TotalPayableDays)
	assert.InDelta(t, 0.8, result.PayableDaysFactor, 1e-9)
}
