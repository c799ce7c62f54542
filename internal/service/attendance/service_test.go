package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/attendance"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	existing  []attendance.Attendance
	lookupErr error
	created   []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.created = append(f.created, att)
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string, _ string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time, _ string) (attendance.Attendance, error) {
	if f.lookupErr != nil {
		return attendance.Attendance{}, f.lookupErr
	}
	for _, att := range f.existing {
		if att.EmployeeID == employeeID && att.Date.Equal(date) {
			return att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDateRange(_ context.Context, _ string, _, _ time.Time, _ string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter, _ string) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ attendance.Attendance) error {
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, _ string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeCode(_ context.Context, _ string, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error {
	return nil
}

func authedContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": "co-1",
		"user_id":    "user-1",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func activeEmployees() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", CompanyID: "co-1", EmployeeCode: "1000-0001", IsActive: true},
		"emp-2": {ID: "emp-2", CompanyID: "co-1", EmployeeCode: "1000-0002", IsActive: false},
	}}
}

func TestRecordAttendance_CreatesRecord(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(attendanceRepo, activeEmployees())

	resp, err := svc.RecordAttendance(authedContext(t), attendance.RecordAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-04",
		Status:     "present",
	})

	require.NoError(t, err)
	require.Len(t, attendanceRepo.created, 1)
	assert.Equal(t, "2025-06-04", resp.Date)
	assert.Equal(t, "present", resp.Status)
	assert.Equal(t, "co-1", attendanceRepo.created[0].CompanyID)
}

func TestRecordAttendance_DuplicateDate(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{
		existing: []attendance.Attendance{{
			ID:         "att-1",
			EmployeeID: "emp-1",
			CompanyID:  "co-1",
			Date:       time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC),
			Status:     attendance.StatusPresent,
		}},
	}
	svc := NewAttendanceService(attendanceRepo, activeEmployees())

	_, err := svc.RecordAttendance(authedContext(t), attendance.RecordAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-04",
		Status:     "present",
	})

	require.ErrorIs(t, err, attendance.ErrAttendanceAlreadyRecorded)
	assert.Empty(t, attendanceRepo.created)
}

func TestRecordAttendance_LookupFailurePropagates(t *testing.T) {
	lookupErr := errors.New("connection refused")
	attendanceRepo := &fakeAttendanceRepo{lookupErr: lookupErr}
	svc := NewAttendanceService(attendanceRepo, activeEmployees())

	_, err := svc.RecordAttendance(authedContext(t), attendance.RecordAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-04",
		Status:     "present",
	})

	require.ErrorIs(t, err, lookupErr)
	assert.Empty(t, attendanceRepo.created)
}

func TestRecordAttendance_InactiveEmployee(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(attendanceRepo, activeEmployees())

	_, err := svc.RecordAttendance(authedContext(t), attendance.RecordAttendanceRequest{
		EmployeeID: "emp-2",
		Date:       "2025-06-04",
		Status:     "present",
	})

	require.ErrorIs(t, err, employee.ErrEmployeeInactive)
	assert.Empty(t, attendanceRepo.created)
}
