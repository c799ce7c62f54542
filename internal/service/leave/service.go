package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/employee"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/leave"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type LeaveServiceImpl struct {
	leaveTypeRepo    leave.LeaveTypeRepository
	leaveRequestRepo leave.LeaveRequestRepository
	employeeRepo     employee.EmployeeRepository
}

func NewLeaveService(
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveTypeRepo:    leaveTypeRepo,
		leaveRequestRepo: leaveRequestRepo,
		employeeRepo:     employeeRepo,
	}
}

func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}
	userID, _ = claims["user_id"].(string)
	return companyID, userID, nil
}

// ========== LEAVE TYPES ==========

func (s *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	lt, err := s.leaveTypeRepo.Create(ctx, leave.LeaveType{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		IsPaid:      isPaid,
		IsActive:    true,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	return mapToLeaveTypeResponse(lt), nil
}

func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context, activeOnly bool) ([]leave.LeaveTypeResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	types, err := s.leaveTypeRepo.ListByCompany(ctx, companyID, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		result = append(result, mapToLeaveTypeResponse(lt))
	}
	return result, nil
}

func (s *LeaveServiceImpl) DeleteLeaveType(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	return s.leaveTypeRepo.Delete(ctx, id, companyID)
}

// ========== LEAVE REQUESTS ==========

func (s *LeaveServiceImpl) SubmitRequest(ctx context.Context, req leave.SubmitLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !emp.IsActive {
		return leave.LeaveRequestResponse{}, employee.ErrEmployeeInactive
	}
	if _, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID, companyID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	totalDays := CalculateTotalDays(startDate, endDate, req.IsHalfDayStart, req.IsHalfDayEnd)

	created, err := s.leaveRequestRepo.Create(ctx, leave.LeaveRequest{
		ID:             uuid.NewString(),
		EmployeeID:     req.EmployeeID,
		LeaveTypeID:    req.LeaveTypeID,
		StartDate:      startDate,
		EndDate:        endDate,
		TotalDays:      totalDays,
		IsHalfDayStart: req.IsHalfDayStart,
		IsHalfDayEnd:   req.IsHalfDayEnd,
		Reason:         req.Reason,
		Status:         leave.LeaveRequestStatusWaitingApproval,
		SubmittedAt:    time.Now().UTC(),
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return mapToLeaveRequestResponse(created), nil
}

// CalculateTotalDays counts the leave days a request spans. Each calendar day
// counts as one day; a half-day flag on the start or end date subtracts half
// a day. A single day with either flag set counts as 0.5.
func CalculateTotalDays(startDate, endDate time.Time, isHalfDayStart, isHalfDayEnd bool) float64 {
	days := float64(int(endDate.Sub(startDate).Hours()/24) + 1)
	if days <= 0 {
		return 0
	}
	if startDate.Equal(endDate) {
		if isHalfDayStart || isHalfDayEnd {
			return 0.5
		}
		return 1
	}
	if isHalfDayStart {
		days -= 0.5
	}
	if isHalfDayEnd {
		days -= 0.5
	}
	return days
}

func (s *LeaveServiceImpl) GetRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.leaveRequestRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return mapToLeaveRequestResponse(request), nil
}

func (s *LeaveServiceImpl) ListEmployeeRequests(ctx context.Context, employeeID string) (leave.ListLeaveRequestResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, totalCount, err := s.leaveRequestRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	data := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		data = append(data, mapToLeaveRequestResponse(request))
	}

	return leave.ListLeaveRequestResponse{
		Data:       data,
		TotalCount: totalCount,
	}, nil
}

func (s *LeaveServiceImpl) ApproveRequest(ctx context.Context, req leave.ProcessLeaveRequestRequest) error {
	return s.processRequest(ctx, req.ID, leave.LeaveRequestStatusApproved, nil)
}

func (s *LeaveServiceImpl) RejectRequest(ctx context.Context, req leave.ProcessLeaveRequestRequest) error {
	if req.RejectionReason == nil || validator.IsEmpty(*req.RejectionReason) {
		return validator.ValidationErrors{{Field: "rejection_reason", Message: "rejection_reason is required"}}
	}
	return s.processRequest(ctx, req.ID, leave.LeaveRequestStatusRejected, req.RejectionReason)
}

func (s *LeaveServiceImpl) CancelRequest(ctx context.Context, id string) error {
	return s.processRequest(ctx, id, leave.LeaveRequestStatusCancelled, nil)
}

func (s *LeaveServiceImpl) processRequest(ctx context.Context, id string, status leave.LeaveRequestStatus, reason *string) error {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	request, err := s.leaveRequestRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if request.Status != leave.LeaveRequestStatusWaitingApproval {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	return s.leaveRequestRepo.UpdateStatus(ctx, id, companyID, status, userID, reason)
}

// ========== HELPERS ==========

func mapToLeaveTypeResponse(lt leave.LeaveType) leave.LeaveTypeResponse {
	return leave.LeaveTypeResponse{
		ID:          lt.ID,
		Name:        lt.Name,
		Code:        lt.Code,
		Description: lt.Description,
		IsPaid:      lt.IsPaid,
		IsActive:    lt.IsActive,
	}
}

func mapToLeaveRequestResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		LeaveTypeID:     r.LeaveTypeID,
		StartDate:       r.StartDate.Format(dateLayout),
		EndDate:         r.EndDate.Format(dateLayout),
		TotalDays:       r.TotalDays,
		IsHalfDayStart:  r.IsHalfDayStart,
		IsHalfDayEnd:    r.IsHalfDayEnd,
		Reason:          r.Reason,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		SubmittedAt:     r.SubmittedAt.Format(time.RFC3339),
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	if r.LeaveTypeName != nil {
		resp.LeaveTypeName = *r.LeaveTypeName
	}
	return resp
}
