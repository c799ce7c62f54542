package calendar

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/calendar"
	"github.com/kirana-hr/kirana-backend-go/internal/domain/employee"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type CalendarServiceImpl struct {
	holidayRepo   calendar.HolidayRepository
	weeklyOffRepo calendar.WeeklyOffRepository
	employeeRepo  employee.EmployeeRepository
}

func NewCalendarService(
	holidayRepo calendar.HolidayRepository,
	weeklyOffRepo calendar.WeeklyOffRepository,
	employeeRepo employee.EmployeeRepository,
) calendar.CalendarService {
	return &CalendarServiceImpl{
		holidayRepo:   holidayRepo,
		weeklyOffRepo: weeklyOffRepo,
		employeeRepo:  employeeRepo,
	}
}

func getClaimsFromContext(ctx context.Context) (companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

func (s *CalendarServiceImpl) AddHoliday(ctx context.Context, req calendar.CreateHolidayRequest) (calendar.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.HolidayResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return calendar.HolidayResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	created, err := s.holidayRepo.Create(ctx, calendar.Holiday{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      req.Name,
		Date:      date,
	})
	if err != nil {
		return calendar.HolidayResponse{}, err
	}

	return calendar.HolidayResponse{
		ID:   created.ID,
		Name: created.Name,
		Date: created.Date.Format(dateLayout),
	}, nil
}

func (s *CalendarServiceImpl) ListHolidays(ctx context.Context, year int) ([]calendar.HolidayResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	holidays, err := s.holidayRepo.ListByCompany(ctx, companyID, year)
	if err != nil {
		return nil, err
	}

	result := make([]calendar.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		result = append(result, calendar.HolidayResponse{
			ID:   h.ID,
			Name: h.Name,
			Date: h.Date.Format(dateLayout),
		})
	}
	return result, nil
}

func (s *CalendarServiceImpl) RemoveHoliday(ctx context.Context, id string) error {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	return s.holidayRepo.Delete(ctx, id, companyID)
}

func (s *CalendarServiceImpl) AssignWeeklyOff(ctx context.Context, req calendar.AssignWeeklyOffRequest) (calendar.WeeklyOffResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.WeeklyOffResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return calendar.WeeklyOffResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return calendar.WeeklyOffResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	created, err := s.weeklyOffRepo.Create(ctx, calendar.WeeklyOff{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Date:       date,
	})
	if err != nil {
		return calendar.WeeklyOffResponse{}, err
	}

	return calendar.WeeklyOffResponse{
		ID:         created.ID,
		EmployeeID: created.EmployeeID,
		Date:       created.Date.Format(dateLayout),
	}, nil
}

func (s *CalendarServiceImpl) ListWeeklyOffs(ctx context.Context, employeeID string) ([]calendar.WeeklyOffResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	offs, err := s.weeklyOffRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]calendar.WeeklyOffResponse, 0, len(offs))
	for _, w := range offs {
		result = append(result, calendar.WeeklyOffResponse{
			ID:         w.ID,
			EmployeeID: w.EmployeeID,
			Date:       w.Date.Format(dateLayout),
		})
	}
	return result, nil
}

func (s *CalendarServiceImpl) RemoveWeeklyOff(ctx context.Context, id string) error {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	return s.weeklyOffRepo.Delete(ctx, id, companyID)
}
