package employee

import (
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode   string           `json:"employee_code"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Email          string           `json:"email"`
	PositionTitle  *string          `json:"position_title,omitempty"`
	EmploymentType string           `json:"employment_type"`
	BaseSalary     *decimal.Decimal `json:"base_salary,omitempty"`
	HireDate       string           `json:"hire_date"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee code must match NNNN-NNNN"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if !validator.IsInSlice(r.EmploymentType, []string{
		string(EmploymentTypeFullTime), string(EmploymentTypePartTime), string(EmploymentTypeContract),
	}) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "employment_type must be one of full_time, part_time, contract"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be in YYYY-MM-DD format"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID             string           `json:"-"`
	FirstName      *string          `json:"first_name,omitempty"`
	LastName       *string          `json:"last_name,omitempty"`
	Email          *string          `json:"email,omitempty"`
	PositionTitle  *string          `json:"position_title,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty"`
	BaseSalary     *decimal.Decimal `json:"base_salary,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if r.EmploymentType != nil && !validator.IsInSlice(*r.EmploymentType, []string{
		string(EmploymentTypeFullTime), string(EmploymentTypePartTime), string(EmploymentTypeContract),
	}) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "employment_type must be one of full_time, part_time, contract"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string           `json:"id"`
	EmployeeCode   string           `json:"employee_code"`
	FullName       string           `json:"full_name"`
	Email          string           `json:"email"`
	PositionTitle  *string          `json:"position_title,omitempty"`
	EmploymentType string           `json:"employment_type"`
	BaseSalary     *decimal.Decimal `json:"base_salary,omitempty"`
	HireDate       string           `json:"hire_date"`
	IsActive       bool             `json:"is_active"`
}
