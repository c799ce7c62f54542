package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full_time"
	EmploymentTypePartTime EmploymentType = "part_time"
	EmploymentTypeContract EmploymentType = "contract"
)

type Employee struct {
	ID             string
	CompanyID      string
	UserID         *string
	EmployeeCode   string
	FirstName      string
	LastName       string
	Email          string
	PositionTitle  *string
	EmploymentType EmploymentType
	BaseSalary     *decimal.Decimal
	HireDate       time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins first and last name, tolerating an empty last name.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
