package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByEmployeeCode resolves the user account linked to an employee code
	// within a company. Used by the employee-code login.
	GetByEmployeeCode(ctx context.Context, employeeCode string, companyID string) (User, error)
}
