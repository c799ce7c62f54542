package auth

import "context"

// AuthService defines authentication operations
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginWithEmployeeCode(ctx context.Context, req LoginWithEmployeeCodeRequest) (LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
