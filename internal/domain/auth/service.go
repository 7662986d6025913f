package auth

import (
	"context"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
)

type AuthService interface {
	// Register creates an employee account; username and email must be unused.
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	// ForgotPassword never reveals whether the email exists.
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	Me(ctx context.Context, userID string) (user.UserResponse, error)
}
