package ports

import (
	"context"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// AuthResult is a freshly issued token pair plus the authenticated user.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.AdminUser
}

// AuthService implements the admin credential and session flows.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*domain.AdminUser, error)
}
