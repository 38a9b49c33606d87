package ports

import (
	"context"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// CreateAdminUserInput is the payload for provisioning a new admin account.
type CreateAdminUserInput struct {
	Name        string
	Email       string
	Password    string
	Role        domain.Role
	IsActive    *bool
	Permissions map[domain.Permission]bool
}

// PatchAdminUserInput is a partial update. Nil fields are unchanged.
// Changing Password, Role, IsActive, or Permissions bumps the user's
// token version, revoking every outstanding token immediately.
type PatchAdminUserInput struct {
	Name        *string
	Email       *string
	Password    *string
	Role        *domain.Role
	IsActive    *bool
	Permissions *map[domain.Permission]bool
}

// AdminUsersService manages admin accounts.
type AdminUsersService interface {
	List(ctx context.Context) ([]*domain.AdminUser, error)
	Get(ctx context.Context, id string) (*domain.AdminUser, error)
	Create(ctx context.Context, input CreateAdminUserInput) (*domain.AdminUser, error)
	Patch(ctx context.Context, id string, input PatchAdminUserInput) (*domain.AdminUser, error)
	Delete(ctx context.Context, id string) (*domain.AdminUser, error)
}
