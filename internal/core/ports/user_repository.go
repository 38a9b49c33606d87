package ports

import (
	"context"
	"time"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// UserFields is a partial update of an AdminUser record. Nil fields are
// left untouched; the repository translates the set fields into a single
// atomic update keyed by user id.
type UserFields struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *domain.Role
	IsActive     *bool
	Permissions  *map[domain.Permission]bool
	TokenVersion *int
	LastLoginAt  *time.Time
	UpdatedAt    *time.Time
}

// AdminUserRepository defines persistence for admin accounts.
type AdminUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	FindByID(ctx context.Context, id string) (*domain.AdminUser, error)
	List(ctx context.Context) ([]*domain.AdminUser, error)
	Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error)
	UpdateFields(ctx context.Context, id string, fields UserFields) error
	Delete(ctx context.Context, id string) error
}
