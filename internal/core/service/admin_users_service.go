package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
	"github.com/careline/clinic-backend/internal/pkg/password"
)

// AdminUsersService manages admin accounts. Any change to a user's
// password, role, active flag, or permission overrides bumps the token
// version, revoking every token issued before the change.
type AdminUsersService struct {
	users  ports.AdminUserRepository
	logger zerolog.Logger
}

func NewAdminUsersService(users ports.AdminUserRepository, logger zerolog.Logger) *AdminUsersService {
	return &AdminUsersService{users: users, logger: logger}
}

func (s *AdminUsersService) List(ctx context.Context) ([]*domain.AdminUser, error) {
	return s.users.List(ctx)
}

func (s *AdminUsersService) Get(ctx context.Context, id string) (*domain.AdminUser, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AdminUsersService) Create(ctx context.Context, input ports.CreateAdminUserInput) (*domain.AdminUser, error) {
	email := NormalizeEmail(input.Email)
	if input.Name == "" || email == "" || input.Password == "" || !domain.ValidRole(input.Role) {
		return nil, domain.ErrValidation
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	user := &domain.AdminUser{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     active,
		Permissions:  input.Permissions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("admin user created")
	return created, nil
}

func (s *AdminUsersService) Patch(ctx context.Context, id string, input ports.PatchAdminUserInput) (*domain.AdminUser, error) {
	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fields := ports.UserFields{UpdatedAt: &now}
	revoke := false

	if input.Name != nil {
		fields.Name = input.Name
	}
	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if email == "" {
			return nil, domain.ErrValidation
		}
		if email != current.Email {
			if other, err := s.users.FindByEmail(ctx, email); err == nil && other.ID != id {
				return nil, domain.ErrEmailExists
			} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
		}
		fields.Email = &email
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, domain.ErrValidation
		}
		hash, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		fields.PasswordHash = &hash
		revoke = true
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, domain.ErrValidation
		}
		if *input.Role != current.Role {
			revoke = true
		}
		fields.Role = input.Role
	}
	if input.IsActive != nil {
		if *input.IsActive != current.IsActive {
			revoke = true
		}
		fields.IsActive = input.IsActive
	}
	if input.Permissions != nil {
		fields.Permissions = input.Permissions
		revoke = true
	}

	if revoke {
		next := current.TokenVersion + 1
		fields.TokenVersion = &next
	}

	if err := s.users.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	if revoke {
		s.logger.Info().Str("user_id", id).Msg("admin user tokens revoked")
	}
	return s.users.FindByID(ctx, id)
}

func (s *AdminUsersService) Delete(ctx context.Context, id string) (*domain.AdminUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("admin user deleted")
	return user, nil
}
