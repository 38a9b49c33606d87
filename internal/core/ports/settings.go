package ports

import (
	"context"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// UpsertSettingInput creates or replaces the value stored under a key.
type UpsertSettingInput struct {
	Key         string
	Value       string
	Description string
}

// SettingRepository defines persistence for site settings.
type SettingRepository interface {
	FindByKey(ctx context.Context, key string) (*domain.Setting, error)
	List(ctx context.Context) ([]*domain.Setting, error)
	Insert(ctx context.Context, s *domain.Setting) error
	Update(ctx context.Context, s *domain.Setting) error
	Delete(ctx context.Context, key string) (*domain.Setting, error)
}

// SettingsService manages site settings.
type SettingsService interface {
	List(ctx context.Context) ([]*domain.Setting, error)
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, input UpsertSettingInput) (*domain.Setting, error)
	Delete(ctx context.Context, key string) (*domain.Setting, error)
}
