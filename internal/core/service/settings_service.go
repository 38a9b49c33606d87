package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
)

// SettingsService manages keyed site settings.
type SettingsService struct {
	repo   ports.SettingRepository
	logger zerolog.Logger
}

func NewSettingsService(repo ports.SettingRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

func (s *SettingsService) List(ctx context.Context) ([]*domain.Setting, error) {
	return s.repo.List(ctx)
}

func (s *SettingsService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	return s.repo.FindByKey(ctx, strings.TrimSpace(key))
}

// Upsert creates the setting when the key is new, otherwise replaces its
// value and description in place.
func (s *SettingsService) Upsert(ctx context.Context, input ports.UpsertSettingInput) (*domain.Setting, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	existing, err := s.repo.FindByKey(ctx, key)
	if err == nil {
		existing.Value = input.Value
		if input.Description != "" {
			existing.Description = input.Description
		}
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	setting := &domain.Setting{
		ID:          uuid.NewString(),
		Key:         key,
		Value:       input.Value,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, setting); err != nil {
		return nil, err
	}
	s.logger.Info().Str("key", key).Msg("setting created")
	return setting, nil
}

func (s *SettingsService) Delete(ctx context.Context, key string) (*domain.Setting, error) {
	return s.repo.Delete(ctx, strings.TrimSpace(key))
}
