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

// ProgramService manages care program content. Slugs are unique; the
// public site only ever sees published entries.
type ProgramService struct {
	repo   ports.ProgramRepository
	logger zerolog.Logger
}

func NewProgramService(repo ports.ProgramRepository, logger zerolog.Logger) *ProgramService {
	return &ProgramService{repo: repo, logger: logger}
}

func (s *ProgramService) ListPublished(ctx context.Context) ([]*domain.CareProgram, error) {
	return s.repo.List(ctx, true)
}

func (s *ProgramService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.CareProgram, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *ProgramService) ListAll(ctx context.Context) ([]*domain.CareProgram, error) {
	return s.repo.List(ctx, false)
}

func (s *ProgramService) Create(ctx context.Context, input ports.CreateProgramInput) (*domain.CareProgram, error) {
	slug := normalizeSlug(input.Slug)
	if slug == "" || strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrValidation
	}

	if _, err := s.repo.FindBySlug(ctx, slug); err == nil {
		return nil, domain.ErrSlugTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.CareProgram{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     strings.TrimSpace(input.Title),
		Summary:   input.Summary,
		Body:      input.Body,
		Published: input.Published,
		SortOrder: input.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info().Str("program_id", p.ID).Str("slug", p.Slug).Msg("care program created")
	return p, nil
}

func (s *ProgramService) Patch(ctx context.Context, id string, input ports.PatchProgramInput) (*domain.CareProgram, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Slug != nil {
		slug := normalizeSlug(*input.Slug)
		if slug == "" {
			return nil, domain.ErrValidation
		}
		if slug != p.Slug {
			if other, err := s.repo.FindBySlug(ctx, slug); err == nil && other.ID != id {
				return nil, domain.ErrSlugTaken
			} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
		}
		p.Slug = slug
	}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, domain.ErrValidation
		}
		p.Title = strings.TrimSpace(*input.Title)
	}
	if input.Summary != nil {
		p.Summary = *input.Summary
	}
	if input.Body != nil {
		p.Body = *input.Body
	}
	if input.Published != nil {
		p.Published = *input.Published
	}
	if input.SortOrder != nil {
		p.SortOrder = *input.SortOrder
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProgramService) Delete(ctx context.Context, id string) (*domain.CareProgram, error) {
	return s.repo.Delete(ctx, id)
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
