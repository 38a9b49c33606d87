package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
)

// FeedbackService handles review submission and moderation. Submissions
// land in pending and only appear publicly once published.
type FeedbackService struct {
	repo   ports.FeedbackRepository
	logger zerolog.Logger
}

func NewFeedbackService(repo ports.FeedbackRepository, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, logger: logger}
}

func (s *FeedbackService) Submit(ctx context.Context, input ports.SubmitFeedbackInput) (*domain.Feedback, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Message) == "" {
		return nil, domain.ErrValidation
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	f := &domain.Feedback{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Email:     NormalizeEmail(input.Email),
		Rating:    input.Rating,
		Message:   strings.TrimSpace(input.Message),
		Status:    domain.FeedbackPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info().Str("feedback_id", f.ID).Int("rating", f.Rating).Msg("feedback received")
	return f, nil
}

func (s *FeedbackService) List(ctx context.Context, status domain.FeedbackStatus) ([]*domain.Feedback, error) {
	if status != "" && !domain.ValidFeedbackStatus(status) {
		return nil, domain.ErrValidation
	}
	return s.repo.List(ctx, status)
}

func (s *FeedbackService) ListPublished(ctx context.Context) ([]*domain.Feedback, error) {
	return s.repo.List(ctx, domain.FeedbackPublished)
}

func (s *FeedbackService) SetStatus(ctx context.Context, id string, status domain.FeedbackStatus) (*domain.Feedback, error) {
	if !domain.ValidFeedbackStatus(status) {
		return nil, domain.ErrValidation
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Status = status
	f.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FeedbackService) Delete(ctx context.Context, id string) (*domain.Feedback, error) {
	return s.repo.Delete(ctx, id)
}
