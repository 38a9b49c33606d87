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

// TestimonialService manages patient testimonials. The public site only
// ever sees published entries.
type TestimonialService struct {
	repo   ports.TestimonialRepository
	logger zerolog.Logger
}

func NewTestimonialService(repo ports.TestimonialRepository, logger zerolog.Logger) *TestimonialService {
	return &TestimonialService{repo: repo, logger: logger}
}

func (s *TestimonialService) ListPublished(ctx context.Context) ([]*domain.Testimonial, error) {
	return s.repo.List(ctx, true)
}

func (s *TestimonialService) ListAll(ctx context.Context) ([]*domain.Testimonial, error) {
	return s.repo.List(ctx, false)
}

func (s *TestimonialService) Create(ctx context.Context, input ports.CreateTestimonialInput) (*domain.Testimonial, error) {
	name := strings.TrimSpace(input.PatientName)
	category := strings.TrimSpace(input.Category)
	quote := strings.TrimSpace(input.Quote)
	if name == "" || category == "" || quote == "" {
		return nil, domain.ErrValidation
	}
	if input.Age < 0 || input.Age > 120 {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	t := &domain.Testimonial{
		ID:                uuid.NewString(),
		PatientName:       name,
		Age:               input.Age,
		Category:          category,
		Quote:             quote,
		OutcomeLabel:      strings.TrimSpace(input.OutcomeLabel),
		TreatmentDuration: strings.TrimSpace(input.TreatmentDuration),
		Published:         input.Published,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info().Str("testimonial_id", t.ID).Msg("testimonial created")
	return t, nil
}

func (s *TestimonialService) Patch(ctx context.Context, id string, input ports.PatchTestimonialInput) (*domain.Testimonial, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PatientName != nil {
		name := strings.TrimSpace(*input.PatientName)
		if name == "" {
			return nil, domain.ErrValidation
		}
		t.PatientName = name
	}
	if input.Age != nil {
		if *input.Age < 0 || *input.Age > 120 {
			return nil, domain.ErrValidation
		}
		t.Age = *input.Age
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, domain.ErrValidation
		}
		t.Category = category
	}
	if input.Quote != nil {
		quote := strings.TrimSpace(*input.Quote)
		if quote == "" {
			return nil, domain.ErrValidation
		}
		t.Quote = quote
	}
	if input.OutcomeLabel != nil {
		t.OutcomeLabel = strings.TrimSpace(*input.OutcomeLabel)
	}
	if input.TreatmentDuration != nil {
		t.TreatmentDuration = strings.TrimSpace(*input.TreatmentDuration)
	}
	if input.Published != nil {
		t.Published = *input.Published
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestimonialService) Delete(ctx context.Context, id string) (*domain.Testimonial, error) {
	return s.repo.Delete(ctx, id)
}
