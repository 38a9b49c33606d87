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

// InquiryService handles contact form submissions and admin triage.
type InquiryService struct {
	repo   ports.InquiryRepository
	logger zerolog.Logger
}

func NewInquiryService(repo ports.InquiryRepository, logger zerolog.Logger) *InquiryService {
	return &InquiryService{repo: repo, logger: logger}
}

func (s *InquiryService) Create(ctx context.Context, input ports.CreateInquiryInput) (*domain.ContactInquiry, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Message) == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	i := &domain.ContactInquiry{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Email:     NormalizeEmail(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Source:    input.Source,
		Message:   strings.TrimSpace(input.Message),
		Status:    domain.InquiryNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, i); err != nil {
		return nil, err
	}
	s.logger.Info().Str("inquiry_id", i.ID).Msg("contact inquiry received")
	return i, nil
}

func (s *InquiryService) List(ctx context.Context, status domain.InquiryStatus) ([]*domain.ContactInquiry, error) {
	if status != "" && !domain.ValidInquiryStatus(status) {
		return nil, domain.ErrValidation
	}
	return s.repo.List(ctx, status)
}

func (s *InquiryService) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) (*domain.ContactInquiry, error) {
	if !domain.ValidInquiryStatus(status) {
		return nil, domain.ErrValidation
	}
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	i.Status = status
	i.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *InquiryService) Delete(ctx context.Context, id string) (*domain.ContactInquiry, error) {
	return s.repo.Delete(ctx, id)
}
