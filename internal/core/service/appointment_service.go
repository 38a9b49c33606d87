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

// AppointmentService handles visitor booking requests and their admin
// triage lifecycle.
type AppointmentService struct {
	repo   ports.AppointmentRepository
	logger zerolog.Logger
}

func NewAppointmentService(repo ports.AppointmentRepository, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, logger: logger}
}

func (s *AppointmentService) Create(ctx context.Context, input ports.CreateAppointmentInput) (*domain.AppointmentRequest, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	a := &domain.AppointmentRequest{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(input.Name),
		Email:         NormalizeEmail(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		PreferredDate: input.PreferredDate,
		PreferredTime: input.PreferredTime,
		Notes:         input.Notes,
		Status:        domain.AppointmentNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info().Str("appointment_id", a.ID).Msg("appointment request received")
	return a, nil
}

func (s *AppointmentService) List(ctx context.Context, status domain.AppointmentStatus) ([]*domain.AppointmentRequest, error) {
	if status != "" && !domain.ValidAppointmentStatus(status) {
		return nil, domain.ErrValidation
	}
	return s.repo.List(ctx, status)
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*domain.AppointmentRequest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AppointmentService) Patch(ctx context.Context, id string, input ports.PatchAppointmentInput) (*domain.AppointmentRequest, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !domain.ValidAppointmentStatus(*input.Status) {
			return nil, domain.ErrValidation
		}
		a.Status = *input.Status
	}
	if input.PreferredDate != nil {
		a.PreferredDate = *input.PreferredDate
	}
	if input.PreferredTime != nil {
		a.PreferredTime = *input.PreferredTime
	}
	if input.Notes != nil {
		a.Notes = *input.Notes
	}
	a.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id string) (*domain.AppointmentRequest, error) {
	return s.repo.Delete(ctx, id)
}
