package ports

import (
	"context"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// CreateAppointmentInput is a public booking request submission.
type CreateAppointmentInput struct {
	Name          string
	Email         string
	Phone         string
	PreferredDate string
	PreferredTime string
	Notes         string
}

// PatchAppointmentInput is an admin-side partial update.
type PatchAppointmentInput struct {
	Status        *domain.AppointmentStatus
	PreferredDate *string
	PreferredTime *string
	Notes         *string
}

// AppointmentRepository defines persistence for appointment requests.
type AppointmentRepository interface {
	Insert(ctx context.Context, a *domain.AppointmentRequest) error
	FindByID(ctx context.Context, id string) (*domain.AppointmentRequest, error)
	List(ctx context.Context, status domain.AppointmentStatus) ([]*domain.AppointmentRequest, error)
	Update(ctx context.Context, a *domain.AppointmentRequest) error
	Delete(ctx context.Context, id string) (*domain.AppointmentRequest, error)
	CountByStatus(ctx context.Context, status domain.AppointmentStatus) (int, error)
}

// AppointmentService handles the appointment request pipeline.
type AppointmentService interface {
	Create(ctx context.Context, input CreateAppointmentInput) (*domain.AppointmentRequest, error)
	List(ctx context.Context, status domain.AppointmentStatus) ([]*domain.AppointmentRequest, error)
	Get(ctx context.Context, id string) (*domain.AppointmentRequest, error)
	Patch(ctx context.Context, id string, input PatchAppointmentInput) (*domain.AppointmentRequest, error)
	Delete(ctx context.Context, id string) (*domain.AppointmentRequest, error)
}
