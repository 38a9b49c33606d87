package ports

import (
	"context"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// CreateTestimonialInput is the payload for a new patient testimonial.
type CreateTestimonialInput struct {
	PatientName       string
	Age               int
	Category          string
	Quote             string
	OutcomeLabel      string
	TreatmentDuration string
	Published         bool
}

// PatchTestimonialInput is a partial update. Nil fields are unchanged.
type PatchTestimonialInput struct {
	PatientName       *string
	Age               *int
	Category          *string
	Quote             *string
	OutcomeLabel      *string
	TreatmentDuration *string
	Published         *bool
}

// TestimonialRepository defines persistence for patient testimonials.
type TestimonialRepository interface {
	Insert(ctx context.Context, t *domain.Testimonial) error
	FindByID(ctx context.Context, id string) (*domain.Testimonial, error)
	List(ctx context.Context, publishedOnly bool) ([]*domain.Testimonial, error)
	Update(ctx context.Context, t *domain.Testimonial) error
	Delete(ctx context.Context, id string) (*domain.Testimonial, error)
}

// TestimonialService manages patient testimonials.
type TestimonialService interface {
	ListPublished(ctx context.Context) ([]*domain.Testimonial, error)
	ListAll(ctx context.Context) ([]*domain.Testimonial, error)
	Create(ctx context.Context, input CreateTestimonialInput) (*domain.Testimonial, error)
	Patch(ctx context.Context, id string, input PatchTestimonialInput) (*domain.Testimonial, error)
	Delete(ctx context.Context, id string) (*domain.Testimonial, error)
}
