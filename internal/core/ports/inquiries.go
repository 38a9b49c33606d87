package ports

import (
	"context"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// CreateInquiryInput is a public contact form submission.
type CreateInquiryInput struct {
	Name    string
	Email   string
	Phone   string
	Source  string
	Message string
}

// InquiryRepository defines persistence for contact inquiries.
type InquiryRepository interface {
	Insert(ctx context.Context, i *domain.ContactInquiry) error
	FindByID(ctx context.Context, id string) (*domain.ContactInquiry, error)
	List(ctx context.Context, status domain.InquiryStatus) ([]*domain.ContactInquiry, error)
	Update(ctx context.Context, i *domain.ContactInquiry) error
	Delete(ctx context.Context, id string) (*domain.ContactInquiry, error)
	CountByStatus(ctx context.Context, status domain.InquiryStatus) (int, error)
}

// InquiryService handles the contact inquiry pipeline.
type InquiryService interface {
	Create(ctx context.Context, input CreateInquiryInput) (*domain.ContactInquiry, error)
	List(ctx context.Context, status domain.InquiryStatus) ([]*domain.ContactInquiry, error)
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) (*domain.ContactInquiry, error)
	Delete(ctx context.Context, id string) (*domain.ContactInquiry, error)
}
