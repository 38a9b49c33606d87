package ports

import (
	"context"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// SubmitFeedbackInput is a public review submission.
type SubmitFeedbackInput struct {
	Name    string
	Email   string
	Rating  int
	Message string
}

// FeedbackRepository defines persistence for feedback entries.
type FeedbackRepository interface {
	Insert(ctx context.Context, f *domain.Feedback) error
	FindByID(ctx context.Context, id string) (*domain.Feedback, error)
	List(ctx context.Context, status domain.FeedbackStatus) ([]*domain.Feedback, error)
	Update(ctx context.Context, f *domain.Feedback) error
	Delete(ctx context.Context, id string) (*domain.Feedback, error)
	CountByStatus(ctx context.Context, status domain.FeedbackStatus) (int, error)
}

// FeedbackService handles submission and moderation of feedback.
type FeedbackService interface {
	Submit(ctx context.Context, input SubmitFeedbackInput) (*domain.Feedback, error)
	List(ctx context.Context, status domain.FeedbackStatus) ([]*domain.Feedback, error)
	ListPublished(ctx context.Context) ([]*domain.Feedback, error)
	SetStatus(ctx context.Context, id string, status domain.FeedbackStatus) (*domain.Feedback, error)
	Delete(ctx context.Context, id string) (*domain.Feedback, error)
}
