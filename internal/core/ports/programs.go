package ports

import (
	"context"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// CreateProgramInput is the payload for a new care program entry.
type CreateProgramInput struct {
	Slug      string
	Title     string
	Summary   string
	Body      string
	Published bool
	SortOrder int
}

// PatchProgramInput is a partial update. Nil fields are unchanged.
type PatchProgramInput struct {
	Slug      *string
	Title     *string
	Summary   *string
	Body      *string
	Published *bool
	SortOrder *int
}

// ProgramRepository defines persistence for care programs.
type ProgramRepository interface {
	Insert(ctx context.Context, p *domain.CareProgram) error
	FindByID(ctx context.Context, id string) (*domain.CareProgram, error)
	FindBySlug(ctx context.Context, slug string) (*domain.CareProgram, error)
	List(ctx context.Context, publishedOnly bool) ([]*domain.CareProgram, error)
	Update(ctx context.Context, p *domain.CareProgram) error
	Delete(ctx context.Context, id string) (*domain.CareProgram, error)
}

// ProgramService manages care program content.
type ProgramService interface {
	ListPublished(ctx context.Context) ([]*domain.CareProgram, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.CareProgram, error)
	ListAll(ctx context.Context) ([]*domain.CareProgram, error)
	Create(ctx context.Context, input CreateProgramInput) (*domain.CareProgram, error)
	Patch(ctx context.Context, id string, input PatchProgramInput) (*domain.CareProgram, error)
	Delete(ctx context.Context, id string) (*domain.CareProgram, error)
}
