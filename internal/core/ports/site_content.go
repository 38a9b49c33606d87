package ports

import (
	"context"
	"encoding/json"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// UpsertClinicProfileInput replaces the clinic profile wholesale.
type UpsertClinicProfileInput struct {
	Name           string
	Tagline        string
	PrimaryPhone   string
	SecondaryPhone string
	WhatsAppNumber string
	AddressText    string
	HoursText      string
	GoogleMapsURL  string
}

// PatchClinicProfileInput is a partial update. Nil fields are unchanged.
type PatchClinicProfileInput struct {
	Name           *string
	Tagline        *string
	PrimaryPhone   *string
	SecondaryPhone *string
	WhatsAppNumber *string
	AddressText    *string
	HoursText      *string
	GoogleMapsURL  *string
}

// PatchHomeInput updates individual landing page sections. Nil sections
// are unchanged; a provided section is replaced wholesale.
type PatchHomeInput struct {
	Hero         *domain.HomeHero
	HeroImageURL *string
	HeroTag      *domain.HomeHeroTag
	HeroStats    *[]domain.HomeHeroStat
	Legacy       *domain.HomeLegacy
	Experience   *domain.HomeExperience
}

// SiteContentRepository stores site content sections as raw JSON values
// keyed by section name.
type SiteContentRepository interface {
	GetSection(ctx context.Context, section string) (json.RawMessage, error)
	SetSection(ctx context.Context, section string, value json.RawMessage) error
	DeleteSection(ctx context.Context, section string) (json.RawMessage, error)
	ListSections(ctx context.Context) (map[string]json.RawMessage, error)
}

// SiteContentService manages the editable site content: the typed clinic
// profile and home page sections plus free-form named sections.
type SiteContentService interface {
	Sections(ctx context.Context) (map[string]json.RawMessage, error)
	Section(ctx context.Context, name string) (json.RawMessage, error)
	SetSection(ctx context.Context, name string, value json.RawMessage) (json.RawMessage, error)

	ClinicProfile(ctx context.Context) (*domain.ClinicProfile, error)
	UpsertClinicProfile(ctx context.Context, input UpsertClinicProfileInput) (*domain.ClinicProfile, error)
	PatchClinicProfile(ctx context.Context, input PatchClinicProfileInput) (*domain.ClinicProfile, error)
	DeleteClinicProfile(ctx context.Context) (*domain.ClinicProfile, error)

	Home(ctx context.Context) (*domain.HomeContent, error)
	UpsertHome(ctx context.Context, home domain.HomeContent) (*domain.HomeContent, error)
	PatchHome(ctx context.Context, input PatchHomeInput) (*domain.HomeContent, error)
	DeleteHome(ctx context.Context) error
}
