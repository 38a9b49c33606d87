package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
)

// SiteContentService manages the editable site content. The clinic
// profile and home page are typed sections in the same store that also
// holds free-form named sections.
type SiteContentService struct {
	repo   ports.SiteContentRepository
	logger zerolog.Logger
}

func NewSiteContentService(repo ports.SiteContentRepository, logger zerolog.Logger) *SiteContentService {
	return &SiteContentService{repo: repo, logger: logger}
}

func (s *SiteContentService) Sections(ctx context.Context) (map[string]json.RawMessage, error) {
	return s.repo.ListSections(ctx)
}

func (s *SiteContentService) Section(ctx context.Context, name string) (json.RawMessage, error) {
	return s.repo.GetSection(ctx, strings.TrimSpace(name))
}

// SetSection stores an arbitrary JSON value under a section name.
func (s *SiteContentService) SetSection(ctx context.Context, name string, value json.RawMessage) (json.RawMessage, error) {
	name = strings.TrimSpace(name)
	if name == "" || !json.Valid(value) {
		return nil, domain.ErrValidation
	}
	if err := s.repo.SetSection(ctx, name, value); err != nil {
		return nil, err
	}
	s.logger.Info().Str("section", name).Msg("content section updated")
	return value, nil
}

func (s *SiteContentService) ClinicProfile(ctx context.Context) (*domain.ClinicProfile, error) {
	var profile domain.ClinicProfile
	if err := s.getTyped(ctx, domain.SectionClinicProfile, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *SiteContentService) UpsertClinicProfile(ctx context.Context, input ports.UpsertClinicProfileInput) (*domain.ClinicProfile, error) {
	profile := domain.ClinicProfile{
		Name:           strings.TrimSpace(input.Name),
		Tagline:        strings.TrimSpace(input.Tagline),
		PrimaryPhone:   strings.TrimSpace(input.PrimaryPhone),
		SecondaryPhone: strings.TrimSpace(input.SecondaryPhone),
		WhatsAppNumber: strings.TrimSpace(input.WhatsAppNumber),
		AddressText:    strings.TrimSpace(input.AddressText),
		HoursText:      strings.TrimSpace(input.HoursText),
		GoogleMapsURL:  strings.TrimSpace(input.GoogleMapsURL),
	}
	if profile.Name == "" || profile.Tagline == "" || profile.PrimaryPhone == "" ||
		profile.AddressText == "" || profile.HoursText == "" {
		return nil, domain.ErrValidation
	}
	return s.saveClinicProfile(ctx, &profile)
}

// PatchClinicProfile updates individual fields of an existing profile.
// There is nothing to patch before the first upsert.
func (s *SiteContentService) PatchClinicProfile(ctx context.Context, input ports.PatchClinicProfileInput) (*domain.ClinicProfile, error) {
	profile, err := s.ClinicProfile(ctx)
	if err != nil {
		return nil, err
	}

	required := func(v *string) (string, error) {
		trimmed := strings.TrimSpace(*v)
		if trimmed == "" {
			return "", domain.ErrValidation
		}
		return trimmed, nil
	}

	if input.Name != nil {
		if profile.Name, err = required(input.Name); err != nil {
			return nil, err
		}
	}
	if input.Tagline != nil {
		if profile.Tagline, err = required(input.Tagline); err != nil {
			return nil, err
		}
	}
	if input.PrimaryPhone != nil {
		if profile.PrimaryPhone, err = required(input.PrimaryPhone); err != nil {
			return nil, err
		}
	}
	if input.SecondaryPhone != nil {
		profile.SecondaryPhone = strings.TrimSpace(*input.SecondaryPhone)
	}
	if input.WhatsAppNumber != nil {
		profile.WhatsAppNumber = strings.TrimSpace(*input.WhatsAppNumber)
	}
	if input.AddressText != nil {
		if profile.AddressText, err = required(input.AddressText); err != nil {
			return nil, err
		}
	}
	if input.HoursText != nil {
		if profile.HoursText, err = required(input.HoursText); err != nil {
			return nil, err
		}
	}
	if input.GoogleMapsURL != nil {
		profile.GoogleMapsURL = strings.TrimSpace(*input.GoogleMapsURL)
	}

	return s.saveClinicProfile(ctx, profile)
}

func (s *SiteContentService) DeleteClinicProfile(ctx context.Context) (*domain.ClinicProfile, error) {
	raw, err := s.repo.DeleteSection(ctx, domain.SectionClinicProfile)
	if err != nil {
		return nil, err
	}
	var profile domain.ClinicProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode clinic profile: %w", err)
	}
	return &profile, nil
}

func (s *SiteContentService) saveClinicProfile(ctx context.Context, profile *domain.ClinicProfile) (*domain.ClinicProfile, error) {
	profile.UpdatedAt = time.Now().UTC()
	if err := s.setTyped(ctx, domain.SectionClinicProfile, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Home returns the landing page content, or an empty value when it has
// never been set.
func (s *SiteContentService) Home(ctx context.Context) (*domain.HomeContent, error) {
	var home domain.HomeContent
	if err := s.getTyped(ctx, domain.SectionHome, &home); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.HomeContent{}, nil
		}
		return nil, err
	}
	return &home, nil
}

func (s *SiteContentService) UpsertHome(ctx context.Context, home domain.HomeContent) (*domain.HomeContent, error) {
	return s.saveHome(ctx, &home)
}

func (s *SiteContentService) PatchHome(ctx context.Context, input ports.PatchHomeInput) (*domain.HomeContent, error) {
	home, err := s.Home(ctx)
	if err != nil {
		return nil, err
	}

	if input.Hero != nil {
		home.Hero = *input.Hero
	}
	if input.HeroImageURL != nil {
		home.HeroImageURL = strings.TrimSpace(*input.HeroImageURL)
	}
	if input.HeroTag != nil {
		home.HeroTag = *input.HeroTag
	}
	if input.HeroStats != nil {
		home.HeroStats = *input.HeroStats
	}
	if input.Legacy != nil {
		home.Legacy = *input.Legacy
	}
	if input.Experience != nil {
		home.Experience = *input.Experience
	}

	return s.saveHome(ctx, home)
}

// DeleteHome resets the landing page to its empty state. Deleting an
// unset home page is not an error.
func (s *SiteContentService) DeleteHome(ctx context.Context) error {
	if _, err := s.repo.DeleteSection(ctx, domain.SectionHome); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *SiteContentService) saveHome(ctx context.Context, home *domain.HomeContent) (*domain.HomeContent, error) {
	home.UpdatedAt = time.Now().UTC()
	if err := s.setTyped(ctx, domain.SectionHome, home); err != nil {
		return nil, err
	}
	return home, nil
}

func (s *SiteContentService) getTyped(ctx context.Context, section string, out any) error {
	raw, err := s.repo.GetSection(ctx, section)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s section: %w", section, err)
	}
	return nil
}

func (s *SiteContentService) setTyped(ctx context.Context, section string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s section: %w", section, err)
	}
	return s.repo.SetSection(ctx, section, raw)
}
