package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
)

// stubSectionStore keeps sections in memory, mirroring the repository
// contract including ErrNotFound on missing sections.
type stubSectionStore struct {
	sections map[string]json.RawMessage
	err      error
}

func newStubSectionStore() *stubSectionStore {
	return &stubSectionStore{sections: make(map[string]json.RawMessage)}
}

func (s *stubSectionStore) GetSection(ctx context.Context, section string) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	raw, ok := s.sections[section]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return raw, nil
}

func (s *stubSectionStore) SetSection(ctx context.Context, section string, value json.RawMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sections[section] = value
	return nil
}

func (s *stubSectionStore) DeleteSection(ctx context.Context, section string) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	raw, ok := s.sections[section]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.sections, section)
	return raw, nil
}

func (s *stubSectionStore) ListSections(ctx context.Context) (map[string]json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sections, nil
}

func TestSiteContentService_ClinicProfileLifecycle(t *testing.T) {
	store := newStubSectionStore()
	svc := NewSiteContentService(store, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.ClinicProfile(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first upsert, got %v", err)
	}

	saved, err := svc.UpsertClinicProfile(ctx, ports.UpsertClinicProfileInput{
		Name:         "  Riverside Clinic  ",
		Tagline:      "Care close to home",
		PrimaryPhone: "555-0101",
		AddressText:  "12 River Road",
		HoursText:    "Mon-Sat 9-7",
	})
	if err != nil {
		t.Fatalf("UpsertClinicProfile: %v", err)
	}
	if saved.Name != "Riverside Clinic" {
		t.Fatalf("name not trimmed: %q", saved.Name)
	}
	if saved.UpdatedAt.IsZero() {
		t.Fatal("expected updated timestamp")
	}

	got, err := svc.ClinicProfile(ctx)
	if err != nil {
		t.Fatalf("ClinicProfile: %v", err)
	}
	if got.Name != "Riverside Clinic" || got.PrimaryPhone != "555-0101" {
		t.Fatalf("profile did not round trip: %+v", got)
	}

	tagline := "A century of care"
	patched, err := svc.PatchClinicProfile(ctx, ports.PatchClinicProfileInput{Tagline: &tagline})
	if err != nil {
		t.Fatalf("PatchClinicProfile: %v", err)
	}
	if patched.Tagline != "A century of care" {
		t.Fatalf("tagline not patched: %q", patched.Tagline)
	}
	if patched.Name != "Riverside Clinic" {
		t.Fatal("untouched fields must be preserved")
	}

	removed, err := svc.DeleteClinicProfile(ctx)
	if err != nil {
		t.Fatalf("DeleteClinicProfile: %v", err)
	}
	if removed.Name != "Riverside Clinic" {
		t.Fatalf("delete should return the removed profile, got %+v", removed)
	}
	if _, err := svc.ClinicProfile(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSiteContentService_ClinicProfile_Invalid(t *testing.T) {
	svc := NewSiteContentService(newStubSectionStore(), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.UpsertClinicProfile(ctx, ports.UpsertClinicProfileInput{
		Name: "Riverside Clinic",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing fields, got %v", err)
	}

	if _, err := svc.PatchClinicProfile(ctx, ports.PatchClinicProfileInput{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("patching an absent profile should be ErrNotFound, got %v", err)
	}
}

func TestSiteContentService_HomeLifecycle(t *testing.T) {
	store := newStubSectionStore()
	svc := NewSiteContentService(store, zerolog.Nop())
	ctx := context.Background()

	// An unset home page reads as empty, never as an error.
	home, err := svc.Home(ctx)
	if err != nil {
		t.Fatalf("Home: %v", err)
	}
	if len(home.Hero.TitleLines) != 0 {
		t.Fatalf("expected empty home content, got %+v", home)
	}

	saved, err := svc.UpsertHome(ctx, domain.HomeContent{
		Hero: domain.HomeHero{
			TitleLines: []string{"Restoring", "Movement"},
			Subtitle:   "A century of natural healing.",
			CTAPrimary: "Book Consultation",
		},
		HeroStats: []domain.HomeHeroStat{{Value: "100+", Label: "Years"}},
	})
	if err != nil {
		t.Fatalf("UpsertHome: %v", err)
	}
	if saved.UpdatedAt.IsZero() {
		t.Fatal("expected updated timestamp")
	}

	experience := domain.HomeExperience{Title: "Patient voices", Quote: "They listened.", Author: "R. Mehta"}
	patched, err := svc.PatchHome(ctx, ports.PatchHomeInput{Experience: &experience})
	if err != nil {
		t.Fatalf("PatchHome: %v", err)
	}
	if patched.Experience.Author != "R. Mehta" {
		t.Fatalf("experience not patched: %+v", patched.Experience)
	}
	if patched.Hero.CTAPrimary != "Book Consultation" {
		t.Fatal("untouched sections must be preserved")
	}

	if err := svc.DeleteHome(ctx); err != nil {
		t.Fatalf("DeleteHome: %v", err)
	}
	reset, err := svc.Home(ctx)
	if err != nil {
		t.Fatalf("Home after delete: %v", err)
	}
	if reset.Hero.CTAPrimary != "" {
		t.Fatalf("expected home content to reset, got %+v", reset)
	}

	// Resetting twice is idempotent.
	if err := svc.DeleteHome(ctx); err != nil {
		t.Fatalf("DeleteHome on empty store: %v", err)
	}
}

func TestSiteContentService_Sections(t *testing.T) {
	store := newStubSectionStore()
	svc := NewSiteContentService(store, zerolog.Nop())
	ctx := context.Background()

	saved, err := svc.SetSection(ctx, " faq ", json.RawMessage(`{"items":[]}`))
	if err != nil {
		t.Fatalf("SetSection: %v", err)
	}
	if string(saved) != `{"items":[]}` {
		t.Fatalf("section value changed in flight: %s", saved)
	}

	// Names are trimmed before storage and lookup.
	got, err := svc.Section(ctx, "faq")
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if string(got) != `{"items":[]}` {
		t.Fatalf("section did not round trip: %s", got)
	}

	if _, err := svc.Section(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.SetSection(ctx, "", json.RawMessage(`{}`)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank name, got %v", err)
	}
	if _, err := svc.SetSection(ctx, "faq", json.RawMessage(`{broken`)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for malformed JSON, got %v", err)
	}

	all, err := svc.Sections(ctx)
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected a single stored section, got %d", len(all))
	}
}
