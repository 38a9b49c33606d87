package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
)

// SiteContentHandler serves the editable site content: clinic profile,
// landing page sections and free-form named sections.
type SiteContentHandler struct {
	content      ports.SiteContentService
	programs     ports.ProgramService
	testimonials ports.TestimonialService
}

func NewSiteContentHandler(content ports.SiteContentService, programs ports.ProgramService, testimonials ports.TestimonialService) *SiteContentHandler {
	return &SiteContentHandler{content: content, programs: programs, testimonials: testimonials}
}

type upsertClinicProfileRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=200"`
	Tagline        string `json:"tagline" validate:"required,max=200"`
	PrimaryPhone   string `json:"primary_phone" validate:"required,min=7,max=30"`
	SecondaryPhone string `json:"secondary_phone" validate:"omitempty,max=30"`
	WhatsAppNumber string `json:"whatsapp_number" validate:"omitempty,max=30"`
	AddressText    string `json:"address_text" validate:"required,min=3,max=500"`
	HoursText      string `json:"hours_text" validate:"required,min=3,max=500"`
	GoogleMapsURL  string `json:"google_maps_url" validate:"omitempty,max=5000"`
}

type patchClinicProfileRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=200"`
	Tagline        *string `json:"tagline" validate:"omitempty,max=200"`
	PrimaryPhone   *string `json:"primary_phone" validate:"omitempty,min=7,max=30"`
	SecondaryPhone *string `json:"secondary_phone" validate:"omitempty,max=30"`
	WhatsAppNumber *string `json:"whatsapp_number" validate:"omitempty,max=30"`
	AddressText    *string `json:"address_text" validate:"omitempty,min=3,max=500"`
	HoursText      *string `json:"hours_text" validate:"omitempty,min=3,max=500"`
	GoogleMapsURL  *string `json:"google_maps_url" validate:"omitempty,max=5000"`
}

type upsertHomeRequest struct {
	Hero         domain.HomeHero       `json:"hero"`
	HeroImageURL string                `json:"hero_image_url" validate:"omitempty,max=5000"`
	HeroTag      domain.HomeHeroTag    `json:"hero_tag"`
	HeroStats    []domain.HomeHeroStat `json:"hero_stats" validate:"max=6"`
	Legacy       domain.HomeLegacy     `json:"legacy"`
	Experience   domain.HomeExperience `json:"experience"`
}

type patchHomeRequest struct {
	Hero         *domain.HomeHero       `json:"hero"`
	HeroImageURL *string                `json:"hero_image_url" validate:"omitempty,max=5000"`
	HeroTag      *domain.HomeHeroTag    `json:"hero_tag"`
	HeroStats    *[]domain.HomeHeroStat `json:"hero_stats" validate:"omitempty,max=6"`
	Legacy       *domain.HomeLegacy     `json:"legacy"`
	Experience   *domain.HomeExperience `json:"experience"`
}

// GetAll composes the full public content document: every stored section
// plus the published programs and testimonials.
func (h *SiteContentHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()

	sections, err := h.content.Sections(ctx)
	if err != nil {
		return err
	}
	programs, err := h.programs.ListPublished(ctx)
	if err != nil {
		return err
	}
	testimonials, err := h.testimonials.ListPublished(ctx)
	if err != nil {
		return err
	}

	out := make(map[string]any, len(sections)+2)
	for name, raw := range sections {
		out[name] = json.RawMessage(raw)
	}
	out["programs"] = programs
	out["testimonials"] = testimonials
	return c.JSON(http.StatusOK, out)
}

func (h *SiteContentHandler) GetSection(c echo.Context) error {
	raw, err := h.content.Section(c.Request().Context(), c.Param("section"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

func (h *SiteContentHandler) PutSection(c echo.Context) error {
	var raw json.RawMessage
	if err := c.Bind(&raw); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	saved, err := h.content.SetSection(c.Request().Context(), c.Param("section"), raw)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, saved)
}

func (h *SiteContentHandler) GetClinicProfile(c echo.Context) error {
	profile, err := h.content.ClinicProfile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *SiteContentHandler) UpsertClinicProfile(c echo.Context) error {
	var req upsertClinicProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.content.UpsertClinicProfile(c.Request().Context(), ports.UpsertClinicProfileInput{
		Name:           req.Name,
		Tagline:        req.Tagline,
		PrimaryPhone:   req.PrimaryPhone,
		SecondaryPhone: req.SecondaryPhone,
		WhatsAppNumber: req.WhatsAppNumber,
		AddressText:    req.AddressText,
		HoursText:      req.HoursText,
		GoogleMapsURL:  req.GoogleMapsURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *SiteContentHandler) PatchClinicProfile(c echo.Context) error {
	var req patchClinicProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.content.PatchClinicProfile(c.Request().Context(), ports.PatchClinicProfileInput{
		Name:           req.Name,
		Tagline:        req.Tagline,
		PrimaryPhone:   req.PrimaryPhone,
		SecondaryPhone: req.SecondaryPhone,
		WhatsAppNumber: req.WhatsAppNumber,
		AddressText:    req.AddressText,
		HoursText:      req.HoursText,
		GoogleMapsURL:  req.GoogleMapsURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *SiteContentHandler) DeleteClinicProfile(c echo.Context) error {
	profile, err := h.content.DeleteClinicProfile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *SiteContentHandler) GetHome(c echo.Context) error {
	home, err := h.content.Home(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, home)
}

func (h *SiteContentHandler) UpsertHome(c echo.Context) error {
	var req upsertHomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	home, err := h.content.UpsertHome(c.Request().Context(), domain.HomeContent{
		Hero:         req.Hero,
		HeroImageURL: req.HeroImageURL,
		HeroTag:      req.HeroTag,
		HeroStats:    req.HeroStats,
		Legacy:       req.Legacy,
		Experience:   req.Experience,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, home)
}

func (h *SiteContentHandler) PatchHome(c echo.Context) error {
	var req patchHomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	home, err := h.content.PatchHome(c.Request().Context(), ports.PatchHomeInput{
		Hero:         req.Hero,
		HeroImageURL: req.HeroImageURL,
		HeroTag:      req.HeroTag,
		HeroStats:    req.HeroStats,
		Legacy:       req.Legacy,
		Experience:   req.Experience,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, home)
}

func (h *SiteContentHandler) DeleteHome(c echo.Context) error {
	if err := h.content.DeleteHome(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
