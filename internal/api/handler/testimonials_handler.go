package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/core/ports"
)

// TestimonialsHandler serves patient testimonials: the public site reads
// published entries, the admin panel manages the full set.
type TestimonialsHandler struct {
	testimonials ports.TestimonialService
}

func NewTestimonialsHandler(testimonials ports.TestimonialService) *TestimonialsHandler {
	return &TestimonialsHandler{testimonials: testimonials}
}

type createTestimonialRequest struct {
	PatientName       string `json:"patient_name" validate:"required,min=2,max=80"`
	Age               int    `json:"age" validate:"omitempty,min=0,max=120"`
	Category          string `json:"category" validate:"required,min=2,max=80"`
	Quote             string `json:"quote" validate:"required,min=10,max=1200"`
	OutcomeLabel      string `json:"outcome_label" validate:"omitempty,max=120"`
	TreatmentDuration string `json:"treatment_duration" validate:"omitempty,max=60"`
	Published         bool   `json:"published"`
}

type patchTestimonialRequest struct {
	PatientName       *string `json:"patient_name" validate:"omitempty,min=2,max=80"`
	Age               *int    `json:"age" validate:"omitempty,min=0,max=120"`
	Category          *string `json:"category" validate:"omitempty,min=2,max=80"`
	Quote             *string `json:"quote" validate:"omitempty,min=10,max=1200"`
	OutcomeLabel      *string `json:"outcome_label" validate:"omitempty,max=120"`
	TreatmentDuration *string `json:"treatment_duration" validate:"omitempty,max=60"`
	Published         *bool   `json:"published"`
}

func (h *TestimonialsHandler) ListPublic(c echo.Context) error {
	items, err := h.testimonials.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *TestimonialsHandler) ListAdmin(c echo.Context) error {
	items, err := h.testimonials.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *TestimonialsHandler) Create(c echo.Context) error {
	var req createTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	t, err := h.testimonials.Create(c.Request().Context(), ports.CreateTestimonialInput{
		PatientName:       req.PatientName,
		Age:               req.Age,
		Category:          req.Category,
		Quote:             req.Quote,
		OutcomeLabel:      req.OutcomeLabel,
		TreatmentDuration: req.TreatmentDuration,
		Published:         req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TestimonialsHandler) Patch(c echo.Context) error {
	var req patchTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	t, err := h.testimonials.Patch(c.Request().Context(), c.Param("id"), ports.PatchTestimonialInput{
		PatientName:       req.PatientName,
		Age:               req.Age,
		Category:          req.Category,
		Quote:             req.Quote,
		OutcomeLabel:      req.OutcomeLabel,
		TreatmentDuration: req.TreatmentDuration,
		Published:         req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TestimonialsHandler) Delete(c echo.Context) error {
	t, err := h.testimonials.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}
