package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/api/metrics"
	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
)

type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type submitFeedbackRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Message string `json:"message" validate:"required,max=5000"`
}

type setFeedbackStatusRequest struct {
	Status domain.FeedbackStatus `json:"status" validate:"required,oneof=pending published rejected"`
}

// Submit accepts a public review.
//
// @Summary      Submit feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      submitFeedbackRequest  true  "Feedback details"
// @Success      201   {object}  domain.Feedback
// @Failure      400   {object}  map[string]string
// @Router       /feedback [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	f, err := h.service.Submit(c.Request().Context(), ports.SubmitFeedbackInput{
		Name:    req.Name,
		Email:   req.Email,
		Rating:  req.Rating,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	metrics.SubmissionsTotal.WithLabelValues("feedback").Inc()
	return c.JSON(http.StatusCreated, f)
}

// ListPublished returns the moderated testimonials shown on the public site.
func (h *FeedbackHandler) ListPublished(c echo.Context) error {
	items, err := h.service.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *FeedbackHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), domain.FeedbackStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *FeedbackHandler) SetStatus(c echo.Context) error {
	var req setFeedbackStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	f, err := h.service.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FeedbackHandler) Delete(c echo.Context) error {
	f, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}
