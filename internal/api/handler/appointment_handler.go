package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/api/metrics"
	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
)

type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type createAppointmentRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"required,max=40"`
	PreferredDate string `json:"preferred_date" validate:"omitempty,max=40"`
	PreferredTime string `json:"preferred_time" validate:"omitempty,max=40"`
	Notes         string `json:"notes" validate:"omitempty,max=2000"`
}

type patchAppointmentRequest struct {
	Status        *domain.AppointmentStatus `json:"status" validate:"omitempty,oneof=new contacted closed"`
	PreferredDate *string                   `json:"preferred_date"`
	PreferredTime *string                   `json:"preferred_time"`
	Notes         *string                   `json:"notes"`
}

// Create accepts a public booking request.
//
// @Summary      Submit an appointment request
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body      createAppointmentRequest  true  "Request details"
// @Success      201   {object}  domain.AppointmentRequest
// @Failure      400   {object}  map[string]string
// @Router       /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.service.Create(c.Request().Context(), ports.CreateAppointmentInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	metrics.SubmissionsTotal.WithLabelValues("appointment").Inc()
	return c.JSON(http.StatusCreated, a)
}

func (h *AppointmentHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), domain.AppointmentStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AppointmentHandler) Get(c echo.Context) error {
	a, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AppointmentHandler) Patch(c echo.Context) error {
	var req patchAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.service.Patch(c.Request().Context(), c.Param("id"), ports.PatchAppointmentInput{
		Status:        req.Status,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AppointmentHandler) Delete(c echo.Context) error {
	a, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}
