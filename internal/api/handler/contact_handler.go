package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/api/metrics"
	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
)

type ContactHandler struct {
	service ports.InquiryService
}

func NewContactHandler(service ports.InquiryService) *ContactHandler {
	return &ContactHandler{service: service}
}

type createInquiryRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=40"`
	Source  string `json:"source" validate:"omitempty,max=100"`
	Message string `json:"message" validate:"required,max=5000"`
}

type updateInquiryStatusRequest struct {
	Status domain.InquiryStatus `json:"status" validate:"required,oneof=new read resolved"`
}

// Create accepts a public contact form submission.
//
// @Summary      Submit a contact inquiry
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      createInquiryRequest  true  "Inquiry details"
// @Success      201   {object}  domain.ContactInquiry
// @Failure      400   {object}  map[string]string
// @Router       /contact [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req createInquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	i, err := h.service.Create(c.Request().Context(), ports.CreateInquiryInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Source:  req.Source,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	metrics.SubmissionsTotal.WithLabelValues("inquiry").Inc()
	return c.JSON(http.StatusCreated, i)
}

func (h *ContactHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), domain.InquiryStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ContactHandler) UpdateStatus(c echo.Context) error {
	var req updateInquiryStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	i, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, i)
}

func (h *ContactHandler) Delete(c echo.Context) error {
	i, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, i)
}
