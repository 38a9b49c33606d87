package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/core/ports"
)

// SettingsHandler manages key/value site settings from the admin panel.
type SettingsHandler struct {
	settings ports.SettingsService
}

func NewSettingsHandler(settings ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type upsertSettingRequest struct {
	Value       string `json:"value" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// List returns every stored setting.
//
// @Summary      List site settings
// @Tags         settings
// @Produce      json
// @Success      200  {array}  domain.Setting
// @Router       /admin/settings [get]
func (h *SettingsHandler) List(c echo.Context) error {
	items, err := h.settings.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SettingsHandler) Get(c echo.Context) error {
	s, err := h.settings.Get(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Upsert(c echo.Context) error {
	var req upsertSettingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s, err := h.settings.Upsert(c.Request().Context(), ports.UpsertSettingInput{
		Key:         c.Param("key"),
		Value:       req.Value,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Delete(c echo.Context) error {
	s, err := h.settings.Delete(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}
