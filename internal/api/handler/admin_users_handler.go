package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
)

type AdminUsersHandler struct {
	service ports.AdminUsersService
}

func NewAdminUsersHandler(service ports.AdminUsersService) *AdminUsersHandler {
	return &AdminUsersHandler{service: service}
}

type createAdminUserRequest struct {
	Name        string                     `json:"name" validate:"required"`
	Email       string                     `json:"email" validate:"required,email"`
	Password    string                     `json:"password" validate:"required,min=8"`
	Role        domain.Role                `json:"role" validate:"required,oneof=super_admin admin editor staff"`
	IsActive    *bool                      `json:"is_active"`
	Permissions map[domain.Permission]bool `json:"permissions"`
}

type patchAdminUserRequest struct {
	Name        *string                     `json:"name"`
	Email       *string                     `json:"email" validate:"omitempty,email"`
	Password    *string                     `json:"password" validate:"omitempty,min=8"`
	Role        *domain.Role                `json:"role" validate:"omitempty,oneof=super_admin admin editor staff"`
	IsActive    *bool                       `json:"is_active"`
	Permissions *map[domain.Permission]bool `json:"permissions"`
}

// List returns every admin account without credential fields.
func (h *AdminUsersHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]*domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUsersHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Public())
}

func (h *AdminUsersHandler) Create(c echo.Context) error {
	var req createAdminUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateAdminUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		IsActive:    req.IsActive,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user.Public())
}

func (h *AdminUsersHandler) Patch(c echo.Context) error {
	var req patchAdminUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Patch(c.Request().Context(), c.Param("id"), ports.PatchAdminUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		IsActive:    req.IsActive,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Public())
}

func (h *AdminUsersHandler) Delete(c echo.Context) error {
	user, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Public())
}
