package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/api/middleware"
)

// identity extracts the auth identity injected by the Auth middleware and
// fast-fails before any service call. Its presence proves the middleware
// ran on this route.
func identity(c echo.Context) (*middleware.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication identity")
	}
	return id, nil
}
