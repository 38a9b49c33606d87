package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// RequireRole enforces role-based access control. Legacy identities and
// the fully privileged roles pass regardless of the allowed list.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if id.Legacy || id.Role.FullyPrivileged() {
				return next(c)
			}
			if _, ok := allowed[id.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// RequirePermission gates a route on the caller's effective permission
// snapshot. The caller is already authenticated, so the response may name
// the missing permission.
func RequirePermission(perms ...domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if id.Legacy || id.Role.FullyPrivileged() {
				return next(c)
			}
			for _, p := range perms {
				if !id.Perms[p] {
					return echo.NewHTTPError(http.StatusForbidden, "missing permission: "+string(p))
				}
			}
			return next(c)
		}
	}
}

// RequireSelfOrAdmin allows privileged identities through and otherwise
// requires the route's id parameter to match the caller's own user id.
// Used on admin-user routes so staff can read their own record.
func RequireSelfOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if id.Legacy || id.Role.FullyPrivileged() {
				return next(c)
			}
			if c.Param(param) != id.UserID {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
