package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/api/metrics"
	"github.com/careline/clinic-backend/internal/api/middleware"
	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
	"github.com/careline/clinic-backend/internal/pkg/config"
	"github.com/careline/clinic-backend/internal/pkg/token"
)

// AuthHandler exposes the admin session endpoints. Tokens ride both in
// the response body (for header-based clients) and in scoped cookies.
type AuthHandler struct {
	authService ports.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService ports.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionUser struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *sessionUser `json:"user"`
}

func toSessionUser(u *domain.AdminUser) *sessionUser {
	return &sessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Login authenticates an admin and starts a cookie session.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.setSessionCookies(c, result)
	return c.JSON(http.StatusOK, sessionResponse{Token: result.AccessToken, User: toSessionUser(result.User)})
}

// Refresh rotates the token pair using the admin_refresh cookie. Any
// failure clears both cookies.
//
// @Summary      Rotate the session token pair
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var raw string
	if cookie, err := c.Cookie(middleware.CookieRefresh); err == nil {
		raw = cookie.Value
	}

	result, err := h.authService.Refresh(c.Request().Context(), raw)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.clearSessionCookies(c)
		}
		return err
	}

	metrics.TokenRefreshesTotal.Inc()
	h.setSessionCookies(c, result)
	return c.JSON(http.StatusOK, sessionResponse{Token: result.AccessToken, User: toSessionUser(result.User)})
}

// Logout clears the session cookies. Always succeeds.
//
// @Summary      Admin logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearSessionCookies(c)
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the authenticated admin's profile.
//
// @Summary      Current admin profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.PublicUser
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	// Legacy key identities have no user record behind them.
	if id.Legacy {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := h.authService.Me(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Public())
}

func (h *AuthHandler) setSessionCookies(c echo.Context, result *ports.AuthResult) {
	c.SetCookie(h.sessionCookie(middleware.CookieAccess, result.AccessToken, token.AccessTTL))
	c.SetCookie(h.sessionCookie(middleware.CookieRefresh, result.RefreshToken, token.RefreshTTL))
}

func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	c.SetCookie(h.sessionCookie(middleware.CookieAccess, "", -time.Second))
	c.SetCookie(h.sessionCookie(middleware.CookieRefresh, "", -time.Second))
}

// sessionCookie builds a scoped session cookie. Cross-site admin panels
// need SameSite=None in production, which in turn requires Secure;
// development stays on Lax so plain http keeps working.
func (h *AuthHandler) sessionCookie(name, value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cfg.Auth.CookieDomain,
		HttpOnly: true,
		MaxAge:   int(ttl.Seconds()),
	}
	if h.cfg.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}
	return cookie
}
