package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/api/middleware"
	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
	"github.com/careline/clinic-backend/internal/pkg/config"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	refreshFn func(ctx context.Context, refreshToken string) (*ports.AuthResult, error)
	meFn      func(ctx context.Context, userID string) (*domain.AdminUser, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.AdminUser, error) {
	return s.meFn(ctx, userID)
}

func devConfig() *config.Config {
	return &config.Config{Env: "development", Auth: config.AuthConfig{Secret: "test-secret"}}
}

func sessionResult() *ports.AuthResult {
	return &ports.AuthResult{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User: &domain.AdminUser{
			ID:       "user-1",
			Name:     "Dr. Admin",
			Email:    "admin@clinic.test",
			Role:     domain.RoleAdmin,
			IsActive: true,
		},
	}
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "admin@clinic.test" || password != "secret-pw" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return sessionResult(), nil
		},
	}
	h := NewAuthHandler(stub, devConfig())

	body := strings.NewReader(`{"email":"admin@clinic.test","password":"secret-pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "access-token" {
		t.Fatalf("expected access token in body, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "admin@clinic.test" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}

	cookies := rec.Result().Cookies()
	access := cookieByName(cookies, middleware.CookieAccess)
	refresh := cookieByName(cookies, middleware.CookieRefresh)
	if access == nil || refresh == nil {
		t.Fatalf("expected both session cookies, got %+v", cookies)
	}
	if access.Value != "access-token" || refresh.Value != "refresh-token" {
		t.Fatalf("cookie values wrong: %q %q", access.Value, refresh.Value)
	}
	for _, ck := range []*http.Cookie{access, refresh} {
		if !ck.HttpOnly || ck.Path != "/" {
			t.Fatalf("cookie not scoped correctly: %+v", ck)
		}
		// Development stays on Lax so plain http keeps working.
		if ck.SameSite != http.SameSiteLaxMode || ck.Secure {
			t.Fatalf("development cookie attributes wrong: %+v", ck)
		}
	}
	if refresh.MaxAge <= access.MaxAge {
		t.Fatalf("refresh cookie should outlive access cookie: %d vs %d", refresh.MaxAge, access.MaxAge)
	}
}

func TestAuthHandler_Login_ProductionCookieAttributes(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return sessionResult(), nil
		},
	}
	cfg := devConfig()
	cfg.Env = "production"
	h := NewAuthHandler(stub, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	for _, ck := range rec.Result().Cookies() {
		if !ck.Secure || ck.SameSite != http.SameSiteNoneMode {
			t.Fatalf("production cookies must be Secure with SameSite=None: %+v", ck)
		}
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, devConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookies should be set on failure")
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, devConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
			if refreshToken != "old-refresh" {
				t.Fatalf("expected cookie value, got %q", refreshToken)
			}
			return sessionResult(), nil
		},
	}
	h := NewAuthHandler(stub, devConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieRefresh, Value: "old-refresh"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	refresh := cookieByName(rec.Result().Cookies(), middleware.CookieRefresh)
	if refresh == nil || refresh.Value != "refresh-token" {
		t.Fatalf("refresh cookie not rotated: %+v", refresh)
	}
}

func TestAuthHandler_Refresh_UnauthorizedClearsCookies(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewAuthHandler(stub, devConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieRefresh, Value: "stale"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Refresh(c)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	for _, name := range []string{middleware.CookieAccess, middleware.CookieRefresh} {
		ck := cookieByName(rec.Result().Cookies(), name)
		if ck == nil || ck.Value != "" || ck.MaxAge >= 0 {
			t.Fatalf("expected %s to be cleared, got %+v", name, ck)
		}
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{}, devConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	for _, name := range []string{middleware.CookieAccess, middleware.CookieRefresh} {
		ck := cookieByName(rec.Result().Cookies(), name)
		if ck == nil || ck.Value != "" || ck.MaxAge >= 0 {
			t.Fatalf("expected %s to be cleared, got %+v", name, ck)
		}
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.AdminUser, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return sessionResult().User, nil
		},
	}
	h := NewAuthHandler(stub, devConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetIdentity(c, &middleware.Identity{UserID: "user-1", Role: domain.RoleAdmin})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "user-1" || resp["email"] != "admin@clinic.test" {
		t.Fatalf("unexpected profile: %+v", resp)
	}
}

func TestAuthHandler_Me_LegacyIdentity(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{}, devConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetIdentity(c, &middleware.Identity{Legacy: true})

	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("legacy identities have no profile, expected 401, got %v", err)
	}
}

func TestAuthHandler_Me_NoIdentity(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{}, devConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
