package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
	"github.com/careline/clinic-backend/internal/pkg/config"
	"github.com/careline/clinic-backend/internal/pkg/token"
)

type stubUserRepo struct {
	findByIDFn func(ctx context.Context, id string) (*domain.AdminUser, error)
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	if s.findByIDFn == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubUserRepo) List(ctx context.Context) ([]*domain.AdminUser, error) { return nil, nil }

func (s *stubUserRepo) Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	return user, nil
}

func (s *stubUserRepo) UpdateFields(ctx context.Context, id string, fields ports.UserFields) error {
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id string) error { return nil }

const testSecret = "middleware-test-secret"

func testUser() *domain.AdminUser {
	return &domain.AdminUser{
		ID:           "user-1",
		Email:        "staff@clinic.test",
		Role:         domain.RoleStaff,
		IsActive:     true,
		TokenVersion: 1,
	}
}

func repoWith(user *domain.AdminUser) *stubUserRepo {
	return &stubUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.AdminUser, error) {
			if user != nil && id == user.ID {
				return user, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
}

func signAccess(t *testing.T, user *domain.AdminUser, tv int, typ string) string {
	t.Helper()
	raw, err := token.NewCodec(testSecret).Sign(&token.Claims{
		Email:            user.Email,
		Role:             user.Role,
		Perms:            domain.EffectivePermissions(user.Role, user.Permissions),
		TokenVersion:     tv,
		TokenType:        typ,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	}, token.AccessTTL)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return raw
}

func runAuth(t *testing.T, cfg config.AuthConfig, repo ports.AdminUserRepository, decorate func(*http.Request)) (*Identity, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/notifications", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *Identity
	handler := Auth(cfg, repo)(func(c echo.Context) error {
		got, _ = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})
	return got, handler(c)
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestAuth_BearerToken(t *testing.T) {
	user := testUser()
	raw := signAccess(t, user, user.TokenVersion, token.TypeAccess)

	id, err := runAuth(t, config.AuthConfig{Secret: testSecret}, repoWith(user), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+raw)
	})
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	if id == nil || id.UserID != user.ID || id.Legacy {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if !id.Perms[domain.PermNotificationsRead] {
		t.Fatalf("staff permission snapshot missing: %+v", id.Perms)
	}
}

func TestAuth_CookieFallback(t *testing.T) {
	user := testUser()
	raw := signAccess(t, user, user.TokenVersion, token.TypeAccess)

	id, err := runAuth(t, config.AuthConfig{Secret: testSecret}, repoWith(user), func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: CookieAccess, Value: raw})
	})
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	if id == nil || id.UserID != user.ID {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestAuth_NoCredentials(t *testing.T) {
	_, err := runAuth(t, config.AuthConfig{Secret: testSecret}, repoWith(nil), nil)
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_LegacyKey(t *testing.T) {
	cfg := config.AuthConfig{Secret: testSecret, AllowLegacyKey: true, AdminAPIKey: "static-key"}

	id, err := runAuth(t, cfg, repoWith(nil), func(req *http.Request) {
		req.Header.Set("x-admin-key", "static-key")
	})
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	if id == nil || !id.Legacy {
		t.Fatalf("expected a legacy identity, got %+v", id)
	}
}

func TestAuth_LegacyKeyDisabledOrWrong(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.AuthConfig
		key  string
	}{
		{"disabled", config.AuthConfig{Secret: testSecret, AdminAPIKey: "static-key"}, "static-key"},
		{"wrong key", config.AuthConfig{Secret: testSecret, AllowLegacyKey: true, AdminAPIKey: "static-key"}, "other-key"},
		{"no key configured", config.AuthConfig{Secret: testSecret, AllowLegacyKey: true}, "anything"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runAuth(t, tc.cfg, repoWith(nil), func(req *http.Request) {
				req.Header.Set("x-admin-key", tc.key)
			})
			if code := httpCode(t, err); code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", code)
			}
		})
	}
}

func TestAuth_MissingSecretWithToken(t *testing.T) {
	_, err := runAuth(t, config.AuthConfig{}, repoWith(nil), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer some.token.value")
	})
	if code := httpCode(t, err); code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	user := testUser()
	raw := signAccess(t, user, user.TokenVersion, token.TypeRefresh)

	_, err := runAuth(t, config.AuthConfig{Secret: testSecret}, repoWith(user), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+raw)
	})
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_StaleTokenVersion(t *testing.T) {
	user := testUser()
	raw := signAccess(t, user, user.TokenVersion, token.TypeAccess)
	user.TokenVersion++ // revoked after issue

	_, err := runAuth(t, config.AuthConfig{Secret: testSecret}, repoWith(user), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+raw)
	})
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_DeactivatedUser(t *testing.T) {
	user := testUser()
	raw := signAccess(t, user, user.TokenVersion, token.TypeAccess)
	user.IsActive = false

	_, err := runAuth(t, config.AuthConfig{Secret: testSecret}, repoWith(user), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+raw)
	})
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_DeletedUser(t *testing.T) {
	user := testUser()
	raw := signAccess(t, user, user.TokenVersion, token.TypeAccess)

	_, err := runAuth(t, config.AuthConfig{Secret: testSecret}, repoWith(nil), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+raw)
	})
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_TokenFromOtherSecret(t *testing.T) {
	user := testUser()
	raw, err := token.NewCodec("another-secret").Sign(&token.Claims{
		TokenType:        token.TypeAccess,
		TokenVersion:     user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	}, token.AccessTTL)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, authErr := runAuth(t, config.AuthConfig{Secret: testSecret}, repoWith(user), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+raw)
	})
	if code := httpCode(t, authErr); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
