package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
	"github.com/careline/clinic-backend/internal/pkg/config"
	"github.com/careline/clinic-backend/internal/pkg/password"
	"github.com/careline/clinic-backend/internal/pkg/token"
)

type stubUserRepo struct {
	findByEmailFn  func(ctx context.Context, email string) (*domain.AdminUser, error)
	findByIDFn     func(ctx context.Context, id string) (*domain.AdminUser, error)
	listFn         func(ctx context.Context) ([]*domain.AdminUser, error)
	createFn       func(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error)
	updateFieldsFn func(ctx context.Context, id string, fields ports.UserFields) error
	deleteFn       func(ctx context.Context, id string) error
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	if s.findByEmailFn == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.findByEmailFn(ctx, email)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	if s.findByIDFn == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubUserRepo) List(ctx context.Context) ([]*domain.AdminUser, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	if s.createFn == nil {
		return user, nil
	}
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) UpdateFields(ctx context.Context, id string, fields ports.UserFields) error {
	if s.updateFieldsFn == nil {
		return nil
	}
	return s.updateFieldsFn(ctx, id, fields)
}

func (s *stubUserRepo) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{Secret: "test-secret"}
}

func activeUser(t *testing.T, pass string) *domain.AdminUser {
	t.Helper()
	hash, err := password.Hash(pass)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &domain.AdminUser{
		ID:           "user-1",
		Name:         "Dr. Admin",
		Email:        "admin@clinic.test",
		PasswordHash: hash,
		Role:         domain.RoleEditor,
		IsActive:     true,
		TokenVersion: 2,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	user := activeUser(t, "correct-horse")
	var lastLoginRecorded bool
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.AdminUser, error) {
			if email != "admin@clinic.test" {
				t.Fatalf("email not normalized: %q", email)
			}
			return user, nil
		},
		updateFieldsFn: func(ctx context.Context, id string, fields ports.UserFields) error {
			if fields.LastLoginAt != nil {
				lastLoginRecorded = true
			}
			return nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), zerolog.Nop())

	result, err := svc.Login(context.Background(), "  Admin@Clinic.Test ", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected a token pair")
	}
	if !lastLoginRecorded {
		t.Fatalf("expected last login timestamp to be recorded")
	}

	codec := token.NewCodec("test-secret")
	access, err := codec.Verify(result.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if access.TokenType != token.TypeAccess || access.Subject != "user-1" || access.TokenVersion != 2 {
		t.Fatalf("unexpected access claims: %+v", access)
	}
	if !access.Perms[domain.PermContentManage] {
		t.Fatalf("editor permission snapshot missing: %+v", access.Perms)
	}

	refresh, err := codec.Verify(result.RefreshToken)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if refresh.TokenType != token.TypeRefresh || refresh.Subject != "user-1" {
		t.Fatalf("unexpected refresh claims: %+v", refresh)
	}
	if len(refresh.Perms) != 0 {
		t.Fatalf("refresh token must not carry permissions: %+v", refresh.Perms)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	user := activeUser(t, "correct-horse")
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.AdminUser, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), zerolog.Nop())

	if _, err := svc.Login(context.Background(), "admin@clinic.test", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownAndInactiveLookAlike(t *testing.T) {
	inactive := activeUser(t, "correct-horse")
	inactive.IsActive = false
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.AdminUser, error) {
			if email == inactive.Email {
				return inactive, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), zerolog.Nop())

	_, unknownErr := svc.Login(context.Background(), "ghost@clinic.test", "whatever")
	_, inactiveErr := svc.Login(context.Background(), inactive.Email, "correct-horse")

	// Unknown account and deactivated account must be indistinguishable.
	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) || !errors.Is(inactiveErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", unknownErr, inactiveErr)
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{}, testAuthConfig(), zerolog.Nop())

	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@b.c", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Login_MissingSecret(t *testing.T) {
	user := activeUser(t, "correct-horse")
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.AdminUser, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, config.AuthConfig{}, zerolog.Nop())

	if _, err := svc.Login(context.Background(), user.Email, "correct-horse"); !errors.Is(err, domain.ErrServerMisconfigured) {
		t.Fatalf("expected ErrServerMisconfigured, got %v", err)
	}
}

func TestAuthService_Login_BootstrapProvisionsFirstAdmin(t *testing.T) {
	var created *domain.AdminUser
	repo := &stubUserRepo{
		createFn: func(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
			created = user
			return user, nil
		},
	}
	cfg := testAuthConfig()
	cfg.BootstrapEmail = "Root@Clinic.Test"
	cfg.BootstrapName = "Root"
	cfg.BootstrapPassword = "first-secret"
	svc := NewAuthService(repo, cfg, zerolog.Nop())

	result, err := svc.Login(context.Background(), "root@clinic.test", "first-secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if created == nil {
		t.Fatalf("expected bootstrap user to be created")
	}
	if created.Role != domain.RoleSuperAdmin || !created.IsActive {
		t.Fatalf("bootstrap user should be an active super_admin: %+v", created)
	}
	if created.Email != "root@clinic.test" {
		t.Fatalf("bootstrap email not normalized: %q", created.Email)
	}
	if !password.Verify("first-secret", created.PasswordHash) {
		t.Fatalf("bootstrap password not bcrypt-hashed")
	}
	if result.User.ID != created.ID {
		t.Fatalf("login should return the provisioned user")
	}
}

func TestAuthService_Login_BootstrapWrongPassword(t *testing.T) {
	cfg := testAuthConfig()
	cfg.BootstrapEmail = "root@clinic.test"
	cfg.BootstrapPassword = "first-secret"
	svc := NewAuthService(&stubUserRepo{}, cfg, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "root@clinic.test", "guess"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_BootstrapRace(t *testing.T) {
	existing := activeUser(t, "first-secret")
	firstLookup := true
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.AdminUser, error) {
			if firstLookup {
				firstLookup = false
				return nil, domain.ErrUserNotFound
			}
			return existing, nil
		},
		createFn: func(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
			// A concurrent login won the insert.
			return nil, domain.ErrEmailExists
		},
	}
	cfg := testAuthConfig()
	cfg.BootstrapEmail = existing.Email
	cfg.BootstrapPassword = "first-secret"
	svc := NewAuthService(repo, cfg, zerolog.Nop())

	result, err := svc.Login(context.Background(), existing.Email, "first-secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.User.ID != existing.ID {
		t.Fatalf("expected the concurrently created record, got %+v", result.User)
	}
}

func TestAuthService_Login_LazyRehashOfLegacyHash(t *testing.T) {
	user := activeUser(t, "placeholder")
	user.PasswordHash = password.LegacyHash("migrated-password")

	var rehashed *string
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.AdminUser, error) {
			return user, nil
		},
		updateFieldsFn: func(ctx context.Context, id string, fields ports.UserFields) error {
			if fields.PasswordHash != nil {
				rehashed = fields.PasswordHash
			}
			return nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), zerolog.Nop())

	if _, err := svc.Login(context.Background(), user.Email, "migrated-password"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rehashed == nil {
		t.Fatalf("expected the legacy hash to be upgraded")
	}
	if !password.Verify("migrated-password", *rehashed) {
		t.Fatalf("upgraded hash does not verify")
	}
	if password.NeedsRehash(*rehashed) {
		t.Fatalf("upgraded hash is still legacy format")
	}
}

func TestAuthService_Login_RehashFailureDoesNotFailLogin(t *testing.T) {
	user := activeUser(t, "placeholder")
	user.PasswordHash = password.LegacyHash("migrated-password")
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.AdminUser, error) {
			return user, nil
		},
		updateFieldsFn: func(ctx context.Context, id string, fields ports.UserFields) error {
			return errors.New("write concern failed")
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), zerolog.Nop())

	if _, err := svc.Login(context.Background(), user.Email, "migrated-password"); err != nil {
		t.Fatalf("login should succeed despite rehash failure: %v", err)
	}
}

func TestAuthService_Refresh_RotatesPair(t *testing.T) {
	user := activeUser(t, "correct-horse")
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.AdminUser, error) {
			return user, nil
		},
		findByIDFn: func(ctx context.Context, id string) (*domain.AdminUser, error) {
			if id != user.ID {
				return nil, domain.ErrUserNotFound
			}
			return user, nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), zerolog.Nop())

	login, err := svc.Login(context.Background(), user.Email, "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == "" {
		t.Fatalf("expected a fresh token pair")
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	user := activeUser(t, "correct-horse")
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.AdminUser, error) {
			return user, nil
		},
		findByIDFn: func(ctx context.Context, id string) (*domain.AdminUser, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), zerolog.Nop())

	login, err := svc.Login(context.Background(), user.Email, "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// An access token must not work as a refresh token.
	if _, err := svc.Refresh(context.Background(), login.AccessToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Refresh_StaleTokenVersion(t *testing.T) {
	user := activeUser(t, "correct-horse")
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.AdminUser, error) {
			return user, nil
		},
		findByIDFn: func(ctx context.Context, id string) (*domain.AdminUser, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), zerolog.Nop())

	login, err := svc.Login(context.Background(), user.Email, "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// A version bump after issue revokes the outstanding refresh token.
	user.TokenVersion++

	if _, err := svc.Refresh(context.Background(), login.RefreshToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Refresh_EmptyAndGarbage(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{}, testAuthConfig(), zerolog.Nop())

	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), "not.a.token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for garbage token, got %v", err)
	}
}

func TestAuthService_Refresh_MissingSecret(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{}, config.AuthConfig{}, zerolog.Nop())

	if _, err := svc.Refresh(context.Background(), "some.token.value"); !errors.Is(err, domain.ErrServerMisconfigured) {
		t.Fatalf("expected ErrServerMisconfigured, got %v", err)
	}

	// Without a cookie there is nothing to verify, so the missing secret
	// must not surface as a server error.
	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	user := activeUser(t, "correct-horse")
	repo := &stubUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.AdminUser, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), zerolog.Nop())

	got, err := svc.Me(context.Background(), user.ID)
	if err != nil || got.Email != user.Email {
		t.Fatalf("me: %v %+v", err, got)
	}

	if _, err := svc.Me(context.Background(), "missing"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for missing user, got %v", err)
	}

	user.IsActive = false
	if _, err := svc.Me(context.Background(), user.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for deactivated user, got %v", err)
	}
}
