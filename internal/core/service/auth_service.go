package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
	"github.com/careline/clinic-backend/internal/pkg/config"
	"github.com/careline/clinic-backend/internal/pkg/password"
	"github.com/careline/clinic-backend/internal/pkg/token"
)

// AuthService implements login, refresh rotation, and profile lookup for
// admin accounts. It is stateless per request: revocation relies purely
// on the token version stored on the user record, re-read every time.
type AuthService struct {
	users      ports.AdminUserRepository
	cfg        config.AuthConfig
	codec      *token.Codec
	logger     zerolog.Logger
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users ports.AdminUserRepository, cfg config.AuthConfig, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		cfg:        cfg,
		codec:      token.NewCodec(cfg.Secret),
		logger:     logger,
		accessTTL:  token.AccessTTL,
		refreshTTL: token.RefreshTTL,
	}
}

// NormalizeEmail trims and lowercases an email for lookup and storage.
// Exactly one credential record may exist per normalized email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifies credentials and issues a fresh token pair. Absent user,
// inactive user, and wrong password all collapse to ErrInvalidCredentials
// so responses cannot be used for account enumeration.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*ports.AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || pass == "" {
		return nil, domain.ErrValidation
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.bootstrapAdmin(ctx, email, pass)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || !password.Verify(pass, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if s.cfg.Secret == "" {
		return nil, domain.ErrServerMisconfigured
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	// Post-issue side effects are best-effort: neither a failed rehash
	// nor a failed timestamp write may fail the login itself.
	s.rehashIfLegacy(ctx, user, pass)
	s.recordLogin(ctx, user.ID)

	return result, nil
}

// Refresh rotates the token pair. Every failure mode (bad token, wrong
// type, missing or inactive user, stale token version) collapses to
// ErrUnauthorized.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	if refreshToken == "" {
		// No credential to verify: a missing cookie stays 401 even on a
		// misconfigured server.
		return nil, domain.ErrUnauthorized
	}
	if s.cfg.Secret == "" {
		return nil, domain.ErrServerMisconfigured
	}

	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.TokenType != token.TypeRefresh || claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if claims.TokenVersion != user.TokenVersion {
		return nil, domain.ErrUnauthorized
	}

	return s.issueTokens(user)
}

// Me returns the account behind an authenticated request, or
// ErrUnauthorized when it no longer exists or has been deactivated.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.AdminUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// bootstrapAdmin provisions the first super_admin when the supplied
// credentials match the configured bootstrap pair. Idempotent: if the
// record appears concurrently, it is re-read rather than duplicated.
func (s *AuthService) bootstrapAdmin(ctx context.Context, email, pass string) (*domain.AdminUser, error) {
	if s.cfg.BootstrapEmail == "" || s.cfg.BootstrapPassword == "" {
		return nil, domain.ErrUserNotFound
	}
	if email != NormalizeEmail(s.cfg.BootstrapEmail) || pass != s.cfg.BootstrapPassword {
		return nil, domain.ErrUserNotFound
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.AdminUser{
		ID:           uuid.NewString(),
		Name:         s.cfg.BootstrapName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if errors.Is(err, domain.ErrEmailExists) {
		return s.users.FindByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", email).Msg("bootstrap admin provisioned")
	return created, nil
}

func (s *AuthService) issueTokens(user *domain.AdminUser) (*ports.AuthResult, error) {
	access, err := s.codec.Sign(&token.Claims{
		Email:            user.Email,
		Role:             user.Role,
		Perms:            domain.EffectivePermissions(user.Role, user.Permissions),
		TokenVersion:     user.TokenVersion,
		TokenType:        token.TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	}, s.accessTTL)
	if err != nil {
		return nil, err
	}

	// Refresh tokens carry identity and version only: if one leaks it
	// proves nothing about permissions.
	refresh, err := s.codec.Sign(&token.Claims{
		Email:            user.Email,
		Role:             user.Role,
		TokenVersion:     user.TokenVersion,
		TokenType:        token.TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	}, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func (s *AuthService) rehashIfLegacy(ctx context.Context, user *domain.AdminUser, pass string) {
	if !password.NeedsRehash(user.PasswordHash) {
		return
	}
	hash, err := password.Hash(pass)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("lazy rehash failed")
		return
	}
	now := time.Now().UTC()
	if err := s.users.UpdateFields(ctx, user.ID, ports.UserFields{PasswordHash: &hash, UpdatedAt: &now}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("lazy rehash persist failed")
	}
}

func (s *AuthService) recordLogin(ctx context.Context, userID string) {
	now := time.Now().UTC()
	if err := s.users.UpdateFields(ctx, userID, ports.UserFields{LastLoginAt: &now, UpdatedAt: &now}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("last login persist failed")
	}
}
