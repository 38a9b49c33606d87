// Package token signs and verifies the compact HMAC-SHA256 tokens used
// for admin sessions. The scheme is pinned: there is no algorithm
// negotiation, and a token whose header claims anything other than HS256
// is rejected outright.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careline/clinic-backend/internal/core/domain"
)

// Token types carried in the payload's typ claim. Access tokens embed a
// permission snapshot; refresh tokens carry identity and version only,
// so a leaked refresh token proves nothing about permissions.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Default lifetimes for the two token types.
const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

// Claims is the token payload.
type Claims struct {
	Email        string                         `json:"email,omitempty"`
	Role         domain.Role                    `json:"role,omitempty"`
	Perms        map[domain.Permission]bool     `json:"perms,omitempty"`
	TokenVersion int                            `json:"tv"`
	TokenType    string                         `json:"typ"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a single HS256 secret.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Sign stamps iat=now (and exp=now+ttl when ttl > 0) into claims and
// returns the signed compact token.
func (c *Codec) Sign(claims *Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates raw. Expiry is reported as
// domain.ErrTokenExpired; every other failure (bad signature, malformed
// segments, unexpected algorithm) collapses to domain.ErrInvalidToken so
// callers cannot build an oracle out of the failure mode.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !t.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
