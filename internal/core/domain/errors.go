package domain

import "errors"

// Sentinel errors for the whole service layer. The API layer is the only
// place these are translated into HTTP status codes.
var (
	ErrValidation          = errors.New("validation error")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrServerMisconfigured = errors.New("auth secret not configured")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrUserNotFound = errors.New("admin user not found")
	ErrEmailExists  = errors.New("email already exists")

	ErrNotFound  = errors.New("not found")
	ErrSlugTaken = errors.New("slug already exists")
	ErrKeyTaken  = errors.New("setting key already exists")
)
