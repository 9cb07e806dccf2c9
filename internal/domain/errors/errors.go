package errors

import "errors"

// Sentinel errors for handlers and guards to map to HTTP status.
var (
	ErrEmailTaken         = errors.New("account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPrincipalNotFound  = errors.New("account not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)
