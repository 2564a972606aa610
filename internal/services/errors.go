package services

import "errors"

// Closed set of failure kinds surfaced by the account services. Handlers
// map these to HTTP statuses through a single lookup table; nothing
// anywhere matches on error text.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrPasswordMismatch   = errors.New("password confirmation mismatch")
	ErrOTPMismatch        = errors.New("otp mismatch")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)
