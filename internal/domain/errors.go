package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for failures reported by the identity provider and the backend API.
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials provided")
	ErrNotFound           = errors.New("requested resource not found")
	ErrUnauthorized       = errors.New("session is missing or no longer valid")

	// ErrInvalidResetToken indicates that a password recovery link is
	// expired, already used, or was never valid.
	ErrInvalidResetToken = errors.New("invalid or expired password reset token")

	// ErrUnknownProvider is returned for external sign-in providers that are
	// not enabled for this application.
	ErrUnknownProvider = errors.New("unknown sign-in provider")
)
