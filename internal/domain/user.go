package domain

import (
	"context"
	"time"
)

// Session is the authenticated user context issued by the identity provider.
// ID identifies the browser session holding the tokens, not the user.
type Session struct {
	ID           string    `json:"id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Valid reports whether the session carries an access token.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != ""
}

// ExpiresWithin reports whether the access token expires within d of now.
// A session without an expiry never expires.
func (s *Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(d).Before(s.ExpiresAt)
}

// Credentials is the email/password pair used to sign in or sign up.
type Credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// IdentityProvider defines the contract of the hosted authentication service.
// Every method that yields a session announces it on the auth event bus.
type IdentityProvider interface {
	SignIn(ctx context.Context, sessionID string, creds Credentials) (*Session, error)
	SignUp(ctx context.Context, sessionID string, creds Credentials) (*Session, error)
	SignOut(ctx context.Context, s *Session) error
	Refresh(ctx context.Context, s *Session) (*Session, error)

	// SendPasswordReset asks the provider to email a recovery link that
	// lands on redirectTo.
	SendPasswordReset(ctx context.Context, email, redirectTo string) error
	// VerifyRecovery exchanges the token hash of a recovery link for a session.
	VerifyRecovery(ctx context.Context, sessionID, tokenHash string) (*Session, error)
	UpdatePassword(ctx context.Context, s *Session, password string) error

	// ExchangeCode completes an external provider sign-in (PKCE flow).
	ExchangeCode(ctx context.Context, sessionID, code, verifier string) (*Session, error)
}
