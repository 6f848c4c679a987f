package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dcapal/dcapal-web/internal/api"
	"github.com/dcapal/dcapal-web/internal/domain"
	"github.com/dcapal/dcapal-web/internal/pubsub"
)

// Client is a domain.IdentityProvider backed by a GoTrue compatible REST API.
// Every operation that changes the state of a browser session is announced
// on the StateChanged topic.
type Client struct {
	rest *api.Requester
	pub  pubsub.Publisher
	now  func() time.Time
}

var _ domain.IdentityProvider = (*Client)(nil)

// NewClient creates an identity client. baseURL is the project URL; the
// /auth/v1 prefix is added by the client.
func NewClient(baseURL, anonKey string, timeout time.Duration, pub pubsub.Publisher) *Client {
	header := http.Header{}
	header.Set("apikey", anonKey)
	return &Client{
		rest: api.NewRequester(strings.TrimRight(baseURL, "/")+"/auth/v1", header, timeout),
		pub:  pub,
		now:  time.Now,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (t *tokenResponse) session(id string, now time.Time) *domain.Session {
	s := &domain.Session{
		ID:           id,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		UserID:       t.User.ID,
		Email:        t.User.Email,
	}
	switch {
	case t.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(t.ExpiresAt, 0)
	case t.ExpiresIn > 0:
		s.ExpiresAt = now.Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return s
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.Session, error) {
	var tok tokenResponse
	err := c.rest.Do(ctx, http.MethodPost, "/token?grant_type=password", "", credentialsBody(creds), &tok)
	if err != nil {
		if statusIn(err, http.StatusBadRequest, http.StatusUnauthorized) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}

	s := tok.session(sessionID, c.now())
	c.announce(ctx, SignedIn, s)
	return s, nil
}

// SignUp registers a new user. When the provider requires email
// confirmation no session is issued and SignUp returns (nil, nil).
func (c *Client) SignUp(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.Session, error) {
	var tok tokenResponse
	err := c.rest.Do(ctx, http.MethodPost, "/signup", "", credentialsBody(creds), &tok)
	if err != nil {
		if statusIn(err, http.StatusUnprocessableEntity) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, nil
	}

	s := tok.session(sessionID, c.now())
	c.announce(ctx, SignedIn, s)
	return s, nil
}

// SignOut revokes the session's refresh token. The session is announced as
// signed out even when the remote call fails, so the browser always ends up
// signed out locally.
func (c *Client) SignOut(ctx context.Context, s *domain.Session) error {
	if !s.Valid() {
		return nil
	}
	err := c.rest.Do(ctx, http.MethodPost, "/logout", s.AccessToken, nil, nil)
	c.announce(ctx, SignedOut, &domain.Session{ID: s.ID, UserID: s.UserID})
	if err != nil && !statusIn(err, http.StatusUnauthorized, http.StatusNotFound) {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// Refresh trades the refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	if s == nil || s.RefreshToken == "" {
		return nil, domain.ErrUnauthorized
	}

	var tok tokenResponse
	body := map[string]string{"refresh_token": s.RefreshToken}
	if err := c.rest.Do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", body, &tok); err != nil {
		if statusIn(err, http.StatusBadRequest, http.StatusUnauthorized) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("refresh session: %w", err)
	}

	next := tok.session(s.ID, c.now())
	c.announce(ctx, TokenRefreshed, next)
	return next, nil
}

// SendPasswordReset asks the provider to email a recovery link.
func (c *Client) SendPasswordReset(ctx context.Context, email, redirectTo string) error {
	path := "/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	if err := c.rest.Do(ctx, http.MethodPost, path, "", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("send password reset: %w", err)
	}
	return nil
}

// VerifyRecovery exchanges the token hash of a recovery link for a session.
func (c *Client) VerifyRecovery(ctx context.Context, sessionID, tokenHash string) (*domain.Session, error) {
	var tok tokenResponse
	body := map[string]string{"type": "recovery", "token_hash": tokenHash}
	if err := c.rest.Do(ctx, http.MethodPost, "/verify", "", body, &tok); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return nil, domain.ErrInvalidResetToken
		}
		return nil, fmt.Errorf("verify recovery: %w", err)
	}

	s := tok.session(sessionID, c.now())
	c.announce(ctx, PasswordRecovery, s)
	return s, nil
}

// UpdatePassword sets a new password for the session's user.
func (c *Client) UpdatePassword(ctx context.Context, s *domain.Session, password string) error {
	if !s.Valid() {
		return domain.ErrUnauthorized
	}
	if err := c.rest.Do(ctx, http.MethodPut, "/user", s.AccessToken, map[string]string{"password": password}, nil); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	c.announce(ctx, UserUpdated, s)
	return nil
}

// ExchangeCode completes an external provider sign-in.
func (c *Client) ExchangeCode(ctx context.Context, sessionID, code, verifier string) (*domain.Session, error) {
	var tok tokenResponse
	body := map[string]string{"auth_code": code, "code_verifier": verifier}
	if err := c.rest.Do(ctx, http.MethodPost, "/token?grant_type=pkce", "", body, &tok); err != nil {
		if statusIn(err, http.StatusBadRequest, http.StatusNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	s := tok.session(sessionID, c.now())
	c.announce(ctx, SignedIn, s)
	return s, nil
}

// announce publishes an auth event. A failed publish only means open pages
// miss a live update, so it is logged and otherwise ignored.
func (c *Client) announce(ctx context.Context, event EventType, s *domain.Session) {
	if c.pub == nil {
		return
	}
	ev := AuthEvent{Event: event, SessionID: s.ID}
	if event != SignedOut {
		ev.Session = s
	}
	if err := pubsub.Publish(ctx, c.pub, StateChanged, s.UserID, ev); err != nil {
		slog.WarnContext(ctx, "Failed to publish auth event", "event", event, "error", err)
	}
}

func statusIn(err error, statuses ...int) bool {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, s := range statuses {
		if apiErr.Status == s {
			return true
		}
	}
	return false
}
