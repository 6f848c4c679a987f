package session

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/domain"
)

type contextKey string

const (
	sessionKey = contextKey("session")
	idKey      = contextKey("session_id")
)

// With returns a copy of ctx carrying s. A nil s marks the request as
// signed out.
func With(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// From returns the session carried by ctx, or nil when signed out.
func From(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(sessionKey).(*domain.Session)
	return s
}

// WithID returns a copy of ctx carrying the browser session ID.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// IDFrom returns the browser session ID carried by ctx.
func IDFrom(ctx context.Context) string {
	id, _ := ctx.Value(idKey).(string)
	return id
}

// FromEcho is shorthand for From(c.Request().Context()).
func FromEcho(c echo.Context) *domain.Session {
	return From(c.Request().Context())
}
