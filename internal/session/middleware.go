package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/domain"
)

// refreshMargin is how close to expiry an access token gets refreshed.
const refreshMargin = time.Minute

// Middleware resolves the session of every request and stores it in the
// request context (see From). The gate's reference wins over the cookie
// when it is newer; tokens about to expire are refreshed through idp.
func Middleware(store *Store, gate *Gate, idp domain.IdentityProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			rec, err := store.Load(c)
			if err != nil {
				slog.WarnContext(ctx, "Ignoring unreadable session cookie", "error", err)
			}
			id, s := rec.ID, rec.Session

			if held, ok := gate.Since(id, rec.UpdatedAt); ok && !sameTokens(held, s) {
				s = held
				if err := store.Save(c, s); err != nil {
					slog.WarnContext(ctx, "Failed to sync session cookie", "error", err)
				}
			}

			if s.Valid() && idp != nil && s.ExpiresWithin(time.Now(), refreshMargin) {
				s = refresh(c, store, idp, s)
			}

			ctx = WithID(With(ctx, s), id)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func refresh(c echo.Context, store *Store, idp domain.IdentityProvider, s *domain.Session) *domain.Session {
	ctx := c.Request().Context()

	next, err := idp.Refresh(ctx, s)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			slog.InfoContext(ctx, "Session expired", "session_id", s.ID)
			_ = store.Clear(c)
			return nil
		}
		// The old token may still work for a moment; try again next request.
		slog.WarnContext(ctx, "Failed to refresh session", "error", err)
		return s
	}

	if err := store.Save(c, next); err != nil {
		slog.WarnContext(ctx, "Failed to store refreshed session", "error", err)
	}
	return next
}

func sameTokens(a, b *domain.Session) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.AccessToken == b.AccessToken && a.RefreshToken == b.RefreshToken
}
