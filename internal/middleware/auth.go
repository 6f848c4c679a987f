package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/session"
)

// RequireSession protects routes that only make sense for a signed in
// user. Anonymous requests are sent to loginPath; htmx requests get an
// HX-Redirect header instead of a redirect they would swap into the page.
func RequireSession(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.FromEcho(c).Valid() {
				return next(c)
			}

			target := loginPath + "?next=" + url.QueryEscape(c.Request().URL.Path)
			if c.Request().Header.Get("HX-Request") == "true" {
				c.Response().Header().Set("HX-Redirect", target)
				return c.NoContent(http.StatusUnauthorized)
			}
			return c.Redirect(http.StatusSeeOther, target)
		}
	}
}
