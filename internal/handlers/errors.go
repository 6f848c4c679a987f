package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/middleware"
	"github.com/dcapal/dcapal-web/web/src/templates/pages"
)

// NotFoundGet renders the screen for paths no route matches.
func NotFoundGet(c echo.Context) error {
	return renderPage(c, http.StatusNotFound, "Page not found", pages.NotFoundContent(c.Request().URL.Path))
}

// ErrorScreen is the fallback rendered when a route's screen fails. The
// error detail is logged and only shown outside production.
func ErrorScreen(showDetail bool) func(c echo.Context, err error) error {
	return func(c echo.Context, err error) error {
		middleware.FromContext(c.Request().Context()).Error("Screen failed", "path", c.Request().URL.Path, "error", err)

		msg := ""
		if showDetail {
			msg = err.Error()
		}
		return renderPage(c, http.StatusInternalServerError, "Error", pages.ErrorContent(msg))
	}
}
