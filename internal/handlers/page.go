package handlers

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"

	"github.com/dcapal/dcapal-web/internal/view"
	"github.com/dcapal/dcapal-web/web/src/templates/layouts"
)

// renderPage wraps page content in the base layout together with the
// queued flash messages and any extra notifications, then renders it.
func renderPage(c echo.Context, status int, title string, content cmp.Node, extra ...view.Notification) error {
	flashes := view.GetFlashData(c)
	flashes.Notifications = append(flashes.Notifications, extra...)

	finalComponent := layouts.Base(title, flashes, view.Component(content))

	// The 'name' parameter is ignored by our renderer, but the component is passed as 'data'.
	return c.Render(status, "", finalComponent)
}

// renderFragment renders nodes without the layout, for htmx swaps.
func renderFragment(c echo.Context, status int, nodes ...cmp.Node) error {
	return c.Render(status, "", cmp.Group(nodes))
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// safeNext returns next when it is a local path, fallback otherwise.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	if u, err := url.Parse(next); err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return next
}
