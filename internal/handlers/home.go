package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/web/src/templates/pages"
)

// HomeGet renders the landing page.
func HomeGet(c echo.Context) error {
	return renderPage(c, http.StatusOK, "", pages.HomeContent())
}

// AboutGet is a handler function that renders the about page.
func AboutGet(c echo.Context) error {
	return renderPage(c, http.StatusOK, "About", pages.AboutContent())
}

// UnderConstructionGet renders the placeholder used by /dashboard and /docs.
func UnderConstructionGet(c echo.Context) error {
	return renderPage(c, http.StatusOK, "Under construction", pages.UnderConstructionContent())
}

// DemoGet returns the screen of the demo portfolio id.
func DemoGet(title func(string) string) func(id string) echo.HandlerFunc {
	return func(id string) echo.HandlerFunc {
		return func(c echo.Context) error {
			t := title(id)
			return renderPage(c, http.StatusOK, t, pages.DemoContent(id, t))
		}
	}
}
