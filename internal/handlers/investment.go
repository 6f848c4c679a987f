package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/session"
	"github.com/dcapal/dcapal-web/web/src/templates/pages"
)

// InvestmentSettingsGet renders the investment settings screen, or the
// login prompt for anonymous visitors.
func InvestmentSettingsGet(c echo.Context) error {
	if !session.FromEcho(c).Valid() {
		return renderPage(c, http.StatusOK, "Sign in", pages.LoginPrompt("/investment-settings"))
	}
	return renderPage(c, http.StatusOK, "Investment Settings", pages.InvestmentSettings())
}
