package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/domain"
	"github.com/dcapal/dcapal-web/internal/identity"
	"github.com/dcapal/dcapal-web/internal/middleware"
	sessionstore "github.com/dcapal/dcapal-web/internal/session"
	"github.com/dcapal/dcapal-web/internal/view"
	"github.com/dcapal/dcapal-web/internal/view/dto/auth"
	"github.com/dcapal/dcapal-web/web/src/templates/pages"
)

const (
	resetPath    = "/reset-password"
	keyRecovery  = "recovery"
	flashKeySent = "reset_sent"
)

// ResetWidget is the configuration of the forgotten password page.
var ResetWidget = auth.WidgetConfig{
	Providers:    identity.Providers,
	BrandColor:   "#0000FF",
	BrandAccent:  "#0000FF",
	ButtonRadius: "5px",
	View:         "forgotten_password",
	MagicLink:    false,
	ShowLinks:    false,
}

// ResetPasswordGet renders the password recovery page. A recovery link
// lands here with ?token_hash=...&type=recovery; it is verified and the
// browser is signed in before the new password form is shown.
func (h *AuthHandler) ResetPasswordGet(c echo.Context) error {
	ctx := c.Request().Context()

	if tokenHash := c.QueryParam("token_hash"); tokenHash != "" && c.QueryParam("type") == "recovery" {
		s, err := h.idp.VerifyRecovery(ctx, sessionstore.IDFrom(ctx), tokenHash)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidResetToken) {
				middleware.FromContext(ctx).Error("Recovery verification failed", "error", err)
			}
			view.SetFlashError(c, "Invalid or expired password reset link. Please request a new one.")
			return c.Redirect(http.StatusSeeOther, resetPath)
		}
		if err := h.signedIn(c, s); err != nil {
			return err
		}
		if err := h.store.SetValue(c, keyRecovery, "1"); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, resetPath)
	}

	data := auth.ResetPasswordData{Widget: ResetWidget, Email: takeFormEmail(c)}
	if recovering, _ := h.store.Value(c, keyRecovery); recovering == "1" && sessionstore.FromEcho(c).Valid() {
		data.Verified = true
	} else if _, sent := view.TakeFlashValue(c, flashKeySent); sent {
		data.Sent = true
	}
	return renderPage(c, http.StatusOK, "Reset password", pages.ResetPassword(data))
}

// ResetPasswordPost emails a recovery link. The response does not reveal
// whether the address belongs to an account.
func (h *AuthHandler) ResetPasswordPost(c echo.Context) error {
	var req ResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashValue(c, "form_email", req.Email)
		view.SetFlashError(c, "Please enter a valid email address.")
		return c.Redirect(http.StatusSeeOther, resetPath)
	}

	ctx := c.Request().Context()
	if err := h.idp.SendPasswordReset(ctx, req.Email, h.baseURL+resetPath); err != nil {
		middleware.FromContext(ctx).Error("Failed to send password reset", "error", err)
	}

	view.SetFlashValue(c, flashKeySent, "1")
	return c.Redirect(http.StatusSeeOther, resetPath)
}

// ResetPasswordUpdatePost sets the new password of the signed in user.
func (h *AuthHandler) ResetPasswordUpdatePost(c echo.Context) error {
	var req NewPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, "Password must be at least 6 characters long.")
		return c.Redirect(http.StatusSeeOther, resetPath)
	}

	ctx := c.Request().Context()
	if err := h.idp.UpdatePassword(ctx, sessionstore.FromEcho(c), req.Password); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			_ = h.store.SetValue(c, keyRecovery, "")
			view.SetFlashError(c, "Your session has expired. Please request a new reset link.")
			return c.Redirect(http.StatusSeeOther, resetPath)
		}
		middleware.FromContext(ctx).Error("Failed to update password", "error", err)
		view.SetFlashError(c, "An error occurred while resetting your password.")
		return c.Redirect(http.StatusSeeOther, resetPath)
	}

	_ = h.store.SetValue(c, keyRecovery, "")
	view.SetFlashSuccess(c, "Your password has been reset successfully.")
	return c.Redirect(http.StatusSeeOther, "/")
}
