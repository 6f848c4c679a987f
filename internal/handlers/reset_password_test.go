package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcapal/dcapal-web/internal/domain"
)

func TestResetPasswordGet_WidgetConfiguration(t *testing.T) {
	cl, _ := setupAuthTest(t)

	rec := cl.get("/reset-password")

	require.Equal(t, http.StatusOK, rec.Code)
	html := body(t, rec)
	assert.Contains(t, html, "Forgot Your Password?")
	assert.Contains(t, html, "--brand:#0000FF")
	assert.Contains(t, html, "--radius:5px")
	assert.Contains(t, html, `data-view="forgotten_password"`)
	assert.NotContains(t, html, "Already have an account?")
}

func TestResetPasswordPost_SendsRecoveryLink(t *testing.T) {
	cl, idp := setupAuthTest(t)

	form := url.Values{}
	form.Set("email", "a@x.com")
	rec := cl.post("/reset-password", form)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"a@x.com"}, idp.resets)
	assert.Equal(t, "http://localhost:8080/reset-password", idp.redirectTo)

	rec = cl.get("/reset-password")
	assert.Contains(t, body(t, rec), "Check your email for the password reset link.")
}

func TestResetPasswordGet_RecoveryLink(t *testing.T) {
	t.Run("verified link shows the new password form", func(t *testing.T) {
		cl, idp := setupAuthTest(t)

		rec := cl.get("/reset-password?token_hash=abc&type=recovery")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "abc", idp.verifiedFor)
		assert.Equal(t, "1", cl.cookieSession(testScreenCookie).Values["recovery"])

		cl.signIn(validSession())
		rec = cl.get("/reset-password")
		assert.Contains(t, body(t, rec), "Update password")
	})

	t.Run("expired link is reported", func(t *testing.T) {
		cl, idp := setupAuthTest(t)
		idp.verifyErr = domain.ErrInvalidResetToken

		rec := cl.get("/reset-password?token_hash=abc&type=recovery")

		assert.Equal(t, "/reset-password", rec.Header().Get("Location"))
		cl.assertFlashMessage("error", "Invalid or expired password reset link. Please request a new one.")
		assert.Nil(t, cl.cookieSession(testScreenCookie).Values["recovery"])
	})
}

func TestResetPasswordUpdatePost(t *testing.T) {
	cl, idp := setupAuthTest(t)
	cl.get("/reset-password?token_hash=abc&type=recovery")
	cl.signIn(validSession())

	form := url.Values{}
	form.Set("password", "new-password")
	rec := cl.post("/reset-password/update", form)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, []string{"new-password"}, idp.passwords)
	assert.Nil(t, cl.cookieSession(testScreenCookie).Values["recovery"])
	cl.assertFlashMessage("success", "Your password has been reset successfully.")
}
