package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/domain"
	"github.com/dcapal/dcapal-web/internal/identity"
	"github.com/dcapal/dcapal-web/internal/middleware"
	"github.com/dcapal/dcapal-web/internal/profile"
	sessionstore "github.com/dcapal/dcapal-web/internal/session"
	"github.com/dcapal/dcapal-web/internal/view"
	"github.com/dcapal/dcapal-web/internal/view/dto/auth"
	"github.com/dcapal/dcapal-web/web/src/templates/pages"
)

// Cookie session keys owned by the auth screens.
const (
	keyVerifier = "pkce_verifier"
	keyNext     = "auth_next"
)

// OAuthStarter builds the address that starts an external provider
// sign-in.
type OAuthStarter interface {
	AuthorizeURL(provider, redirectTo, verifier string) (string, error)
}

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	idp     domain.IdentityProvider
	oauth   OAuthStarter
	store   *sessionstore.Store
	baseURL string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(idp domain.IdentityProvider, oauth OAuthStarter, store *sessionstore.Store, baseURL string) *AuthHandler {
	return &AuthHandler{
		idp:     idp,
		oauth:   oauth,
		store:   store,
		baseURL: baseURL,
	}
}

func takeFormEmail(c echo.Context) string {
	email, _ := view.TakeFlashValue(c, "form_email")
	return email
}

// LoginGet renders the login page (GET /login).
func (h *AuthHandler) LoginGet(c echo.Context) error {
	if sessionstore.FromEcho(c).Valid() {
		return c.Redirect(http.StatusSeeOther, safeNext(c.QueryParam("next"), "/"))
	}
	data := auth.LoginData{
		Email:     takeFormEmail(c),
		Next:      c.QueryParam("next"),
		Providers: identity.Providers,
	}
	return renderPage(c, http.StatusOK, "Login", pages.Login(data))
}

// LoginPost handles the email and password sign-in form.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	next := safeNext(c.FormValue("next"), "/")
	back := "/login"
	if next != "/" {
		back += "?next=" + url.QueryEscape(next)
	}

	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&creds); err != nil {
		view.SetFlashValue(c, "form_email", creds.Email)
		view.SetFlashError(c, "Enter a valid email address and a password of at least 6 characters.")
		return c.Redirect(http.StatusSeeOther, back)
	}

	ctx := c.Request().Context()
	s, err := h.idp.SignIn(ctx, sessionstore.IDFrom(ctx), creds)
	if err != nil {
		view.SetFlashValue(c, "form_email", creds.Email)
		if errors.Is(err, domain.ErrInvalidCredentials) {
			view.SetFlashError(c, "Invalid email or password.")
		} else {
			middleware.FromContext(ctx).Error("Sign in failed", "error", err)
			view.SetFlashError(c, "Could not sign you in. Please try again.")
		}
		return c.Redirect(http.StatusSeeOther, back)
	}

	if err := h.signedIn(c, s); err != nil {
		return err
	}
	view.SetFlashSuccess(c, "Signed in successfully!")
	return c.Redirect(http.StatusSeeOther, next)
}

// SignUpGet renders the sign-up page (GET /signup).
func (h *AuthHandler) SignUpGet(c echo.Context) error {
	data := auth.SignUpData{
		Email:     takeFormEmail(c),
		Providers: identity.Providers,
	}
	return renderPage(c, http.StatusOK, "Sign up", pages.SignUp(data))
}

// SignUpPost handles the form submission for creating a new user.
func (h *AuthHandler) SignUpPost(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	// --- Validation ---
	if req.Password != req.PasswordConfirm {
		view.SetFlashValue(c, "form_email", req.Email)
		view.SetFlashError(c, "Passwords do not match.")
		return c.Redirect(http.StatusSeeOther, "/signup")
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashValue(c, "form_email", req.Email)
		view.SetFlashError(c, "Enter a valid email address and a password of at least 6 characters.")
		return c.Redirect(http.StatusSeeOther, "/signup")
	}

	ctx := c.Request().Context()
	creds := domain.Credentials{Email: req.Email, Password: req.Password}
	s, err := h.idp.SignUp(ctx, sessionstore.IDFrom(ctx), creds)
	if err != nil {
		view.SetFlashValue(c, "form_email", req.Email)
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			view.SetFlashError(c, "A user with this email already exists.")
		} else {
			slog.Error("Error creating user", "error", err)
			view.SetFlashError(c, "Could not create your account.")
		}
		return c.Redirect(http.StatusSeeOther, "/signup")
	}

	if s == nil {
		view.SetNotification(c, view.Info("Check your email", "Follow the link we sent you to confirm your account."))
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	if err := h.signedIn(c, s); err != nil {
		return err
	}
	view.SetFlashSuccess(c, "Account created successfully!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// LogoutPost signs the browser out.
func (h *AuthHandler) LogoutPost(c echo.Context) error {
	ctx := c.Request().Context()
	if s := sessionstore.FromEcho(c); s.Valid() {
		if err := h.idp.SignOut(ctx, s); err != nil {
			middleware.FromContext(ctx).Warn("Remote sign out failed", "error", err)
		}
	}
	if err := h.store.Clear(c); err != nil {
		return err
	}
	_ = h.store.SetValue(c, profile.StateKey, "")

	view.SetFlashSuccess(c, "You have been signed out.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// OAuthStart redirects to the identity provider's authorize endpoint for
// the provider named in the path.
func (h *AuthHandler) OAuthStart(c echo.Context) error {
	verifier := identity.NewVerifier()
	target, err := h.oauth.AuthorizeURL(c.Param("provider"), h.baseURL+"/auth/callback", verifier)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownProvider) {
			return echo.ErrNotFound
		}
		return err
	}

	if err := h.store.SetValue(c, keyVerifier, verifier); err != nil {
		return err
	}
	if err := h.store.SetValue(c, keyNext, safeNext(c.QueryParam("next"), "")); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// OAuthCallback completes an external provider sign-in.
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	ctx := c.Request().Context()
	verifier, _ := h.store.Value(c, keyVerifier)
	next, _ := h.store.Value(c, keyNext)
	_ = h.store.SetValue(c, keyVerifier, "")
	_ = h.store.SetValue(c, keyNext, "")

	if desc := c.QueryParam("error_description"); desc != "" || c.QueryParam("error") != "" {
		if desc == "" {
			desc = c.QueryParam("error")
		}
		view.SetNotification(c, view.Failure("Sign in failed", desc))
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	code := c.QueryParam("code")
	if code == "" || verifier == "" {
		view.SetFlashError(c, "The sign in link is invalid or has expired.")
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	s, err := h.idp.ExchangeCode(ctx, sessionstore.IDFrom(ctx), code, verifier)
	if err != nil {
		middleware.FromContext(ctx).Warn("Code exchange failed", "error", err)
		view.SetFlashError(c, "The sign in link is invalid or has expired.")
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	if err := h.signedIn(c, s); err != nil {
		return err
	}
	view.SetFlashSuccess(c, "Signed in successfully!")
	return c.Redirect(http.StatusSeeOther, safeNext(next, "/"))
}

// signedIn stores a new session and drops screen state of the previous one.
func (h *AuthHandler) signedIn(c echo.Context, s *domain.Session) error {
	if err := h.store.Save(c, s); err != nil {
		return err
	}
	return h.store.SetValue(c, profile.StateKey, "")
}
