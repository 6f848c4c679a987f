package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcapal/dcapal-web/internal/domain"
	"github.com/dcapal/dcapal-web/internal/handlers"
	"github.com/dcapal/dcapal-web/internal/rendering"
	"github.com/dcapal/dcapal-web/internal/session"
)

const (
	testSessionSecret = "a-very-secret-key-for-testing-!"
	testSessionName   = "test-session"
	testScreenCookie  = testSessionName + "-screen"
	testSessionID     = "sid-1"
)

// client serves requests through an echo instance set up like the server's
// and carries cookies between requests like a browser.
type client struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
	session *domain.Session
	store   *session.Store
}

func newClient(t *testing.T) *client {
	t.Helper()
	cl := &client{
		t:       t,
		e:       echo.New(),
		cookies: map[string]*http.Cookie{},
		store:   session.NewStore(testSessionName),
	}
	cl.e.Renderer = rendering.NewUniversalRenderer()
	cl.e.Validator = handlers.NewValidator()
	cl.e.Use(echosession.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	cl.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := session.WithID(session.With(c.Request().Context(), cl.session), testSessionID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	return cl
}

// signIn makes every following request carry s.
func (cl *client) signIn(s *domain.Session) {
	cl.session = s
}

func (cl *client) get(target string) *httptest.ResponseRecorder {
	return cl.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (cl *client) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return cl.do(req)
}

func (cl *client) htmx(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set("HX-Request", "true")
	return cl.do(req)
}

func (cl *client) do(req *http.Request) *httptest.ResponseRecorder {
	cl.t.Helper()
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)

	// Several saves in one request emit one header each; the last wins.
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = c
	}
	return rec
}

// cookieSession decodes the named cookie session the client holds.
func (cl *client) cookieSession(name string) *sessions.Session {
	cl.t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if c, ok := cl.cookies[name]; ok {
		req.AddCookie(c)
	}
	sess, err := sessions.NewCookieStore([]byte(testSessionSecret)).Get(req, name)
	require.NoError(cl.t, err)
	return sess
}

// assertFlashMessage checks for a specific flash message in the session
// cookie the client holds.
func (cl *client) assertFlashMessage(key, expectedMessage string) {
	cl.t.Helper()
	flashes := cl.cookieSession("flash-session").Flashes(key)
	assert.NotEmpty(cl.t, flashes, "expected flash message but found none for key: %s", key)
	assert.Contains(cl.t, flashes, expectedMessage)
}

func body(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	data, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(data)
}

func validSession() *domain.Session {
	return &domain.Session{
		ID:           testSessionID,
		AccessToken:  "access",
		RefreshToken: "refresh",
		UserID:       "user-1",
		Email:        "a@x.com",
	}
}
