package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dcapal/dcapal-web/internal/app"
	"github.com/dcapal/dcapal-web/internal/config"
	"github.com/dcapal/dcapal-web/internal/server"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	backend := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		AppAddr:         ":0",
		AppBaseURL:      "http://localhost:8080",
		AppEnv:          "test",
		SessionSecret:   "a-very-secret-key-for-testing-!",
		SessionName:     "dcapal-session",
		APIBaseURL:      backend.URL,
		IdentityURL:     backend.URL,
		IdentityAnonKey: "anon",
		HTTPTimeout:     time.Second,
	}
	deps, err := app.Resolve(app.NewInjector(cfg, noop.NewTracerProvider().Tracer("test")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Bus.Close() })

	s := server.New(deps)
	s.RegisterRoutes()
	return s
}

func serve(s *server.Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		target string
		code   int
		want   string
	}{
		{"health", "/health", http.StatusOK, "OK"},
		{"home", "/", http.StatusOK, "DCA-Pal"},
		{"about", "/about", http.StatusOK, "About"},
		{"dashboard is under construction", "/dashboard", http.StatusOK, "under construction"},
		{"docs is under construction", "/docs", http.StatusOK, "under construction"},
		{"demo", "/demo/hodlx", http.StatusOK, "HODLX"},
		{"anonymous profile", "/profile", http.StatusOK, "Sign in required"},
		{"anonymous investment settings", "/investment-settings", http.StatusOK, "Sign in required"},
		{"reset password", "/reset-password", http.StatusOK, "Forgot Your Password?"},
		{"unknown path", "/no/such/page", http.StatusNotFound, "/no/such/page"},
		{"unknown demo", "/demo/unknown", http.StatusNotFound, "/demo/unknown"},
		{"embedded asset", "/static/css/app.css", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, http.MethodGet, tt.target)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, strings.ToLower(rec.Body.String()), strings.ToLower(tt.want))
		})
	}
}

func TestRoutes_ProfileActionsRequireSession(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodPost, "/profile/save")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login?next="))
}

func TestRoutes_AssignSessionCookie(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodGet, "/")

	var names []string
	for _, c := range rec.Result().Cookies() {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "dcapal-session")
}
