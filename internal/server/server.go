package server

import (
	"net/http"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dcapal/dcapal-web/internal/app"
	"github.com/dcapal/dcapal-web/internal/config"
	"github.com/dcapal/dcapal-web/internal/handlers"
	"github.com/dcapal/dcapal-web/internal/middleware"
	"github.com/dcapal/dcapal-web/internal/session"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E    *echo.Echo
	Cfg  config.Provider
	deps app.Dependencies
}

// New creates a new Server instance with the middleware chain installed.
// Routes are added by RegisterRoutes.
func New(deps app.Dependencies) *Server {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	setupErrorHandling(e)

	e.Renderer = deps.Renderer
	e.Validator = handlers.NewValidator()

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Configure and use session middleware
	store := session.CookieStore(cfg.GetSessionSecret())
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(echosession.Middleware(store))
	e.Use(session.Middleware(deps.Store, deps.Gate, deps.Identity))

	return &Server{
		E:    e,
		Cfg:  cfg,
		deps: deps,
	}
}
