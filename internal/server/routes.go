package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/handlers"
	"github.com/dcapal/dcapal-web/internal/middleware"
	"github.com/dcapal/dcapal-web/internal/routes"
	"github.com/dcapal/dcapal-web/internal/storage"
	"github.com/dcapal/dcapal-web/web"
)

// authPostsPerMinute bounds the credential posts of a single client.
const authPostsPerMinute = 10

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	d := s.deps

	// Create instances of all application handlers.
	authHandler := handlers.NewAuthHandler(d.Identity, d.Identity, d.Store, s.Cfg.GetAppBaseURL())
	profileHandler := handlers.NewProfileHandler(d.API, d.Store)
	portfolioHandler := handlers.NewPortfolioHandler(d.API)
	sessionSocket := handlers.NewSessionSocket(d.Gate)

	rateLimiter := middleware.RateLimiter(authPostsPerMinute)
	requireSession := middleware.RequireSession("/login")

	s.E.GET("/static/*", s.staticStore().Handler())
	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Screens.
	screens := routes.Screens{
		NotFound:           handlers.NotFoundGet,
		Home:               handlers.HomeGet,
		Allocate:           portfolioHandler.AllocateGet,
		About:              handlers.AboutGet,
		Dashboard:          handlers.UnderConstructionGet,
		Docs:               handlers.UnderConstructionGet,
		Import:             portfolioHandler.ImportGet,
		Login:              authHandler.LoginGet,
		SignUp:             authHandler.SignUpGet,
		ResetPassword:      authHandler.ResetPasswordGet,
		Profile:            profileHandler.ProfileGet,
		InvestmentSettings: handlers.InvestmentSettingsGet,
		Demo:               handlers.DemoGet(routes.DemoTitle),
		Error:              handlers.ErrorScreen(!s.Cfg.IsProduction()),
	}
	routes.Mount(s.E, routes.Build(screens, routes.DemoPortfolios))

	// Authentication.
	s.E.POST("/login", authHandler.LoginPost, rateLimiter)
	s.E.POST("/signup", authHandler.SignUpPost, rateLimiter)
	s.E.POST("/logout", authHandler.LogoutPost)
	s.E.GET("/auth/callback", authHandler.OAuthCallback)
	s.E.GET("/auth/:provider", authHandler.OAuthStart)
	s.E.POST("/reset-password", authHandler.ResetPasswordPost, rateLimiter)
	s.E.POST("/reset-password/update", authHandler.ResetPasswordUpdatePost, requireSession)

	// Profile form actions.
	p := s.E.Group("/profile", requireSession)
	p.POST("/edit", profileHandler.EditPost)
	p.POST("/field", profileHandler.FieldPost)
	p.POST("/save", profileHandler.SavePost)
	p.POST("/cancel", profileHandler.CancelPost)

	s.E.GET("/ws/session", sessionSocket.ServeWS)
}

// staticStore serves assets from the configured directory when it exists,
// so they can be edited without a rebuild, and from the embedded copy
// otherwise.
func (s *Server) staticStore() *storage.StaticStore {
	if dir := s.Cfg.GetStaticDir(); dir != "" && storage.DirExists(dir) {
		slog.Info("Serving static assets from disk", "dir", dir)
		return storage.NewOSStaticStore(dir)
	}
	sub, err := fs.Sub(web.FS, "static")
	if err != nil {
		// web.FS always contains the static directory.
		panic(err)
	}
	return storage.NewEmbeddedStaticStore(sub)
}
