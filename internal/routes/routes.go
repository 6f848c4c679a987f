// Package routes builds the table of browser routes and mounts it on echo.
package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CatchAll is the path of the not-found entry.
const CatchAll = "*"

// ErrorScreen renders a failure of a route's screen.
type ErrorScreen func(c echo.Context, err error) error

// Entry maps a path to the screen mounted on it. Entries are never
// mutated once Build returns.
type Entry struct {
	Path     string
	Name     string
	Screen   echo.HandlerFunc
	Fallback ErrorScreen
}

// Screens are the handlers the table is built from.
type Screens struct {
	NotFound           echo.HandlerFunc
	Home               echo.HandlerFunc
	Allocate           echo.HandlerFunc
	About              echo.HandlerFunc
	Dashboard          echo.HandlerFunc
	Docs               echo.HandlerFunc
	Import             echo.HandlerFunc
	Login              echo.HandlerFunc
	SignUp             echo.HandlerFunc
	ResetPassword      echo.HandlerFunc
	Profile            echo.HandlerFunc
	InvestmentSettings echo.HandlerFunc

	// Demo returns the screen of the demo portfolio id.
	Demo func(id string) echo.HandlerFunc
	// Error is the fallback of every route except the catch-all.
	Error ErrorScreen
}

// Build returns the route table: the catch-all first, then the fixed
// routes, then one demo route per id in demoIDs, in order. Ids are
// neither validated nor deduplicated.
func Build(s Screens, demoIDs []string) []Entry {
	entries := []Entry{
		{Path: CatchAll, Name: "not-found", Screen: s.NotFound},
		{Path: "/", Name: "home", Screen: s.Home, Fallback: s.Error},
		{Path: "/allocate", Name: "allocate", Screen: s.Allocate, Fallback: s.Error},
		{Path: "/about", Name: "about", Screen: s.About, Fallback: s.Error},
		{Path: "/dashboard", Name: "dashboard", Screen: s.Dashboard, Fallback: s.Error},
		{Path: "/docs", Name: "docs", Screen: s.Docs, Fallback: s.Error},
		{Path: "/import", Name: "import", Screen: s.Import, Fallback: s.Error},
		{Path: "/login", Name: "login", Screen: s.Login, Fallback: s.Error},
		{Path: "/signup", Name: "signup", Screen: s.SignUp, Fallback: s.Error},
		{Path: "/reset-password", Name: "reset-password", Screen: s.ResetPassword, Fallback: s.Error},
		{Path: "/profile", Name: "profile", Screen: s.Profile, Fallback: s.Error},
		{Path: "/investment-settings", Name: "investment-settings", Screen: s.InvestmentSettings, Fallback: s.Error},
	}

	for _, id := range demoIDs {
		var screen echo.HandlerFunc
		if s.Demo != nil {
			screen = s.Demo(id)
		}
		entries = append(entries, Entry{
			Path:     DemoPath(id),
			Name:     "demo-" + id,
			Screen:   screen,
			Fallback: s.Error,
		})
	}
	return entries
}

// Mount registers every entry as a GET route. The catch-all becomes
// echo's "/*" route, which the router only tries after every static and
// parameter route failed to match, whatever the registration order.
// Entries without a screen are skipped.
func Mount(e *echo.Echo, entries []Entry, m ...echo.MiddlewareFunc) {
	for _, entry := range entries {
		if entry.Screen == nil {
			continue
		}
		e.GET(routerPath(entry.Path), guard(entry), m...).Name = entry.Name
	}
}

// Paths lists the paths of entries in table order.
func Paths(entries []Entry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	return paths
}

func routerPath(p string) string {
	if p == CatchAll {
		return "/*"
	}
	return p
}

// guard renders the entry's fallback when its screen fails. Client errors
// and responses already on the wire are left to the HTTP error handler.
func guard(entry Entry) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := entry.Screen(c)
		if err == nil || entry.Fallback == nil || c.Response().Committed {
			return err
		}
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			return err
		}
		return entry.Fallback(c, err)
	}
}
