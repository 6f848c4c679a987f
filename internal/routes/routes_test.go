package routes_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcapal/dcapal-web/internal/routes"
)

// named returns a screen that answers with its own name.
func named(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, name)
	}
}

func testScreens() routes.Screens {
	return routes.Screens{
		NotFound:           func(c echo.Context) error { return c.String(http.StatusNotFound, "not-found") },
		Home:               named("home"),
		Allocate:           named("allocate"),
		About:              named("about"),
		Dashboard:          named("dashboard"),
		Docs:               named("docs"),
		Import:             named("import"),
		Login:              named("login"),
		SignUp:             named("signup"),
		ResetPassword:      named("reset-password"),
		Profile:            named("profile"),
		InvestmentSettings: named("investment-settings"),
		Demo:               func(id string) echo.HandlerFunc { return named("demo:" + id) },
		Error: func(c echo.Context, err error) error {
			return c.String(http.StatusInternalServerError, "error: "+err.Error())
		},
	}
}

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBuild_Order(t *testing.T) {
	entries := routes.Build(testScreens(), routes.DemoPortfolios)

	assert.Equal(t, []string{
		"*", "/", "/allocate", "/about", "/dashboard", "/docs", "/import",
		"/login", "/signup", "/reset-password", "/profile", "/investment-settings",
		"/demo/60-40", "/demo/all-seasons", "/demo/mr-rip", "/demo/hodlx",
	}, routes.Paths(entries))

	assert.Nil(t, entries[0].Fallback, "the catch-all has no fallback")
	for _, e := range entries[1:] {
		assert.NotNil(t, e.Fallback, "%s has a fallback", e.Path)
	}
}

func TestBuild_DemoIDsAreNotDeduplicated(t *testing.T) {
	entries := routes.Build(testScreens(), []string{"x", "x"})
	paths := routes.Paths(entries)

	assert.Equal(t, []string{"/demo/x", "/demo/x"}, paths[len(paths)-2:])
}

func TestMount_EachDemoReachableOnce(t *testing.T) {
	e := echo.New()
	routes.Mount(e, routes.Build(testScreens(), routes.DemoPortfolios))

	for _, id := range routes.DemoPortfolios {
		rec := serve(e, "/demo/"+id)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "demo:"+id, rec.Body.String())

		count := 0
		for _, r := range e.Routes() {
			if r.Method == http.MethodGet && r.Path == "/demo/"+id {
				count++
			}
		}
		assert.Equal(t, 1, count, "demo %s registered once", id)
	}
}

func TestMount_CatchAllNeverShadowsDeclaredRoutes(t *testing.T) {
	e := echo.New()
	entries := routes.Build(testScreens(), routes.DemoPortfolios)
	require.Equal(t, routes.CatchAll, entries[0].Path, "catch-all is declared first")
	routes.Mount(e, entries)

	for _, entry := range entries[1:] {
		rec := serve(e, entry.Path)
		assert.Equal(t, http.StatusOK, rec.Code, entry.Path)
		assert.NotEqual(t, "not-found", rec.Body.String(), entry.Path)
	}

	for _, target := range []string{"/nope", "/demo/unknown", "/profile/extra", "/demo"} {
		rec := serve(e, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, "not-found", rec.Body.String(), target)
	}
}

func TestMount_ErrorFallback(t *testing.T) {
	screens := testScreens()
	screens.About = func(c echo.Context) error { return errors.New("boom") }
	screens.Docs = func(c echo.Context) error { return echo.ErrForbidden }

	e := echo.New()
	routes.Mount(e, routes.Build(screens, nil))

	rec := serve(e, "/about")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error: boom", rec.Body.String())

	rec = serve(e, "/docs")
	assert.Equal(t, http.StatusForbidden, rec.Code, "client errors reach the HTTP error handler")
}

func TestDemoTitle(t *testing.T) {
	assert.Equal(t, "60/40", routes.DemoTitle("60-40"))
	assert.Equal(t, "All Seasons", routes.DemoTitle("all-seasons"))
	assert.Equal(t, "Mr. RIP", routes.DemoTitle("mr-rip"))
	assert.Equal(t, "HODLX", routes.DemoTitle("hodlx"))
	assert.Equal(t, "Golden Butterfly", routes.DemoTitle("golden-butterfly"))
}
