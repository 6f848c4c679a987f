package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/domain"
	"github.com/dcapal/dcapal-web/internal/middleware"
	"github.com/dcapal/dcapal-web/internal/profile"
	sessionstore "github.com/dcapal/dcapal-web/internal/session"
	"github.com/dcapal/dcapal-web/internal/view"
	"github.com/dcapal/dcapal-web/web/src/templates/components"
	"github.com/dcapal/dcapal-web/web/src/templates/pages"
)

const profilePath = "/profile"

// ProfileHandler serves the profile screen and its form actions.
type ProfileHandler struct {
	svc   domain.ProfileService
	store *sessionstore.Store
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc domain.ProfileService, store *sessionstore.Store) *ProfileHandler {
	return &ProfileHandler{svc: svc, store: store}
}

// screen restores the profile screen of the signed in user.
func (h *ProfileHandler) screen(c echo.Context, s *domain.Session) *profile.Screen {
	raw, _ := h.store.Value(c, profile.StateKey)
	return profile.NewScreen(h.svc, profile.Restore(raw, s.UserID))
}

func (h *ProfileHandler) persist(c echo.Context, screen *profile.Screen) error {
	return h.store.SetValue(c, profile.StateKey, profile.Encode(screen.State))
}

// ProfileGet renders the profile screen (GET /profile). The profile is
// fetched again on every visit outside edit mode. ?edit=1 opens the form
// in edit mode.
func (h *ProfileHandler) ProfileGet(c echo.Context) error {
	s := sessionstore.FromEcho(c)
	if !s.Valid() {
		return renderPage(c, http.StatusOK, "Profile", pages.LoginPrompt(profilePath))
	}

	ctx := c.Request().Context()
	screen := h.screen(c, s)
	editRequested := c.QueryParam("edit") == "1"

	loadFailed := false
	if !screen.State.Loaded || (!screen.State.Editing && !editRequested) {
		if err := screen.Load(ctx, s); err != nil {
			middleware.FromContext(ctx).Error("Error fetching profile", "error", err)
			loadFailed = true
		}
	}
	if editRequested {
		screen.StartEditing()
	}

	if err := h.persist(c, screen); err != nil {
		return err
	}
	return renderPage(c, http.StatusOK, "Profile", pages.Profile(screen, loadFailed))
}

// EditPost switches the form to edit mode.
func (h *ProfileHandler) EditPost(c echo.Context) error {
	s := sessionstore.FromEcho(c)
	screen := h.screen(c, s)
	screen.StartEditing()
	if err := h.persist(c, screen); err != nil {
		return err
	}
	return h.respond(c, screen)
}

// FieldPost records edits of single fields in the buffer.
func (h *ProfileHandler) FieldPost(c echo.Context) error {
	s := sessionstore.FromEcho(c)
	screen := h.screen(c, s)
	if !screen.State.Editing {
		return c.NoContent(http.StatusConflict)
	}
	if err := applyFields(c, screen); err != nil {
		return err
	}
	if err := h.persist(c, screen); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SavePost writes the buffer to the backend. The outcome is reported as a
// notification; on failure the form stays in edit mode.
func (h *ProfileHandler) SavePost(c echo.Context) error {
	s := sessionstore.FromEcho(c)
	screen := h.screen(c, s)
	if !screen.State.Editing {
		return h.respond(c, screen)
	}
	if err := applyFields(c, screen); err != nil {
		return err
	}

	note := screen.Save(c.Request().Context(), s)
	if err := h.persist(c, screen); err != nil {
		return err
	}
	return h.respond(c, screen, note)
}

// CancelPost leaves edit mode and drops unsaved changes.
func (h *ProfileHandler) CancelPost(c echo.Context) error {
	s := sessionstore.FromEcho(c)
	screen := h.screen(c, s)
	screen.CancelEditing()
	if err := h.persist(c, screen); err != nil {
		return err
	}
	return h.respond(c, screen)
}

// respond swaps the card for htmx requests and renders the whole screen
// otherwise.
func (h *ProfileHandler) respond(c echo.Context, screen *profile.Screen, notes ...view.Notification) error {
	if isHTMX(c) {
		return renderFragment(c, http.StatusOK, pages.ProfileCard(screen), components.NotificationsOOB(notes...))
	}
	return renderPage(c, http.StatusOK, "Profile", pages.Profile(screen, false), notes...)
}

func applyFields(c echo.Context, screen *profile.Screen) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	for _, field := range profile.Fields {
		if values, ok := form[field]; ok && len(values) > 0 {
			screen.Edit(field, values[0])
		}
	}
	return nil
}
