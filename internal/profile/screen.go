// Package profile implements the account profile screen: a local edit
// buffer over the profile owned by the backend.
package profile

import (
	"context"
	"fmt"

	"github.com/dcapal/dcapal-web/internal/domain"
	"github.com/dcapal/dcapal-web/internal/middleware"
	"github.com/dcapal/dcapal-web/internal/view"
)

// Editable field names, as used by the form inputs and the wire format.
const (
	FieldName      = "name"
	FieldBirthDate = "birthDate"
	FieldEmail     = "email"
)

// Fields lists the editable fields in display order.
var Fields = []string{FieldName, FieldBirthDate, FieldEmail}

// State is everything the screen keeps between requests.
type State struct {
	// Owner is the user the state was built for.
	Owner string `json:"owner"`
	// Buffer is the local copy shown in the form.
	Buffer domain.Profile `json:"buffer"`
	// Saved is the last copy read from the backend.
	Saved   domain.Profile `json:"saved"`
	Editing bool           `json:"editing"`
	Loaded  bool           `json:"loaded"`
}

// Screen is the profile screen of one browser session.
type Screen struct {
	svc   domain.ProfileService
	State State
}

// NewScreen returns a screen in read-only mode with the given state.
func NewScreen(svc domain.ProfileService, state State) *Screen {
	return &Screen{svc: svc, State: state}
}

// Load fetches the profile and overwrites the buffer with it.
func (s *Screen) Load(ctx context.Context, sess *domain.Session) error {
	if !sess.Valid() {
		return domain.ErrUnauthorized
	}
	p, err := s.svc.GetProfile(ctx, sess.AccessToken)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	s.State.Buffer = *p
	s.State.Saved = *p
	s.State.Loaded = true
	return nil
}

// Edit sets one field of the buffer. Unknown fields are ignored.
func (s *Screen) Edit(field, value string) {
	switch field {
	case FieldName:
		s.State.Buffer.Name = value
	case FieldBirthDate:
		s.State.Buffer.BirthDate = value
	case FieldEmail:
		s.State.Buffer.Email = value
	}
}

// Value returns the buffered value of field.
func (s *Screen) Value(field string) string {
	switch field {
	case FieldName:
		return s.State.Buffer.Name
	case FieldBirthDate:
		return s.State.Buffer.BirthDate
	case FieldEmail:
		return s.State.Buffer.Email
	}
	return ""
}

// StartEditing makes the form editable.
func (s *Screen) StartEditing() {
	s.State.Editing = true
}

// CancelEditing leaves edit mode and drops unsaved changes.
func (s *Screen) CancelEditing() {
	s.State.Editing = false
	s.State.Buffer = s.State.Saved
}

// Save writes the whole buffer. On success the screen leaves edit mode and
// reloads the profile; on failure it stays in edit mode and the returned
// notification carries the failure's message. Nothing is validated here.
func (s *Screen) Save(ctx context.Context, sess *domain.Session) view.Notification {
	if !sess.Valid() {
		return view.Failure("Error updating profile", domain.ErrUnauthorized.Error())
	}

	if err := s.svc.UpdateProfile(ctx, sess.AccessToken, s.State.Buffer); err != nil {
		return view.Failure("Error updating profile", message(err))
	}

	s.State.Editing = false
	s.State.Saved = s.State.Buffer
	if err := s.Load(ctx, sess); err != nil {
		middleware.FromContext(ctx).Error("Error fetching profile after update", "error", err)
	}
	return view.Success("Profile updated", "")
}

// message unwraps err down to the text the remote side reported.
func message(err error) string {
	for {
		next, ok := err.(interface{ Unwrap() error })
		if !ok || next.Unwrap() == nil {
			return err.Error()
		}
		err = next.Unwrap()
	}
}
