package identity

import (
	"github.com/dcapal/dcapal-web/internal/domain"
	"github.com/dcapal/dcapal-web/internal/pubsub"
)

// EventType names a change of authentication state.
type EventType string

const (
	SignedIn         EventType = "SIGNED_IN"
	TokenRefreshed   EventType = "TOKEN_REFRESHED"
	SignedOut        EventType = "SIGNED_OUT"
	PasswordRecovery EventType = "PASSWORD_RECOVERY"
	UserUpdated      EventType = "USER_UPDATED"
)

// AuthEvent is published whenever the session of a browser changes.
// Session is nil for SignedOut.
type AuthEvent struct {
	Event     EventType       `json:"event"`
	SessionID string          `json:"session_id"`
	Session   *domain.Session `json:"session,omitempty"`
}

// StateChanged is the topic auth events travel on.
var StateChanged = pubsub.NewEvent[AuthEvent]("auth.state_changed")
