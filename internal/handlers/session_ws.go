package handlers

import (
	"context"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/middleware"
	sessionstore "github.com/dcapal/dcapal-web/internal/session"
)

// sessionChanged is the only message sent over the session socket.
const sessionChanged = "changed"

// SessionListener is the part of the session gate the socket needs.
type SessionListener interface {
	Listen(id string) chan struct{}
	Forget(id string, ch chan struct{})
}

// SessionSocket tells an open page when the session of its browser changes
// so it can re-render.
type SessionSocket struct {
	gate         SessionListener
	writeTimeout time.Duration
}

// NewSessionSocket creates a new SessionSocket.
func NewSessionSocket(gate SessionListener) *SessionSocket {
	return &SessionSocket{gate: gate, writeTimeout: 5 * time.Second}
}

// ServeWS handles GET /ws/session.
func (h *SessionSocket) ServeWS(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	id := sessionstore.IDFrom(ctx)
	if id == "" {
		return echo.ErrBadRequest
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("Failed to upgrade WebSocket connection", "error", err)
		return nil
	}
	defer conn.CloseNow()

	changes := h.gate.Listen(id)
	defer h.gate.Forget(id, changes)

	// The page never writes; CloseRead handles control frames and cancels
	// ctx once the peer goes away.
	ctx = conn.CloseRead(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			if err := h.notify(ctx, conn); err != nil {
				logger.Debug("Session socket closed", "error", err)
				return nil
			}
		}
	}
}

func (h *SessionSocket) notify(ctx context.Context, conn *websocket.Conn) error {
	ctx, cancel := context.WithTimeout(ctx, h.writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, []byte(sessionChanged))
}
