package handlers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcapal/dcapal-web/internal/handlers"
)

type fakeListener struct {
	changes   chan struct{}
	listening chan string
	forgotten chan string
}

func (f *fakeListener) Listen(id string) chan struct{} {
	f.listening <- id
	return f.changes
}

func (f *fakeListener) Forget(id string, _ chan struct{}) {
	f.forgotten <- id
}

func TestSessionSocket_NotifiesOnChange(t *testing.T) {
	cl := newClient(t)
	gate := &fakeListener{
		changes:   make(chan struct{}, 1),
		listening: make(chan string, 1),
		forgotten: make(chan string, 1),
	}
	cl.e.GET("/ws/session", handlers.NewSessionSocket(gate).ServeWS)

	srv := httptest.NewServer(cl.e)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/session", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	select {
	case id := <-gate.listening:
		assert.Equal(t, testSessionID, id)
	case <-ctx.Done():
		t.Fatal("socket never subscribed to the gate")
	}

	gate.changes <- struct{}{}

	typ, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageText, typ)
	assert.Equal(t, "changed", string(data))

	_ = conn.Close(websocket.StatusNormalClosure, "")
	select {
	case id := <-gate.forgotten:
		assert.Equal(t, testSessionID, id)
	case <-ctx.Done():
		t.Fatal("socket never released its gate subscription")
	}
}
