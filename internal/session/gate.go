package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dcapal/dcapal-web/internal/domain"
	"github.com/dcapal/dcapal-web/internal/identity"
	"github.com/dcapal/dcapal-web/internal/pubsub"
)

// entryTTL bounds how long the gate remembers a browser session it has not
// heard about.
const entryTTL = 24 * time.Hour

type entry struct {
	session *domain.Session
	seen    time.Time
}

// Gate holds the latest session of every browser session that changed
// while the server was running. Identity events replace the held reference;
// a sign-out leaves a nil entry so a stale cookie is not trusted again.
type Gate struct {
	sub pubsub.Subscriber
	now func() time.Time

	mu        sync.RWMutex
	sessions  map[string]entry
	listeners map[string]map[chan struct{}]struct{}
}

// NewGate creates a gate fed by auth events from sub.
func NewGate(sub pubsub.Subscriber) *Gate {
	return &Gate{
		sub:       sub,
		now:       time.Now,
		sessions:  make(map[string]entry),
		listeners: make(map[string]map[chan struct{}]struct{}),
	}
}

// Watch subscribes the gate to auth events until ctx is done.
func (g *Gate) Watch(ctx context.Context) error {
	if err := g.sub.Subscribe(ctx, identity.StateChanged.Name(), g.handle); err != nil {
		return fmt.Errorf("subscribe to %s: %w", identity.StateChanged.Name(), err)
	}
	return nil
}

func (g *Gate) handle(ctx context.Context, msg pubsub.Message) error {
	ev, err := identity.StateChanged.Decode(msg)
	if err != nil {
		// Malformed events are dropped rather than redelivered.
		slog.WarnContext(ctx, "Dropping auth event", "error", err)
		return nil
	}
	if ev.SessionID == "" {
		return nil
	}

	s := ev.Session
	if ev.Event == identity.SignedOut {
		s = nil
	}
	g.Set(ev.SessionID, s)
	slog.DebugContext(ctx, "Session changed", "event", ev.Event, "session_id", ev.SessionID)
	return nil
}

// Set replaces the held session for id and wakes its listeners.
func (g *Gate) Set(id string, s *domain.Session) {
	now := g.now()

	g.mu.Lock()
	g.sessions[id] = entry{session: s, seen: now}
	for k, e := range g.sessions {
		if now.Sub(e.seen) > entryTTL {
			delete(g.sessions, k)
		}
	}
	for ch := range g.listeners[id] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	g.mu.Unlock()
}

// Current returns the held session for id and whether the gate has seen id.
// A seen id with a nil session is signed out.
func (g *Gate) Current(id string) (*domain.Session, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.sessions[id]
	return e.session, ok
}

// Since returns the held session for id when it changed after t.
func (g *Gate) Since(id string, t time.Time) (*domain.Session, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.sessions[id]
	if !ok || !e.seen.After(t) {
		return nil, false
	}
	return e.session, true
}

// Listen returns a channel that receives a value whenever the session of id
// changes. Release it with Forget.
func (g *Gate) Listen(id string) chan struct{} {
	ch := make(chan struct{}, 1)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listeners[id] == nil {
		g.listeners[id] = make(map[chan struct{}]struct{})
	}
	g.listeners[id][ch] = struct{}{}
	return ch
}

// Forget releases a channel obtained from Listen.
func (g *Gate) Forget(id string, ch chan struct{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.listeners[id], ch)
	if len(g.listeners[id]) == 0 {
		delete(g.listeners, id)
	}
}
