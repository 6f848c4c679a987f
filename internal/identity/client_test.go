package identity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/dcapal/dcapal-web/internal/domain"
	"github.com/dcapal/dcapal-web/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher keeps every published auth event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []AuthEvent
}

func (p *recordingPublisher) Publish(_ context.Context, msg pubsub.Message) error {
	ev, err := StateChanged.Decode(msg)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) last(t *testing.T) AuthEvent {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.events)
	return p.events[len(p.events)-1]
}

const tokenJSON = `{"access_token":"acc","refresh_token":"ref","expires_at":1900000000,"user":{"id":"u1","email":"a@x.com"}}`

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *recordingPublisher) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	pub := &recordingPublisher{}
	return NewClient(srv.URL, "anon", time.Second, pub), pub
}

func TestClient_SignIn(t *testing.T) {
	t.Run("success announces SIGNED_IN", func(t *testing.T) {
		client, pub := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/token", r.URL.Path)
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "a@x.com", body["email"])
			assert.Equal(t, "secret1", body["password"])
			_, _ = io.WriteString(w, tokenJSON)
		})

		s, err := client.SignIn(context.Background(), "sid-1", domain.Credentials{Email: "a@x.com", Password: "secret1"})
		require.NoError(t, err)

		assert.Equal(t, "sid-1", s.ID)
		assert.Equal(t, "acc", s.AccessToken)
		assert.Equal(t, "ref", s.RefreshToken)
		assert.Equal(t, "u1", s.UserID)
		assert.Equal(t, time.Unix(1900000000, 0), s.ExpiresAt)

		ev := pub.last(t)
		assert.Equal(t, SignedIn, ev.Event)
		assert.Equal(t, "sid-1", ev.SessionID)
		require.NotNil(t, ev.Session)
		assert.Equal(t, "acc", ev.Session.AccessToken)
	})

	t.Run("bad credentials", func(t *testing.T) {
		client, pub := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)
		})

		_, err := client.SignIn(context.Background(), "sid-1", domain.Credentials{Email: "a@x.com", Password: "nope"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Empty(t, pub.events)
	})
}

func TestClient_SignUp(t *testing.T) {
	t.Run("confirmation pending yields no session", func(t *testing.T) {
		client, pub := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/signup", r.URL.Path)
			_, _ = io.WriteString(w, `{"id":"u1","email":"a@x.com"}`)
		})

		s, err := client.SignUp(context.Background(), "sid-1", domain.Credentials{Email: "a@x.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Nil(t, s)
		assert.Empty(t, pub.events)
	})

	t.Run("existing user", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"code":422,"msg":"User already registered"}`)
		})

		_, err := client.SignUp(context.Background(), "sid-1", domain.Credentials{Email: "a@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})
}

func TestClient_SignOut(t *testing.T) {
	client, pub := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.SignOut(context.Background(), &domain.Session{ID: "sid-1", AccessToken: "acc", UserID: "u1"})
	require.NoError(t, err)

	ev := pub.last(t)
	assert.Equal(t, SignedOut, ev.Event)
	assert.Equal(t, "sid-1", ev.SessionID)
	assert.Nil(t, ev.Session)
}

func TestClient_Refresh(t *testing.T) {
	client, pub := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "old-ref", body["refresh_token"])
		_, _ = io.WriteString(w, tokenJSON)
	})

	s, err := client.Refresh(context.Background(), &domain.Session{ID: "sid-1", RefreshToken: "old-ref"})
	require.NoError(t, err)
	assert.Equal(t, "sid-1", s.ID)
	assert.Equal(t, "acc", s.AccessToken)
	assert.Equal(t, TokenRefreshed, pub.last(t).Event)

	_, err = client.Refresh(context.Background(), &domain.Session{ID: "sid-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClient_PasswordRecovery(t *testing.T) {
	client, pub := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/recover":
			assert.Equal(t, "http://app.test/reset-password", r.URL.Query().Get("redirect_to"))
			w.WriteHeader(http.StatusOK)
		case "/auth/v1/verify":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "recovery", body["type"])
			if body["token_hash"] != "good" {
				w.WriteHeader(http.StatusForbidden)
				_, _ = io.WriteString(w, `{"msg":"Token has expired or is invalid"}`)
				return
			}
			_, _ = io.WriteString(w, tokenJSON)
		case "/auth/v1/user":
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, `{"id":"u1"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	require.NoError(t, client.SendPasswordReset(ctx, "a@x.com", "http://app.test/reset-password"))

	_, err := client.VerifyRecovery(ctx, "sid-1", "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)

	s, err := client.VerifyRecovery(ctx, "sid-1", "good")
	require.NoError(t, err)
	assert.Equal(t, PasswordRecovery, pub.last(t).Event)

	require.NoError(t, client.UpdatePassword(ctx, s, "new-secret"))
	assert.Equal(t, UserUpdated, pub.last(t).Event)
}

func TestClient_AuthorizeURL(t *testing.T) {
	client := NewClient("http://identity.test/", "anon", time.Second, nil)
	verifier := NewVerifier()

	raw, err := client.AuthorizeURL("github", "http://app.test/auth/callback", verifier)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "github", q.Get("provider"))
	assert.Equal(t, "http://app.test/auth/callback", q.Get("redirect_to"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("code_challenge"))
	assert.NotEqual(t, verifier, q.Get("code_challenge"))

	_, err = client.AuthorizeURL("myspace", "http://app.test/auth/callback", verifier)
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestClient_ExchangeCode(t *testing.T) {
	client, pub := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pkce", r.URL.Query().Get("grant_type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "code-1", body["auth_code"])
		assert.Equal(t, "verifier-1", body["code_verifier"])
		_, _ = io.WriteString(w, tokenJSON)
	})

	s, err := client.ExchangeCode(context.Background(), "sid-1", "code-1", "verifier-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, SignedIn, pub.last(t).Event)
}
