package session

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/domain"
)

const (
	keyID      = "sid"
	keySession = "auth"
	keyUpdated = "auth_at"
	keyChunks  = "auth_chunks"
	keyToken   = "at"

	// tokenChunkSize bounds the share of the access token kept in one
	// cookie. Provider JWTs carry user metadata and outgrow the 4 KB a
	// browser accepts per cookie.
	tokenChunkSize = 1536
)

var errTokenChunks = errors.New("access token cookies are incomplete")

// CookieStore returns the gorilla cookie store the session cookies are
// written with. Values are signed with secret and encrypted with a key
// derived from it.
func CookieStore(secret string) *sessions.CookieStore {
	block := sha256.Sum256([]byte("dcapal-session-block:" + secret))
	return sessions.NewCookieStore([]byte(secret), block[:])
}

// Record is what the cookies hold for one browser.
type Record struct {
	ID        string
	Session   *domain.Session
	UpdatedAt time.Time
}

// Store persists the browser session in the cookies registered by the
// echo-contrib session middleware. The cookie called name holds the
// browser ID and the session metadata, the access token is spread over
// name-at0, name-at1, ... and screen-owned values live in name-screen.
type Store struct {
	name string
}

// NewStore returns a Store whose cookies are prefixed with name.
func NewStore(name string) *Store {
	return &Store{name: name}
}

func (st *Store) get(c echo.Context, name string) (*sessions.Session, error) {
	sess, err := session.Get(name, c)
	if sess == nil {
		return nil, fmt.Errorf("read cookie session %s: %w", name, err)
	}
	// A cookie that fails to decode yields a fresh session.
	return sess, nil
}

func (st *Store) tokenCookie(i int) string {
	return fmt.Sprintf("%s-at%d", st.name, i)
}

func (st *Store) screenCookie() string {
	return st.name + "-screen"
}

// Load returns the cookie record of the browser. A browser without an ID
// gets a new one, which is saved with the response.
func (st *Store) Load(c echo.Context) (Record, error) {
	sess, err := st.get(c, st.name)
	if err != nil {
		return Record{}, err
	}

	id, _ := sess.Values[keyID].(string)
	if id == "" {
		id = uuid.NewString()
		sess.Values[keyID] = id
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return Record{}, fmt.Errorf("save session id: %w", err)
		}
	}
	rec := Record{ID: id}
	if at, ok := sess.Values[keyUpdated].(int64); ok {
		rec.UpdatedAt = time.Unix(0, at)
	}

	raw, _ := sess.Values[keySession].(string)
	if raw == "" {
		return rec, nil
	}
	var s domain.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return rec, fmt.Errorf("decode stored session: %w", err)
	}

	n, _ := sess.Values[keyChunks].(int)
	var token strings.Builder
	for i := 0; i < n; i++ {
		part, err := st.get(c, st.tokenCookie(i))
		if err != nil {
			return rec, err
		}
		chunk, _ := part.Values[keyToken].(string)
		if chunk == "" {
			return rec, errTokenChunks
		}
		token.WriteString(chunk)
	}
	s.AccessToken = token.String()
	s.ID = id
	rec.Session = &s
	return rec, nil
}

// Save stores s, keeping the browser session ID stable.
func (st *Store) Save(c echo.Context, s *domain.Session) error {
	if s == nil {
		return st.Clear(c)
	}
	sess, err := st.get(c, st.name)
	if err != nil {
		return err
	}

	if id, _ := sess.Values[keyID].(string); id == "" {
		sess.Values[keyID] = s.ID
	}
	meta := *s
	meta.AccessToken = ""
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	chunks := splitToken(s.AccessToken)
	for i, chunk := range chunks {
		part, err := st.get(c, st.tokenCookie(i))
		if err != nil {
			return err
		}
		part.Values[keyToken] = chunk
		if err := part.Save(c.Request(), c.Response()); err != nil {
			return fmt.Errorf("save access token: %w", err)
		}
	}
	old, _ := sess.Values[keyChunks].(int)
	if err := st.expireTokens(c, len(chunks), old); err != nil {
		return err
	}

	sess.Values[keySession] = string(data)
	sess.Values[keyChunks] = len(chunks)
	sess.Values[keyUpdated] = time.Now().UnixNano()
	return sess.Save(c.Request(), c.Response())
}

// Clear drops the stored tokens. The browser session ID survives.
func (st *Store) Clear(c echo.Context) error {
	sess, err := st.get(c, st.name)
	if err != nil {
		return err
	}
	if _, ok := sess.Values[keySession]; !ok {
		return nil
	}
	old, _ := sess.Values[keyChunks].(int)
	if err := st.expireTokens(c, 0, old); err != nil {
		return err
	}
	delete(sess.Values, keySession)
	delete(sess.Values, keyChunks)
	sess.Values[keyUpdated] = time.Now().UnixNano()
	return sess.Save(c.Request(), c.Response())
}

// expireTokens deletes the token cookies from index from up to to.
func (st *Store) expireTokens(c echo.Context, from, to int) error {
	for i := from; i < to; i++ {
		part, err := st.get(c, st.tokenCookie(i))
		if err != nil {
			return err
		}
		part.Options.MaxAge = -1
		if err := part.Save(c.Request(), c.Response()); err != nil {
			return fmt.Errorf("expire access token cookie: %w", err)
		}
	}
	return nil
}

func splitToken(token string) []string {
	var chunks []string
	for len(token) > tokenChunkSize {
		chunks = append(chunks, token[:tokenChunkSize])
		token = token[tokenChunkSize:]
	}
	if token != "" {
		chunks = append(chunks, token)
	}
	return chunks
}

// Value reads a screen-owned string value.
func (st *Store) Value(c echo.Context, key string) (string, bool) {
	sess, err := st.get(c, st.screenCookie())
	if err != nil {
		return "", false
	}
	v, ok := sess.Values[key].(string)
	return v, ok
}

// SetValue stores a screen-owned value. An empty value deletes the key.
func (st *Store) SetValue(c echo.Context, key, value string) error {
	sess, err := st.get(c, st.screenCookie())
	if err != nil {
		return err
	}
	if value == "" {
		delete(sess.Values, key)
	} else {
		sess.Values[key] = value
	}
	return sess.Save(c.Request(), c.Response())
}
