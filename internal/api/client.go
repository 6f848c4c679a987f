package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dcapal/dcapal-web/internal/domain"
)

// Client talks to the DCA-Pal backend REST API.
type Client struct {
	rest *Requester
}

// NewClient creates a backend client for baseURL. A zero timeout leaves the
// deadline to the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rest: NewRequester(baseURL, nil, timeout)}
}

// Error is returned for any non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed with status code %d", e.Status)
}

// Is maps HTTP statuses onto the domain sentinel errors.
func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// GetProfile fetches the profile of the user owning accessToken.
func (c *Client) GetProfile(ctx context.Context, accessToken string) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.rest.Do(ctx, http.MethodGet, "/v1/user/profile", accessToken, nil, &p); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile replaces the profile of the user owning accessToken.
func (c *Client) UpdateProfile(ctx context.Context, accessToken string, p domain.Profile) error {
	if err := c.rest.Do(ctx, http.MethodPut, "/v1/user/profile", accessToken, p, nil); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// GetImportedPortfolio fetches a portfolio stored through the import API.
func (c *Client) GetImportedPortfolio(ctx context.Context, id string) (*domain.ImportedPortfolio, error) {
	var raw json.RawMessage
	if err := c.rest.Do(ctx, http.MethodGet, "/import/portfolio/"+url.PathEscape(id), "", nil, &raw); err != nil {
		return nil, fmt.Errorf("get imported portfolio %s: %w", id, err)
	}
	return &domain.ImportedPortfolio{ID: id, Document: raw}, nil
}

// ErrorFromResponse builds an *Error from a failed response. The caller
// still owns closing the body.
func ErrorFromResponse(resp *http.Response) *Error {
	return &Error{Status: resp.StatusCode, Message: readMessage(resp.Body)}
}

// readMessage extracts a human readable message from an error body.
// The backend answers {"message": "..."}; the identity service uses
// "msg", "error_description" or "error". Anything else is dropped so the
// status fallback is used.
func readMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var body struct {
		Message     string `json:"message"`
		Msg         string `json:"msg"`
		Description string `json:"error_description"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	for _, m := range []string{body.Message, body.Msg, body.Description, body.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
