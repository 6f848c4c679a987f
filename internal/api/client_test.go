package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dcapal/dcapal-web/internal/api"
	"github.com/dcapal/dcapal-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/user/profile", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"name":"A","birthDate":"2000-01-01","email":"a@x.com"}`)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL+"/", time.Second)
	p, err := client.GetProfile(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, domain.Profile{Name: "A", BirthDate: "2000-01-01", Email: "a@x.com"}, *p)
}

func TestClient_UpdateProfile(t *testing.T) {
	var got domain.Profile
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, time.Second)
	err := client.UpdateProfile(context.Background(), "tok", domain.Profile{Name: "B", BirthDate: "1999-12-31", Email: "b@x.com"})
	require.NoError(t, err)

	assert.Equal(t, "B", got.Name)
	assert.Equal(t, "1999-12-31", got.BirthDate)
	assert.Equal(t, "b@x.com", got.Email)
}

func TestClient_Errors(t *testing.T) {
	t.Run("unauthorized maps to domain error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := api.NewClient(srv.URL, time.Second).GetProfile(context.Background(), "bad")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Contains(t, err.Error(), "Request failed with status code 401")
	})

	t.Run("message from body is kept", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"invalid birth date"}`)
		}))
		defer srv.Close()

		err := api.NewClient(srv.URL, time.Second).UpdateProfile(context.Background(), "tok", domain.Profile{})
		var apiErr *api.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "invalid birth date", apiErr.Error())
	})

	t.Run("imported portfolio not found", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		_, err := api.NewClient(srv.URL, time.Second).GetImportedPortfolio(context.Background(), "abc")
		assert.True(t, api.IsNotFound(err))
	})

	t.Run("cancelled context aborts the request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := api.NewClient(srv.URL, 0).GetProfile(ctx, "tok")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_GetImportedPortfolio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/import/portfolio/abc123", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"name":"My PF","assets":[]}`)
	}))
	defer srv.Close()

	pf, err := api.NewClient(srv.URL, time.Second).GetImportedPortfolio(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", pf.ID)
	assert.JSONEq(t, `{"name":"My PF","assets":[]}`, string(pf.Document))
}
