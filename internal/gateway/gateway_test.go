package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token() string { return s.token }

func TestClient_Execute(t *testing.T) {
	t.Run("decodes a success body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/posts", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"total": 3}`))
		}))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL})

		var out struct {
			Total int `json:"total"`
		}
		err := c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/posts", Out: &out})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Total)
	})

	t.Run("encodes query and JSON body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusCreated)
		}))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL})

		err := c.Execute(context.Background(), Request{
			Method: http.MethodPost,
			Path:   "/posts",
			Query:  url.Values{"page": []string{"2"}},
			Body:   map[string]int{"value": 5},
		})
		require.NoError(t, err)
	})

	t.Run("stamps a request ID", func(t *testing.T) {
		var got string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get(requestIDHeader)
		}))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL})

		require.NoError(t, c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/posts"}))
		assert.NotEmpty(t, got)
	})

	t.Run("classifies failures with the backend message", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"msg": "Your account has not yet been approved"}`))
		}))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL})

		err := c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/users/all-users"})
		require.Error(t, err)
		require.ErrorIs(t, err, ErrAuthorization)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusForbidden, se.Code)
		assert.Equal(t, "Your account has not yet been approved", se.Msg)
		assert.NotEmpty(t, se.RequestID)
	})

	t.Run("falls back to the raw body for non-JSON failures", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream unavailable\n"))
		}))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL})

		err := c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/posts"})
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadGateway, se.Code)
		assert.Equal(t, "upstream unavailable", se.Msg)
	})

	t.Run("honours the context deadline", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := c.Execute(ctx, Request{Method: http.MethodGet, Path: "/posts"})
		require.Error(t, err)
	})
}

func TestClient_Authorization(t *testing.T) {
	capture := func(out *string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			*out = r.Header.Get("Authorization")
		}
	}

	t.Run("reads the token source fresh per request", func(t *testing.T) {
		var got string
		ts := httptest.NewServer(capture(&got))
		defer ts.Close()

		tokens := &staticTokens{token: "first"}
		c := New(Config{BaseURL: ts.URL, Tokens: tokens})

		require.NoError(t, c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/auth/user/me"}))
		assert.Equal(t, "Bearer first", got)

		tokens.token = "second"
		require.NoError(t, c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/auth/user/me"}))
		assert.Equal(t, "Bearer second", got)
	})

	t.Run("falls back to the default header", func(t *testing.T) {
		var got string
		ts := httptest.NewServer(capture(&got))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL, Tokens: &staticTokens{}})
		c.SetAuthorization("default-token")

		require.NoError(t, c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/auth/user/me"}))
		assert.Equal(t, "Bearer default-token", got)
	})

	t.Run("explicit per-request header wins", func(t *testing.T) {
		var got string
		ts := httptest.NewServer(capture(&got))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL, Tokens: &staticTokens{token: "stored"}})
		c.SetAuthorization("default-token")

		require.NoError(t, c.Execute(context.Background(), Request{
			Method:  http.MethodPost,
			Path:    "/auth/google_logout",
			Headers: map[string]string{"Authorization": "Bearer explicit"},
		}))
		assert.Equal(t, "Bearer explicit", got)
	})

	t.Run("no header after ClearAuthorization", func(t *testing.T) {
		var got string
		ts := httptest.NewServer(capture(&got))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL, Tokens: &staticTokens{}})
		c.SetAuthorization("default-token")
		c.ClearAuthorization()

		require.NoError(t, c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/posts"}))
		assert.Empty(t, got)
	})
}
