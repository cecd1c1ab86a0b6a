package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePolicy struct {
	authenticated bool
	skipArmed     bool

	skipConsumed bool
	invalidated  []string
}

func (p *fakePolicy) Authenticated() bool { return p.authenticated }

func (p *fakePolicy) ConsumeSkipLogout() bool {
	if !p.skipArmed {
		return false
	}
	p.skipArmed = false
	p.skipConsumed = true
	return true
}

func (p *fakePolicy) Invalidate(reason string) { p.invalidated = append(p.invalidated, reason) }

func newPolicyClient(t *testing.T, status int, policy *fakePolicy) *Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"msg": "Token has expired"}`))
	}))
	t.Cleanup(ts.Close)

	c := New(Config{BaseURL: ts.URL})
	c.Use(SessionGuard(policy))
	return c
}

func TestSessionGuard(t *testing.T) {
	t.Run("session-invalid failure closes an authenticated session", func(t *testing.T) {
		policy := &fakePolicy{authenticated: true}
		c := newPolicyClient(t, http.StatusUnauthorized, policy)

		err := c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/auth/user/me"})
		require.ErrorIs(t, err, ErrAuthentication)
		assert.Equal(t, []string{"expired"}, policy.invalidated)
	})

	t.Run("session-invalid failure is inert when already anonymous", func(t *testing.T) {
		policy := &fakePolicy{authenticated: false}
		c := newPolicyClient(t, http.StatusUnauthorized, policy)

		err := c.Execute(context.Background(), Request{Method: http.MethodPost, Path: "/auth/login"})
		require.ErrorIs(t, err, ErrAuthentication)
		assert.Empty(t, policy.invalidated)
	})

	t.Run("permission failure never touches the session", func(t *testing.T) {
		policy := &fakePolicy{authenticated: true}
		c := newPolicyClient(t, http.StatusForbidden, policy)

		err := c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/users/all-users"})
		require.ErrorIs(t, err, ErrAuthorization)
		assert.Empty(t, policy.invalidated)
	})

	t.Run("armed skip flag suppresses one failure", func(t *testing.T) {
		policy := &fakePolicy{authenticated: true, skipArmed: true}
		c := newPolicyClient(t, http.StatusUnauthorized, policy)

		err := c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/auth/user/me"})
		require.Error(t, err)
		assert.True(t, policy.skipConsumed)
		assert.Empty(t, policy.invalidated)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.True(t, se.Suppressed, "suppressed failures are marked so downstream handlers stand down")

		// One-shot: the next failure applies the normal policy.
		err = c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/auth/user/me"})
		require.ErrorIs(t, err, ErrAuthentication)
		assert.Equal(t, []string{"expired"}, policy.invalidated)
	})

	t.Run("success never consumes the skip flag", func(t *testing.T) {
		policy := &fakePolicy{authenticated: true, skipArmed: true}
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer ts.Close()

		c := New(Config{BaseURL: ts.URL})
		c.Use(SessionGuard(policy))

		require.NoError(t, c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/posts"}))
		assert.True(t, policy.skipArmed, "flag stays armed until a failure consumes it")
	})
}
