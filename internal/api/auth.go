package api

import (
	"context"
	"net/http"

	"github.com/cycks/loftier-cli/internal/gateway"
	"github.com/cycks/loftier-cli/internal/session"
)

// AuthClient wraps the /auth endpoints.
type AuthClient struct {
	gw *gateway.Client
}

// LoginResult is the response to a successful credential login.
type LoginResult struct {
	AccessToken string        `json:"access_token"`
	User        *session.User `json:"user"`
}

// Login exchanges credentials for a bearer token and profile. A 401
// means invalid credentials; a 403 carries the backend's explanation
// (unconfirmed email, pending approval, blocked account).
func (c *AuthClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	out := &LoginResult{}
	err := c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body: map[string]string{
			"email":    email,
			"password": password,
		},
		Out: out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterInput is the sign-up payload. Role selects the account tier
// requested (commentator or author).
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Register creates an account. The backend sends a confirmation email;
// the account stays unusable until confirmed (and, for authors, approved).
func (c *AuthClient) Register(ctx context.Context, in RegisterInput) error {
	return c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   in,
	})
}

// CurrentUser fetches the profile for the current bearer token.
func (c *AuthClient) CurrentUser(ctx context.Context) (*session.User, error) {
	u := &session.User{}
	err := c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/auth/user/me",
		Out:    u,
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GoogleLogout notifies the provider-logout endpoint. The token is
// attached explicitly rather than through header injection because this
// runs during logout, when the default header may already be cleared.
func (c *AuthClient) GoogleLogout(ctx context.Context, token string) error {
	return c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/google_logout",
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
		},
		Body: map[string]string{},
	})
}

// RequestPasswordReset asks for a reset email. The backend answers 200
// whether or not the account exists.
func (c *AuthClient) RequestPasswordReset(ctx context.Context, email string) error {
	return c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/reset-password/request",
		Body:   map[string]string{"email": email},
	})
}

// ConfirmPasswordReset sets a new password using an emailed reset token.
func (c *AuthClient) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	return c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/reset-password/confirm",
		Body: map[string]string{
			"token":    token,
			"password": password,
		},
	})
}
