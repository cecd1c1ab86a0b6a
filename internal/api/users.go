package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cycks/loftier-cli/internal/gateway"
	"github.com/cycks/loftier-cli/internal/session"
)

// UsersClient wraps the admin-only /users endpoints. Non-admin callers
// get 403s which are theirs to handle; a valid session is never
// destroyed over a permission failure.
type UsersClient struct {
	gw *gateway.Client
}

// UserPage is a paginated user listing.
type UserPage struct {
	Total       int            `json:"total"`
	Pages       int            `json:"pages"`
	CurrentPage int            `json:"current_page"`
	Users       []session.User `json:"users"`
}

// List returns platform users, filtered by role when role is non-empty.
func (c *UsersClient) List(ctx context.Context, role string, page, perPage int) (*UserPage, error) {
	q := pageQuery(page, perPage)
	if role != "" {
		q.Set("role", role)
	}

	out := &UserPage{}
	err := c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/users/all-users",
		Query:  q,
		Out:    out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Approve clears a pending account for use. The role must match the
// account's requested tier.
func (c *UsersClient) Approve(ctx context.Context, role string, userID int) error {
	return c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/users/approve/%s/%d", role, userID),
	})
}

// Block disables an account.
func (c *UsersClient) Block(ctx context.Context, userID int) error {
	return c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/users/block/%d", userID),
	})
}

// Unblock re-enables an account.
func (c *UsersClient) Unblock(ctx context.Context, userID int) error {
	return c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/users/unblock/%d", userID),
	})
}
