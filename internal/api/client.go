// Package api wraps the Loftier Movies REST contract in typed clients.
// Every call goes through the request gateway, so token injection and
// the global session policy apply uniformly.
package api

import "github.com/cycks/loftier-cli/internal/gateway"

// Client groups the per-area API clients over one gateway.
type Client struct {
	Auth       *AuthClient
	Posts      *PostsClient
	Categories *CategoriesClient
	Comments   *CommentsClient
	Contact    *ContactClient
	Users      *UsersClient
}

func New(gw *gateway.Client) *Client {
	return &Client{
		Auth:       &AuthClient{gw: gw},
		Posts:      &PostsClient{gw: gw},
		Categories: &CategoriesClient{gw: gw},
		Comments:   &CommentsClient{gw: gw},
		Contact:    &ContactClient{gw: gw},
		Users:      &UsersClient{gw: gw},
	}
}
