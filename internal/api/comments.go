package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cycks/loftier-cli/internal/gateway"
)

// CommentsClient wraps the /comments endpoints.
type CommentsClient struct {
	gw *gateway.Client
}

// Add posts a comment under a post and returns the new comment ID.
func (c *CommentsClient) Add(ctx context.Context, postID int, content string) (int, error) {
	var out struct {
		Msg       string `json:"msg"`
		CommentID int    `json:"comment_id"`
	}
	err := c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/comments/add_comment/%d", postID),
		Body:   map[string]string{"content": content},
		Out:    &out,
	})
	if err != nil {
		return 0, err
	}
	return out.CommentID, nil
}

// Edit replaces a comment's content. Owners and admins only.
func (c *CommentsClient) Edit(ctx context.Context, commentID int, content string) error {
	return c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/comments/edit_comment/%d", commentID),
		Body:   map[string]string{"content": content},
	})
}

// Delete removes a comment. Owners and admins only.
func (c *CommentsClient) Delete(ctx context.Context, commentID int) error {
	return c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/comments/delete_comment/%d", commentID),
	})
}

// Rate sets the caller's 1-5 rating on a comment.
func (c *CommentsClient) Rate(ctx context.Context, commentID, value int) error {
	return c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/comments/rate/%d", commentID),
		Body:   map[string]int{"value": value},
	})
}
