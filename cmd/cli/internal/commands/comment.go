package commands

import (
	"context"
	"fmt"
)

// CommentCmd adds a comment to a post.
type CommentCmd struct {
	PostID  int    `arg:"" help:"Post ID"`
	Content string `arg:"" help:"Comment text"`
}

func (c *CommentCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	if err := rt.requireArea("/dashboard"); err != nil {
		return err
	}

	id, err := rt.api.Comments.Add(ctx, c.PostID, c.Content)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	fmt.Printf("Comment added (id %d)\n", id)
	return nil
}
