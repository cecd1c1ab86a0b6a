package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cycks/loftier-cli/internal/api"
	"github.com/cycks/loftier-cli/internal/gateway"
)

// PostsCmd browses the public post listings.
type PostsCmd struct {
	List   PostsListCmd   `cmd:"" help:"List published posts"`
	Get    PostsGetCmd    `cmd:"" help:"Show one post with comments"`
	Filter PostsFilterCmd `cmd:"" help:"Filter posts by author or category"`
	Rate   PostsRateCmd   `cmd:"" help:"Rate a post 1-5"`
}

// PostsListCmd lists published posts, newest first.
type PostsListCmd struct {
	Page    int  `help:"Page number" default:"1"`
	PerPage int  `name:"per-page" help:"Posts per page" default:"10"`
	Retries uint `help:"Retries for transient failures" default:"3"`
}

func (l *PostsListCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	// Public idempotent read: transient-failure retries are owned here
	// by the caller, never by the session core.
	page, err := gateway.Retry(ctx, l.Retries, func() (*api.PostPage, error) {
		return rt.api.Posts.List(ctx, l.Page, l.PerPage)
	})
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	printPostPage(page)
	return nil
}

// PostsGetCmd shows one post.
type PostsGetCmd struct {
	ID int `arg:"" help:"Post ID"`
}

func (g *PostsGetCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	post, err := rt.api.Posts.Get(ctx, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}

	fmt.Printf("%s\n", post.Title)
	fmt.Printf("by %s on %s", post.Author, post.CreatedAt)
	if len(post.Categories) > 0 {
		names := make([]string, 0, len(post.Categories))
		for _, c := range post.Categories {
			names = append(names, c.Name)
		}
		fmt.Printf("  [%s]", strings.Join(names, ", "))
	}
	fmt.Printf("  rating %.1f\n\n", post.Rating)
	fmt.Println(post.Content)

	if len(post.Comments) > 0 {
		fmt.Printf("\nComments (%d):\n", len(post.Comments))
		for _, c := range post.Comments {
			fmt.Printf("  #%d %s: %s\n", c.ID, c.Author, c.Content)
		}
	}
	return nil
}

// PostsFilterCmd filters posts by author or category.
type PostsFilterCmd struct {
	Author   string `help:"Author username"`
	Category string `help:"Category name"`
	Page     int    `help:"Page number" default:"1"`
	PerPage  int    `name:"per-page" help:"Posts per page" default:"10"`
}

func (f *PostsFilterCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	page, err := rt.api.Posts.Filter(ctx, f.Author, f.Category, f.Page, f.PerPage)
	if err != nil {
		return fmt.Errorf("failed to filter posts: %w", err)
	}

	printPostPage(page)
	return nil
}

// PostsRateCmd rates a post.
type PostsRateCmd struct {
	ID    int `arg:"" help:"Post ID"`
	Value int `arg:"" help:"Rating 1-5"`
}

func (r *PostsRateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	if err := rt.requireArea("/dashboard"); err != nil {
		return err
	}

	res, err := rt.api.Posts.Rate(ctx, r.ID, r.Value)
	if err != nil {
		return fmt.Errorf("failed to rate post: %w", err)
	}

	fmt.Printf("%s. Average is now %.1f.\n", res.Msg, res.Rating)
	return nil
}

func printPostPage(page *api.PostPage) {
	if len(page.Posts) == 0 {
		fmt.Println("No posts found.")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tRATING\tCREATED")
	for _, p := range page.Posts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\n", p.ID, p.Title, p.Author, p.Rating, p.CreatedAt)
	}
	tw.Flush()
	fmt.Printf("\nPage %d of %d (%d posts)\n", page.CurrentPage, page.Pages, page.Total)
}
