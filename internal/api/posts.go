package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cycks/loftier-cli/internal/gateway"
)

// PostsClient wraps the /posts endpoints.
type PostsClient struct {
	gw *gateway.Client
}

// CategoryRef is a category as embedded in post listings.
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PostSummary is one entry in a post listing. Content is truncated by
// the backend for listings.
type PostSummary struct {
	ID         int           `json:"id"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	CreatedAt  string        `json:"created_at"`
	Author     string        `json:"author"`
	Categories []CategoryRef `json:"categories"`
	Images     []string      `json:"images"`
	Rating     float64       `json:"rating"`
}

// PostPage is a paginated post listing.
type PostPage struct {
	Total       int           `json:"total"`
	Pages       int           `json:"pages"`
	CurrentPage int           `json:"current_page"`
	PerPage     int           `json:"per_page"`
	Posts       []PostSummary `json:"posts"`
}

// PostComment is one comment under a post detail.
type PostComment struct {
	ID         int     `json:"id"`
	Content    string  `json:"content"`
	Author     string  `json:"author"`
	AuthorID   int     `json:"author_id"`
	CreatedAt  string  `json:"created_at"`
	Rating     float64 `json:"rating"`
	UserRating *int    `json:"user_rating"`
	CanEdit    bool    `json:"can_edit"`
	CanDelete  bool    `json:"can_delete"`
}

// PostDetail is a full post with its comment page.
type PostDetail struct {
	ID         int           `json:"id"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	CreatedAt  string        `json:"created_at"`
	Author     string        `json:"author"`
	Categories []CategoryRef `json:"categories"`
	Images     []string      `json:"images"`
	Rating     float64       `json:"rating"`
	UserRating *int          `json:"user_rating"`
	Comments   []PostComment `json:"comments"`
}

// List returns the published posts, newest first.
func (c *PostsClient) List(ctx context.Context, page, perPage int) (*PostPage, error) {
	out := &PostPage{}
	err := c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/posts",
		Query:  pageQuery(page, perPage),
		Out:    out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one post with its first page of comments.
func (c *PostsClient) Get(ctx context.Context, id int) (*PostDetail, error) {
	out := &PostDetail{}
	err := c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/posts/%d", id),
		Out:    out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Filter searches posts by author or category name, paginated.
func (c *PostsClient) Filter(ctx context.Context, authorName, categoryName string, page, perPage int) (*PostPage, error) {
	q := pageQuery(page, perPage)
	if authorName != "" {
		q.Set("author_name", authorName)
	}
	if categoryName != "" {
		q.Set("category_name", categoryName)
	}

	out := &PostPage{}
	err := c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/posts/filter",
		Query:  q,
		Out:    out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RateResult reports the caller's rating and the new average.
type RateResult struct {
	Msg        string  `json:"msg"`
	UserRating int     `json:"user_rating"`
	Rating     float64 `json:"rating"`
}

// Rate sets the caller's 1-5 rating on a post.
func (c *PostsClient) Rate(ctx context.Context, postID, value int) (*RateResult, error) {
	out := &RateResult{}
	err := c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/posts/rate/%d", postID),
		Body:   map[string]int{"value": value},
		Out:    out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func pageQuery(page, perPage int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	return q
}
