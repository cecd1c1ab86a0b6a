package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cycks/loftier-cli/internal/gateway"
)

// CategoriesClient wraps the /categories endpoints.
type CategoriesClient struct {
	gw *gateway.Client
}

// Category is a movie category, optionally with its post count.
type Category struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	PostCount int    `json:"post_count,omitempty"`
}

// List returns all categories, name-sorted.
func (c *CategoriesClient) List(ctx context.Context) ([]Category, error) {
	var out []Category
	err := c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/categories/list_categories",
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one category.
func (c *CategoriesClient) Get(ctx context.Context, id int) (*Category, error) {
	out := &Category{}
	err := c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/categories/category_by_id/%d", id),
		Out:    out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a category. Admin or superadmin only; others get a 403
// which the calling view surfaces without touching the session.
func (c *CategoriesClient) Create(ctx context.Context, name string) (*Category, error) {
	out := &Category{}
	err := c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/categories/create_category",
		Body:   map[string]string{"name": name},
		Out:    out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
