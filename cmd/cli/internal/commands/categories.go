package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cycks/loftier-cli/internal/gateway"
)

// CategoriesCmd browses and manages movie categories.
type CategoriesCmd struct {
	List   CategoriesListCmd   `cmd:"" help:"List categories"`
	Create CategoriesCreateCmd `cmd:"" help:"Create a category (admin)"`
}

type CategoriesListCmd struct{}

func (c *CategoriesListCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	categories, err := rt.api.Categories.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if len(categories) == 0 {
		fmt.Println("No categories yet.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, cat := range categories {
		fmt.Fprintf(tw, "%d\t%s\n", cat.ID, cat.Name)
	}
	return tw.Flush()
}

type CategoriesCreateCmd struct {
	Name string `arg:"" help:"Category name"`
}

func (c *CategoriesCreateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	cat, err := rt.api.Categories.Create(ctx, c.Name)
	if err != nil {
		// A permission failure stays local: the session is still valid,
		// the account just isn't an admin.
		if errors.Is(err, gateway.ErrAuthorization) {
			return errors.New("you do not have permission to create categories")
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	fmt.Printf("Created category %q (id %d)\n", cat.Name, cat.ID)
	return nil
}
