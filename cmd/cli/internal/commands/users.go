package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cycks/loftier-cli/internal/guard"
)

// UsersCmd manages platform accounts. Admin area: the route guard is
// consulted before any call, and a 403 from the backend is handled
// here without touching the session.
type UsersCmd struct {
	List    UsersListCmd    `cmd:"" help:"List users"`
	Approve UsersApproveCmd `cmd:"" help:"Approve a pending account"`
	Block   UsersBlockCmd   `cmd:"" help:"Block an account"`
	Unblock UsersUnblockCmd `cmd:"" help:"Unblock an account"`
}

type UsersListCmd struct {
	Role    string `help:"Filter by role (commentator, author, admin)"`
	Page    int    `help:"Page number" default:"1"`
	PerPage int    `name:"per-page" help:"Users per page" default:"10"`
}

func (u *UsersListCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	if err := rt.requireArea(guard.AdminDashboardPath); err != nil {
		return err
	}

	page, err := rt.api.Users.List(ctx, u.Role, u.Page, u.PerPage)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tAPPROVED")
	for _, usr := range page.Users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", usr.ID, usr.Username, usr.Email, usr.Role, usr.IsApproved)
	}
	tw.Flush()
	fmt.Printf("\nPage %d of %d (%d users)\n", page.CurrentPage, page.Pages, page.Total)
	return nil
}

type UsersApproveCmd struct {
	Role string `arg:"" help:"Requested role of the account (author, admin, superadmin)"`
	ID   int    `arg:"" help:"User ID"`
}

func (u *UsersApproveCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	if err := rt.requireArea(guard.AdminDashboardPath); err != nil {
		return err
	}

	if err := rt.api.Users.Approve(ctx, u.Role, u.ID); err != nil {
		return fmt.Errorf("failed to approve user: %w", err)
	}

	fmt.Printf("User %d approved as %s.\n", u.ID, u.Role)
	return nil
}

type UsersBlockCmd struct {
	ID int `arg:"" help:"User ID"`
}

func (u *UsersBlockCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	if err := rt.requireArea(guard.AdminDashboardPath); err != nil {
		return err
	}

	if err := rt.api.Users.Block(ctx, u.ID); err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}

	fmt.Printf("User %d blocked.\n", u.ID)
	return nil
}

type UsersUnblockCmd struct {
	ID int `arg:"" help:"User ID"`
}

func (u *UsersUnblockCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	if err := rt.requireArea(guard.AdminDashboardPath); err != nil {
		return err
	}

	if err := rt.api.Users.Unblock(ctx, u.ID); err != nil {
		return fmt.Errorf("failed to unblock user: %w", err)
	}

	fmt.Printf("User %d unblocked.\n", u.ID)
	return nil
}
