package commands

import (
	"context"
	"fmt"

	"github.com/cycks/loftier-cli/internal/guard"
)

// DashboardCmd enters a dashboard area through the route guard. With no
// area argument the role-appropriate landing area is chosen.
type DashboardCmd struct {
	Area string `arg:"" optional:"" help:"Dashboard area path (default: your role's landing area)"`
}

func (d *DashboardCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	area := d.Area
	if area == "" {
		area = guard.LandingPath(rt.store.Snapshot().Role())
	}

	res := rt.guard.Evaluate(area, guard.RequiredRole(area))
	switch res.Decision {
	case guard.Allow:
		if u := rt.store.CurrentUser(); u != nil {
			fmt.Printf("Entering %s as %s (%s)\n", area, u.Username, u.Role)
		} else {
			fmt.Printf("Entering %s\n", area)
		}
	case guard.RedirectLogin:
		fmt.Printf("%s\n", res.Message)
		fmt.Printf("Redirected to %s (wanted %s)\n", res.Target, res.From)
	case guard.RedirectHome:
		fmt.Printf("%s\n", res.Message)
		fmt.Printf("Redirected to %s\n", res.Target)
	default:
		fmt.Println("Verifying your credentials...")
	}

	return nil
}
