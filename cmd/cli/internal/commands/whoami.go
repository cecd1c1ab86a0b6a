package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cycks/loftier-cli/internal/guard"
	"github.com/cycks/loftier-cli/internal/session"
)

// WhoamiCmd shows the current session.
type WhoamiCmd struct {
	TokenInfo bool `name:"token-info" help:"Show unverified token metadata (expiry, subject)"`
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	snap := rt.store.Snapshot()
	if !snap.Authenticated {
		message, ok := rt.store.Notices().Take(session.NoticeAuthMessage)
		if !ok {
			message = "Not logged in."
		}
		fmt.Println(message)
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	u := snap.User
	if u == nil {
		// A token exists but the profile has not been confirmed yet.
		fmt.Fprintf(tw, "State:\t%s\n", snap.State)
		return tw.Flush()
	}

	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	fmt.Fprintf(tw, "State:\t%s\n", snap.State)
	if u.AuthProvider != "" {
		fmt.Fprintf(tw, "Provider:\t%s\n", u.AuthProvider)
	}
	fmt.Fprintf(tw, "Dashboard:\t%s\n", guard.LandingPath(u.Role))

	if w.TokenInfo {
		info, err := session.PeekToken(rt.store.Token())
		if err != nil {
			fmt.Fprintf(tw, "Token:\topaque (not a JWT)\n")
		} else {
			fmt.Fprintf(tw, "Token subject:\t%s\n", info.Subject)
			if !info.ExpiresAt.IsZero() {
				fmt.Fprintf(tw, "Token expires:\t%s\n", info.ExpiresAt.Local())
			}
			if info.Expired() {
				fmt.Fprintf(tw, "Token status:\texpired (server verdict pending)\n")
			}
		}
	}

	return tw.Flush()
}
