package commands

import (
	"context"
	"fmt"
)

// LogoutCmd closes the session locally. With --google the provider
// logout endpoint is notified first, best-effort.
type LogoutCmd struct {
	Google bool `help:"Also notify the Google provider-logout endpoint"`
}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	if l.Google {
		rt.store.LogoutGoogle(ctx)
	} else {
		rt.store.Logout("")
	}

	fmt.Println("Logged out.")
	return nil
}
