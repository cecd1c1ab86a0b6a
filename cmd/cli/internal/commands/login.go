package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/cycks/loftier-cli/internal/gateway"
	"github.com/cycks/loftier-cli/internal/guard"
)

// LoginCmd authenticates with the platform and persists the session.
type LoginCmd struct {
	Email     string `help:"Account email" env:"LOFTIER_EMAIL"`
	Password  string `help:"Account password" env:"LOFTIER_PASSWORD"`
	WithToken string `name:"with-token" help:"Apply a token issued by the OAuth callback instead of credentials"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}
	rt.restore(ctx)

	if l.WithToken != "" {
		u, err := rt.store.FetchUser(ctx, l.WithToken)
		if err != nil {
			return fmt.Errorf("token was not accepted: %w", err)
		}
		fmt.Printf("Logged in as %s (%s)\n", u.Username, u.Role)
		fmt.Printf("Your dashboard: %s\n", guard.LandingPath(u.Role))
		return nil
	}

	if l.Email == "" || l.Password == "" {
		return errors.New("login requires --email and --password (or --with-token)")
	}

	res, err := rt.api.Auth.Login(ctx, l.Email, l.Password)
	if err != nil {
		if errors.Is(err, gateway.ErrAuthentication) {
			return errors.New("invalid credentials")
		}
		var se *gateway.StatusError
		if errors.As(err, &se) && se.Msg != "" {
			// 403s carry the backend's explanation: unconfirmed email,
			// pending approval, or a blocked account.
			return errors.New(se.Msg)
		}
		return err
	}

	if err := rt.store.Login(res.AccessToken, res.User); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", res.User.Username, res.User.Role)
	fmt.Printf("Your dashboard: %s\n", guard.LandingPath(res.User.Role))
	return nil
}
