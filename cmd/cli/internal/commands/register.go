package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/cycks/loftier-cli/internal/api"
	"github.com/cycks/loftier-cli/internal/gateway"
)

// RegisterCmd creates a platform account.
type RegisterCmd struct {
	Username string `help:"Username" required:""`
	Email    string `help:"Account email" required:""`
	Password string `help:"Account password" required:""`
	Author   bool   `help:"Request an author account (needs admin approval)"`
}

func (r *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}

	role := "commentator"
	if r.Author {
		role = "author"
	}

	err = rt.api.Auth.Register(ctx, api.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Role:     role,
	})
	if err != nil {
		var se *gateway.StatusError
		if errors.As(err, &se) && se.Msg != "" {
			return errors.New(se.Msg)
		}
		return err
	}

	fmt.Println("Account created. Check your email to confirm it before logging in.")
	if r.Author {
		fmt.Println("Author accounts also need admin approval before they can publish.")
	}
	return nil
}
