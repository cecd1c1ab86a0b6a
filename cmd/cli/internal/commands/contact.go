package commands

import (
	"context"
	"fmt"
)

// ContactCmd sends a contact-form message to the site operators.
type ContactCmd struct {
	Email   string `help:"Reply-to email" required:""`
	Subject string `help:"Message subject" required:""`
	Message string `arg:"" help:"Message body"`
}

func (c *ContactCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals)
	if err != nil {
		return err
	}

	if err := rt.api.Contact.SendMessage(ctx, c.Email, c.Subject, c.Message); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	fmt.Println("Message sent.")
	return nil
}
