package api

import (
	"context"
	"net/http"

	"github.com/cycks/loftier-cli/internal/gateway"
)

// ContactClient wraps the /contact endpoints.
type ContactClient struct {
	gw *gateway.Client
}

// SendMessage delivers a contact-form message. No authentication needed.
func (c *ContactClient) SendMessage(ctx context.Context, email, subject, message string) error {
	return c.gw.Execute(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/contact/send_message",
		Body: map[string]string{
			"email":   email,
			"subject": subject,
			"message": message,
		},
	})
}
