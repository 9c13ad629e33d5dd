// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders
// HTML bodies from templates embedded in the binary.
package email

import (
	"bytes"
	"fmt"

	"github.com/deppfellow/happy/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// defaultFrom is Resend's shared sender, usable without a verified domain.
const defaultFrom = "onboarding@resend.dev"

// sender is the part of the Resend emails service the client uses.
type sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client wraps the Resend client and a logger.
type Client struct {
	emails sender
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client from the integration settings.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	from := cfg.Integration.FromEmail
	if from == "" {
		from = defaultFrom
	}

	return &Client{
		emails: resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		from:   from,
		logger: logger,
	}
}

// Render executes templateName with data.
func Render(templateName Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName.fileName(), data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail sends an email with HTML rendered from templateName.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", "Happy", c.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := c.emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", sent.Id).
		Msg("email sent")

	return nil
}
