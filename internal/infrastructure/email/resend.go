// Package email sends transactional email through Resend.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// ResendMailer implements ports.WelcomeMailer on top of the Resend API.
type ResendMailer struct {
	client    *resend.Client
	from      string
	clientURL string
	log       zerolog.Logger
}

func NewResendMailer(apiKey, fromName, fromAddress, clientURL string, log zerolog.Logger) *ResendMailer {
	return &ResendMailer{
		client:    resend.NewClient(apiKey),
		from:      fmt.Sprintf("%s <%s>", fromName, fromAddress),
		clientURL: clientURL,
		log:       log,
	}
}

// SendWelcome dispatches the post-signup welcome email.
func (m *ResendMailer) SendWelcome(ctx context.Context, to, name string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Welcome to Chatify!",
		Html:    welcomeHTML(name, m.clientURL),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}

	m.log.Info().Str("email_id", sent.Id).Msg("welcome email sent")
	return nil
}

func welcomeHTML(name, clientURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h1>Welcome to Chatify, %s!</h1>
    <p>Your account is ready. Sign in and start chatting with your friends in real time.</p>
    <p><a href="%s" style="color: #3b82f6;">Open Chatify</a></p>
  </body>
</html>`, name, clientURL)
}
