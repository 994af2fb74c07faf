package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends mail through the SendGrid v3 API.
type SendGridMailer struct {
	client     *sendgrid.Client
	senderName string
	senderAddr string
	logger     *slog.Logger
}

func NewSendGridMailer(apiKey, senderName, senderAddr string, logger *slog.Logger) *SendGridMailer {
	return &SendGridMailer{
		client:     sendgrid.NewSendClient(apiKey),
		senderName: senderName,
		senderAddr: senderAddr,
		logger:     logger,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	from := mail.NewEmail(m.senderName, m.senderAddr)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status %d: %s", resp.StatusCode, resp.Body)
	}

	m.logger.Debug("Email sent", "to", to, "subject", subject, "status", resp.StatusCode)

	return nil
}
