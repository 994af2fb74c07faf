package mailer

import (
	"context"
	"log/slog"
)

// ConsoleMailer logs mail instead of sending it. Used in development and
// whenever no SendGrid key is configured.
type ConsoleMailer struct {
	logger *slog.Logger
}

func NewConsoleMailer(logger *slog.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.logger.Info("Email (console)", "to", to, "subject", subject, "body", htmlBody)
	return nil
}
