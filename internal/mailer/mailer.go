package mailer

import "context"

// EmailService sends transactional mail. Implementations must be safe for
// concurrent use.
type EmailService interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
