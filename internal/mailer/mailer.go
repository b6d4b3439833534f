package mailer

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured indicates the email provider credential is absent.
	ErrNotConfigured = errors.New("email provider not configured")
)

// Message is a single outbound email.
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	PlainBody string
	HTMLBody  string
}

// Mailer sends transactional email. Delivery failures are logged by callers
// and never fail the originating request.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
