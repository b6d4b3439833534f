package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer delivers email through the SendGrid API.
type SendGridMailer struct {
	client      *sendgrid.Client
	senderEmail string
	senderName  string
}

// NewSendGridMailer constructs a mailer sending from the given address.
func NewSendGridMailer(apiKey, senderEmail string) *SendGridMailer {
	return &SendGridMailer{
		client:      sendgrid.NewSendClient(apiKey),
		senderEmail: senderEmail,
		senderName:  "TubeAutomator",
	}
}

// Send delivers the message, treating any non-2xx response as a failure.
func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	from := sgmail.NewEmail(m.senderName, m.senderEmail)
	to := sgmail.NewEmail(msg.ToName, msg.ToEmail)

	email := sgmail.NewSingleEmail(from, msg.Subject, to, msg.PlainBody, msg.HTMLBody)

	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send returned %d", resp.StatusCode)
	}

	return nil
}
