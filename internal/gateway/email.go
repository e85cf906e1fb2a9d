package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"gopkg.in/gomail.v2"
)

// ResendEmail sends through Resend. Messages are scheduled delay into the
// future; Resend owns the actual send time.
type ResendEmail struct {
	client *resend.Client
	from   string
	delay  time.Duration
	now    func() time.Time
}

func NewResendEmail(apiKey, from string, delay time.Duration) *ResendEmail {
	return &ResendEmail{
		client: resend.NewClient(apiKey),
		from:   from,
		delay:  delay,
		now:    time.Now,
	}
}

func (e *ResendEmail) request(to, subject, message string) *resend.SendEmailRequest {
	params := &resend.SendEmailRequest{
		From:    e.from,
		To:      []string{to},
		Subject: subject,
		Text:    message,
		Html:    htmlBody(message),
	}
	if e.delay > 0 {
		params.ScheduledAt = e.now().Add(e.delay).UTC().Format(time.RFC3339)
	}
	return params
}

func (e *ResendEmail) SendEmail(ctx context.Context, to, subject, message string) (string, error) {
	sent, err := e.client.Emails.SendWithContext(ctx, e.request(to, subject, message))
	if err != nil {
		return "", fmt.Errorf("failed to send email via Resend: %w", err)
	}
	if sent == nil || sent.Id == "" {
		return "", errors.New("resend returned no message id")
	}
	return sent.Id, nil
}

// SMTPEmail sends through a plain SMTP relay.
type SMTPEmail struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPEmail(host string, port int, username, password, from string) *SMTPEmail {
	return &SMTPEmail{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (e *SMTPEmail) message(id, to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", e.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-ID", "<"+id+"@flight-notify>")
	msg.SetBody("text/plain", body)
	msg.AddAlternative("text/html", htmlBody(body))
	return msg
}

// SendEmail ignores ctx: gomail has no cancellable dial.
func (e *SMTPEmail) SendEmail(ctx context.Context, to, subject, message string) (string, error) {
	id := uuid.New().String()
	if err := e.dialer.DialAndSend(e.message(id, to, subject, message)); err != nil {
		return "", fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return id, nil
}
