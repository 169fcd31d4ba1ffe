// Package mailer delivers outreach emails over SMTP. Delivery is modeled as
// a Sender capability: when SMTP credentials are configured a live sender is
// wired in, otherwise the disabled variant reports ErrNotConfigured instead
// of silently pretending the email went out.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// ErrNotConfigured is returned by the disabled sender when no SMTP
// credentials were provided at startup.
var ErrNotConfigured = errors.New("email delivery is not configured")

// Sender delivers a rendered email message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers messages through an SMTP server using go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
}

// NewSMTPSender creates a live SMTP sender. Host, port, username, password
// and fromEmail are all required.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) (*SMTPSender, error) {
	if host == "" || port <= 0 {
		return nil, fmt.Errorf("SMTP host and port are required")
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("SMTP credentials are required")
	}
	if fromEmail == "" {
		return nil, fmt.Errorf("sender email address is required")
	}

	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

// Send delivers one message.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("recipient address is required")
	}

	m := gomail.NewMsg()
	if err := m.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	log.Printf("[Mailer] Email sent: to=%s, subject=%s", msg.To, msg.Subject)
	return nil
}

// DisabledSender is wired in when SMTP is not configured. Every send fails
// with ErrNotConfigured so callers surface the missing capability instead of
// fabricating a delivery.
type DisabledSender struct{}

// NewDisabledSender creates the disabled sender variant.
func NewDisabledSender() *DisabledSender {
	return &DisabledSender{}
}

// Send always fails with ErrNotConfigured.
func (s *DisabledSender) Send(ctx context.Context, msg Message) error {
	return fmt.Errorf("cannot send to %s: %w", msg.To, ErrNotConfigured)
}

// SendResult records the outcome of one delivery in a bulk run.
type SendResult struct {
	To      string `json:"to_email"`
	Subject string `json:"subject"`
	Sent    bool   `json:"sent"`
	Error   string `json:"error,omitempty"`
}

// Outreach paces bulk deliveries through a Sender with a rate limiter
// between messages.
type Outreach struct {
	sender  Sender
	limiter *RateLimiter
}

// NewOutreach creates a bulk outreach mailer. A nil limiter gets the
// defaults.
func NewOutreach(sender Sender, limiter *RateLimiter) (*Outreach, error) {
	if sender == nil {
		return nil, fmt.Errorf("sender is required")
	}
	if limiter == nil {
		limiter = NewRateLimiter(DefaultMaxConcurrent, DefaultMinDelay)
	}
	return &Outreach{sender: sender, limiter: limiter}, nil
}

// SendOne renders and delivers a single outreach email.
func (o *Outreach) SendOne(ctx context.Context, in OutreachInput) error {
	release, err := o.limiter.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	return o.sender.Send(ctx, BuildOutreachEmail(in))
}

// SendBulk delivers outreach emails to every input in order, pacing through
// the rate limiter. onProgress, when non-nil, is invoked after each delivery
// attempt with the number sent so far and the total. Individual failures are
// recorded per result and do not stop the run; cancellation does.
func (o *Outreach) SendBulk(ctx context.Context, inputs []OutreachInput, onProgress func(done, total int)) ([]SendResult, error) {
	results := make([]SendResult, 0, len(inputs))

	for i, in := range inputs {
		msg := BuildOutreachEmail(in)
		result := SendResult{To: msg.To, Subject: msg.Subject}

		release, err := o.limiter.Acquire(ctx)
		if err != nil {
			return results, err
		}
		err = o.sender.Send(ctx, msg)
		release()

		if err != nil {
			result.Error = err.Error()
			log.Printf("[Mailer] Bulk send failed: to=%s, error=%v", msg.To, err)
		} else {
			result.Sent = true
		}
		results = append(results, result)

		if onProgress != nil {
			onProgress(i+1, len(inputs))
		}
	}

	return results, nil
}
