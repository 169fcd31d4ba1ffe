package mailer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent   []Message
	failOn map[string]error
}

func (f *fakeSender) Send(ctx context.Context, msg Message) error {
	if err, ok := f.failOn[msg.To]; ok {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestBuildOutreachEmail(t *testing.T) {
	tests := []struct {
		name            string
		input           OutreachInput
		wantSubject     string
		wantBodyContain []string
	}{
		{
			name: "personalized with contact name",
			input: OutreachInput{
				Email:       "jane@acmecorp.com",
				CompanyName: "Acme Corp",
				ContactName: "Jane",
				Industry:    "SaaS",
			},
			wantSubject:     "Helping Acme Corp generate more qualified leads",
			wantBodyContain: []string{"Hi Jane,", "the SaaS space", "3x increase in qualified leads"},
		},
		{
			name: "falls back to team greeting and generic industry",
			input: OutreachInput{
				Email:       "info@acmecorp.com",
				CompanyName: "Acme Corp",
			},
			wantSubject:     "Helping Acme Corp generate more qualified leads",
			wantBodyContain: []string{"Hi Acme Corp team,", "the business space"},
		},
		{
			name: "custom message replaces generated body",
			input: OutreachInput{
				Email:         "jane@acmecorp.com",
				CompanyName:   "Acme Corp",
				CustomMessage: "Saw your launch on Product Hunt, congrats!",
			},
			wantSubject:     "Quick question about Acme Corp's lead generation",
			wantBodyContain: []string{"Saw your launch on Product Hunt, congrats!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := BuildOutreachEmail(tt.input)
			assert.Equal(t, tt.input.Email, msg.To)
			assert.Equal(t, tt.wantSubject, msg.Subject)
			for _, want := range tt.wantBodyContain {
				assert.Contains(t, msg.Body, want)
			}
		})
	}
}

func TestBuildOutreachEmail_CustomMessageBodyIsVerbatim(t *testing.T) {
	msg := BuildOutreachEmail(OutreachInput{
		Email:         "jane@acmecorp.com",
		CompanyName:   "Acme Corp",
		CustomMessage: "short note",
	})
	assert.Equal(t, "short note", msg.Body)
}

func TestRenderTemplate_SubstitutesPlaceholders(t *testing.T) {
	msg := RenderTemplate(TemplateFollowUp, OutreachInput{
		Email:       "jane@acmecorp.com",
		CompanyName: "Acme Corp",
		ContactName: "Jane",
		Industry:    "healthcare",
		SenderName:  "Sam",
	})

	assert.Equal(t, "Following up on lead generation", msg.Subject)
	assert.Contains(t, msg.Body, "Hi Jane,")
	assert.Contains(t, msg.Body, "strategies for Acme Corp")
	assert.Contains(t, msg.Body, "similar company in healthcare")
	assert.Contains(t, msg.Body, "Sam")
	assert.NotContains(t, msg.Body, "{contact_name}")
	assert.NotContains(t, msg.Body, "{company_name}")
	assert.NotContains(t, msg.Body, "{industry}")
}

func TestRenderTemplate_UnknownFallsBackToColdOutreach(t *testing.T) {
	msg := RenderTemplate(TemplateID("does_not_exist"), OutreachInput{
		Email:       "info@acmecorp.com",
		CompanyName: "Acme Corp",
	})
	assert.Equal(t, "Quick question about lead generation", msg.Subject)
	assert.Contains(t, msg.Body, "Hi there,")
}

func TestSequenceSteps(t *testing.T) {
	standard := SequenceSteps("standard")
	require.Len(t, standard, 3)
	assert.Equal(t, 0, standard[0].DelayDays)
	assert.Equal(t, TemplateValueProposition, standard[2].Template)

	aggressive := SequenceSteps("aggressive")
	require.Len(t, aggressive, 4)
	assert.Equal(t, 10, aggressive[3].DelayDays)

	assert.Equal(t, standard, SequenceSteps("unknown"))
}

func TestDisabledSender(t *testing.T) {
	sender := NewDisabledSender()
	err := sender.Send(context.Background(), Message{To: "jane@acmecorp.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewSMTPSender_Validation(t *testing.T) {
	tests := []struct {
		name                                            string
		host                                            string
		port                                            int
		username, password, fromEmail                   string
	}{
		{name: "missing host", port: 587, username: "u", password: "p", fromEmail: "f@x.com"},
		{name: "missing port", host: "smtp.example.com", username: "u", password: "p", fromEmail: "f@x.com"},
		{name: "missing credentials", host: "smtp.example.com", port: 587, fromEmail: "f@x.com"},
		{name: "missing from address", host: "smtp.example.com", port: 587, username: "u", password: "p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewSMTPSender(tt.host, tt.port, tt.username, tt.password, tt.fromEmail, "")
			assert.Nil(t, sender)
			assert.Error(t, err)
		})
	}
}

func TestOutreach_SendBulk(t *testing.T) {
	sender := &fakeSender{failOn: map[string]error{
		"bad@acmecorp.com": errors.New("mailbox full"),
	}}
	outreach, err := NewOutreach(sender, NewRateLimiter(1, 0))
	require.NoError(t, err)

	inputs := []OutreachInput{
		{Email: "jane@acmecorp.com", CompanyName: "Acme Corp"},
		{Email: "bad@acmecorp.com", CompanyName: "Acme Corp"},
		{Email: "sam@initech.com", CompanyName: "Initech"},
	}

	var progress []string
	results, err := outreach.SendBulk(context.Background(), inputs, func(done, total int) {
		progress = append(progress, fmt.Sprintf("%d/%d", done, total))
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Sent)
	assert.False(t, results[1].Sent)
	assert.Contains(t, results[1].Error, "mailbox full")
	assert.True(t, results[2].Sent)

	assert.Equal(t, []string{"1/3", "2/3", "3/3"}, progress)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "jane@acmecorp.com", sender.sent[0].To)
	assert.Equal(t, "sam@initech.com", sender.sent[1].To)
}

func TestOutreach_SendBulk_Cancelled(t *testing.T) {
	limiter := NewRateLimiter(1, 0)
	release, err := limiter.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	outreach, err := NewOutreach(&fakeSender{}, limiter)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	results, err := outreach.SendBulk(ctx, []OutreachInput{
		{Email: "jane@acmecorp.com", CompanyName: "Acme Corp"},
		{Email: "sam@initech.com", CompanyName: "Initech"},
	}, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, results)
}

func TestNewOutreach_RequiresSender(t *testing.T) {
	outreach, err := NewOutreach(nil, nil)
	assert.Nil(t, outreach)
	assert.Error(t, err)
}

func TestRateLimiter_TryAcquire(t *testing.T) {
	limiter := NewRateLimiter(1, 0)

	release, ok := limiter.TryAcquire()
	require.True(t, ok)
	assert.Equal(t, 1, limiter.CurrentUsage())

	_, ok = limiter.TryAcquire()
	assert.False(t, ok)

	release()
	assert.Equal(t, 0, limiter.CurrentUsage())
}

func TestRateLimiter_AcquireCancelled(t *testing.T) {
	limiter := NewRateLimiter(1, 0)

	release, err := limiter.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = limiter.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	limiter := NewRateLimiter(0, -1)
	assert.Equal(t, DefaultMaxConcurrent, limiter.MaxConcurrent())
	assert.Equal(t, DefaultMinDelay, limiter.minDelay)
}
