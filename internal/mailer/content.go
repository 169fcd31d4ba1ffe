package mailer

import (
	"fmt"
	"strings"
)

// TemplateID selects one of the built-in outreach templates.
type TemplateID string

const (
	TemplateColdOutreach     TemplateID = "cold_outreach"
	TemplateFollowUp         TemplateID = "follow_up"
	TemplateValueProposition TemplateID = "value_proposition"
)

// OutreachInput carries the lead fields that personalize an outreach email.
// Only Email and CompanyName are required; missing fields degrade to neutral
// wording instead of leaving template placeholders behind.
type OutreachInput struct {
	Email         string
	CompanyName   string
	ContactName   string
	Industry      string
	CustomMessage string
	SenderName    string
}

// Message is a fully rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// BuildOutreachEmail renders the default personalized outreach email for a
// lead. A non-empty CustomMessage replaces the generated body entirely and
// switches to the shorter "quick question" subject line.
func BuildOutreachEmail(in OutreachInput) Message {
	company := in.CompanyName
	if company == "" {
		company = "your company"
	}

	if in.CustomMessage != "" {
		return Message{
			To:      in.Email,
			Subject: fmt.Sprintf("Quick question about %s's lead generation", company),
			Body:    in.CustomMessage,
		}
	}

	greeting := fmt.Sprintf("Hi %s team,", company)
	if in.ContactName != "" {
		greeting = fmt.Sprintf("Hi %s,", in.ContactName)
	}

	industry := in.Industry
	if industry == "" {
		industry = "business"
	}

	sender := in.SenderName
	if sender == "" {
		sender = "[Your Name]"
	}

	body := fmt.Sprintf(`%s

I hope this email finds you well. I noticed %s and was impressed by your work in the %s space.

I'm reaching out because I've been helping companies like yours increase their qualified leads by 40-60%% using AI-powered lead generation strategies.

Here's what I've been able to achieve for similar companies:
• 3x increase in qualified leads within 90 days
• 50%% reduction in cost per lead
• Automated lead qualification and nurturing
• 24/7 lead generation without manual work

Would you be interested in a quick 15-minute call to discuss how this could work for %s? I can share some specific strategies that have worked well in your industry.

If this isn't the right time, no worries at all. I'd be happy to send you some free resources on lead generation best practices.

Best regards,
%s
AI Lead Generation Specialist

P.S. I'm not selling anything in this first conversation - just sharing insights and seeing if there's a fit.

---
If you'd prefer not to receive these emails, simply reply with "unsubscribe" and I'll remove you from future communications.`,
		greeting, company, industry, company, sender)

	return Message{
		To:      in.Email,
		Subject: fmt.Sprintf("Helping %s generate more qualified leads", company),
		Body:    body,
	}
}

// RenderTemplate renders one of the named sequence templates with the lead's
// fields substituted in. Unknown template IDs fall back to cold outreach.
func RenderTemplate(id TemplateID, in OutreachInput) Message {
	tmpl, ok := sequenceTemplates[id]
	if !ok {
		tmpl = sequenceTemplates[TemplateColdOutreach]
	}

	contact := in.ContactName
	if contact == "" {
		contact = "there"
	}
	company := in.CompanyName
	if company == "" {
		company = "your company"
	}
	industry := in.Industry
	if industry == "" {
		industry = "your industry"
	}
	sender := in.SenderName
	if sender == "" {
		sender = "[Your Name]"
	}

	replacer := strings.NewReplacer(
		"{contact_name}", contact,
		"{company_name}", company,
		"{industry}", industry,
		"{sender_name}", sender,
	)

	return Message{
		To:      in.Email,
		Subject: replacer.Replace(tmpl.subject),
		Body:    strings.TrimSpace(replacer.Replace(tmpl.body)),
	}
}

type template struct {
	subject string
	body    string
}

var sequenceTemplates = map[TemplateID]template{
	TemplateColdOutreach: {
		subject: "Quick question about lead generation",
		body: `
Hi {contact_name},

I came across {company_name} and was impressed by your work in {industry}.

I've been helping companies like yours increase qualified leads by 40-60% using AI-powered strategies.

Would you be interested in a quick 15-minute call to discuss how this could work for {company_name}?

Best regards,
{sender_name}
`,
	},
	TemplateFollowUp: {
		subject: "Following up on lead generation",
		body: `
Hi {contact_name},

I wanted to follow up on my previous email about lead generation strategies for {company_name}.

I understand you're busy, so I'll keep this brief. I've attached a quick case study showing how we helped a similar company in {industry} increase their qualified leads by 50% in just 60 days.

Would you be open to a brief call this week to discuss?

Best regards,
{sender_name}
`,
	},
	TemplateValueProposition: {
		subject: "Free lead generation audit",
		body: `
Hi {contact_name},

Quick question: How much time does your team currently spend on lead generation activities?

Most companies I work with spend 10-15 hours per week on manual lead research, outreach, and follow-up. We've automated this entire process, freeing up your team to focus on closing deals instead of finding them.

For {company_name}, this could mean:
• 40-60% more qualified leads
• 50% less time on lead generation
• Automated follow-up sequences
• Real-time lead scoring

Interested in seeing how this works?

Best regards,
{sender_name}
`,
	},
}

// SequenceStep schedules one templated email within a sequence, offset in
// days from the sequence start.
type SequenceStep struct {
	DelayDays int        `json:"delay_days"`
	Template  TemplateID `json:"template"`
	Subject   string     `json:"subject"`
}

// SequenceSteps returns the step plan for a sequence type. Unknown types
// fall back to the standard sequence.
func SequenceSteps(sequenceType string) []SequenceStep {
	if sequenceType == "aggressive" {
		return []SequenceStep{
			{DelayDays: 0, Template: TemplateColdOutreach, Subject: "Quick question about lead generation"},
			{DelayDays: 2, Template: TemplateFollowUp, Subject: "Following up on lead generation"},
			{DelayDays: 5, Template: TemplateValueProposition, Subject: "Free lead generation audit"},
			{DelayDays: 10, Template: TemplateFollowUp, Subject: "Last attempt - lead generation insights"},
		}
	}
	return []SequenceStep{
		{DelayDays: 0, Template: TemplateColdOutreach, Subject: "Quick question about lead generation"},
		{DelayDays: 3, Template: TemplateFollowUp, Subject: "Following up on lead generation"},
		{DelayDays: 7, Template: TemplateValueProposition, Subject: "Free lead generation audit"},
	}
}
