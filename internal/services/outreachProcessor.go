package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"leadpilot/leadgen-backend/internal/analytics"
	"leadpilot/leadgen-backend/internal/dto"
	"leadpilot/leadgen-backend/internal/handlers"
	"leadpilot/leadgen-backend/internal/mailer"
	"leadpilot/leadgen-backend/internal/scoring"
	"leadpilot/leadgen-backend/internal/tasks"
)

// OutreachProcessor sends outreach emails to a campaign's qualified leads
// and records per-recipient outcomes. The mailer is required; the cold
// email composer, tracker and analytics are optional capabilities that are
// skipped when nil.
type OutreachProcessor struct {
	supabase  *handlers.SupabaseHandler
	outreach  *mailer.Outreach
	composer  *handlers.ColdEmailHandler
	tracker   *tasks.Tracker
	analytics *analytics.Engine
}

// NewOutreachProcessor creates a new OutreachProcessor instance
func NewOutreachProcessor(
	supabase *handlers.SupabaseHandler,
	outreach *mailer.Outreach,
	composer *handlers.ColdEmailHandler,
	tracker *tasks.Tracker,
	analyticsEngine *analytics.Engine,
) (*OutreachProcessor, error) {
	if supabase == nil {
		return nil, fmt.Errorf("supabase handler is required")
	}
	if outreach == nil {
		return nil, fmt.Errorf("outreach mailer is required")
	}

	log.Printf("[OutreachProcessor] Initialized: composer_enabled=%v, tracker_enabled=%v, analytics_enabled=%v",
		composer != nil, tracker != nil, analyticsEngine != nil)

	return &OutreachProcessor{
		supabase:  supabase,
		outreach:  outreach,
		composer:  composer,
		tracker:   tracker,
		analytics: analyticsEngine,
	}, nil
}

// minScoreForTier maps a campaign's minimum tier onto the score cutoff the
// lead must have reached. Unknown tiers default to warm.
func minScoreForTier(tier string) int {
	switch strings.ToLower(tier) {
	case "hot":
		return scoring.HotThreshold
	case "cold":
		return scoring.ColdThreshold
	default:
		return scoring.WarmThreshold
	}
}

// ProcessCampaign processes an outreach campaign in the background: selects
// the user's qualified leads, composes a personalized email per lead and
// delivers them through the rate-limited mailer.
func (p *OutreachProcessor) ProcessCampaign(ctx context.Context, campaign *dto.OutreachCampaign) {
	log.Printf("[OutreachProcessor] Starting campaign: id=%s, name=%s, minimum_tier=%s",
		campaign.ID, campaign.Name, campaign.MinimumTier)

	var task *tasks.Task
	if p.tracker != nil {
		var err error
		task, err = p.tracker.Create(tasks.TypeEmailOutreach,
			fmt.Sprintf("Sending outreach for campaign %s", campaign.Name),
			map[string]interface{}{"campaign_id": campaign.ID, "minimum_tier": campaign.MinimumTier})
		if err != nil {
			log.Printf("[OutreachProcessor] Failed to create task: %v", err)
		} else {
			_ = p.tracker.Start(task.ID)
		}
	}

	if err := p.supabase.UpdateCampaignStatus(campaign.ID, "processing", nil); err != nil {
		log.Printf("[OutreachProcessor] Failed to update campaign status: %v", err)
		p.failCampaign(campaign.ID, task, fmt.Sprintf("Failed to update status: %v", err))
		return
	}

	if p.analytics != nil {
		if err := p.analytics.RegisterCampaign(campaign.ID, campaign.Name); err != nil {
			log.Printf("[OutreachProcessor] Failed to register campaign in analytics: %v", err)
		}
	}

	// 1. Select the leads that reach the campaign's minimum tier
	minScore := minScoreForTier(campaign.MinimumTier)
	leads, err := p.supabase.GetQualifiedLeads(campaign.UserID, minScore)
	if err != nil {
		log.Printf("[OutreachProcessor] Failed to get qualified leads: %v", err)
		p.failCampaign(campaign.ID, task, fmt.Sprintf("Failed to get qualified leads: %v", err))
		return
	}

	// Outreach needs an address to deliver to
	var recipients []dto.Lead
	for _, lead := range leads {
		if lead.Email != "" {
			recipients = append(recipients, lead)
		}
	}
	log.Printf("[OutreachProcessor] Campaign %s: %d qualified leads, %d with email addresses",
		campaign.ID, len(leads), len(recipients))

	if len(recipients) == 0 {
		zero := 0
		_ = p.supabase.UpdateCampaignStatus(campaign.ID, "completed", &zero)
		if p.tracker != nil && task != nil {
			_ = p.tracker.Complete(task.ID, map[string]interface{}{"emails_sent": 0})
		}
		return
	}

	// 2. Build one outreach input per recipient. The campaign's custom
	// message wins; otherwise the composer personalizes per lead, falling
	// back to the built-in template when composition fails.
	inputs := make([]mailer.OutreachInput, len(recipients))
	for i, lead := range recipients {
		inputs[i] = mailer.OutreachInput{
			Email:         lead.Email,
			CompanyName:   lead.Company,
			ContactName:   lead.Name,
			Industry:      lead.Industry,
			CustomMessage: campaign.CustomMessage,
		}
		if campaign.CustomMessage == "" && p.composer != nil {
			if email := p.composer.Compose(ctx, lead); email.Success {
				inputs[i].CustomMessage = email.Body
			}
		}
	}

	// 3. Deliver through the rate-limited mailer
	onProgress := func(done, total int) {
		if p.tracker != nil && task != nil {
			_ = p.tracker.UpdateProgress(task.ID, done*100/total, fmt.Sprintf("Sent %d/%d emails", done, total))
		}
	}
	results, err := p.outreach.SendBulk(ctx, inputs, onProgress)
	if err != nil {
		log.Printf("[OutreachProcessor] Bulk send aborted: %v", err)
	}

	// 4. Record every outcome
	emailsSent := 0
	for i, result := range results {
		lead := recipients[i]

		record := &dto.OutreachEmailRecord{
			LeadID:     lead.ID,
			CampaignID: campaign.ID,
			ToEmail:    result.To,
			Subject:    result.Subject,
			Status:     "failed",
		}
		if result.Sent {
			now := time.Now().UTC()
			record.Status = "sent"
			record.SentAt = &now
			emailsSent++
		}
		if insertErr := p.supabase.InsertOutreachEmail(record); insertErr != nil {
			log.Printf("[OutreachProcessor] Failed to record outreach email for lead %s: %v", lead.ID, insertErr)
		}

		if result.Sent && p.analytics != nil {
			if recErr := p.analytics.RecordStatus(lead.ID, "contacted"); recErr != nil {
				log.Printf("[OutreachProcessor] Failed to record contact status for lead %s: %v", lead.ID, recErr)
			}
		}
	}

	if p.analytics != nil && emailsSent > 0 {
		if incErr := p.analytics.IncrementCampaign(campaign.ID, analytics.CounterSent, emailsSent); incErr != nil {
			log.Printf("[OutreachProcessor] Failed to increment sent counter: %v", incErr)
		}
	}

	// 5. Finish the campaign. A cancelled run is a failure; partial
	// delivery failures still complete with the sent count.
	if err != nil {
		p.failCampaign(campaign.ID, task, fmt.Sprintf("Bulk send aborted after %d emails: %v", emailsSent, err))
		return
	}

	if updateErr := p.supabase.UpdateCampaignStatus(campaign.ID, "completed", &emailsSent); updateErr != nil {
		log.Printf("[OutreachProcessor] Failed to update campaign status to completed: %v", updateErr)
	}
	if p.tracker != nil && task != nil {
		_ = p.tracker.Complete(task.ID, map[string]interface{}{
			"emails_sent":   emailsSent,
			"emails_failed": len(results) - emailsSent,
		})
	}

	log.Printf("[OutreachProcessor] Campaign completed: id=%s, emails_sent=%d/%d",
		campaign.ID, emailsSent, len(results))
}

// failCampaign marks a campaign as failed
func (p *OutreachProcessor) failCampaign(campaignID string, task *tasks.Task, errorMessage string) {
	log.Printf("[OutreachProcessor] Campaign failed: id=%s, error=%s", campaignID, errorMessage)
	if err := p.supabase.UpdateCampaignStatus(campaignID, "failed", nil); err != nil {
		log.Printf("[OutreachProcessor] Failed to update campaign status to failed: %v", err)
	}
	if p.tracker != nil && task != nil {
		_ = p.tracker.Fail(task.ID, errorMessage)
	}
}
