package controllers

import (
	"context"
	"log"
	"net/http"

	"leadpilot/leadgen-backend/internal/dto"

	"github.com/gin-gonic/gin"
)

// ScoringJobProcessor processes a scoring job in the background
type ScoringJobProcessor interface {
	ProcessJob(ctx context.Context, job *dto.ScoringJob)
}

// CampaignProcessor processes an outreach campaign in the background
type CampaignProcessor interface {
	ProcessCampaign(ctx context.Context, campaign *dto.OutreachCampaign)
}

// WebhookController handles Supabase database webhook requests
type WebhookController struct {
	webhookSecret string
	scoring       ScoringJobProcessor
	outreach      CampaignProcessor
}

// NewWebhookController creates a new WebhookController instance. Either
// processor may be nil when its capability is not configured; the matching
// endpoint then responds 503.
func NewWebhookController(webhookSecret string, scoring ScoringJobProcessor, outreach CampaignProcessor) *WebhookController {
	return &WebhookController{
		webhookSecret: webhookSecret,
		scoring:       scoring,
		outreach:      outreach,
	}
}

// authorized validates the Authorization header against the webhook secret
func (c *WebhookController) authorized(ctx *gin.Context) bool {
	if ctx.GetHeader("Authorization") == "Bearer "+c.webhookSecret {
		return true
	}
	log.Printf("[WebhookController] Unauthorized request: invalid Authorization header")
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Unauthorized: invalid webhook secret",
	})
	return false
}

// HandleScoringJobCreated handles POST /webhooks/scoring-job-created
// This endpoint is called by Supabase when a new scoring job is inserted
// @Summary Handle scoring job created webhook
// @Description Receives Supabase database webhook when a new scoring job is created
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token with webhook secret"
// @Param payload body dto.ScoringJob true "Scoring job payload from Supabase"
// @Success 200 {object} map[string]string "Webhook accepted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 400 {object} dto.ErrorResponse "Bad request"
// @Failure 503 {object} dto.ErrorResponse "Scoring pipeline not configured"
// @Router /webhooks/scoring-job-created [post]
func (c *WebhookController) HandleScoringJobCreated(ctx *gin.Context) {
	if !c.authorized(ctx) {
		return
	}

	if c.scoring == nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Scoring pipeline not configured",
		})
		return
	}

	var job dto.ScoringJob
	if err := ctx.ShouldBindJSON(&job); err != nil {
		log.Printf("[WebhookController] Failed to parse job payload: %v", err)
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid job payload",
		})
		return
	}
	if job.ID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "job_id is required",
		})
		return
	}

	log.Printf("[WebhookController] Scoring job received: id=%s, user_id=%s", job.ID, job.UserID)

	// Respond 200 immediately (non-blocking)
	ctx.JSON(http.StatusOK, gin.H{
		"status": "accepted",
		"job_id": job.ID,
	})

	// Process job in background
	go c.scoring.ProcessJob(context.Background(), &job)
}

// HandleCampaignCreated handles POST /webhooks/campaign-created
// This endpoint is called by Supabase when a new outreach campaign is inserted
// @Summary Handle campaign created webhook
// @Description Receives Supabase database webhook when a new outreach campaign is created
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token with webhook secret"
// @Param payload body dto.OutreachCampaign true "Campaign payload from Supabase"
// @Success 200 {object} map[string]string "Webhook accepted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 400 {object} dto.ErrorResponse "Bad request"
// @Failure 503 {object} dto.ErrorResponse "Outreach pipeline not configured"
// @Router /webhooks/campaign-created [post]
func (c *WebhookController) HandleCampaignCreated(ctx *gin.Context) {
	if !c.authorized(ctx) {
		return
	}

	if c.outreach == nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Outreach pipeline not configured",
		})
		return
	}

	var campaign dto.OutreachCampaign
	if err := ctx.ShouldBindJSON(&campaign); err != nil {
		log.Printf("[WebhookController] Failed to parse campaign payload: %v", err)
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid campaign payload",
		})
		return
	}
	if campaign.ID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "campaign_id is required",
		})
		return
	}

	log.Printf("[WebhookController] Campaign received: id=%s, name=%s, minimum_tier=%s",
		campaign.ID, campaign.Name, campaign.MinimumTier)

	ctx.JSON(http.StatusOK, gin.H{
		"status":      "accepted",
		"campaign_id": campaign.ID,
	})

	go c.outreach.ProcessCampaign(context.Background(), &campaign)
}
