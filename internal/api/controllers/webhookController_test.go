package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leadpilot/leadgen-backend/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScoringProcessor struct {
	jobs chan *dto.ScoringJob
}

func (f *fakeScoringProcessor) ProcessJob(ctx context.Context, job *dto.ScoringJob) {
	f.jobs <- job
}

type fakeCampaignProcessor struct {
	campaigns chan *dto.OutreachCampaign
}

func (f *fakeCampaignProcessor) ProcessCampaign(ctx context.Context, campaign *dto.OutreachCampaign) {
	f.campaigns <- campaign
}

func webhookTestRouter(scoring ScoringJobProcessor, outreach CampaignProcessor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewWebhookController("test-secret", scoring, outreach)
	router.POST("/webhooks/scoring-job-created", controller.HandleScoringJobCreated)
	router.POST("/webhooks/campaign-created", controller.HandleCampaignCreated)
	return router
}

func TestHandleScoringJobCreated_Accepted(t *testing.T) {
	processor := &fakeScoringProcessor{jobs: make(chan *dto.ScoringJob, 1)}
	router := webhookTestRouter(processor, nil)

	body := `{"job_id": "job-1", "user_id": "user-1", "icp_id": "icp-1"}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/scoring-job-created", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-secret")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"job-1"`)

	select {
	case job := <-processor.jobs:
		assert.Equal(t, "job-1", job.ID)
		assert.Equal(t, "user-1", job.UserID)
		require.NotNil(t, job.ICPID)
		assert.Equal(t, "icp-1", *job.ICPID)
	case <-time.After(time.Second):
		t.Fatal("job was not dispatched to the processor")
	}
}

func TestHandleScoringJobCreated_MissingJobID(t *testing.T) {
	processor := &fakeScoringProcessor{jobs: make(chan *dto.ScoringJob, 1)}
	router := webhookTestRouter(processor, nil)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/scoring-job-created", strings.NewReader(`{"user_id": "user-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-secret")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, processor.jobs)
}

func TestHandleCampaignCreated_Accepted(t *testing.T) {
	processor := &fakeCampaignProcessor{campaigns: make(chan *dto.OutreachCampaign, 1)}
	router := webhookTestRouter(nil, processor)

	body := `{"campaign_id": "camp-1", "user_id": "user-1", "name": "Q3 push", "minimum_tier": "hot"}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/campaign-created", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-secret")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	select {
	case campaign := <-processor.campaigns:
		assert.Equal(t, "camp-1", campaign.ID)
		assert.Equal(t, "hot", campaign.MinimumTier)
	case <-time.After(time.Second):
		t.Fatal("campaign was not dispatched to the processor")
	}
}

func TestHandleCampaignCreated_Unauthorized(t *testing.T) {
	processor := &fakeCampaignProcessor{campaigns: make(chan *dto.OutreachCampaign, 1)}
	router := webhookTestRouter(nil, processor)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/campaign-created", strings.NewReader(`{"campaign_id": "camp-1"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, processor.campaigns)
}
