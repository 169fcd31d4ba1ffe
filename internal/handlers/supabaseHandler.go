package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"leadpilot/leadgen-backend/internal/dto"

	"github.com/supabase-community/supabase-go"
)

// SupabaseHandler handles database operations using Supabase
type SupabaseHandler struct {
	client *supabase.Client
}

// NewSupabaseHandler creates a new SupabaseHandler instance
// url is the Supabase project URL (e.g., "https://xxx.supabase.co")
// key is the Supabase anon or service role key
func NewSupabaseHandler(url, key string) (*SupabaseHandler, error) {
	if url == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if key == "" {
		return nil, fmt.Errorf("supabase key is required")
	}

	log.Printf("[SupabaseHandler] Initializing with URL: %s", url)

	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to create client: %v", err)
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	log.Printf("[SupabaseHandler] Successfully created Supabase client")

	return &SupabaseHandler{
		client: client,
	}, nil
}

// GetClient returns the underlying Supabase client for advanced operations
func (h *SupabaseHandler) GetClient() *supabase.Client {
	return h.client
}

// GetICP retrieves an ICP by its ID
func (h *SupabaseHandler) GetICP(id string) (*dto.ICP, error) {
	log.Printf("[SupabaseHandler] GetICP: id=%s", id)

	data, _, err := h.client.From("icps").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to get ICP: %v", err)
		return nil, fmt.Errorf("failed to get ICP: %w", err)
	}

	var icps []dto.ICP
	if err := json.Unmarshal(data, &icps); err != nil {
		log.Printf("[SupabaseHandler] Failed to parse ICP response: %v", err)
		return nil, fmt.Errorf("failed to parse ICP response: %w", err)
	}

	if len(icps) == 0 {
		return nil, fmt.Errorf("ICP not found with id %s", id)
	}

	log.Printf("[SupabaseHandler] Found ICP: %s", icps[0].Name)
	return &icps[0], nil
}

// GetLeadsForJob retrieves all leads attached to a scoring job
func (h *SupabaseHandler) GetLeadsForJob(jobID string) ([]dto.Lead, error) {
	log.Printf("[SupabaseHandler] GetLeadsForJob: job_id=%s", jobID)

	data, _, err := h.client.From("leads").Select("*", "exact", false).Eq("job_id", jobID).Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to get leads: %v", err)
		return nil, fmt.Errorf("failed to get leads for job %s: %w", jobID, err)
	}

	var leads []dto.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		log.Printf("[SupabaseHandler] Failed to parse leads response: %v", err)
		return nil, fmt.Errorf("failed to parse leads response: %w", err)
	}

	log.Printf("[SupabaseHandler] Found %d leads for job %s", len(leads), jobID)
	return leads, nil
}

// GetLeadByID retrieves a single lead by its ID
func (h *SupabaseHandler) GetLeadByID(id string) (*dto.Lead, error) {
	data, _, err := h.client.From("leads").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get lead %s: %w", id, err)
	}

	var leads []dto.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, fmt.Errorf("failed to parse lead response: %w", err)
	}
	if len(leads) == 0 {
		return nil, fmt.Errorf("lead not found with id %s", id)
	}

	return &leads[0], nil
}

// InsertLead inserts a new lead and returns the generated ID
func (h *SupabaseHandler) InsertLead(lead *dto.Lead) (string, error) {
	log.Printf("[SupabaseHandler] InsertLead: company=%s, source=%s", lead.Company, lead.Source)

	insertData := map[string]interface{}{
		"job_id":  lead.JobID,
		"user_id": lead.UserID,
		"company": lead.Company,
		"source":  lead.Source,
	}

	if lead.Name != "" {
		insertData["name"] = lead.Name
	}
	if lead.Email != "" {
		insertData["email"] = lead.Email
	}
	if lead.Phone != "" {
		insertData["phone"] = lead.Phone
	}
	if lead.Address != "" {
		insertData["address"] = lead.Address
	}
	if lead.CompanySize != "" {
		insertData["company_size"] = lead.CompanySize
	}
	if lead.Industry != "" {
		insertData["industry"] = lead.Industry
	}
	if lead.Title != "" {
		insertData["title"] = lead.Title
	}
	if lead.Location != "" {
		insertData["location"] = lead.Location
	}
	if lead.Website != "" {
		insertData["website"] = lead.Website
	}
	if lead.LinkedInURL != "" {
		insertData["linkedin_url"] = lead.LinkedInURL
	}

	data, _, err := h.client.From("leads").Insert(insertData, false, "", "", "").Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to insert lead: %v", err)
		return "", fmt.Errorf("failed to insert lead: %w", err)
	}

	// Parse response to get the generated ID
	var inserted []map[string]interface{}
	if err := json.Unmarshal(data, &inserted); err != nil {
		log.Printf("[SupabaseHandler] Failed to parse insert response: %v", err)
		return "", fmt.Errorf("failed to parse insert response: %w", err)
	}

	if len(inserted) == 0 {
		return "", fmt.Errorf("no lead was inserted")
	}

	leadID, ok := inserted[0]["id"].(string)
	if !ok {
		return "", fmt.Errorf("failed to get lead ID from response")
	}

	log.Printf("[SupabaseHandler] Lead inserted successfully: id=%s", leadID)
	return leadID, nil
}

// UpdateJobStatus updates the status and related fields of a scoring job
func (h *SupabaseHandler) UpdateJobStatus(jobID string, status string, leadsScored *int, errorMessage *string) error {
	log.Printf("[SupabaseHandler] UpdateJobStatus: jobID=%s, status=%s", jobID, status)

	update := map[string]interface{}{
		"status": status,
	}

	now := time.Now().UTC()

	switch status {
	case "processing":
		update["started_at"] = now.Format(time.RFC3339)
	case "completed":
		update["completed_at"] = now.Format(time.RFC3339)
		if leadsScored != nil {
			update["leads_scored"] = *leadsScored
		}
	case "failed":
		update["completed_at"] = now.Format(time.RFC3339)
		if errorMessage != nil {
			update["error_message"] = *errorMessage
		}
	}

	_, _, err := h.client.From("scoring_jobs").Update(update, "", "").Eq("id", jobID).Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to update job status: %v", err)
		return fmt.Errorf("failed to update job status: %w", err)
	}

	log.Printf("[SupabaseHandler] Job status updated successfully")
	return nil
}

// InsertLeadScore persists one scoring result
func (h *SupabaseHandler) InsertLeadScore(record *dto.LeadScoreRecord) error {
	log.Printf("[SupabaseHandler] InsertLeadScore: lead_id=%s, total=%d", record.LeadID, record.TotalScore)

	insertData := map[string]interface{}{
		"lead_id":              record.LeadID,
		"total_score":          record.TotalScore,
		"email_score":          record.EmailScore,
		"company_score":        record.CompanyScore,
		"engagement_score":     record.EngagementScore,
		"fit_score":            record.FitScore,
		"qualification_status": record.QualificationStatus,
		"scored_at":            time.Now().UTC().Format(time.RFC3339),
	}
	if record.JobID != "" {
		insertData["job_id"] = record.JobID
	}
	if len(record.Factors) > 0 {
		insertData["factors"] = record.Factors
	}
	if len(record.Recommendations) > 0 {
		insertData["recommendations"] = record.Recommendations
	}

	_, _, err := h.client.From("lead_scores").Insert(insertData, false, "", "", "").Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to insert lead score: %v", err)
		return fmt.Errorf("failed to insert lead score: %w", err)
	}

	return nil
}

// UpdateLeadQualification writes the latest score and tier back onto the
// lead row so list views can filter without joining lead_scores
func (h *SupabaseHandler) UpdateLeadQualification(leadID string, totalScore int, qualificationStatus string) error {
	update := map[string]interface{}{
		"score":                totalScore,
		"qualification_status": qualificationStatus,
	}

	_, _, err := h.client.From("leads").Update(update, "", "").Eq("id", leadID).Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to update lead qualification: %v", err)
		return fmt.Errorf("failed to update lead qualification for %s: %w", leadID, err)
	}

	return nil
}

// GetCampaign retrieves an outreach campaign by its ID
func (h *SupabaseHandler) GetCampaign(id string) (*dto.OutreachCampaign, error) {
	log.Printf("[SupabaseHandler] GetCampaign: id=%s", id)

	data, _, err := h.client.From("campaigns").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	var campaigns []dto.OutreachCampaign
	if err := json.Unmarshal(data, &campaigns); err != nil {
		return nil, fmt.Errorf("failed to parse campaign response: %w", err)
	}
	if len(campaigns) == 0 {
		return nil, fmt.Errorf("campaign not found with id %s", id)
	}

	return &campaigns[0], nil
}

// GetQualifiedLeads retrieves a user's leads whose stored score reaches
// minScore, ordered by score descending
func (h *SupabaseHandler) GetQualifiedLeads(userID string, minScore int) ([]dto.Lead, error) {
	log.Printf("[SupabaseHandler] GetQualifiedLeads: user_id=%s, min_score=%d", userID, minScore)

	data, _, err := h.client.From("leads").
		Select("*", "exact", false).
		Eq("user_id", userID).
		Gte("score", fmt.Sprintf("%d", minScore)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get qualified leads: %w", err)
	}

	var leads []dto.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, fmt.Errorf("failed to parse qualified leads response: %w", err)
	}

	log.Printf("[SupabaseHandler] Found %d qualified leads", len(leads))
	return leads, nil
}

// GetUnscoredLeads retrieves leads that have never been scored, oldest
// first, up to limit
func (h *SupabaseHandler) GetUnscoredLeads(limit int) ([]dto.Lead, error) {
	log.Printf("[SupabaseHandler] GetUnscoredLeads: limit=%d", limit)

	data, _, err := h.client.From("leads").
		Select("*", "exact", false).
		Is("score", "null").
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get unscored leads: %w", err)
	}

	var leads []dto.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, fmt.Errorf("failed to parse unscored leads response: %w", err)
	}

	log.Printf("[SupabaseHandler] Found %d unscored leads", len(leads))
	return leads, nil
}

// UpdateCampaignStatus updates a campaign's status and sent counter
func (h *SupabaseHandler) UpdateCampaignStatus(campaignID, status string, emailsSent *int) error {
	log.Printf("[SupabaseHandler] UpdateCampaignStatus: campaignID=%s, status=%s", campaignID, status)

	update := map[string]interface{}{
		"status": status,
	}
	if status == "completed" || status == "failed" {
		update["completed_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	if emailsSent != nil {
		update["emails_sent"] = *emailsSent
	}

	_, _, err := h.client.From("campaigns").Update(update, "", "").Eq("id", campaignID).Execute()
	if err != nil {
		return fmt.Errorf("failed to update campaign status: %w", err)
	}

	return nil
}

// InsertOutreachEmail records one sent (or failed) outreach email
func (h *SupabaseHandler) InsertOutreachEmail(record *dto.OutreachEmailRecord) error {
	log.Printf("[SupabaseHandler] InsertOutreachEmail: lead_id=%s, to=%s, status=%s", record.LeadID, record.ToEmail, record.Status)

	insertData := map[string]interface{}{
		"lead_id":  record.LeadID,
		"to_email": record.ToEmail,
		"subject":  record.Subject,
		"body":     record.Body,
		"status":   record.Status,
	}
	if record.CampaignID != "" {
		insertData["campaign_id"] = record.CampaignID
	}
	if record.SentAt != nil {
		insertData["sent_at"] = record.SentAt.UTC().Format(time.RFC3339)
	}

	_, _, err := h.client.From("outreach_emails").Insert(insertData, false, "", "", "").Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to insert outreach email: %v", err)
		return fmt.Errorf("failed to insert outreach email: %w", err)
	}

	return nil
}
