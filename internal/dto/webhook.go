package dto

import "time"

// ScoringJob represents a scoring job record from the scoring_jobs table.
// The webhook endpoint receives one of these when the frontend inserts a
// new job; the processor scores every lead attached to it.
type ScoringJob struct {
	ID     string  `json:"job_id"`
	UserID string  `json:"user_id"`
	Status string  `json:"status,omitempty"` // pending, processing, completed, failed
	ICPID  *string `json:"icp_id,omitempty"`
	// Minimum total score a lead must reach to be marked qualified
	QualifyThreshold int        `json:"qualify_threshold,omitempty"`
	LeadsScored      int        `json:"leads_scored,omitempty"`
	ErrorMessage     *string    `json:"error_message,omitempty"`
	CreatedAt        time.Time  `json:"created_at,omitempty"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// OutreachCampaign represents a campaign record from the campaigns table.
// The outreach processor sends template emails to every qualified lead of
// the campaign and records per-recipient outcomes.
type OutreachCampaign struct {
	ID     string `json:"campaign_id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	// Minimum qualification tier required: hot or warm
	MinimumTier string `json:"minimum_tier,omitempty"`
	// Optional custom message body; a template is used when empty
	CustomMessage string     `json:"custom_message,omitempty"`
	Status        string     `json:"status,omitempty"`
	EmailsSent    int        `json:"emails_sent,omitempty"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// OutreachEmailRecord represents a sent outreach email for insertion into
// the outreach_emails table.
type OutreachEmailRecord struct {
	ID         string     `json:"id,omitempty"`
	LeadID     string     `json:"lead_id"`
	CampaignID string     `json:"campaign_id,omitempty"`
	ToEmail    string     `json:"to_email"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	Status     string     `json:"status,omitempty"` // sent, failed, draft
	SentAt     *time.Time `json:"sent_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at,omitempty"`
}

// LeadScoreRecord represents a persisted score for insertion into the
// lead_scores table.
type LeadScoreRecord struct {
	ID                  string    `json:"id,omitempty"`
	LeadID              string    `json:"lead_id"`
	JobID               string    `json:"job_id,omitempty"`
	TotalScore          int       `json:"total_score"`
	EmailScore          int       `json:"email_score"`
	CompanyScore        int       `json:"company_score"`
	EngagementScore     int       `json:"engagement_score"`
	FitScore            int       `json:"fit_score"`
	QualificationStatus string    `json:"qualification_status"`
	Factors             []string  `json:"factors,omitempty"`
	Recommendations     []string  `json:"recommendations,omitempty"`
	ScoredAt            time.Time `json:"scored_at,omitempty"`
}
