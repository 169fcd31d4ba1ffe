package dto

import "leadpilot/leadgen-backend/internal/scoring"

// ScoreRequest is the request body for scoring a single lead.
// @Description Lead record plus an optional inline ideal customer profile
type ScoreRequest struct {
	// Lead to score
	Lead Lead `json:"lead" binding:"required"`
	// Optional inline ICP; omit to use the default fit score
	ICP *ICP `json:"icp,omitempty"`
	// Optional ICP ID to load from storage (ignored when an inline ICP is set)
	ICPID string `json:"icp_id,omitempty"`
}

// BatchScoreRequest is the request body for scoring several leads against
// the same ICP in one call.
// @Description Batch of lead records scored concurrently
type BatchScoreRequest struct {
	Leads []Lead `json:"leads" binding:"required,min=1"`
	ICP   *ICP   `json:"icp,omitempty"`
	ICPID string `json:"icp_id,omitempty"`
}

// ScoreBreakdown mirrors the four sub-scores plus the clamped total.
type ScoreBreakdown struct {
	EmailScore      int `json:"email_score"`
	CompanyScore    int `json:"company_score"`
	EngagementScore int `json:"engagement_score"`
	FitScore        int `json:"fit_score"`
	TotalScore      int `json:"total_score"`
}

// ScoreResponse is returned for a single scoring call.
// @Description Full scoring result with qualification tier and next actions
type ScoreResponse struct {
	LeadID              string            `json:"lead_id,omitempty"`
	Score               scoring.LeadScore `json:"lead_score"`
	ScoringBreakdown    ScoreBreakdown    `json:"scoring_breakdown"`
	QualificationStatus string            `json:"qualification_status" example:"Warm Lead - Add to Nurture Sequence"`
	NextActions         []string          `json:"next_actions"`
}

// BatchScoreResponse is returned for a batch scoring call; results keep
// the order of the request's leads.
type BatchScoreResponse struct {
	TotalLeads int             `json:"total_leads"`
	Results    []ScoreResponse `json:"results"`
}

// NewScoreResponse assembles the response envelope for one scored lead.
func NewScoreResponse(engine *scoring.Engine, leadID string, score scoring.LeadScore) ScoreResponse {
	return ScoreResponse{
		LeadID: leadID,
		Score:  score,
		ScoringBreakdown: ScoreBreakdown{
			EmailScore:      score.EmailScore,
			CompanyScore:    score.CompanyScore,
			EngagementScore: score.EngagementScore,
			FitScore:        score.FitScore,
			TotalScore:      score.TotalScore,
		},
		QualificationStatus: engine.QualificationStatus(score.TotalScore),
		NextActions:         engine.NextActions(score.TotalScore),
	}
}
