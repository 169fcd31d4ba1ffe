package dto

import (
	"time"

	"leadpilot/leadgen-backend/internal/scoring"
)

// Lead represents a lead record as stored in the leads table and supplied
// by callers for scoring. Every attribute is best-effort; scoring treats
// missing fields as signals, never as errors.
// @Description A prospective business contact with contact and firmographic attributes
type Lead struct {
	ID     string `json:"id,omitempty"`
	JobID  string `json:"job_id,omitempty"`
	UserID string `json:"user_id,omitempty"`
	// Contact person name
	Name string `json:"name,omitempty" example:"Jane Rivera"`
	// Company name
	Company string `json:"company,omitempty" example:"Acme Corp"`
	// Email address (presence and domain class feed the email sub-score)
	Email string `json:"email,omitempty" example:"jane@acmecorp.com"`
	// Phone number (presence-only signal)
	Phone string `json:"phone,omitempty" example:"+1 555 0100"`
	// Physical address (presence-only signal)
	Address string `json:"address,omitempty"`
	// Free-text company size bracket label
	CompanySize string `json:"company_size,omitempty" example:"11-50"`
	// Free-text industry
	Industry string `json:"industry,omitempty" example:"SaaS"`
	// Free-text job title
	Title string `json:"title,omitempty" example:"VP of Sales"`
	// Location used for ICP fit matching
	Location string `json:"location,omitempty" example:"Austin, TX"`
	// Activity level: high, medium or low (defaults to low)
	ActivityLevel string `json:"activity_level,omitempty" example:"medium"`
	// Number of mutual connections
	MutualConnections int `json:"mutual_connections,omitempty" example:"7"`
	// Number of profile views
	ProfileViews int `json:"profile_views,omitempty" example:"120"`
	// Website URL if known
	Website string `json:"website,omitempty"`
	// LinkedIn profile URL if known
	LinkedInURL string `json:"linkedin_url,omitempty"`
	// Pipeline status: new, contacted, qualified, interested, converted, lost
	Status string `json:"status,omitempty"`
	// Where the lead came from (linkedin, web_scraping, manual, ...)
	Source    string     `json:"source,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// ToScoringLead maps the transport record onto the scoring engine's input.
func (l *Lead) ToScoringLead() scoring.Lead {
	return scoring.Lead{
		Email:             l.Email,
		CompanySize:       l.CompanySize,
		Industry:          l.Industry,
		Title:             l.Title,
		Location:          l.Location,
		ActivityLevel:     l.ActivityLevel,
		MutualConnections: l.MutualConnections,
		ProfileViews:      l.ProfileViews,
		Phone:             l.Phone,
		Address:           l.Address,
	}
}

// ICP represents an ideal customer profile record from the icps table.
// @Description Target criteria used to measure lead fit
type ICP struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name,omitempty"`
	// Target industries (substring-matched against the lead's industry)
	TargetIndustries []string `json:"target_industries,omitempty" example:"saas,technology"`
	// Target company size brackets
	TargetCompanySizes []string `json:"target_company_sizes,omitempty" example:"11-50,51-200"`
	// Target job titles
	TargetJobTitles []string `json:"target_job_titles,omitempty" example:"ceo,vp"`
	// Target locations
	TargetLocations []string   `json:"target_locations,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// ToScoringICP maps the transport record onto the scoring engine's ICP.
// Returns nil for a nil receiver so absent profiles flow through untouched.
func (p *ICP) ToScoringICP() *scoring.ICP {
	if p == nil {
		return nil
	}
	return &scoring.ICP{
		TargetIndustries:   p.TargetIndustries,
		TargetCompanySizes: p.TargetCompanySizes,
		TargetJobTitles:    p.TargetJobTitles,
		TargetLocations:    p.TargetLocations,
	}
}

// ErrorResponse represents an error response
// @Description Error response returned when a request fails
type ErrorResponse struct {
	// Error message describing what went wrong
	Error string `json:"error" example:"Key: 'ScoreRequest.Lead' Error:Field validation failed"`
}
