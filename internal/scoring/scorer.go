// Package scoring implements the lead qualification engine: a pure,
// stateless pipeline that maps a possibly-incomplete lead record (plus an
// optional ideal customer profile) to a bounded 0-100 score, a
// qualification tier, human-readable factors and recommended next actions.
// It performs no I/O and never fails: malformed or missing input degrades
// to zero or default sub-scores.
package scoring

import "strings"

// Lead is the input record for scoring. All fields are best-effort and
// may be empty; the engine treats absence as a signal, not an error.
type Lead struct {
	Email             string
	CompanySize       string
	Industry          string
	Title             string
	Location          string
	ActivityLevel     string
	MutualConnections int
	ProfileViews      int
	Phone             string
	Address           string
}

// ICP is the ideal customer profile used by the fit sub-scorer. Any
// dimension left empty is simply not evaluated.
type ICP struct {
	TargetIndustries   []string
	TargetCompanySizes []string
	TargetJobTitles    []string
	TargetLocations    []string
}

// LeadScore is the value object produced by a single scoring call. It is
// never mutated after construction and holds no reference back to the
// originating lead.
type LeadScore struct {
	TotalScore      int      `json:"total_score"`
	EmailScore      int      `json:"email_score"`
	CompanyScore    int      `json:"company_score"`
	EngagementScore int      `json:"engagement_score"`
	FitScore        int      `json:"fit_score"`
	Factors         []string `json:"factors"`
	Recommendations []string `json:"recommendations"`
}

// Engine scores leads against a fixed rule table. It holds no mutable
// state and is safe for concurrent use without synchronization.
type Engine struct {
	rules *RuleTable
}

// NewEngine creates a scoring engine. Passing nil uses the default rules.
func NewEngine(rules *RuleTable) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// ScoreLead scores a single lead. icp may be nil, in which case the fit
// sub-score falls back to DefaultFitScore.
func (e *Engine) ScoreLead(lead Lead, icp *ICP) LeadScore {
	emailScore := e.emailScore(lead.Email)
	companyScore := e.companyScore(lead)
	engagementScore := e.engagementScore(lead)
	fitScore := e.fitScore(lead, icp)

	total := emailScore + companyScore + engagementScore + fitScore
	if total > MaxTotalScore {
		total = MaxTotalScore
	}

	factors := e.scoringFactors(lead, emailScore, companyScore, engagementScore, fitScore)
	recommendations := e.recommendations(lead, total, emailScore, engagementScore)

	return LeadScore{
		TotalScore:      total,
		EmailScore:      emailScore,
		CompanyScore:    companyScore,
		EngagementScore: engagementScore,
		FitScore:        fitScore,
		Factors:         factors,
		Recommendations: recommendations,
	}
}

// emailScore classifies the domain portion of the email address. Anything
// that is not obviously free webmail is treated as a higher-quality
// business address.
func (e *Engine) emailScore(email string) int {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return 0
	}

	domain := ""
	if at := strings.Index(email, "@"); at >= 0 {
		domain = email[at+1:]
	}

	for _, provider := range e.rules.EmailQuality.FreeMailProviders {
		if strings.Contains(domain, provider) {
			return e.rules.EmailQuality.FreeMail
		}
	}
	if domain != "" && strings.Contains(domain, ".") {
		return e.rules.EmailQuality.CompanyEmail
	}
	return e.rules.EmailQuality.Fallback
}

// companyScore is the truncated integer average of the size, industry and
// title dimension scores. Dimensions that match no rule contribute 0.
func (e *Engine) companyScore(lead Lead) int {
	sizeScore := matchFirst(e.rules.CompanySize, lead.CompanySize)
	industryScore := matchFirst(e.rules.Industry, lead.Industry)
	titleScore := matchFirst(e.rules.JobTitle, lead.Title)

	return (sizeScore + industryScore + titleScore) / 3
}

// engagementScore combines the activity-level base score with mutually
// exclusive connection and profile-view bonuses, capped at
// MaxEngagementScore.
func (e *Engine) engagementScore(lead Lead) int {
	level := strings.ToLower(lead.ActivityLevel)

	// Unrecognized levels fall back to the "low" base score.
	base := 10
	for _, r := range e.rules.Engagement {
		if r.Match == level {
			base = r.Points
			break
		}
	}

	switch {
	case lead.MutualConnections > 10:
		base += 10
	case lead.MutualConnections > 5:
		base += 5
	}

	switch {
	case lead.ProfileViews > 100:
		base += 10
	case lead.ProfileViews > 50:
		base += 5
	}

	if base > MaxEngagementScore {
		return MaxEngagementScore
	}
	return base
}

// fitScore averages FitPointsPerMatch over the ICP dimensions that were
// configured. The denominator counts dimensions evaluated, not dimensions
// matched: a configured dimension that fails to match drags the average
// down. No ICP, or an ICP with no dimensions, yields DefaultFitScore.
func (e *Engine) fitScore(lead Lead, icp *ICP) int {
	if icp == nil {
		return DefaultFitScore
	}

	sum := 0
	criteria := 0

	if len(icp.TargetIndustries) > 0 {
		if anyTargetMatches(icp.TargetIndustries, lead.Industry) {
			sum += FitPointsPerMatch
		}
		criteria++
	}
	if len(icp.TargetCompanySizes) > 0 {
		if anyTargetMatches(icp.TargetCompanySizes, lead.CompanySize) {
			sum += FitPointsPerMatch
		}
		criteria++
	}
	if len(icp.TargetJobTitles) > 0 {
		if anyTargetMatches(icp.TargetJobTitles, lead.Title) {
			sum += FitPointsPerMatch
		}
		criteria++
	}
	if len(icp.TargetLocations) > 0 {
		if anyTargetMatches(icp.TargetLocations, lead.Location) {
			sum += FitPointsPerMatch
		}
		criteria++
	}

	if criteria == 0 {
		return DefaultFitScore
	}
	return sum / criteria
}

// anyTargetMatches reports whether any configured target value appears as
// a substring of the lead's field, case-insensitively.
func anyTargetMatches(targets []string, field string) bool {
	field = strings.ToLower(field)
	if field == "" {
		return false
	}
	for _, target := range targets {
		target = strings.ToLower(target)
		if target != "" && strings.Contains(field, target) {
			return true
		}
	}
	return false
}

// contactCompleteness counts how many of email, phone and address are
// present on the lead.
func contactCompleteness(lead Lead) int {
	count := 0
	if strings.TrimSpace(lead.Email) != "" {
		count++
	}
	if strings.TrimSpace(lead.Phone) != "" {
		count++
	}
	if strings.TrimSpace(lead.Address) != "" {
		count++
	}
	return count
}
