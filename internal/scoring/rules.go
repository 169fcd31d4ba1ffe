package scoring

import "strings"

const (
	// MaxTotalScore is the upper clamp for the aggregate lead score
	MaxTotalScore = 100
	// MaxEngagementScore is the hard ceiling for the engagement sub-score
	MaxEngagementScore = 50
	// MaxRulePoints is the largest point value any single rule may carry
	MaxRulePoints = 65
	// DefaultFitScore is returned when no ICP is configured
	DefaultFitScore = 20
	// FitPointsPerMatch is awarded for each ICP dimension that matches
	FitPointsPerMatch = 20
)

// Rule maps a lowercase key fragment to a point value. Matching is
// substring containment against the lead field and the first rule that
// matches wins, so the order of a rule list is part of the contract.
// Ordered slices are used instead of maps because Go map iteration order
// is randomized and would break first-definition-wins matching.
type Rule struct {
	Match  string
	Points int
}

// EmailRules holds the point values for email domain classification
type EmailRules struct {
	// CompanyEmail is awarded for business domains (anything with a dot
	// that is not a known free-mail provider)
	CompanyEmail int
	// FreeMail is awarded for personal webmail addresses
	FreeMail int
	// Fallback is awarded for malformed or unclassifiable domains
	Fallback int
	// FreeMailProviders are matched as substrings of the domain portion
	FreeMailProviders []string
}

// RuleTable is the static, process-wide scoring configuration. It is
// configuration, not state: build it once and never mutate it afterward.
type RuleTable struct {
	EmailQuality EmailRules
	CompanySize  []Rule
	Industry     []Rule
	JobTitle     []Rule
	Engagement   []Rule
	ContactInfo  []Rule
}

// DefaultRules returns the built-in scoring rule table.
func DefaultRules() *RuleTable {
	return &RuleTable{
		EmailQuality: EmailRules{
			CompanyEmail:      25,
			FreeMail:          10,
			Fallback:          15,
			FreeMailProviders: []string{"gmail", "yahoo", "hotmail", "outlook"},
		},
		CompanySize: []Rule{
			{Match: "1-10", Points: 20},
			{Match: "11-50", Points: 35},
			{Match: "51-200", Points: 50},
			{Match: "201-500", Points: 65},
			{Match: "500+", Points: 40},
		},
		Industry: []Rule{
			{Match: "technology", Points: 40},
			{Match: "saas", Points: 45},
			{Match: "healthcare", Points: 35},
			{Match: "finance", Points: 30},
			{Match: "marketing", Points: 35},
			{Match: "consulting", Points: 25},
			{Match: "other", Points: 20},
		},
		JobTitle: []Rule{
			{Match: "ceo", Points: 40},
			{Match: "cto", Points: 35},
			{Match: "vp", Points: 30},
			{Match: "director", Points: 25},
			{Match: "manager", Points: 20},
			{Match: "other", Points: 15},
		},
		Engagement: []Rule{
			{Match: "high", Points: 30},
			{Match: "medium", Points: 20},
			{Match: "low", Points: 10},
		},
		ContactInfo: []Rule{
			{Match: "email_only", Points: 20},
			{Match: "email_phone", Points: 35},
			{Match: "email_phone_address", Points: 50},
			{Match: "full_profile", Points: 60},
		},
	}
}

// Validate checks the rule table invariant: every point value is a
// non-negative integer no greater than MaxRulePoints.
func (t *RuleTable) Validate() bool {
	single := []int{t.EmailQuality.CompanyEmail, t.EmailQuality.FreeMail, t.EmailQuality.Fallback}
	for _, p := range single {
		if p < 0 || p > MaxRulePoints {
			return false
		}
	}
	for _, rules := range [][]Rule{t.CompanySize, t.Industry, t.JobTitle, t.Engagement, t.ContactInfo} {
		for _, r := range rules {
			if r.Points < 0 || r.Points > MaxRulePoints {
				return false
			}
		}
	}
	return true
}

// matchFirst returns the points of the first rule whose key appears as a
// substring of the lowercased field. Unmatched fields score 0.
func matchFirst(rules []Rule, field string) int {
	field = strings.ToLower(field)
	if field == "" {
		return 0
	}
	for _, r := range rules {
		if r.Match != "" && strings.Contains(field, r.Match) {
			return r.Points
		}
	}
	return 0
}
