package scoring

// Qualification tier cutoffs. The same table drives the tier label, the
// recommendation band and the next-action list so the thresholds cannot
// drift apart.
const (
	HotThreshold  = 80
	WarmThreshold = 60
	ColdThreshold = 40
)

// Tier labels, from hottest to coldest.
const (
	TierHot         = "Hot Lead - Contact Immediately"
	TierWarm        = "Warm Lead - Add to Nurture Sequence"
	TierCold        = "Cold Lead - General Outreach"
	TierUnqualified = "Unqualified - Remove from Pipeline"
)

type tierBand struct {
	min             int
	status          string
	recommendations []string
	nextActions     []string
}

// tierBands is ordered hottest first; Tier selection takes the first band
// whose minimum the total score reaches.
var tierBands = []tierBand{
	{
		min:    HotThreshold,
		status: TierHot,
		recommendations: []string{
			"🎯 HIGH PRIORITY: Contact immediately",
			"📧 Send personalized email within 24 hours",
			"📞 Schedule a call this week",
			"🔗 Connect on LinkedIn with personalized message",
		},
		nextActions: []string{
			"Send personalized email within 24 hours",
			"Schedule discovery call",
			"Connect on LinkedIn",
			"Add to high-priority follow-up sequence",
		},
	},
	{
		min:    WarmThreshold,
		status: TierWarm,
		recommendations: []string{
			"📋 MEDIUM PRIORITY: Add to nurture sequence",
			"📧 Send value-driven email",
			"📅 Follow up in 3-5 days",
			"🎯 Focus on pain points and solutions",
		},
		nextActions: []string{
			"Send value-driven email",
			"Add to nurture sequence",
			"Research company pain points",
			"Schedule follow-up in 3-5 days",
		},
	},
	{
		min:    ColdThreshold,
		status: TierCold,
		recommendations: []string{
			"📝 LOW PRIORITY: Add to general outreach",
			"📧 Send educational content",
			"📅 Follow up in 1-2 weeks",
			"🔍 Research more about their company",
		},
		nextActions: []string{
			"Send educational content",
			"Add to general outreach",
			"Research company background",
			"Follow up in 1-2 weeks",
		},
	},
	{
		min:    0,
		status: TierUnqualified,
		recommendations: []string{
			"❌ QUALIFY OUT: Not a good fit",
			"📝 Remove from active outreach",
			"🔍 Focus on higher-scoring leads",
			"📊 Update ideal customer profile",
		},
		nextActions: []string{
			"Qualify out of pipeline",
			"Update ideal customer profile",
			"Focus on higher-scoring leads",
		},
	},
}

func bandFor(total int) tierBand {
	for _, band := range tierBands {
		if total >= band.min {
			return band
		}
	}
	return tierBands[len(tierBands)-1]
}

// QualificationStatus returns the tier label for a total score.
func (e *Engine) QualificationStatus(total int) string {
	return bandFor(total).status
}

// NextActions returns the tier-driven action list for a total score.
func (e *Engine) NextActions(total int) []string {
	actions := bandFor(total).nextActions
	out := make([]string, len(actions))
	copy(out, actions)
	return out
}

// scoringFactors converts the four sub-scores plus selected raw fields
// into ordered human-readable factors. Order is fixed: email, company,
// engagement, fit, contact completeness.
func (e *Engine) scoringFactors(lead Lead, emailScore, companyScore, engagementScore, fitScore int) []string {
	factors := make([]string, 0, 5)

	switch {
	case emailScore >= 20:
		factors = append(factors, "✅ Professional company email address")
	case emailScore >= 10:
		factors = append(factors, "⚠️ Personal email address (Gmail/Yahoo)")
	default:
		factors = append(factors, "❌ Low-quality email address")
	}

	switch {
	case companyScore >= 40:
		factors = append(factors, "✅ Ideal company size for your business")
	case companyScore >= 25:
		factors = append(factors, "⚠️ Acceptable company size")
	default:
		factors = append(factors, "❌ Company size may not be ideal")
	}

	switch {
	case engagementScore >= 25:
		factors = append(factors, "✅ High engagement and activity level")
	case engagementScore >= 15:
		factors = append(factors, "⚠️ Moderate engagement level")
	default:
		factors = append(factors, "❌ Low engagement level")
	}

	switch {
	case fitScore >= 30:
		factors = append(factors, "✅ Excellent fit with ideal customer profile")
	case fitScore >= 20:
		factors = append(factors, "⚠️ Good fit with ideal customer profile")
	default:
		factors = append(factors, "❌ Poor fit with ideal customer profile")
	}

	switch completeness := contactCompleteness(lead); {
	case completeness >= 3:
		factors = append(factors, "✅ Complete contact information available")
	case completeness >= 2:
		factors = append(factors, "⚠️ Partial contact information")
	default:
		factors = append(factors, "❌ Limited contact information")
	}

	return factors
}

// recommendations builds the tier-driven recommendation list, then appends
// conditional tips when specific weak factors are present.
func (e *Engine) recommendations(lead Lead, total, emailScore, engagementScore int) []string {
	band := bandFor(total)
	recommendations := make([]string, 0, len(band.recommendations)+3)
	recommendations = append(recommendations, band.recommendations...)

	if emailScore > 0 && emailScore <= e.rules.EmailQuality.FreeMail {
		recommendations = append(recommendations, "💡 Try to find their company email address")
	}
	if engagementScore < 15 {
		recommendations = append(recommendations, "💡 Use different communication channels (phone, LinkedIn)")
	}
	if contactCompleteness(lead) < 2 {
		recommendations = append(recommendations, "💡 Research more contact details before outreach")
	}

	return recommendations
}

// CompletenessBracket maps a contact-completeness count to its rule-table
// bracket label.
func CompletenessBracket(count int) string {
	switch {
	case count >= 3:
		return "email_phone_address"
	case count == 2:
		return "email_phone"
	case count == 1:
		return "email_only"
	default:
		return ""
	}
}
