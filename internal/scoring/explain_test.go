package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualificationStatus(t *testing.T) {
	engine := NewEngine(nil)

	testCases := []struct {
		name     string
		total    int
		expected string
	}{
		{name: "hot at threshold", total: 80, expected: TierHot},
		{name: "hot at max", total: 100, expected: TierHot},
		{name: "warm", total: 75, expected: TierWarm},
		{name: "warm at threshold", total: 60, expected: TierWarm},
		{name: "cold", total: 45, expected: TierCold},
		{name: "cold at threshold", total: 40, expected: TierCold},
		{name: "unqualified", total: 39, expected: TierUnqualified},
		{name: "unqualified at zero", total: 0, expected: TierUnqualified},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, engine.QualificationStatus(tc.total))
		})
	}
}

func TestQualificationStatus_AggregationExample(t *testing.T) {
	// Sub-scores (25, 20, 10, 20) sum to 75 and land in the warm band.
	engine := NewEngine(nil)
	total := 25 + 20 + 10 + 20
	assert.Equal(t, 75, total)
	assert.Equal(t, TierWarm, engine.QualificationStatus(total))
}

func TestNextActions_FollowTier(t *testing.T) {
	engine := NewEngine(nil)

	assert.Contains(t, engine.NextActions(85), "Schedule discovery call")
	assert.Contains(t, engine.NextActions(65), "Add to nurture sequence")
	assert.Contains(t, engine.NextActions(45), "Send educational content")
	assert.Contains(t, engine.NextActions(10), "Qualify out of pipeline")
}

func TestNextActions_ReturnsCopy(t *testing.T) {
	engine := NewEngine(nil)

	actions := engine.NextActions(85)
	actions[0] = "mutated"
	assert.NotEqual(t, "mutated", engine.NextActions(85)[0])
}

func TestScoringFactors_OrderAndBands(t *testing.T) {
	engine := NewEngine(nil)

	lead := Lead{
		Email:   "jane@acmecorp.com",
		Phone:   "+1 555 0100",
		Address: "1 Main St",
	}
	factors := engine.scoringFactors(lead, 25, 45, 30, 35)

	assert.Equal(t, []string{
		"✅ Professional company email address",
		"✅ Ideal company size for your business",
		"✅ High engagement and activity level",
		"✅ Excellent fit with ideal customer profile",
		"✅ Complete contact information available",
	}, factors)
}

func TestScoringFactors_WeakLead(t *testing.T) {
	engine := NewEngine(nil)

	factors := engine.scoringFactors(Lead{}, 0, 0, 10, 0)

	assert.Equal(t, []string{
		"❌ Low-quality email address",
		"❌ Company size may not be ideal",
		"❌ Low engagement level",
		"❌ Poor fit with ideal customer profile",
		"❌ Limited contact information",
	}, factors)
}

func TestScoringFactors_MiddleBands(t *testing.T) {
	engine := NewEngine(nil)

	lead := Lead{Email: "jane@gmail.com", Phone: "+1 555 0100"}
	factors := engine.scoringFactors(lead, 10, 30, 20, 20)

	assert.Equal(t, []string{
		"⚠️ Personal email address (Gmail/Yahoo)",
		"⚠️ Acceptable company size",
		"⚠️ Moderate engagement level",
		"⚠️ Good fit with ideal customer profile",
		"⚠️ Partial contact information",
	}, factors)
}

func TestRecommendations_Tips(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("personal email tip", func(t *testing.T) {
		lead := Lead{Email: "jane@gmail.com", Phone: "x", Address: "y"}
		recs := engine.recommendations(lead, 70, 10, 30)
		assert.Contains(t, recs, "💡 Try to find their company email address")
	})

	t.Run("low engagement tip", func(t *testing.T) {
		lead := Lead{Email: "jane@acmecorp.com", Phone: "x", Address: "y"}
		recs := engine.recommendations(lead, 50, 25, 10)
		assert.Contains(t, recs, "💡 Use different communication channels (phone, LinkedIn)")
	})

	t.Run("incomplete contact tip", func(t *testing.T) {
		lead := Lead{Email: "jane@acmecorp.com"}
		recs := engine.recommendations(lead, 50, 25, 30)
		assert.Contains(t, recs, "💡 Research more contact details before outreach")
	})

	t.Run("strong lead gets no tips", func(t *testing.T) {
		lead := Lead{Email: "jane@acmecorp.com", Phone: "x", Address: "y"}
		recs := engine.recommendations(lead, 85, 25, 40)
		for _, rec := range recs {
			assert.NotContains(t, rec, "💡")
		}
	})
}

func TestRecommendations_TierBandFirst(t *testing.T) {
	engine := NewEngine(nil)

	lead := Lead{Email: "jane@acmecorp.com", Phone: "x", Address: "y"}
	recs := engine.recommendations(lead, 85, 25, 40)
	assert.Equal(t, "🎯 HIGH PRIORITY: Contact immediately", recs[0])
}

func TestCompletenessBracket(t *testing.T) {
	assert.Equal(t, "email_phone_address", CompletenessBracket(3))
	assert.Equal(t, "email_phone", CompletenessBracket(2))
	assert.Equal(t, "email_only", CompletenessBracket(1))
	assert.Equal(t, "", CompletenessBracket(0))
}
