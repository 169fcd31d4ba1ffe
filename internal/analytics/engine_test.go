package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadpilot/leadgen-backend/internal/scoring"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestNewEngine_EmptyPath(t *testing.T) {
	engine, err := NewEngine("")
	assert.Nil(t, engine)
	assert.Error(t, err)
}

func TestReport_Empty(t *testing.T) {
	engine := newTestEngine(t)

	report, err := engine.Report(30)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Metrics.TotalLeads)
	assert.Equal(t, 0.0, report.Metrics.AvgLeadScore)
	assert.Equal(t, 0.0, report.Metrics.ConversionRate)
	assert.Empty(t, report.Campaigns)
	assert.Equal(t, 30, report.PeriodDays)
}

func TestReport_LeadMetrics(t *testing.T) {
	engine := newTestEngine(t)

	require.NoError(t, engine.RecordScore("lead-1", 85, scoring.TierHot))
	require.NoError(t, engine.RecordScore("lead-2", 65, scoring.TierWarm))
	require.NoError(t, engine.RecordScore("lead-3", 45, scoring.TierCold))
	require.NoError(t, engine.RecordScore("lead-4", 25, scoring.TierUnqualified))

	require.NoError(t, engine.RecordStatus("lead-1", "contacted"))
	require.NoError(t, engine.RecordStatus("lead-2", "contacted"))
	require.NoError(t, engine.RecordStatus("lead-1", "responded"))
	require.NoError(t, engine.RecordStatus("lead-1", "converted"))

	report, err := engine.Report(30)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Metrics.TotalLeads)
	assert.Equal(t, 2, report.Metrics.QualifiedLeads)
	assert.Equal(t, 2, report.Metrics.ContactedLeads)
	assert.Equal(t, 1, report.Metrics.ConvertedLeads)
	assert.InDelta(t, 55.0, report.Metrics.AvgLeadScore, 0.001)
	assert.InDelta(t, 50.0, report.Metrics.ConversionRate, 0.001)
	assert.InDelta(t, 50.0, report.Metrics.ResponseRate, 0.001)

	assert.Equal(t, 1, report.Tiers.Hot)
	assert.Equal(t, 1, report.Tiers.Warm)
	assert.Equal(t, 1, report.Tiers.Cold)
	assert.Equal(t, 1, report.Tiers.Unqualified)
}

func TestReport_Deterministic(t *testing.T) {
	engine := newTestEngine(t)

	require.NoError(t, engine.RecordScore("lead-1", 70, scoring.TierWarm))

	first, err := engine.Report(7)
	require.NoError(t, err)
	second, err := engine.Report(7)
	require.NoError(t, err)

	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.Tiers, second.Tiers)
}

func TestCampaignStats(t *testing.T) {
	engine := newTestEngine(t)

	require.NoError(t, engine.RegisterCampaign("c1", "Spring outreach"))
	require.NoError(t, engine.IncrementCampaign("c1", CounterSent, 200))
	require.NoError(t, engine.IncrementCampaign("c1", CounterOpens, 80))
	require.NoError(t, engine.IncrementCampaign("c1", CounterClicks, 30))
	require.NoError(t, engine.IncrementCampaign("c1", CounterResponses, 10))
	require.NoError(t, engine.IncrementCampaign("c1", CounterDealsClosed, 2))

	report, err := engine.Report(30)
	require.NoError(t, err)
	require.Len(t, report.Campaigns, 1)

	c := report.Campaigns[0]
	assert.Equal(t, "Spring outreach", c.CampaignName)
	assert.Equal(t, 200, c.TotalSent)
	assert.InDelta(t, 40.0, c.OpenRate, 0.001)
	assert.InDelta(t, 15.0, c.ClickRate, 0.001)
	assert.InDelta(t, 5.0, c.ResponseRate, 0.001)
	assert.InDelta(t, 1.0, c.ConversionRate, 0.001)
}

func TestIncrementCampaign_Unregistered(t *testing.T) {
	engine := newTestEngine(t)
	assert.Error(t, engine.IncrementCampaign("ghost", CounterSent, 1))
}

func TestIncrementCampaign_UnknownCounter(t *testing.T) {
	engine := newTestEngine(t)
	require.NoError(t, engine.RegisterCampaign("c1", "x"))
	assert.Error(t, engine.IncrementCampaign("c1", CampaignCounter("total_sent; DROP TABLE"), 1))
}
