package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tracker, err := NewTracker(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { tracker.Close() })
	return tracker
}

func TestNewTracker_EmptyPath(t *testing.T) {
	tracker, err := NewTracker("")
	assert.Nil(t, tracker)
	assert.Error(t, err)
}

func TestTracker_Lifecycle(t *testing.T) {
	tracker := newTestTracker(t)

	task, err := tracker.Create(TypeLeadQualification, "Scoring lead: Jane Rivera", map[string]interface{}{
		"lead_id": "lead-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, 0, task.Progress)

	require.NoError(t, tracker.Start(task.ID))
	active := tracker.Active()
	require.Len(t, active, 1)
	assert.Equal(t, StatusRunning, active[0].Status)
	assert.Equal(t, 10, active[0].Progress)
	assert.NotNil(t, active[0].StartedAt)

	require.NoError(t, tracker.Complete(task.ID, map[string]interface{}{"total_score": 75}))
	assert.Empty(t, tracker.Active())

	history := tracker.History(10)
	require.Len(t, history, 1)
	assert.Equal(t, StatusCompleted, history[0].Status)
	assert.Equal(t, 100, history[0].Progress)
	assert.Equal(t, 75, history[0].Result["total_score"])
}

func TestTracker_Fail(t *testing.T) {
	tracker := newTestTracker(t)

	task, err := tracker.Create(TypeEmailOutreach, "Sending outreach email", nil)
	require.NoError(t, err)
	require.NoError(t, tracker.Start(task.ID))
	require.NoError(t, tracker.Fail(task.ID, "SMTP connection refused"))

	history := tracker.History(10)
	require.Len(t, history, 1)
	assert.Equal(t, StatusFailed, history[0].Status)
	assert.Equal(t, "SMTP connection refused", history[0].Error)
}

func TestTracker_Cancel(t *testing.T) {
	tracker := newTestTracker(t)

	task, err := tracker.Create(TypeWebScraping, "Scraping website", nil)
	require.NoError(t, err)
	require.NoError(t, tracker.Cancel(task.ID))

	history := tracker.History(10)
	require.Len(t, history, 1)
	assert.Equal(t, StatusCancelled, history[0].Status)
}

func TestTracker_UnknownTask(t *testing.T) {
	tracker := newTestTracker(t)

	assert.Error(t, tracker.Start("missing"))
	assert.Error(t, tracker.Complete("missing", nil))
	assert.Error(t, tracker.Fail("missing", "boom"))
}

func TestTracker_UpdateProgress_Clamped(t *testing.T) {
	tracker := newTestTracker(t)

	task, err := tracker.Create(TypeMarketAnalysis, "Analyzing pipeline", nil)
	require.NoError(t, err)

	require.NoError(t, tracker.UpdateProgress(task.ID, 150, "almost there"))
	assert.Equal(t, 100, tracker.Active()[0].Progress)

	require.NoError(t, tracker.UpdateProgress(task.ID, -10, ""))
	assert.Equal(t, 0, tracker.Active()[0].Progress)
	assert.Equal(t, "almost there", tracker.Active()[0].Metadata["status_update"])
}

func TestTracker_Stats(t *testing.T) {
	tracker := newTestTracker(t)

	first, err := tracker.Create(TypeLeadQualification, "score 1", nil)
	require.NoError(t, err)
	second, err := tracker.Create(TypeLeadQualification, "score 2", nil)
	require.NoError(t, err)
	third, err := tracker.Create(TypeLeadQualification, "score 3", nil)
	require.NoError(t, err)

	require.NoError(t, tracker.Complete(first.ID, nil))
	require.NoError(t, tracker.Complete(second.ID, nil))
	require.NoError(t, tracker.Fail(third.ID, "boom"))

	stats := tracker.Stats()
	assert.Equal(t, 3, stats.TotalTasks)
	assert.Equal(t, 0, stats.ActiveTasks)
	assert.Equal(t, 2, stats.CompletedTasks)
	assert.Equal(t, 1, stats.FailedTasks)
	assert.InDelta(t, 66.7, stats.SuccessRate, 0.001)
}

func TestTracker_HistoryLimit(t *testing.T) {
	tracker := newTestTracker(t)

	for i := 0; i < 5; i++ {
		task, err := tracker.Create(TypeCompetitorResearch, "research", nil)
		require.NoError(t, err)
		require.NoError(t, tracker.Complete(task.ID, nil))
	}

	assert.Len(t, tracker.History(3), 3)
	assert.Len(t, tracker.History(0), 5)
}
