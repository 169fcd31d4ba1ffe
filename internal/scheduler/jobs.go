package scheduler

import (
	"context"
	"fmt"
	"log"

	"leadpilot/leadgen-backend/internal/analytics"
	"leadpilot/leadgen-backend/internal/services"
)

const (
	// DefaultRescoreSchedule runs the catch-up scoring pass hourly
	DefaultRescoreSchedule = "0 * * * *"
	// DefaultSnapshotSchedule writes the daily analytics snapshot at 3am
	DefaultSnapshotSchedule = "0 3 * * *"
	// DefaultRescoreBatchSize caps how many leads one catch-up pass scores
	DefaultRescoreBatchSize = 100
)

// RescoreJob returns a job that scores leads which slipped past the
// webhook-driven pipeline, for example leads inserted directly into the
// database.
func RescoreJob(processor *services.ScoringProcessor, batchSize int) JobFunc {
	if batchSize <= 0 {
		batchSize = DefaultRescoreBatchSize
	}
	return func(ctx context.Context) error {
		scored, err := processor.ScoreUnscoredLeads(ctx, batchSize)
		if err != nil {
			return fmt.Errorf("catch-up scoring pass failed: %w", err)
		}
		if scored > 0 {
			log.Printf("[Scheduler] Catch-up pass scored %d leads", scored)
		}
		return nil
	}
}

// SnapshotJob returns a job that generates the daily analytics report and
// logs its headline numbers. The report itself is computed from the metrics
// store, so the log line doubles as a persistence check.
func SnapshotJob(engine *analytics.Engine, periodDays int) JobFunc {
	if periodDays <= 0 {
		periodDays = 1
	}
	return func(ctx context.Context) error {
		report, err := engine.Report(periodDays)
		if err != nil {
			return fmt.Errorf("analytics snapshot failed: %w", err)
		}
		log.Printf("[Scheduler] Analytics snapshot: period_days=%d, total_leads=%d, qualified=%d, contacted=%d, avg_score=%.1f, hot=%d, warm=%d",
			report.PeriodDays,
			report.Metrics.TotalLeads,
			report.Metrics.QualifiedLeads,
			report.Metrics.ContactedLeads,
			report.Metrics.AvgLeadScore,
			report.Tiers.Hot,
			report.Tiers.Warm)
		return nil
	}
}
