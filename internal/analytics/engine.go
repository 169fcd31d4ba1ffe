// Package analytics computes pipeline and campaign reports from recorded
// events. Every number is an aggregate of stored counters; nothing is
// estimated or simulated, and missing data reports zeros.
package analytics

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"leadpilot/leadgen-backend/internal/dto"
	"leadpilot/leadgen-backend/internal/scoring"
)

// Engine records scoring and outreach events in SQLite and derives
// reports from them. Safe for concurrent use; SQLite serializes writes.
type Engine struct {
	db *sql.DB
}

// NewEngine opens (or creates) the analytics database at path and
// initializes the schema. Use ":memory:" for tests.
func NewEngine(path string) (*Engine, error) {
	if path == "" {
		return nil, fmt.Errorf("analytics database path is required")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS lead_scores (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		lead_id     TEXT NOT NULL,
		total_score INTEGER NOT NULL,
		tier        TEXT NOT NULL,
		scored_at   DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_lead_scores_scored_at ON lead_scores(scored_at);

	CREATE TABLE IF NOT EXISTS lead_status_events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		lead_id     TEXT NOT NULL,
		status      TEXT NOT NULL,
		occurred_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_lead_status_events_occurred_at ON lead_status_events(occurred_at);

	CREATE TABLE IF NOT EXISTS campaign_stats (
		campaign_id     TEXT PRIMARY KEY,
		campaign_name   TEXT NOT NULL,
		total_sent      INTEGER DEFAULT 0,
		opens           INTEGER DEFAULT 0,
		clicks          INTEGER DEFAULT 0,
		responses       INTEGER DEFAULT 0,
		meetings_booked INTEGER DEFAULT 0,
		deals_closed    INTEGER DEFAULT 0
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize analytics schema: %w", err)
	}

	log.Printf("[AnalyticsEngine] Initialized analytics database: %s", path)

	return &Engine{db: db}, nil
}

// Close closes the underlying database.
func (e *Engine) Close() error {
	return e.db.Close()
}

// RecordScore stores one scoring outcome for later aggregation.
func (e *Engine) RecordScore(leadID string, totalScore int, tier string) error {
	_, err := e.db.Exec(
		`INSERT INTO lead_scores (lead_id, total_score, tier, scored_at) VALUES (?, ?, ?, ?)`,
		leadID, totalScore, tier, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record score for lead %s: %w", leadID, err)
	}
	return nil
}

// RecordStatus stores a pipeline status transition (contacted, converted,
// responded, ...) for a lead.
func (e *Engine) RecordStatus(leadID, status string) error {
	_, err := e.db.Exec(
		`INSERT INTO lead_status_events (lead_id, status, occurred_at) VALUES (?, ?, ?)`,
		leadID, status, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record status %s for lead %s: %w", status, leadID, err)
	}
	return nil
}

// CampaignCounter identifies one of the campaign_stats counters.
type CampaignCounter string

const (
	CounterSent           CampaignCounter = "total_sent"
	CounterOpens          CampaignCounter = "opens"
	CounterClicks         CampaignCounter = "clicks"
	CounterResponses      CampaignCounter = "responses"
	CounterMeetingsBooked CampaignCounter = "meetings_booked"
	CounterDealsClosed    CampaignCounter = "deals_closed"
)

// RegisterCampaign creates the stats row for a campaign if it does not
// exist yet.
func (e *Engine) RegisterCampaign(campaignID, name string) error {
	_, err := e.db.Exec(
		`INSERT INTO campaign_stats (campaign_id, campaign_name) VALUES (?, ?)
		 ON CONFLICT(campaign_id) DO UPDATE SET campaign_name = excluded.campaign_name`,
		campaignID, name,
	)
	if err != nil {
		return fmt.Errorf("failed to register campaign %s: %w", campaignID, err)
	}
	return nil
}

// IncrementCampaign adds delta to one campaign counter. The counter name
// is restricted to the known set; anything else is rejected.
func (e *Engine) IncrementCampaign(campaignID string, counter CampaignCounter, delta int) error {
	switch counter {
	case CounterSent, CounterOpens, CounterClicks, CounterResponses, CounterMeetingsBooked, CounterDealsClosed:
	default:
		return fmt.Errorf("unknown campaign counter: %s", counter)
	}

	query := fmt.Sprintf(`UPDATE campaign_stats SET %s = %s + ? WHERE campaign_id = ?`, counter, counter)
	result, err := e.db.Exec(query, delta, campaignID)
	if err != nil {
		return fmt.Errorf("failed to increment %s for campaign %s: %w", counter, campaignID, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("campaign %s is not registered", campaignID)
	}
	return nil
}

// Report aggregates the recorded events over the trailing periodDays into
// a full analytics report.
func (e *Engine) Report(periodDays int) (*dto.AnalyticsReport, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -periodDays)

	metrics, tiers, err := e.leadMetrics(since)
	if err != nil {
		return nil, err
	}

	campaigns, err := e.campaignPerformance()
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsReport{
		Metrics:     metrics,
		Tiers:       tiers,
		Campaigns:   campaigns,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		PeriodDays:  periodDays,
	}, nil
}

func (e *Engine) leadMetrics(since time.Time) (dto.PerformanceMetrics, dto.TierDistribution, error) {
	var metrics dto.PerformanceMetrics
	var tiers dto.TierDistribution

	rows, err := e.db.Query(
		`SELECT tier, COUNT(*), AVG(total_score) FROM lead_scores WHERE scored_at >= ? GROUP BY tier`,
		since,
	)
	if err != nil {
		return metrics, tiers, fmt.Errorf("failed to query lead scores: %w", err)
	}
	defer rows.Close()

	weightedSum := 0.0
	for rows.Next() {
		var tier string
		var count int
		var avg float64
		if err := rows.Scan(&tier, &count, &avg); err != nil {
			return metrics, tiers, fmt.Errorf("failed to scan lead score row: %w", err)
		}
		metrics.TotalLeads += count
		weightedSum += avg * float64(count)

		switch tier {
		case scoring.TierHot:
			tiers.Hot = count
		case scoring.TierWarm:
			tiers.Warm = count
		case scoring.TierCold:
			tiers.Cold = count
		default:
			tiers.Unqualified += count
		}
	}
	if err := rows.Err(); err != nil {
		return metrics, tiers, fmt.Errorf("failed to iterate lead score rows: %w", err)
	}

	// Hot and warm leads count as qualified.
	metrics.QualifiedLeads = tiers.Hot + tiers.Warm
	if metrics.TotalLeads > 0 {
		metrics.AvgLeadScore = round1(weightedSum / float64(metrics.TotalLeads))
	}

	counts := map[string]int{}
	statusRows, err := e.db.Query(
		`SELECT status, COUNT(DISTINCT lead_id) FROM lead_status_events WHERE occurred_at >= ? GROUP BY status`,
		since,
	)
	if err != nil {
		return metrics, tiers, fmt.Errorf("failed to query status events: %w", err)
	}
	defer statusRows.Close()

	for statusRows.Next() {
		var status string
		var count int
		if err := statusRows.Scan(&status, &count); err != nil {
			return metrics, tiers, fmt.Errorf("failed to scan status row: %w", err)
		}
		counts[status] = count
	}
	if err := statusRows.Err(); err != nil {
		return metrics, tiers, fmt.Errorf("failed to iterate status rows: %w", err)
	}

	metrics.ContactedLeads = counts["contacted"]
	metrics.ConvertedLeads = counts["converted"]
	metrics.ConversionRate = rate(metrics.ConvertedLeads, metrics.ContactedLeads)
	metrics.ResponseRate = rate(counts["responded"], metrics.ContactedLeads)

	return metrics, tiers, nil
}

func (e *Engine) campaignPerformance() ([]dto.CampaignPerformance, error) {
	rows, err := e.db.Query(
		`SELECT campaign_name, total_sent, opens, clicks, responses, meetings_booked, deals_closed
		 FROM campaign_stats ORDER BY campaign_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign stats: %w", err)
	}
	defer rows.Close()

	var campaigns []dto.CampaignPerformance
	for rows.Next() {
		var c dto.CampaignPerformance
		if err := rows.Scan(&c.CampaignName, &c.TotalSent, &c.Opens, &c.Clicks,
			&c.Responses, &c.MeetingsBooked, &c.DealsClosed); err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		c.OpenRate = rate(c.Opens, c.TotalSent)
		c.ClickRate = rate(c.Clicks, c.TotalSent)
		c.ResponseRate = rate(c.Responses, c.TotalSent)
		c.ConversionRate = rate(c.DealsClosed, c.TotalSent)
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaign rows: %w", err)
	}

	return campaigns, nil
}

// rate returns part/whole as a percentage rounded to one decimal, or 0
// when the denominator is zero.
func rate(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
