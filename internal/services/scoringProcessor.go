// Package services orchestrates the handlers into the background pipelines
// triggered by webhooks and the scheduler.
package services

import (
	"context"
	"fmt"
	"log"

	"leadpilot/leadgen-backend/internal/analytics"
	"leadpilot/leadgen-backend/internal/dto"
	"leadpilot/leadgen-backend/internal/handlers"
	"leadpilot/leadgen-backend/internal/scoring"
	"leadpilot/leadgen-backend/internal/tasks"
)

// ScoringProcessor scores every lead attached to a scoring job and persists
// the results. The engine is required; supabase, tracker and analytics are
// optional capabilities that are skipped when nil.
type ScoringProcessor struct {
	engine    *scoring.Engine
	supabase  *handlers.SupabaseHandler
	tracker   *tasks.Tracker
	analytics *analytics.Engine
}

// NewScoringProcessor creates a new ScoringProcessor instance
func NewScoringProcessor(
	engine *scoring.Engine,
	supabase *handlers.SupabaseHandler,
	tracker *tasks.Tracker,
	analyticsEngine *analytics.Engine,
) (*ScoringProcessor, error) {
	if engine == nil {
		return nil, fmt.Errorf("scoring engine is required")
	}
	if supabase == nil {
		return nil, fmt.Errorf("supabase handler is required")
	}

	log.Printf("[ScoringProcessor] Initialized: tracker_enabled=%v, analytics_enabled=%v",
		tracker != nil, analyticsEngine != nil)

	return &ScoringProcessor{
		engine:    engine,
		supabase:  supabase,
		tracker:   tracker,
		analytics: analyticsEngine,
	}, nil
}

// ProcessJob processes a scoring job in the background. Each lead's score
// is persisted immediately after computation so progress is visible while
// the job runs.
func (p *ScoringProcessor) ProcessJob(ctx context.Context, job *dto.ScoringJob) {
	log.Printf("[ScoringProcessor] Starting job processing: id=%s, user_id=%s", job.ID, job.UserID)

	task := p.trackStart(tasks.TypeLeadQualification,
		fmt.Sprintf("Scoring leads for job %s", job.ID),
		map[string]interface{}{"job_id": job.ID, "user_id": job.UserID})

	// 1. Update status to "processing"
	if err := p.supabase.UpdateJobStatus(job.ID, "processing", nil, nil); err != nil {
		log.Printf("[ScoringProcessor] Failed to update job status to processing: %v", err)
		p.failJob(job.ID, task, fmt.Sprintf("Failed to update status: %v", err))
		return
	}

	// 2. Fetch ICP if icp_id is provided. Scoring falls back to the
	// default fit score when no profile is configured.
	var icp *dto.ICP
	if job.ICPID != nil && *job.ICPID != "" {
		var err error
		icp, err = p.supabase.GetICP(*job.ICPID)
		if err != nil {
			log.Printf("[ScoringProcessor] Failed to get ICP: %v", err)
			p.failJob(job.ID, task, fmt.Sprintf("Failed to get ICP: %v", err))
			return
		}
	}

	// 3. Fetch the job's leads
	leads, err := p.supabase.GetLeadsForJob(job.ID)
	if err != nil {
		log.Printf("[ScoringProcessor] Failed to get leads: %v", err)
		p.failJob(job.ID, task, fmt.Sprintf("Failed to get leads: %v", err))
		return
	}
	if len(leads) == 0 {
		log.Printf("[ScoringProcessor] Job %s has no leads to score", job.ID)
		zero := 0
		_ = p.supabase.UpdateJobStatus(job.ID, "completed", &zero, nil)
		p.trackComplete(task, map[string]interface{}{"leads_scored": 0})
		return
	}

	// 4. Score the batch
	scoringLeads := make([]scoring.Lead, len(leads))
	for i := range leads {
		scoringLeads[i] = leads[i].ToScoringLead()
	}
	scores := p.engine.ScoreBatch(scoringLeads, icp.ToScoringICP())

	// 5. Persist each result and record analytics
	leadsScored := 0
	for i, score := range scores {
		lead := leads[i]
		status := p.engine.QualificationStatus(score.TotalScore)

		record := &dto.LeadScoreRecord{
			LeadID:              lead.ID,
			JobID:               job.ID,
			TotalScore:          score.TotalScore,
			EmailScore:          score.EmailScore,
			CompanyScore:        score.CompanyScore,
			EngagementScore:     score.EngagementScore,
			FitScore:            score.FitScore,
			QualificationStatus: status,
			Factors:             score.Factors,
			Recommendations:     score.Recommendations,
		}
		if err := p.supabase.InsertLeadScore(record); err != nil {
			log.Printf("[ScoringProcessor] Failed to persist score for lead %s: %v", lead.ID, err)
			continue
		}

		if err := p.supabase.UpdateLeadQualification(lead.ID, score.TotalScore, status); err != nil {
			log.Printf("[ScoringProcessor] Failed to update qualification for lead %s: %v", lead.ID, err)
		}

		if p.analytics != nil {
			if err := p.analytics.RecordScore(lead.ID, score.TotalScore, status); err != nil {
				log.Printf("[ScoringProcessor] Failed to record analytics for lead %s: %v", lead.ID, err)
			}
		}

		leadsScored++

		// Real-time progress on both the job row and the task
		_ = p.supabase.UpdateJobStatus(job.ID, "processing", &leadsScored, nil)
		p.trackProgress(task, leadsScored, len(leads))
	}

	// 6. Update job to completed
	if err := p.supabase.UpdateJobStatus(job.ID, "completed", &leadsScored, nil); err != nil {
		log.Printf("[ScoringProcessor] Failed to update job status to completed: %v", err)
		return
	}

	p.trackComplete(task, map[string]interface{}{
		"leads_scored": leadsScored,
		"lead_count":   len(leads),
	})

	log.Printf("[ScoringProcessor] Job completed: id=%s, leads_scored=%d/%d", job.ID, leadsScored, len(leads))
}

// ScoreStoredLead scores one stored lead on demand and persists the result
func (p *ScoringProcessor) ScoreStoredLead(leadID string, icpID string) (*dto.ScoreResponse, error) {
	lead, err := p.supabase.GetLeadByID(leadID)
	if err != nil {
		return nil, err
	}

	var icp *dto.ICP
	if icpID != "" {
		icp, err = p.supabase.GetICP(icpID)
		if err != nil {
			return nil, err
		}
	}

	score := p.engine.ScoreLead(lead.ToScoringLead(), icp.ToScoringICP())
	status := p.engine.QualificationStatus(score.TotalScore)

	record := &dto.LeadScoreRecord{
		LeadID:              lead.ID,
		TotalScore:          score.TotalScore,
		EmailScore:          score.EmailScore,
		CompanyScore:        score.CompanyScore,
		EngagementScore:     score.EngagementScore,
		FitScore:            score.FitScore,
		QualificationStatus: status,
		Factors:             score.Factors,
		Recommendations:     score.Recommendations,
	}
	if err := p.supabase.InsertLeadScore(record); err != nil {
		return nil, err
	}
	if err := p.supabase.UpdateLeadQualification(lead.ID, score.TotalScore, status); err != nil {
		log.Printf("[ScoringProcessor] Failed to update qualification for lead %s: %v", lead.ID, err)
	}
	if p.analytics != nil {
		_ = p.analytics.RecordScore(lead.ID, score.TotalScore, status)
	}

	response := dto.NewScoreResponse(p.engine, lead.ID, score)
	return &response, nil
}

// ScoreUnscoredLeads scores leads that have never been scored, in one
// batch of up to limit. It is the scheduler's periodic catch-up pass and
// returns the number of leads scored.
func (p *ScoringProcessor) ScoreUnscoredLeads(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}

	leads, err := p.supabase.GetUnscoredLeads(limit)
	if err != nil {
		return 0, fmt.Errorf("failed to get unscored leads: %w", err)
	}
	if len(leads) == 0 {
		return 0, nil
	}

	scoringLeads := make([]scoring.Lead, len(leads))
	for i := range leads {
		scoringLeads[i] = leads[i].ToScoringLead()
	}
	scores := p.engine.ScoreBatch(scoringLeads, nil)

	scored := 0
	for i, score := range scores {
		if err := ctx.Err(); err != nil {
			return scored, err
		}

		lead := leads[i]
		status := p.engine.QualificationStatus(score.TotalScore)

		record := &dto.LeadScoreRecord{
			LeadID:              lead.ID,
			TotalScore:          score.TotalScore,
			EmailScore:          score.EmailScore,
			CompanyScore:        score.CompanyScore,
			EngagementScore:     score.EngagementScore,
			FitScore:            score.FitScore,
			QualificationStatus: status,
			Factors:             score.Factors,
			Recommendations:     score.Recommendations,
		}
		if err := p.supabase.InsertLeadScore(record); err != nil {
			log.Printf("[ScoringProcessor] Failed to persist catch-up score for lead %s: %v", lead.ID, err)
			continue
		}
		if err := p.supabase.UpdateLeadQualification(lead.ID, score.TotalScore, status); err != nil {
			log.Printf("[ScoringProcessor] Failed to update qualification for lead %s: %v", lead.ID, err)
		}
		if p.analytics != nil {
			_ = p.analytics.RecordScore(lead.ID, score.TotalScore, status)
		}
		scored++
	}

	log.Printf("[ScoringProcessor] Catch-up scoring pass complete: leads_scored=%d", scored)
	return scored, nil
}

// failJob marks a job as failed with an error message
func (p *ScoringProcessor) failJob(jobID string, task *tasks.Task, errorMessage string) {
	log.Printf("[ScoringProcessor] Job failed: id=%s, error=%s", jobID, errorMessage)
	if err := p.supabase.UpdateJobStatus(jobID, "failed", nil, &errorMessage); err != nil {
		log.Printf("[ScoringProcessor] Failed to update job status to failed: %v", err)
	}
	if p.tracker != nil && task != nil {
		_ = p.tracker.Fail(task.ID, errorMessage)
	}
}

func (p *ScoringProcessor) trackStart(taskType tasks.Type, description string, metadata map[string]interface{}) *tasks.Task {
	if p.tracker == nil {
		return nil
	}
	task, err := p.tracker.Create(taskType, description, metadata)
	if err != nil {
		log.Printf("[ScoringProcessor] Failed to create task: %v", err)
		return nil
	}
	_ = p.tracker.Start(task.ID)
	return task
}

func (p *ScoringProcessor) trackProgress(task *tasks.Task, done, total int) {
	if p.tracker == nil || task == nil || total == 0 {
		return
	}
	progress := done * 100 / total
	_ = p.tracker.UpdateProgress(task.ID, progress, fmt.Sprintf("Scored %d/%d leads", done, total))
}

func (p *ScoringProcessor) trackComplete(task *tasks.Task, result map[string]interface{}) {
	if p.tracker == nil || task == nil {
		return
	}
	_ = p.tracker.Complete(task.ID, result)
}
