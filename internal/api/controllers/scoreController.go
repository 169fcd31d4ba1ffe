package controllers

import (
	"net/http"

	"leadpilot/leadgen-backend/internal/dto"
	"leadpilot/leadgen-backend/internal/scoring"

	"github.com/gin-gonic/gin"
)

// ICPStore loads stored ideal customer profiles by ID
type ICPStore interface {
	GetICP(id string) (*dto.ICP, error)
}

// StoredLeadScorer scores a lead already present in the database and
// persists the result
type StoredLeadScorer interface {
	ScoreStoredLead(leadID string, icpID string) (*dto.ScoreResponse, error)
}

// ScoreController handles lead scoring HTTP requests
type ScoreController struct {
	engine *scoring.Engine
	icps   ICPStore
	stored StoredLeadScorer
}

// NewScoreController creates a new ScoreController instance. icps and
// stored may be nil when no database is configured; scoring inline leads
// still works, only icp_id lookups and stored-lead scoring respond 503.
func NewScoreController(engine *scoring.Engine, icps ICPStore, stored StoredLeadScorer) *ScoreController {
	return &ScoreController{
		engine: engine,
		icps:   icps,
		stored: stored,
	}
}

// resolveICP picks the inline ICP when present, otherwise loads icpID from
// storage. Returns false after writing the error response.
func (ctrl *ScoreController) resolveICP(c *gin.Context, inline *dto.ICP, icpID string) (*dto.ICP, bool) {
	if inline != nil {
		return inline, true
	}
	if icpID == "" {
		return nil, true
	}
	if ctrl.icps == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "ICP lookup requires a configured database",
		})
		return nil, false
	}
	icp, err := ctrl.icps.GetICP(icpID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Unknown icp_id: " + icpID,
		})
		return nil, false
	}
	return icp, true
}

// ScoreLead godoc
// @Summary      Score a single lead
// @Description  Compute email, company, engagement and fit sub-scores for one lead and return the qualification tier with recommended next actions
// @Tags         scoring
// @Accept       json
// @Produce      json
// @Param        request body dto.ScoreRequest true "Lead and optional ICP"
// @Success      200 {object} dto.ScoreResponse "Scoring result"
// @Failure      400 {object} dto.ErrorResponse "Bad request - validation error"
// @Failure      503 {object} dto.ErrorResponse "ICP lookup unavailable"
// @Router       /leads/score [post]
func (ctrl *ScoreController) ScoreLead(c *gin.Context) {
	var req dto.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	icp, ok := ctrl.resolveICP(c, req.ICP, req.ICPID)
	if !ok {
		return
	}

	score := ctrl.engine.ScoreLead(req.Lead.ToScoringLead(), icp.ToScoringICP())
	c.JSON(http.StatusOK, dto.NewScoreResponse(ctrl.engine, req.Lead.ID, score))
}

// ScoreBatch godoc
// @Summary      Score a batch of leads
// @Description  Score several leads concurrently against the same ICP; results keep the request order
// @Tags         scoring
// @Accept       json
// @Produce      json
// @Param        request body dto.BatchScoreRequest true "Leads and optional ICP"
// @Success      200 {object} dto.BatchScoreResponse "Batch scoring results"
// @Failure      400 {object} dto.ErrorResponse "Bad request - validation error"
// @Failure      503 {object} dto.ErrorResponse "ICP lookup unavailable"
// @Router       /leads/score/batch [post]
func (ctrl *ScoreController) ScoreBatch(c *gin.Context) {
	var req dto.BatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	icp, ok := ctrl.resolveICP(c, req.ICP, req.ICPID)
	if !ok {
		return
	}

	scoringLeads := make([]scoring.Lead, len(req.Leads))
	for i := range req.Leads {
		scoringLeads[i] = req.Leads[i].ToScoringLead()
	}
	scores := ctrl.engine.ScoreBatch(scoringLeads, icp.ToScoringICP())

	results := make([]dto.ScoreResponse, len(scores))
	for i, score := range scores {
		results[i] = dto.NewScoreResponse(ctrl.engine, req.Leads[i].ID, score)
	}

	c.JSON(http.StatusOK, dto.BatchScoreResponse{
		TotalLeads: len(results),
		Results:    results,
	})
}

// ScoreStoredLead godoc
// @Summary      Score a stored lead
// @Description  Load a lead from the database, score it and persist the result onto the lead row
// @Tags         scoring
// @Produce      json
// @Param        id path string true "Lead ID"
// @Param        icp_id query string false "ICP ID to score against"
// @Success      200 {object} dto.ScoreResponse "Scoring result"
// @Failure      404 {object} dto.ErrorResponse "Lead not found"
// @Failure      503 {object} dto.ErrorResponse "Database not configured"
// @Router       /leads/{id}/score [post]
func (ctrl *ScoreController) ScoreStoredLead(c *gin.Context) {
	if ctrl.stored == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Stored lead scoring requires a configured database",
		})
		return
	}

	response, err := ctrl.stored.ScoreStoredLead(c.Param("id"), c.Query("icp_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
