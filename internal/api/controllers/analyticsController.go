package controllers

import (
	"net/http"
	"strconv"

	"leadpilot/leadgen-backend/internal/analytics"
	"leadpilot/leadgen-backend/internal/dto"

	"github.com/gin-gonic/gin"
)

const defaultReportPeriodDays = 30

// AnalyticsController serves lead and campaign performance reports
type AnalyticsController struct {
	engine *analytics.Engine
}

// NewAnalyticsController creates a new AnalyticsController instance
func NewAnalyticsController(engine *analytics.Engine) *AnalyticsController {
	return &AnalyticsController{engine: engine}
}

// Report godoc
// @Summary      Lead generation performance report
// @Description  Aggregate lead metrics, tier distribution and per-campaign engagement over the requested period
// @Tags         analytics
// @Produce      json
// @Param        period_days query int false "Reporting window in days (default 30)"
// @Success      200 {object} dto.AnalyticsReport "Performance report"
// @Failure      400 {object} dto.ErrorResponse "Invalid period"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /analytics/report [get]
func (ctrl *AnalyticsController) Report(c *gin.Context) {
	periodDays := defaultReportPeriodDays
	if raw := c.Query("period_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "period_days must be a positive integer",
			})
			return
		}
		periodDays = parsed
	}

	report, err := ctrl.engine.Report(periodDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
