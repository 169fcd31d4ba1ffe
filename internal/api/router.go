package api

import (
	"net/http"

	"leadpilot/leadgen-backend/internal/analytics"
	"leadpilot/leadgen-backend/internal/api/controllers"
	"leadpilot/leadgen-backend/internal/handlers"
	"leadpilot/leadgen-backend/internal/scoring"
	"leadpilot/leadgen-backend/internal/tasks"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies carries everything the router wires into controllers. The
// scoring engine and LinkedIn searcher are always set; the rest is optional
// and the matching routes respond 503 or are not registered.
type Dependencies struct {
	ScoringEngine     *scoring.Engine
	WebhookSecret     string
	ICPs              controllers.ICPStore
	StoredScorer      controllers.StoredLeadScorer
	ScoringProcessor  controllers.ScoringJobProcessor
	OutreachProcessor controllers.CampaignProcessor
	SearchHandler     *handlers.ProspectSearchHandler
	LinkedIn          handlers.ProspectSearcher
	Analytics         *analytics.Engine
	Tracker           *tasks.Tracker
}

// NewRouter creates and configures a new Gin router
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.Default() // Includes Logger and Recovery middleware

	// Initialize controllers
	scoreController := controllers.NewScoreController(deps.ScoringEngine, deps.ICPs, deps.StoredScorer)
	prospectController := controllers.NewProspectController(deps.SearchHandler, deps.LinkedIn)
	webhookController := controllers.NewWebhookController(deps.WebhookSecret, deps.ScoringProcessor, deps.OutreachProcessor)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/leads/score", scoreController.ScoreLead)
		v1.POST("/leads/score/batch", scoreController.ScoreBatch)
		v1.POST("/leads/:id/score", scoreController.ScoreStoredLead)

		v1.POST("/prospects/search", prospectController.Search)
		v1.POST("/prospects/linkedin", prospectController.SearchLinkedIn)

		if deps.Analytics != nil {
			analyticsController := controllers.NewAnalyticsController(deps.Analytics)
			v1.GET("/analytics/report", analyticsController.Report)
		}

		if deps.Tracker != nil {
			tasksController := controllers.NewTasksController(deps.Tracker)
			v1.GET("/tasks/active", tasksController.Active)
			v1.GET("/tasks/history", tasksController.History)
			v1.GET("/tasks/stats", tasksController.Stats)
		}
	}

	// Supabase database webhooks
	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/scoring-job-created", webhookController.HandleScoringJobCreated)
		webhooks.POST("/campaign-created", webhookController.HandleCampaignCreated)
	}

	return router
}
