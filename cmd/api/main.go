package main

import (
	"log"

	"leadpilot/leadgen-backend/internal/analytics"
	"leadpilot/leadgen-backend/internal/api"
	"leadpilot/leadgen-backend/internal/config"
	"leadpilot/leadgen-backend/internal/handlers"
	"leadpilot/leadgen-backend/internal/mailer"
	"leadpilot/leadgen-backend/internal/scheduler"
	"leadpilot/leadgen-backend/internal/scoring"
	"leadpilot/leadgen-backend/internal/services"
	"leadpilot/leadgen-backend/internal/tasks"

	_ "leadpilot/leadgen-backend/docs" // Swagger generated docs
)

// @title LeadPilot API
// @version 1.0
// @description REST API for lead scoring, qualification and automated outreach. Scores leads against configurable rules and ideal customer profiles, discovers prospects via web search and LinkedIn, and sends rate-limited outreach campaigns.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @schemes http https
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// The scoring engine is pure computation and always available
	engine := scoring.NewEngine(nil)

	// Initialize the task tracker (local SQLite store)
	var tracker *tasks.Tracker
	if t, err := tasks.NewTracker(cfg.TasksDBPath); err != nil {
		log.Printf("Warning: Failed to initialize task tracker: %v", err)
		log.Printf("Continuing without background task tracking")
	} else {
		tracker = t
		defer tracker.Close()
		log.Printf("Task tracker initialized - task endpoints enabled (db: %s)", cfg.TasksDBPath)
	}

	// Initialize the analytics engine (local SQLite store)
	var analyticsEngine *analytics.Engine
	if a, err := analytics.NewEngine(cfg.AnalyticsDBPath); err != nil {
		log.Printf("Warning: Failed to initialize analytics engine: %v", err)
		log.Printf("Continuing without analytics reporting")
	} else {
		analyticsEngine = a
		defer analyticsEngine.Close()
		log.Printf("Analytics engine initialized - report endpoint enabled (db: %s)", cfg.AnalyticsDBPath)
	}

	// Initialize SupabaseHandler if credentials are configured
	var supabaseHandler *handlers.SupabaseHandler
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		var err error
		supabaseHandler, err = handlers.NewSupabaseHandler(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Printf("Warning: Failed to initialize SupabaseHandler: %v", err)
			log.Printf("Continuing without Supabase functionality")
		} else {
			log.Printf("SupabaseHandler initialized - database access enabled")
		}
	} else {
		log.Printf("SUPABASE_URL or SUPABASE_SECRET_KEY not set - database access disabled")
	}

	// Initialize FirecrawlHandler if API key is configured
	var firecrawlHandler *handlers.FirecrawlHandler
	if cfg.FirecrawlAPIKey != "" {
		var err error
		firecrawlHandler, err = handlers.NewFirecrawlHandler(cfg.FirecrawlAPIKey, cfg.FirecrawlAPIURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize FirecrawlHandler: %v", err)
			log.Printf("Continuing without website scraping functionality")
		} else {
			log.Printf("FirecrawlHandler initialized - website scraping enabled")
		}
	} else {
		log.Printf("FIRECRAWL_API_KEY not set - website scraping disabled")
	}

	// Initialize ExtractorHandler if Google API key or Vertex AI is configured
	var extractorHandler *handlers.ExtractorHandler
	if cfg.GoogleAPIKey != "" || cfg.UseVertexAI {
		var err error
		extractorHandler, err = handlers.NewExtractorHandler(handlers.ExtractorConfig{
			APIKey:      cfg.GoogleAPIKey,
			Model:       cfg.GeminiModel, // Uses GEMINI_MODEL env var, falls back to DefaultExtractorModel in handler
			UseVertexAI: cfg.UseVertexAI,
			GCPProject:  cfg.GCPProject,
			GCPLocation: cfg.GCPLocation,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize ExtractorHandler: %v", err)
			log.Printf("Continuing without firmographic extraction")
		} else {
			backend := "Google AI Studio"
			if cfg.UseVertexAI {
				backend = "Vertex AI"
			}
			model := cfg.GeminiModel
			if model == "" {
				model = handlers.DefaultExtractorModel
			}
			log.Printf("ExtractorHandler initialized - firmographic extraction enabled (backend: %s, model: %s)",
				backend, model)
		}
	} else {
		log.Printf("GOOGLE_API_KEY or Vertex AI not configured - firmographic extraction disabled")
	}

	// Initialize ColdEmailHandler if Google API key or Vertex AI is configured
	var coldEmailHandler *handlers.ColdEmailHandler
	if cfg.GoogleAPIKey != "" || cfg.UseVertexAI {
		var err error
		coldEmailHandler, err = handlers.NewColdEmailHandler(handlers.ColdEmailConfig{
			APIKey:      cfg.GoogleAPIKey,
			Model:       cfg.GeminiModel,
			UseVertexAI: cfg.UseVertexAI,
			GCPProject:  cfg.GCPProject,
			GCPLocation: cfg.GCPLocation,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize ColdEmailHandler: %v", err)
			log.Printf("Continuing without cold email generation")
		} else {
			log.Printf("ColdEmailHandler initialized - cold email generation enabled")
		}
	} else {
		log.Printf("GOOGLE_API_KEY or Vertex AI not configured - cold email generation disabled")
	}

	// Initialize ProspectSearchHandler if SerpAPI is configured
	var searchHandler *handlers.ProspectSearchHandler
	if cfg.SerpAPIKey != "" {
		searchHandler = handlers.NewProspectSearchHandler(cfg.SerpAPIKey)
		if firecrawlHandler != nil {
			searchHandler.SetFirecrawlHandler(firecrawlHandler)
		}
		if extractorHandler != nil {
			searchHandler.SetExtractorHandler(extractorHandler)
		}
		log.Printf("ProspectSearchHandler initialized - web prospect search enabled")
	} else {
		log.Printf("SERPAPI_KEY not set - web prospect search disabled")
	}

	// Initialize the LinkedIn searcher: the live partner API when
	// configured, otherwise the disabled variant that reports so
	var linkedinSearcher handlers.ProspectSearcher
	if cfg.LinkedInConfigured() {
		handler, err := handlers.NewLinkedInHandler(cfg.LinkedInAPIBaseURL, cfg.LinkedInAPIKey)
		if err != nil {
			log.Printf("Warning: Failed to initialize LinkedInHandler: %v", err)
			linkedinSearcher = handlers.NewDisabledProspectSearcher()
		} else {
			linkedinSearcher = handler
			log.Printf("LinkedInHandler initialized - LinkedIn prospect search enabled")
		}
	} else {
		linkedinSearcher = handlers.NewDisabledProspectSearcher()
		log.Printf("LINKEDIN_API_BASE_URL or LINKEDIN_API_KEY not set - LinkedIn prospect search disabled")
	}

	// Initialize the outreach mailer: live SMTP when configured, otherwise
	// the disabled sender so campaigns fail loudly instead of silently
	var sender mailer.Sender
	if cfg.SMTPConfigured() {
		smtp, err := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFromEmail, cfg.SMTPFromName)
		if err != nil {
			log.Printf("Warning: Failed to initialize SMTP sender: %v", err)
			sender = mailer.NewDisabledSender()
		} else {
			sender = smtp
			log.Printf("SMTP sender initialized - email delivery enabled (host: %s)", cfg.SMTPHost)
		}
	} else {
		sender = mailer.NewDisabledSender()
		log.Printf("SMTP not fully configured - email delivery disabled")
	}

	limiter := mailer.NewRateLimiter(cfg.MailMaxConcurrent, cfg.MailMinDelay)
	outreach, err := mailer.NewOutreach(sender, limiter)
	if err != nil {
		log.Fatalf("Failed to initialize outreach mailer: %v", err)
	}

	// Assemble router dependencies; processors require Supabase
	deps := api.Dependencies{
		ScoringEngine: engine,
		WebhookSecret: cfg.WebhookSecret,
		SearchHandler: searchHandler,
		LinkedIn:      linkedinSearcher,
		Analytics:     analyticsEngine,
		Tracker:       tracker,
	}

	var scoringProcessor *services.ScoringProcessor
	if supabaseHandler != nil {
		deps.ICPs = supabaseHandler

		scoringProcessor, err = services.NewScoringProcessor(engine, supabaseHandler, tracker, analyticsEngine)
		if err != nil {
			log.Printf("Warning: Failed to initialize ScoringProcessor: %v", err)
		} else {
			deps.ScoringProcessor = scoringProcessor
			deps.StoredScorer = scoringProcessor
			log.Printf("ScoringProcessor initialized - scoring job webhook enabled")
		}

		outreachProcessor, err := services.NewOutreachProcessor(supabaseHandler, outreach, coldEmailHandler, tracker, analyticsEngine)
		if err != nil {
			log.Printf("Warning: Failed to initialize OutreachProcessor: %v", err)
		} else {
			deps.OutreachProcessor = outreachProcessor
			log.Printf("OutreachProcessor initialized - campaign webhook enabled")
		}
	} else {
		log.Printf("Processors not initialized - webhook pipelines disabled (requires Supabase)")
	}

	// Schedule recurring background jobs
	sched := scheduler.New()
	if cfg.RescoreSchedule != "" && scoringProcessor != nil {
		if err := sched.Add("lead-rescore", cfg.RescoreSchedule, scheduler.RescoreJob(scoringProcessor, scheduler.DefaultRescoreBatchSize)); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	if cfg.SnapshotSchedule != "" && analyticsEngine != nil {
		if err := sched.Add("analytics-snapshot", cfg.SnapshotSchedule, scheduler.SnapshotJob(analyticsEngine, 1)); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	if jobs := sched.Jobs(); len(jobs) > 0 {
		sched.Start()
		defer sched.Stop()
	} else {
		log.Printf("No background jobs scheduled (RESCORE_SCHEDULE / SNAPSHOT_SCHEDULE not set or capabilities missing)")
	}

	// Setup router
	router := api.NewRouter(deps)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
