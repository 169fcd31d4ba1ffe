package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port string

	// Persistence
	SupabaseURL     string
	SupabaseKey     string
	TasksDBPath     string
	AnalyticsDBPath string

	// Webhook authentication
	WebhookSecret string

	// Prospect discovery
	SerpAPIKey      string
	FirecrawlAPIKey string
	FirecrawlAPIURL string // Optional: custom Firecrawl API URL (leave empty for default)

	// LinkedIn prospect search (optional partner API)
	LinkedInAPIBaseURL string
	LinkedInAPIKey     string

	// Gemini extraction and cold email composition
	GoogleAPIKey string
	GeminiModel  string
	UseVertexAI  bool
	GCPProject   string
	GCPLocation  string

	// Outreach email delivery
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	SMTPFromEmail     string
	SMTPFromName      string
	MailMaxConcurrent int
	MailMinDelay      time.Duration

	// Background job schedules (5-field cron; empty disables the job)
	RescoreSchedule  string
	SnapshotSchedule string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port: port,

		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseKey:     getEnvWithFallback("SUPABASE_SECRET_KEY", "SUPABASE_KEY"),
		TasksDBPath:     getEnvOrDefault("TASKS_DB_PATH", "data/tasks.db"),
		AnalyticsDBPath: getEnvOrDefault("ANALYTICS_DB_PATH", "data/analytics.db"),

		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),

		SerpAPIKey:      os.Getenv("SERPAPI_KEY"),
		FirecrawlAPIKey: os.Getenv("FIRECRAWL_API_KEY"),
		FirecrawlAPIURL: os.Getenv("FIRECRAWL_API_URL"), // Optional

		LinkedInAPIBaseURL: os.Getenv("LINKEDIN_API_BASE_URL"),
		LinkedInAPIKey:     os.Getenv("LINKEDIN_API_KEY"),

		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		UseVertexAI:  os.Getenv("GOOGLE_GENAI_USE_VERTEXAI") == "true",
		GCPProject:   os.Getenv("GOOGLE_CLOUD_PROJECT"),
		GCPLocation:  os.Getenv("GOOGLE_CLOUD_LOCATION"),

		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		SMTPFromEmail:     os.Getenv("SMTP_FROM_EMAIL"),
		SMTPFromName:      os.Getenv("SMTP_FROM_NAME"),
		MailMaxConcurrent: getEnvInt("MAIL_MAX_CONCURRENT", 0),
		MailMinDelay:      getEnvDuration("MAIL_MIN_DELAY", 0),

		RescoreSchedule:  os.Getenv("RESCORE_SCHEDULE"),
		SnapshotSchedule: os.Getenv("SNAPSHOT_SCHEDULE"),
	}
}

// SMTPConfigured reports whether outreach email delivery can be enabled
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != "" && c.SMTPFromEmail != ""
}

// LinkedInConfigured reports whether the LinkedIn prospect API can be used
func (c *Config) LinkedInConfigured() bool {
	return c.LinkedInAPIBaseURL != "" && c.LinkedInAPIKey != ""
}

// getEnvWithFallback returns the primary env var's value, or the fallback
// var's value when the primary is unset or empty
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
