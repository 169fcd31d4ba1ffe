package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"leadpilot/leadgen-backend/internal/dto"
)

const (
	// DefaultExtractionTimeout is the timeout for extracting data from a single result
	DefaultExtractionTimeout = 30 * time.Second
	// MaxConcurrentExtractions limits how many extractions we run in parallel
	MaxConcurrentExtractions = 5
	// DefaultExtractorModel is the default Gemini model for firmographic extraction
	DefaultExtractorModel = "gemini-2.5-flash"
)

// FirmographicData contains structured company information extracted from
// scraped content. The field set mirrors the lead attributes the scoring
// engine consumes.
// @Description Company firmographics extracted from website content
type FirmographicData struct {
	// URL of the source website
	URL string `json:"url"`
	// Company name extracted from the website
	Company string `json:"company,omitempty"`
	// Industry the company operates in
	Industry string `json:"industry,omitempty"`
	// Company size bracket (1-10, 11-50, 51-200, 201-500, 500+)
	CompanySize string `json:"company_size,omitempty"`
	// Contact person name
	Contact string `json:"contact,omitempty"`
	// Contact person title (e.g., "CEO", "VP of Sales")
	ContactTitle string `json:"contact_title,omitempty"`
	// Email addresses found (primary first)
	Emails []string `json:"emails,omitempty"`
	// Phone numbers found (primary first)
	Phones []string `json:"phones,omitempty"`
	// Physical address if available
	Address string `json:"address,omitempty"`
	// Company location (city, state/country)
	Location string `json:"location,omitempty"`
	// Website (canonical URL)
	Website string `json:"website,omitempty"`
	// Social media links keyed by platform
	SocialMedia map[string]string `json:"social_media,omitempty"`
	// Success indicates whether extraction was successful
	Success bool `json:"success"`
	// Error contains error message if extraction failed
	Error string `json:"error,omitempty"`
	// ExtractedAt timestamp
	ExtractedAt time.Time `json:"extracted_at"`
}

// ToLead maps extracted firmographics onto a lead record ready for scoring
// and persistence
func (d *FirmographicData) ToLead(source string) dto.Lead {
	lead := dto.Lead{
		Name:        d.Contact,
		Company:     d.Company,
		CompanySize: d.CompanySize,
		Industry:    d.Industry,
		Title:       d.ContactTitle,
		Location:    d.Location,
		Address:     d.Address,
		Website:     d.Website,
		Source:      source,
	}
	if len(d.Emails) > 0 {
		lead.Email = d.Emails[0]
	}
	if len(d.Phones) > 0 {
		lead.Phone = d.Phones[0]
	}
	if d.SocialMedia != nil {
		lead.LinkedInURL = d.SocialMedia["linkedin"]
	}
	return lead
}

// ExtractorConfig holds configuration for the ExtractorHandler
type ExtractorConfig struct {
	// APIKey is the Google API key for Gemini (used with Google AI Studio backend)
	APIKey string
	// Model is the Gemini model to use (default: gemini-2.5-flash for speed)
	Model string
	// Timeout for extracting data from each result
	Timeout time.Duration
	// MaxConcurrent limits parallel extractions
	MaxConcurrent int
	// UseVertexAI enables Vertex AI backend instead of Google AI Studio
	UseVertexAI bool
	// GCPProject is the Google Cloud project ID (for Vertex AI backend)
	GCPProject string
	// GCPLocation is the Google Cloud location/region (for Vertex AI backend)
	GCPLocation string
}

// ExtractorHandler extracts firmographic data from scraped content using AI
type ExtractorHandler struct {
	config         ExtractorConfig
	agent          agent.Agent
	runner         *runner.Runner
	sessionService session.Service
}

// NewExtractorHandler creates a new ExtractorHandler instance
func NewExtractorHandler(config ExtractorConfig) (*ExtractorHandler, error) {
	// Check for Vertex AI configuration from env vars
	if os.Getenv("GOOGLE_GENAI_USE_VERTEXAI") == "true" {
		config.UseVertexAI = true
	}
	if config.GCPProject == "" {
		config.GCPProject = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if config.GCPLocation == "" {
		config.GCPLocation = os.Getenv("GOOGLE_CLOUD_LOCATION")
	}

	// Validate configuration based on backend
	if config.UseVertexAI {
		if config.GCPProject == "" {
			return nil, fmt.Errorf("GCP Project is required for Vertex AI (set GOOGLE_CLOUD_PROJECT env var)")
		}
		if config.GCPLocation == "" {
			return nil, fmt.Errorf("GCP Location is required for Vertex AI (set GOOGLE_CLOUD_LOCATION env var)")
		}
	} else {
		if config.APIKey == "" {
			config.APIKey = os.Getenv("GOOGLE_API_KEY")
		}
		if config.APIKey == "" {
			return nil, fmt.Errorf("Google API key is required (set GOOGLE_API_KEY env var)")
		}
	}

	// Set defaults
	if config.Model == "" {
		config.Model = DefaultExtractorModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultExtractionTimeout
	}
	if config.MaxConcurrent == 0 {
		config.MaxConcurrent = MaxConcurrentExtractions
	}

	ctx := context.Background()

	// Build client config based on backend
	var clientConfig *genai.ClientConfig
	if config.UseVertexAI {
		log.Printf("[ExtractorHandler] Initializing with Vertex AI backend (project: %s, location: %s, model: %s)",
			config.GCPProject, config.GCPLocation, config.Model)
		clientConfig = &genai.ClientConfig{
			Project:  config.GCPProject,
			Location: config.GCPLocation,
			Backend:  genai.BackendVertexAI,
		}
	} else {
		log.Printf("[ExtractorHandler] Initializing with Google AI Studio backend (model: %s)", config.Model)
		clientConfig = &genai.ClientConfig{
			APIKey:  config.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
	}

	// Create Gemini model
	model, err := gemini.NewModel(ctx, config.Model, clientConfig)
	if err != nil {
		log.Printf("[ExtractorHandler] Failed to create Gemini model: %v", err)
		return nil, fmt.Errorf("failed to create Gemini model: %w", err)
	}

	// Create LLM agent for firmographic extraction
	extractorAgent, err := llmagent.New(llmagent.Config{
		Name:        "firmographic_extractor_agent",
		Model:       model,
		Description: "An AI agent that extracts structured company firmographics from website content.",
		Instruction: buildExtractorInstruction(),
	})
	if err != nil {
		log.Printf("[ExtractorHandler] Failed to create agent: %v", err)
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	// Create session service and runner
	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        "firmographic_extractor",
		Agent:          extractorAgent,
		SessionService: sessionService,
	})
	if err != nil {
		log.Printf("[ExtractorHandler] Failed to create runner: %v", err)
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	log.Printf("[ExtractorHandler] Successfully initialized with model: %s", config.Model)

	return &ExtractorHandler{
		config:         config,
		agent:          extractorAgent,
		runner:         r,
		sessionService: sessionService,
	}, nil
}

// buildExtractorInstruction creates the instruction prompt for the extractor agent
func buildExtractorInstruction() string {
	return `You are a firmographic data extraction specialist. Your task is to extract structured company information from website content.

Given website content in markdown format, extract the following information:

1. **Company**: The official company/business name
2. **Industry**: The industry the company operates in (e.g., "SaaS", "Healthcare", "Consulting")
3. **CompanySize**: The employee count bracket, if stated or clearly implied. Use exactly one of: "1-10", "11-50", "51-200", "201-500", "500+"
4. **Contact**: Name of a contact person (preferably the owner, founder, or a key decision maker)
5. **ContactTitle**: The title of the contact person (e.g., "CEO", "VP of Sales")
6. **Emails**: All email addresses found (list the primary/contact email first)
7. **Phones**: All phone numbers found (list the primary/contact number first)
8. **Address**: Physical address if available
9. **Location**: City and state/country the company is based in
10. **Website**: The canonical website URL
11. **SocialMedia**: Social media profile URLs (LinkedIn, Facebook, Instagram, Twitter, etc.)

IMPORTANT RULES:
- Extract ONLY information that is explicitly present in the content
- Do NOT invent or guess information
- If information is not found, leave the field empty
- For emails and phones, extract ALL that you find
- For social media, extract the full URL

OUTPUT FORMAT:
You MUST respond with ONLY a valid JSON object in this exact format (no markdown, no code blocks, no explanations):
{
  "company": "Company Name",
  "industry": "SaaS",
  "company_size": "11-50",
  "contact": "Contact Person Name",
  "contact_title": "CEO",
  "emails": ["email1@example.com", "email2@example.com"],
  "phones": ["+1 555 0100", "+1 555 0101"],
  "address": "Full address if available",
  "location": "Austin, TX",
  "website": "https://www.example.com",
  "social_media": {
    "linkedin": "https://linkedin.com/company/example",
    "instagram": "https://instagram.com/example"
  }
}

If no information can be extracted, respond with:
{"company": "", "industry": "", "company_size": "", "contact": "", "contact_title": "", "emails": [], "phones": [], "address": "", "location": "", "website": "", "social_media": {}}`
}

// Extract extracts firmographic data from a single prospect result
func (h *ExtractorHandler) Extract(ctx context.Context, result ProspectResult) *FirmographicData {
	extracted := &FirmographicData{
		URL:         result.Link,
		Website:     result.Link,
		ExtractedAt: time.Now(),
	}

	// Skip if no scraped content
	if result.ScrapedContent == "" {
		extracted.Error = "no scraped content available"
		extracted.Success = false
		return extracted
	}

	// Build prompt
	prompt := h.buildPrompt(result)

	// Apply timeout
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	// Create user message
	userMessage := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	// Create session for this extraction
	userID := "system"
	createResp, err := h.sessionService.Create(ctx, &session.CreateRequest{
		AppName: "firmographic_extractor",
		UserID:  userID,
	})
	if err != nil {
		log.Printf("[ExtractorHandler] Failed to create session for %s: %v", result.Link, err)
		extracted.Error = fmt.Sprintf("failed to create session: %v", err)
		extracted.Success = false
		return extracted
	}
	sessionID := createResp.Session.ID()
	defer func() {
		// Clean up session after use
		_ = h.sessionService.Delete(ctx, &session.DeleteRequest{
			AppName:   "firmographic_extractor",
			UserID:    userID,
			SessionID: sessionID,
		})
	}()

	// Run the agent
	var responseText string
	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeNone,
	}

	log.Printf("[ExtractorHandler] Extracting firmographics for: %s (session: %s)", result.Link, sessionID)

	for event, err := range h.runner.Run(ctx, userID, sessionID, userMessage, runConfig) {
		if err != nil {
			log.Printf("[ExtractorHandler] Error during extraction for %s: %v", result.Link, err)
			extracted.Error = fmt.Sprintf("extraction failed: %v", err)
			extracted.Success = false
			return extracted
		}

		if event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.Text != "" {
					responseText += part.Text
				}
			}
		}
	}

	// Parse the response
	if err := parseFirmographicResponse(responseText, extracted); err != nil {
		log.Printf("[ExtractorHandler] Failed to parse response for %s: %v", result.Link, err)
	}

	// If the model couldn't name the company, fall back to the page title
	if extracted.Company == "" && result.Title != "" {
		extracted.Company = result.Title
	}

	// Fall back to the regex contacts when the model found none
	if result.Contacts != nil {
		if len(extracted.Emails) == 0 {
			extracted.Emails = result.Contacts.Emails
		}
		if len(extracted.Phones) == 0 {
			extracted.Phones = result.Contacts.Phones
		}
		if len(extracted.SocialMedia) == 0 {
			extracted.SocialMedia = result.Contacts.SocialMedia
		}
	}

	extracted.Success = true
	return extracted
}

// buildPrompt creates the extraction prompt for a single result
func (h *ExtractorHandler) buildPrompt(result ProspectResult) string {
	// Limit content length to avoid token limits
	content := result.ScrapedContent
	maxLen := 15000 // ~3750 tokens
	if len(content) > maxLen {
		content = content[:maxLen] + "\n\n[Content truncated...]"
	}

	return fmt.Sprintf(`Extract company firmographics from the following website content.

Website URL: %s
Website Title: %s

---
CONTENT:
%s
---

Extract all firmographic information and respond with ONLY a JSON object.`, result.Link, result.Title, content)
}

// firmographicPayload is the JSON shape the extractor agent is instructed
// to produce.
type firmographicPayload struct {
	Company      string            `json:"company"`
	Industry     string            `json:"industry"`
	CompanySize  string            `json:"company_size"`
	Contact      string            `json:"contact"`
	ContactTitle string            `json:"contact_title"`
	Emails       []string          `json:"emails"`
	Phones       []string          `json:"phones"`
	Address      string            `json:"address"`
	Location     string            `json:"location"`
	Website      string            `json:"website"`
	SocialMedia  map[string]string `json:"social_media"`
}

// parseFirmographicResponse parses the agent response into FirmographicData.
// Models sometimes wrap JSON in code fences or prose; only the outermost
// object is decoded.
func parseFirmographicResponse(response string, data *FirmographicData) error {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("no JSON object in response")
	}

	var payload firmographicPayload
	if err := json.Unmarshal([]byte(response[start:end+1]), &payload); err != nil {
		return fmt.Errorf("failed to decode extraction response: %w", err)
	}

	data.Company = payload.Company
	data.Industry = payload.Industry
	data.CompanySize = payload.CompanySize
	data.Contact = payload.Contact
	data.ContactTitle = payload.ContactTitle
	data.Emails = payload.Emails
	data.Phones = payload.Phones
	data.Address = payload.Address
	data.Location = payload.Location
	if payload.Website != "" {
		data.Website = payload.Website
	}
	if len(payload.SocialMedia) > 0 {
		data.SocialMedia = payload.SocialMedia
	}
	return nil
}

// ExtractFromResults extracts firmographics from multiple prospect results concurrently
func (h *ExtractorHandler) ExtractFromResults(ctx context.Context, results []ProspectResult) map[string]*FirmographicData {
	extractedMap := make(map[string]*FirmographicData)
	if len(results) == 0 {
		return extractedMap
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, h.config.MaxConcurrent)

	for i := range results {
		result := results[i]
		if result.ScrapedContent == "" {
			continue // Skip results without scraped content
		}

		wg.Add(1)
		go func(r ProspectResult) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			extracted := h.Extract(ctx, r)

			mu.Lock()
			extractedMap[r.Link] = extracted
			mu.Unlock()

			if extracted.Success {
				log.Printf("[ExtractorHandler] Extracted firmographics from: %s (Company: %s, Emails: %d, Phones: %d)",
					r.Link, extracted.Company, len(extracted.Emails), len(extracted.Phones))
			} else {
				log.Printf("[ExtractorHandler] Failed to extract from %s: %s", r.Link, extracted.Error)
			}
		}(result)
	}

	wg.Wait()
	return extractedMap
}
