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

	"google.golang.org/genai"

	"leadpilot/leadgen-backend/internal/dto"
)

const (
	// DefaultComposeTimeout is the timeout for composing a single email
	DefaultComposeTimeout = 30 * time.Second
	// MaxConcurrentCompositions limits how many compositions we run in parallel
	MaxConcurrentCompositions = 5
	// DefaultComposerModel is the default Gemini model for email composition
	DefaultComposerModel = "gemini-2.5-flash"
)

// ColdEmail is an AI-composed first-contact email for a lead
// @Description AI-generated cold email for first contact
type ColdEmail struct {
	// Subject line of the email
	Subject string `json:"subject,omitempty"`
	// Body text of the email
	Body string `json:"body,omitempty"`
	// Success indicates whether composition was successful
	Success bool `json:"success"`
	// Error contains error message if composition failed
	Error string `json:"error,omitempty"`
}

// ColdEmailConfig holds configuration for the ColdEmailHandler
type ColdEmailConfig struct {
	// APIKey is the Google API key for Gemini (used with Google AI Studio backend)
	APIKey string
	// Model is the Gemini model to use
	Model string
	// Timeout for composing each email
	Timeout time.Duration
	// MaxConcurrent limits parallel compositions
	MaxConcurrent int
	// UseVertexAI enables Vertex AI backend instead of Google AI Studio
	UseVertexAI bool
	// GCPProject is the Google Cloud project ID (for Vertex AI backend)
	GCPProject string
	// GCPLocation is the Google Cloud location/region (for Vertex AI backend)
	GCPLocation string
}

// ColdEmailHandler composes personalized cold emails using Gemini
type ColdEmailHandler struct {
	config ColdEmailConfig
	client *genai.Client
}

// NewColdEmailHandler creates a new ColdEmailHandler instance
func NewColdEmailHandler(config ColdEmailConfig) (*ColdEmailHandler, error) {
	if os.Getenv("GOOGLE_GENAI_USE_VERTEXAI") == "true" {
		config.UseVertexAI = true
	}
	if config.GCPProject == "" {
		config.GCPProject = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if config.GCPLocation == "" {
		config.GCPLocation = os.Getenv("GOOGLE_CLOUD_LOCATION")
	}

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

	if config.Model == "" {
		config.Model = DefaultComposerModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultComposeTimeout
	}
	if config.MaxConcurrent == 0 {
		config.MaxConcurrent = MaxConcurrentCompositions
	}

	ctx := context.Background()

	var clientConfig *genai.ClientConfig
	if config.UseVertexAI {
		log.Printf("[ColdEmailHandler] Initializing with Vertex AI backend (project: %s, location: %s, model: %s)",
			config.GCPProject, config.GCPLocation, config.Model)
		clientConfig = &genai.ClientConfig{
			Project:  config.GCPProject,
			Location: config.GCPLocation,
			Backend:  genai.BackendVertexAI,
		}
	} else {
		log.Printf("[ColdEmailHandler] Initializing with Google AI Studio backend (model: %s)", config.Model)
		clientConfig = &genai.ClientConfig{
			APIKey:  config.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		log.Printf("[ColdEmailHandler] Failed to create genai client: %v", err)
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	log.Printf("[ColdEmailHandler] Successfully initialized with model: %s", config.Model)

	return &ColdEmailHandler{
		config: config,
		client: client,
	}, nil
}

// Compose writes a personalized cold email for one lead
func (h *ColdEmailHandler) Compose(ctx context.Context, lead dto.Lead) *ColdEmail {
	email := &ColdEmail{}

	if lead.Company == "" && lead.Name == "" {
		email.Error = "lead has no company or contact name to personalize with"
		return email
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	prompt := buildColdEmailPrompt(lead)

	resp, err := h.client.Models.GenerateContent(ctx, h.config.Model, genai.Text(prompt), nil)
	if err != nil {
		log.Printf("[ColdEmailHandler] Composition failed for %s: %v", lead.Company, err)
		email.Error = fmt.Sprintf("composition failed: %v", err)
		return email
	}

	if err := parseColdEmailResponse(resp.Text(), email); err != nil {
		log.Printf("[ColdEmailHandler] Failed to parse response for %s: %v", lead.Company, err)
		email.Error = err.Error()
		return email
	}

	email.Success = true
	log.Printf("[ColdEmailHandler] Composed email for %s: subject=%q", lead.Company, email.Subject)
	return email
}

// ComposeForLeads composes emails for multiple leads concurrently.
// The returned slice keeps the order of the input leads.
func (h *ColdEmailHandler) ComposeForLeads(ctx context.Context, leads []dto.Lead) []*ColdEmail {
	if len(leads) == 0 {
		return []*ColdEmail{}
	}

	emails := make([]*ColdEmail, len(leads))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, h.config.MaxConcurrent)

	for i := range leads {
		wg.Add(1)
		go func(index int, lead dto.Lead) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			emails[index] = h.Compose(ctx, lead)
		}(i, leads[i])
	}

	wg.Wait()
	return emails
}

func buildColdEmailPrompt(lead dto.Lead) string {
	var sb strings.Builder
	sb.WriteString("Write a short, personalized cold outreach email for the following lead.\n\n")
	sb.WriteString(fmt.Sprintf("Company: %s\n", lead.Company))
	if lead.Name != "" {
		sb.WriteString(fmt.Sprintf("Contact: %s\n", lead.Name))
	}
	if lead.Title != "" {
		sb.WriteString(fmt.Sprintf("Title: %s\n", lead.Title))
	}
	if lead.Industry != "" {
		sb.WriteString(fmt.Sprintf("Industry: %s\n", lead.Industry))
	}
	if lead.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", lead.Location))
	}
	sb.WriteString(`
The email offers AI-powered lead generation services. Keep it under 150 words, friendly and concrete, with a single clear call to action (a 15-minute call). Do not use placeholder brackets; write complete, ready-to-send text signed "Best regards".

OUTPUT FORMAT:
Respond with ONLY a valid JSON object (no markdown, no code blocks):
{"subject": "Subject line", "body": "Full email body"}`)
	return sb.String()
}

// parseColdEmailResponse decodes the model response into the email. Code
// fences and surrounding prose are tolerated; only the outermost JSON
// object is decoded.
func parseColdEmailResponse(response string, email *ColdEmail) error {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("no JSON object in response")
	}

	var payload struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), &payload); err != nil {
		return fmt.Errorf("failed to decode composition response: %w", err)
	}
	if payload.Subject == "" || payload.Body == "" {
		return fmt.Errorf("composition response missing subject or body")
	}

	email.Subject = payload.Subject
	email.Body = payload.Body
	return nil
}
