package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"leadpilot/leadgen-backend/internal/dto"
)

// ErrLinkedInNotConfigured is returned by the disabled searcher when no
// LinkedIn API credentials were provided at startup.
var ErrLinkedInNotConfigured = errors.New("linkedin prospect search is not configured")

// ProspectQuery describes who to search for on LinkedIn
type ProspectQuery struct {
	// Free-text keywords (e.g., "lead generation")
	Keywords string `json:"keywords,omitempty"`
	// Job title to filter on (e.g., "VP of Sales")
	Title string `json:"title,omitempty"`
	// Industry to filter on
	Industry string `json:"industry,omitempty"`
	// Location to filter on
	Location string `json:"location,omitempty"`
	// Maximum number of profiles to return
	Limit int `json:"limit,omitempty"`
}

// ProspectProfile is a person found through LinkedIn search, carrying the
// engagement signals the scoring engine consumes
type ProspectProfile struct {
	Name              string `json:"name"`
	Title             string `json:"title,omitempty"`
	Company           string `json:"company,omitempty"`
	Industry          string `json:"industry,omitempty"`
	Location          string `json:"location,omitempty"`
	ProfileURL        string `json:"profile_url,omitempty"`
	ActivityLevel     string `json:"activity_level,omitempty"`
	MutualConnections int    `json:"mutual_connections,omitempty"`
	ProfileViews      int    `json:"profile_views,omitempty"`
}

// ToLead maps a profile onto a lead record ready for scoring
func (p *ProspectProfile) ToLead() dto.Lead {
	return dto.Lead{
		Name:              p.Name,
		Company:           p.Company,
		Title:             p.Title,
		Industry:          p.Industry,
		Location:          p.Location,
		LinkedInURL:       p.ProfileURL,
		ActivityLevel:     p.ActivityLevel,
		MutualConnections: p.MutualConnections,
		ProfileViews:      p.ProfileViews,
		Source:            "linkedin",
	}
}

// ProspectSearcher finds prospect profiles. The live implementation talks
// to a LinkedIn data provider; the disabled variant reports the missing
// capability instead of fabricating profiles.
type ProspectSearcher interface {
	SearchProspects(ctx context.Context, query ProspectQuery) ([]ProspectProfile, error)
}

// LinkedInHandler is the live ProspectSearcher backed by a LinkedIn data
// provider's REST API
type LinkedInHandler struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewLinkedInHandler creates a live LinkedIn prospect searcher.
// baseURL is the provider's API root; apiKey is sent as a Bearer token.
func NewLinkedInHandler(baseURL, apiKey string) (*LinkedInHandler, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("linkedin API base URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("linkedin API key is required")
	}

	log.Printf("[LinkedInHandler] Initializing with base URL: %s", baseURL)

	return &LinkedInHandler{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// SearchProspects queries the provider's people-search endpoint
func (h *LinkedInHandler) SearchProspects(ctx context.Context, query ProspectQuery) ([]ProspectProfile, error) {
	params := url.Values{}
	if query.Keywords != "" {
		params.Set("keywords", query.Keywords)
	}
	if query.Title != "" {
		params.Set("title", query.Title)
	}
	if query.Industry != "" {
		params.Set("industry", query.Industry)
	}
	if query.Location != "" {
		params.Set("location", query.Location)
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	requestURL := fmt.Sprintf("%s/v1/people/search?%s", h.baseURL, params.Encode())
	log.Printf("[LinkedInHandler] SearchProspects: keywords=%q, title=%q, location=%q", query.Keywords, query.Title, query.Location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("linkedin search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("linkedin search returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Results []ProspectProfile `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode linkedin search response: %w", err)
	}

	log.Printf("[LinkedInHandler] SearchProspects returned %d profiles", len(payload.Results))
	return payload.Results, nil
}

// DisabledProspectSearcher is wired in when no LinkedIn credentials are
// configured. Every search fails with ErrLinkedInNotConfigured.
type DisabledProspectSearcher struct{}

// NewDisabledProspectSearcher creates the disabled searcher variant.
func NewDisabledProspectSearcher() *DisabledProspectSearcher {
	return &DisabledProspectSearcher{}
}

// SearchProspects always fails with ErrLinkedInNotConfigured.
func (s *DisabledProspectSearcher) SearchProspects(ctx context.Context, query ProspectQuery) ([]ProspectProfile, error) {
	return nil, ErrLinkedInNotConfigured
}
