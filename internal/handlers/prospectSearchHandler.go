package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	g "github.com/serpapi/google-search-results-golang"
)

const (
	// ResultsPerPage is the number of results SerpAPI returns per page
	ResultsPerPage = 10
	// MaxResultsPerRequest is the maximum results we allow per request
	MaxResultsPerRequest = 100
	// MaxPagesToFetch is the maximum number of pages we'll fetch to prevent excessive API calls
	MaxPagesToFetch = 10
)

// ProspectSearchHandler discovers prospect companies through Google search
// and enriches each result with scraped content, contacts and firmographics
type ProspectSearchHandler struct {
	apiKey           string
	firecrawlHandler *FirecrawlHandler
	extractorHandler *ExtractorHandler
}

// ProspectSearchParams configures one prospect discovery search
type ProspectSearchParams struct {
	Q              string
	Location       string
	Hl             string   // language used in the query
	Gl             string   // country to use for the search
	ExcludeDomains []string // domains to exclude from search results (e.g., "instagram.com", "linkedin.com")
	Num            int      // total number of results to return (will fetch multiple pages if needed)
	Start          int      // result offset for pagination (0 = first page)
}

// ProspectResult represents a single discovered prospect website
// @Description A single prospect company found through search
type ProspectResult struct {
	// Position of the result across all fetched pages
	Position int `json:"position" example:"1"`
	// Title of the search result
	Title string `json:"title" example:"Acme Corp - B2B Lead Generation Software"`
	// URL of the prospect's website
	Link string `json:"link" example:"https://www.acmecorp.com/"`
	// Displayed URL shown in search results
	DisplayedLink string `json:"displayed_link" example:"www.acmecorp.com"`
	// Snippet/description of the search result
	Snippet string `json:"snippet" example:"Acme Corp builds lead generation software for B2B sales teams."`
	// ScrapedContent is the markdown content scraped from the website homepage (populated by FirecrawlHandler)
	ScrapedContent string `json:"scraped_content,omitempty"`
	// ScrapeError contains error message if scraping failed
	ScrapeError string `json:"scrape_error,omitempty"`
	// Contacts found in the scraped content
	Contacts *ContactInfo `json:"contacts,omitempty"`
	// Firmographics contains structured company data extracted by the ExtractorHandler
	Firmographics *FirmographicData `json:"firmographics,omitempty"`
}

// Pagination represents the pagination info from SerpAPI
// @Description Pagination information for search results
type Pagination struct {
	// Current page number
	Current int `json:"current" example:"1"`
	// URL for the next page of results
	Next string `json:"next,omitempty" example:"https://serpapi.com/search.json?engine=google&start=10"`
}

// ProspectSearchResponse contains the discovered prospects and pagination info
// @Description Response containing discovered prospects and pagination info
type ProspectSearchResponse struct {
	// Total number of results returned
	TotalResults int `json:"total_results" example:"50"`
	// Number of pages fetched to get these results
	PagesFetched int `json:"pages_fetched" example:"5"`
	// List of discovered prospects
	Results []ProspectResult `json:"results"`
	// Pagination information (for the last page fetched)
	Pagination Pagination `json:"serpapi_pagination"`
}

// SerpAPILocation represents the location response from SerpAPI
type SerpAPILocation struct {
	ID             string    `json:"id"`
	GoogleID       int       `json:"google_id"`
	GoogleParentID int       `json:"google_parent_id"`
	Name           string    `json:"name"`
	CanonicalName  string    `json:"canonical_name"`
	CountryCode    string    `json:"country_code"`
	TargetType     string    `json:"target_type"`
	Reach          int       `json:"reach"`
	GPS            []float64 `json:"gps"`
	Keys           []string  `json:"keys"`
}

func NewProspectSearchHandler(apiKey string) *ProspectSearchHandler {
	return &ProspectSearchHandler{
		apiKey: apiKey,
	}
}

// SetFirecrawlHandler sets the FirecrawlHandler for automatic website scraping
// When set, the Search method will automatically scrape each result's website
func (h *ProspectSearchHandler) SetFirecrawlHandler(handler *FirecrawlHandler) {
	h.firecrawlHandler = handler
}

// SetExtractorHandler sets the ExtractorHandler for firmographic extraction
// When set, the Search method will automatically extract structured company
// data from scraped content
func (h *ProspectSearchHandler) SetExtractorHandler(handler *ExtractorHandler) {
	h.extractorHandler = handler
}

// getCanonicalLocation fetches the canonical location name from SerpAPI
func (h *ProspectSearchHandler) getCanonicalLocation(location string) (string, error) {
	// URL encode the location parameter
	encodedLocation := url.QueryEscape(location)
	requestURL := fmt.Sprintf("https://serpapi.com/locations.json?q=%s&limit=1", encodedLocation)

	log.Printf("[ProspectSearchHandler] Fetching canonical location for: %s", location)

	resp, err := http.Get(requestURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch location: %w", err)
	}
	defer resp.Body.Close()

	// Check for non-200 status codes
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("location API returned status %d: %s", resp.StatusCode, string(body))
	}

	var locations []SerpAPILocation
	if err := json.NewDecoder(resp.Body).Decode(&locations); err != nil {
		return "", fmt.Errorf("failed to decode location response: %w", err)
	}

	if len(locations) == 0 {
		// Fallback: use the original location string if no canonical found
		log.Printf("[ProspectSearchHandler] No canonical location found, using original: %s", location)
		return location, nil
	}

	log.Printf("[ProspectSearchHandler] Resolved location: %s -> %s", location, locations[0].CanonicalName)
	return locations[0].CanonicalName, nil
}

// fetchPage fetches a single page of results from SerpAPI
func (h *ProspectSearchHandler) fetchPage(query, canonicalLocation, hl, gl string, start int) ([]ProspectResult, *Pagination, error) {
	parameters := map[string]string{
		"engine":   "google",
		"q":        query,
		"location": canonicalLocation,
		"hl":       hl,
		"gl":       gl,
		"num":      fmt.Sprintf("%d", ResultsPerPage),
		"start":    fmt.Sprintf("%d", start),
	}

	search := g.NewGoogleSearch(parameters, h.apiKey)
	resp, err := search.GetJSON()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch page at start=%d: %w", start, err)
	}

	var results []ProspectResult
	var pagination *Pagination

	// Parse organic_results
	if organicResults, ok := resp["organic_results"].([]interface{}); ok {
		for _, item := range organicResults {
			if itemMap, ok := item.(map[string]interface{}); ok {
				results = append(results, ProspectResult{
					Position:      getInt(itemMap, "position"),
					Title:         getString(itemMap, "title"),
					Link:          getString(itemMap, "link"),
					DisplayedLink: getString(itemMap, "displayed_link"),
					Snippet:       getString(itemMap, "snippet"),
				})
			}
		}
	}

	// Parse serpapi_pagination
	if paginationMap, ok := resp["serpapi_pagination"].(map[string]interface{}); ok {
		pagination = &Pagination{
			Current: getInt(paginationMap, "current"),
			Next:    getString(paginationMap, "next"),
		}
	}

	return results, pagination, nil
}

// Search performs a prospect discovery search and fetches multiple pages if
// needed to meet the requested number of results
func (h *ProspectSearchHandler) Search(params ProspectSearchParams) (*ProspectSearchResponse, error) {
	// Get the canonical location name
	canonicalLocation, err := h.getCanonicalLocation(params.Location)
	if err != nil {
		return nil, err
	}

	// Build query with excluded domains
	query := params.Q
	for _, domain := range params.ExcludeDomains {
		query += " -site:" + domain
	}

	// Set default and max values for total results requested
	totalRequested := params.Num
	if totalRequested <= 0 {
		totalRequested = ResultsPerPage // default to 10
	} else if totalRequested > MaxResultsPerRequest {
		totalRequested = MaxResultsPerRequest // cap at 100
	}

	// Calculate how many pages we need to fetch
	pagesNeeded := (totalRequested + ResultsPerPage - 1) / ResultsPerPage // ceiling division
	if pagesNeeded > MaxPagesToFetch {
		pagesNeeded = MaxPagesToFetch
	}

	// Initialize response
	result := &ProspectSearchResponse{
		Results: []ProspectResult{},
	}

	// Starting offset (considering user's Start parameter)
	currentStart := params.Start
	pagesFetched := 0

	// Fetch pages until we have enough results or no more pages available
	for pagesFetched < pagesNeeded && len(result.Results) < totalRequested {
		pageResults, pagination, err := h.fetchPage(query, canonicalLocation, params.Hl, params.Gl, currentStart)
		if err != nil {
			// If this is the first page, return the error
			// If we already have some results, return what we have
			if pagesFetched == 0 {
				return nil, err
			}
			break
		}

		pagesFetched++

		// Append results
		for _, res := range pageResults {
			if len(result.Results) >= totalRequested {
				break
			}
			// Update position to be sequential across all pages
			res.Position = len(result.Results) + 1
			result.Results = append(result.Results, res)
		}

		// Update pagination info (keep the last one)
		if pagination != nil {
			result.Pagination = *pagination
		}

		// Check if there are more pages available
		if pagination == nil || pagination.Next == "" {
			// No more pages available
			break
		}

		// No results returned means we've reached the end
		if len(pageResults) == 0 {
			break
		}

		// Move to next page
		currentStart += ResultsPerPage
	}

	// Update response metadata
	result.TotalResults = len(result.Results)
	result.PagesFetched = pagesFetched

	// If FirecrawlHandler is configured, scrape every prospect website
	if h.firecrawlHandler != nil && len(result.Results) > 0 {
		log.Printf("[ProspectSearchHandler] Starting Firecrawl scraping for %d results", len(result.Results))
		scrapedMap := h.firecrawlHandler.ScrapeProspectResults(result.Results)

		// Enrich results with scraped content and the contacts found in it
		for i := range result.Results {
			link := result.Results[i].Link
			if scraped, exists := scrapedMap[link]; exists {
				if scraped.Success {
					result.Results[i].ScrapedContent = scraped.Markdown
					result.Results[i].Contacts = scraped.Contacts
				} else {
					log.Printf("[ProspectSearchHandler] Scrape failed for result %d: %s", i+1, scraped.Error)
					result.Results[i].ScrapeError = scraped.Error
				}
			}
		}
	}

	// If ExtractorHandler is configured, extract firmographics from scraped content
	if h.extractorHandler != nil && len(result.Results) > 0 {
		log.Printf("[ProspectSearchHandler] Starting firmographic extraction for %d results", len(result.Results))
		ctx := context.Background()
		extractedMap := h.extractorHandler.ExtractFromResults(ctx, result.Results)

		successCount := 0
		for i := range result.Results {
			link := result.Results[i].Link
			if extracted, exists := extractedMap[link]; exists {
				result.Results[i].Firmographics = extracted
				if extracted.Success {
					successCount++
				}
			}
		}
		log.Printf("[ProspectSearchHandler] Firmographic extraction complete: %d/%d successful", successCount, len(extractedMap))
	}

	return result, nil
}

// Helper functions to safely extract values from map[string]interface{}
func getString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func getInt(m map[string]interface{}, key string) int {
	if val, ok := m[key].(float64); ok {
		return int(val)
	}
	return 0
}
