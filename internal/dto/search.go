package dto

// ProspectSearchRequest is the request body for web prospect discovery.
// @Description Search parameters for SerpAPI-backed prospect discovery
type ProspectSearchRequest struct {
	// Search query, e.g. "marketing agencies in Austin"
	Q string `json:"q" binding:"required" example:"marketing agencies in Austin"`
	// Location bias for the search
	Location string `json:"location,omitempty" example:"Austin, Texas, United States"`
	// Interface language code
	Hl string `json:"hl,omitempty" example:"en"`
	// Country code for the search
	Gl string `json:"gl,omitempty" example:"us"`
	// Domains to exclude from results
	ExcludeDomains []string `json:"exclude_domains,omitempty" example:"yelp.com,linkedin.com"`
	// Total number of results to fetch (max 100)
	Num int `json:"num,omitempty" example:"20"`
	// Result offset for pagination
	Start int `json:"start,omitempty"`
}

// LinkedInSearchRequest is the request body for LinkedIn prospect search.
// @Description Criteria for the partner-API people search
type LinkedInSearchRequest struct {
	Keywords string `json:"keywords,omitempty" example:"b2b saas"`
	Title    string `json:"title,omitempty" example:"VP of Sales"`
	Industry string `json:"industry,omitempty" example:"software"`
	Location string `json:"location,omitempty" example:"Austin, TX"`
	// Maximum number of profiles to return
	Limit int `json:"limit,omitempty" example:"25"`
}
