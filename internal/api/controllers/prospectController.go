package controllers

import (
	"errors"
	"net/http"

	"leadpilot/leadgen-backend/internal/dto"
	"leadpilot/leadgen-backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// ProspectController handles prospect discovery HTTP requests
type ProspectController struct {
	searchHandler *handlers.ProspectSearchHandler
	linkedin      handlers.ProspectSearcher
}

// NewProspectController creates a new ProspectController instance. The
// search handler may be nil when SerpAPI is not configured; the web search
// endpoint then responds 503.
func NewProspectController(searchHandler *handlers.ProspectSearchHandler, linkedin handlers.ProspectSearcher) *ProspectController {
	return &ProspectController{
		searchHandler: searchHandler,
		linkedin:      linkedin,
	}
}

// Search godoc
// @Summary      Search the web for prospects
// @Description  Run a SerpAPI search, scrape the organic results and extract contacts and firmographics from each page
// @Tags         prospects
// @Accept       json
// @Produce      json
// @Param        request body dto.ProspectSearchRequest true "Search parameters"
// @Success      200 {object} handlers.ProspectSearchResponse "Enriched search results"
// @Failure      400 {object} dto.ErrorResponse "Bad request - validation error"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Prospect search not configured"
// @Router       /prospects/search [post]
func (ctrl *ProspectController) Search(c *gin.Context) {
	if ctrl.searchHandler == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Prospect search requires a configured SerpAPI key",
		})
		return
	}

	var req dto.ProspectSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	params := handlers.ProspectSearchParams{
		Q:              req.Q,
		Location:       req.Location,
		Hl:             req.Hl,
		Gl:             req.Gl,
		ExcludeDomains: req.ExcludeDomains,
		Num:            req.Num,
		Start:          req.Start,
	}

	result, err := ctrl.searchHandler.Search(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchLinkedIn godoc
// @Summary      Search LinkedIn for prospects
// @Description  Query the configured partner API for people matching the given criteria
// @Tags         prospects
// @Accept       json
// @Produce      json
// @Param        request body dto.LinkedInSearchRequest true "Search criteria"
// @Success      200 {object} map[string]interface{} "Matching profiles"
// @Failure      400 {object} dto.ErrorResponse "Bad request - validation error"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "LinkedIn search not configured"
// @Router       /prospects/linkedin [post]
func (ctrl *ProspectController) SearchLinkedIn(c *gin.Context) {
	var req dto.LinkedInSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	profiles, err := ctrl.linkedin.SearchProspects(c.Request.Context(), handlers.ProspectQuery{
		Keywords: req.Keywords,
		Title:    req.Title,
		Industry: req.Industry,
		Location: req.Location,
		Limit:    req.Limit,
	})
	if err != nil {
		if errors.Is(err, handlers.ErrLinkedInNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    len(profiles),
		"profiles": profiles,
	})
}
