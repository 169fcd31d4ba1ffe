package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadpilot/leadgen-backend/internal/handlers"
	"leadpilot/leadgen-backend/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDependencies wires only the always-on capabilities
func testDependencies() Dependencies {
	return Dependencies{
		ScoringEngine: scoring.NewEngine(nil),
		WebhookSecret: "test-secret",
		LinkedIn:      handlers.NewDisabledProspectSearcher(),
	}
}

// TestHealthCheck tests the /health endpoint
func TestHealthCheck(t *testing.T) {
	router := NewRouter(testDependencies())

	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

// TestScoreRoute scores an inline lead through the full HTTP stack
func TestScoreRoute(t *testing.T) {
	router := NewRouter(testDependencies())

	body := `{"lead": {"email": "jane@acmecorp.com", "company_size": "11-50", "industry": "saas", "title": "ceo"}}`
	req, err := http.NewRequest(http.MethodPost, "/api/v1/leads/score", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	breakdown, ok := response["scoring_breakdown"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(25), breakdown["email_score"])
	assert.NotEmpty(t, response["qualification_status"])
}

// TestScoreRoute_Validation tests that a missing lead is rejected
func TestScoreRoute_Validation(t *testing.T) {
	router := NewRouter(testDependencies())

	req, err := http.NewRequest(http.MethodPost, "/api/v1/leads/score", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestBatchScoreRoute scores two leads and checks order is preserved
func TestBatchScoreRoute(t *testing.T) {
	router := NewRouter(testDependencies())

	body := `{"leads": [{"id": "a", "email": "jane@acmecorp.com"}, {"id": "b", "email": "bob@gmail.com"}]}`
	req, err := http.NewRequest(http.MethodPost, "/api/v1/leads/score/batch", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		TotalLeads int `json:"total_leads"`
		Results    []struct {
			LeadID string `json:"lead_id"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 2, response.TotalLeads)
	assert.Equal(t, "a", response.Results[0].LeadID)
	assert.Equal(t, "b", response.Results[1].LeadID)
}

// TestScoreRoute_ICPLookupUnavailable tests icp_id without a database
func TestScoreRoute_ICPLookupUnavailable(t *testing.T) {
	router := NewRouter(testDependencies())

	body := `{"lead": {"email": "jane@acmecorp.com"}, "icp_id": "icp-1"}`
	req, err := http.NewRequest(http.MethodPost, "/api/v1/leads/score", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// TestProspectSearchRoute_NotConfigured tests the 503 without SerpAPI
func TestProspectSearchRoute_NotConfigured(t *testing.T) {
	router := NewRouter(testDependencies())

	req, err := http.NewRequest(http.MethodPost, "/api/v1/prospects/search", strings.NewReader(`{"q": "agencies"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// TestLinkedInRoute_Disabled tests the 503 from the disabled searcher
func TestLinkedInRoute_Disabled(t *testing.T) {
	router := NewRouter(testDependencies())

	req, err := http.NewRequest(http.MethodPost, "/api/v1/prospects/linkedin", strings.NewReader(`{"keywords": "saas"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// TestWebhookRoute_Unauthorized tests the Bearer secret check
func TestWebhookRoute_Unauthorized(t *testing.T) {
	router := NewRouter(testDependencies())

	req, err := http.NewRequest(http.MethodPost, "/webhooks/scoring-job-created", strings.NewReader(`{"job_id": "j1"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer wrong-secret")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestWebhookRoute_NotConfigured tests the 503 without a scoring processor
func TestWebhookRoute_NotConfigured(t *testing.T) {
	router := NewRouter(testDependencies())

	req, err := http.NewRequest(http.MethodPost, "/webhooks/scoring-job-created", strings.NewReader(`{"job_id": "j1"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-secret")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// TestOptionalRoutes_NotRegistered tests that analytics and tasks routes
// are absent when their capabilities are not wired
func TestOptionalRoutes_NotRegistered(t *testing.T) {
	router := NewRouter(testDependencies())

	routes := []string{
		"/api/v1/analytics/report",
		"/api/v1/tasks/active",
		"/api/v1/tasks/stats",
	}

	for _, route := range routes {
		t.Run(route, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, route, nil)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

// TestNotFoundRoute tests that non-existent routes return 404
func TestNotFoundRoute(t *testing.T) {
	router := NewRouter(testDependencies())

	routes := []string{
		"/nonexistent",
		"/api/v1/nonexistent",
		"/api/v2/leads/score",
	}

	for _, route := range routes {
		t.Run(route, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, route, nil)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}
