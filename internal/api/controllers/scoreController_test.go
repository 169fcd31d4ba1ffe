package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadpilot/leadgen-backend/internal/dto"
	"leadpilot/leadgen-backend/internal/scoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeICPStore struct {
	icps map[string]*dto.ICP
}

func (f *fakeICPStore) GetICP(id string) (*dto.ICP, error) {
	icp, ok := f.icps[id]
	if !ok {
		return nil, fmt.Errorf("ICP not found with id %s", id)
	}
	return icp, nil
}

func scoreTestRouter(icps ICPStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewScoreController(scoring.NewEngine(nil), icps, nil)
	router.POST("/leads/score", controller.ScoreLead)
	router.POST("/leads/score/batch", controller.ScoreBatch)
	router.POST("/leads/:id/score", controller.ScoreStoredLead)
	return router
}

func TestScoreLead_InlineICP(t *testing.T) {
	router := scoreTestRouter(nil)

	body := `{
		"lead": {"email": "jane@acmecorp.com", "industry": "saas", "title": "ceo", "company_size": "11-50"},
		"icp": {"target_industries": ["saas"], "target_job_titles": ["ceo"]}
	}`
	req := httptest.NewRequest(http.MethodPost, "/leads/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	// Both configured ICP dimensions match, averaging to a full match score
	assert.Equal(t, 20, response.ScoringBreakdown.FitScore)
	assert.Equal(t, 25, response.ScoringBreakdown.EmailScore)
	assert.NotEmpty(t, response.NextActions)
}

func TestScoreLead_StoredICP(t *testing.T) {
	store := &fakeICPStore{icps: map[string]*dto.ICP{
		"icp-1": {ID: "icp-1", TargetIndustries: []string{"saas"}},
	}}
	router := scoreTestRouter(store)

	body := `{"lead": {"email": "jane@acmecorp.com", "industry": "saas"}, "icp_id": "icp-1"}`
	req := httptest.NewRequest(http.MethodPost, "/leads/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	// One configured dimension, matched
	assert.Equal(t, 20, response.ScoringBreakdown.FitScore)
}

func TestScoreLead_UnknownICP(t *testing.T) {
	router := scoreTestRouter(&fakeICPStore{icps: map[string]*dto.ICP{}})

	body := `{"lead": {"email": "jane@acmecorp.com"}, "icp_id": "missing"}`
	req := httptest.NewRequest(http.MethodPost, "/leads/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScoreBatch_EmptyLeads(t *testing.T) {
	router := scoreTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/leads/score/batch", strings.NewReader(`{"leads": []}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScoreStoredLead_NoDatabase(t *testing.T) {
	router := scoreTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/leads/lead-1/score", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
