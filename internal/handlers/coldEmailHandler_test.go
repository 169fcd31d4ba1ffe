package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadpilot/leadgen-backend/internal/dto"
)

func TestParseColdEmailResponse(t *testing.T) {
	email := &ColdEmail{}
	response := "```json\n" + `{"subject": "Quick question for Acme Corp", "body": "Hi Jane,\n\nShort pitch.\n\nBest regards"}` + "\n```"

	require.NoError(t, parseColdEmailResponse(response, email))
	assert.Equal(t, "Quick question for Acme Corp", email.Subject)
	assert.Contains(t, email.Body, "Hi Jane,")
}

func TestParseColdEmailResponse_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "no JSON", response: "Sure! Here is your email."},
		{name: "missing subject", response: `{"subject": "", "body": "text"}`},
		{name: "missing body", response: `{"subject": "text", "body": ""}`},
		{name: "malformed", response: `{"subject": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, parseColdEmailResponse(tt.response, &ColdEmail{}))
		})
	}
}

func TestBuildColdEmailPrompt(t *testing.T) {
	prompt := buildColdEmailPrompt(dto.Lead{
		Name:     "Jane Rivera",
		Company:  "Acme Corp",
		Title:    "CEO",
		Industry: "SaaS",
		Location: "Austin, TX",
	})

	assert.Contains(t, prompt, "Company: Acme Corp")
	assert.Contains(t, prompt, "Contact: Jane Rivera")
	assert.Contains(t, prompt, "Title: CEO")
	assert.Contains(t, prompt, "Industry: SaaS")
	assert.Contains(t, prompt, "Location: Austin, TX")
	assert.Contains(t, prompt, `{"subject": "Subject line", "body": "Full email body"}`)
}

func TestBuildColdEmailPrompt_OmitsEmptyFields(t *testing.T) {
	prompt := buildColdEmailPrompt(dto.Lead{Company: "Acme Corp"})

	assert.Contains(t, prompt, "Company: Acme Corp")
	assert.NotContains(t, prompt, "Contact:")
	assert.NotContains(t, prompt, "Industry:")
}

func TestLinkedInHandler_SearchProspects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/people/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "VP of Sales", r.URL.Query().Get("title"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []ProspectProfile{
				{
					Name:              "Jane Rivera",
					Title:             "VP of Sales",
					Company:           "Acme Corp",
					Location:          "Austin, TX",
					ProfileURL:        "https://linkedin.com/in/janerivera",
					ActivityLevel:     "high",
					MutualConnections: 12,
					ProfileViews:      140,
				},
			},
		})
	}))
	defer server.Close()

	handler, err := NewLinkedInHandler(server.URL, "test-key")
	require.NoError(t, err)

	profiles, err := handler.SearchProspects(context.Background(), ProspectQuery{
		Title: "VP of Sales",
		Limit: 5,
	})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Jane Rivera", profiles[0].Name)

	lead := profiles[0].ToLead()
	assert.Equal(t, "Acme Corp", lead.Company)
	assert.Equal(t, "high", lead.ActivityLevel)
	assert.Equal(t, 12, lead.MutualConnections)
	assert.Equal(t, 140, lead.ProfileViews)
	assert.Equal(t, "linkedin", lead.Source)
}

func TestLinkedInHandler_SearchProspects_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	handler, err := NewLinkedInHandler(server.URL, "test-key")
	require.NoError(t, err)

	_, err = handler.SearchProspects(context.Background(), ProspectQuery{Keywords: "saas"})
	assert.ErrorContains(t, err, "status 429")
}

func TestNewLinkedInHandler_Validation(t *testing.T) {
	_, err := NewLinkedInHandler("", "key")
	assert.Error(t, err)

	_, err = NewLinkedInHandler("https://api.example.com", "")
	assert.Error(t, err)
}

func TestDisabledProspectSearcher(t *testing.T) {
	searcher := NewDisabledProspectSearcher()
	profiles, err := searcher.SearchProspects(context.Background(), ProspectQuery{Keywords: "saas"})
	assert.Nil(t, profiles)
	assert.ErrorIs(t, err, ErrLinkedInNotConfigured)
}

func TestGetHelpers(t *testing.T) {
	m := map[string]interface{}{
		"title":    "Acme Corp",
		"position": float64(3),
	}
	assert.Equal(t, "Acme Corp", getString(m, "title"))
	assert.Equal(t, "", getString(m, "missing"))
	assert.Equal(t, 3, getInt(m, "position"))
	assert.Equal(t, 0, getInt(m, "title"))
}
