package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leadpilot/leadgen-backend/internal/scoring"
)

func TestMinScoreForTier(t *testing.T) {
	tests := []struct {
		tier string
		want int
	}{
		{tier: "hot", want: scoring.HotThreshold},
		{tier: "Hot", want: scoring.HotThreshold},
		{tier: "warm", want: scoring.WarmThreshold},
		{tier: "cold", want: scoring.ColdThreshold},
		{tier: "", want: scoring.WarmThreshold},
		{tier: "unknown", want: scoring.WarmThreshold},
	}

	for _, tt := range tests {
		t.Run("tier_"+tt.tier, func(t *testing.T) {
			assert.Equal(t, tt.want, minScoreForTier(tt.tier))
		})
	}
}

func TestNewScoringProcessor_Validation(t *testing.T) {
	_, err := NewScoringProcessor(nil, nil, nil, nil)
	assert.ErrorContains(t, err, "scoring engine is required")
}

func TestNewOutreachProcessor_Validation(t *testing.T) {
	_, err := NewOutreachProcessor(nil, nil, nil, nil, nil)
	assert.ErrorContains(t, err, "supabase handler is required")
}
