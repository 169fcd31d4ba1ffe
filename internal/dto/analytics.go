package dto

// PerformanceMetrics is the aggregate pipeline report computed from stored
// lead and outreach counters. Every rate is derived, never stored.
// @Description Aggregate lead pipeline metrics
type PerformanceMetrics struct {
	TotalLeads     int     `json:"total_leads"`
	QualifiedLeads int     `json:"qualified_leads"`
	ContactedLeads int     `json:"contacted_leads"`
	ConvertedLeads int     `json:"converted_leads"`
	ConversionRate float64 `json:"conversion_rate"`
	ResponseRate   float64 `json:"response_rate"`
	AvgLeadScore   float64 `json:"avg_lead_score"`
}

// TierDistribution counts scored leads per qualification tier.
type TierDistribution struct {
	Hot         int `json:"hot"`
	Warm        int `json:"warm"`
	Cold        int `json:"cold"`
	Unqualified int `json:"unqualified"`
}

// CampaignPerformance is the per-campaign engagement report. Rates are
// computed from the stored counters at read time.
type CampaignPerformance struct {
	CampaignName   string  `json:"campaign_name"`
	TotalSent      int     `json:"total_sent"`
	Opens          int     `json:"opens"`
	Clicks         int     `json:"clicks"`
	Responses      int     `json:"responses"`
	MeetingsBooked int     `json:"meetings_booked"`
	DealsClosed    int     `json:"deals_closed"`
	OpenRate       float64 `json:"open_rate"`
	ClickRate      float64 `json:"click_rate"`
	ResponseRate   float64 `json:"response_rate"`
	ConversionRate float64 `json:"conversion_rate"`
}

// AnalyticsReport bundles the full analytics response.
type AnalyticsReport struct {
	Metrics     PerformanceMetrics    `json:"metrics"`
	Tiers       TierDistribution      `json:"tier_distribution"`
	Campaigns   []CampaignPerformance `json:"campaigns,omitempty"`
	GeneratedAt string                `json:"generated_at"`
	PeriodDays  int                   `json:"period_days"`
}
