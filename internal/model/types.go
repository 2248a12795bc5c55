package model

// Core API payload types.

// SatelliteIn is one satellite in a bulk registration request. The
// interval is accepted as-is: no validation, degenerate ranges produce
// degenerate but well-defined coverage results.
type SatelliteIn struct {
	Name   string  `json:"name"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Cost   float64 `json:"cost,omitempty"`
	Region string  `json:"region,omitempty"`
}

// SatelliteOut is the read model for a registered satellite.
type SatelliteOut struct {
	ID       string  `json:"id"`
	TenantID string  `json:"tenantId"`
	Name     string  `json:"name"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
	Cost     float64 `json:"cost"`
	Region   string  `json:"region"`
}

// Window is a half-open target window [start, end) in hours.
type Window struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// PlanRequest asks for one coverage planning run.
type PlanRequest struct {
	TenantID  string  `json:"tenantId"`
	Region    string  `json:"region,omitempty"`    // default "All"
	Algorithm string  `json:"algorithm,omitempty"` // greedy (default) or mincost
	Window    *Window `json:"window,omitempty"`    // default from planner config
}

// GapOut is one uncovered sub-interval of the target window.
type GapOut struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// SummaryOut is the aggregated coverage summary for a run.
type SummaryOut struct {
	TotalDuration      float64 `json:"totalDuration"`
	CoveredDuration    float64 `json:"coveredDuration"`
	CoveragePercentage float64 `json:"coveragePercentage"`
	SatellitesUsed     int     `json:"satellitesUsed"`
	TotalCost          float64 `json:"totalCost"`
	GapCount           int     `json:"gapCount"`
}

// CoverageRun is the persisted record of one planning run and also the
// plan response body.
type CoverageRun struct {
	ID        string         `json:"id"`
	TenantID  string         `json:"tenantId"`
	Region    string         `json:"region"`
	Algorithm string         `json:"algorithm"`
	Window    Window         `json:"window"`
	Selected  []SatelliteOut `json:"selected"`
	Gaps      []GapOut       `json:"gaps"`
	TotalCost float64        `json:"totalCost"`
	Summary   SummaryOut     `json:"summary"`
	CreatedAt string         `json:"createdAt,omitempty"`
}

// Webhook subscriptions.

type SubscriptionRequest struct {
	TenantID string   `json:"tenantId"`
	URL      string   `json:"url"`
	Events   []string `json:"events"`
	Secret   string   `json:"secret"`
}

type Subscription struct {
	ID       string   `json:"id"`
	TenantID string   `json:"tenantId"`
	URL      string   `json:"url"`
	Events   []string `json:"events"`
	Secret   string   `json:"secret,omitempty"`
}
