package schema

import "time"

// CycleKpiRow is the delivery result for one (pod, cycle) pair.
// On NO_TEAM_ID and FETCH_FAILED rows every numeric field is zero and
// DeliveryPct is "0%".
type CycleKpiRow struct {
	Pod         string    `json:"pod"`
	Cycle       CycleKey  `json:"cycle"`
	Committed   int       `json:"committed"`
	Completed   int       `json:"completed"`
	DeliveryPct string    `json:"delivery_pct"`
	Spillover   int       `json:"spillover"`
	Status      RowStatus `json:"status"`
	Frozen      bool      `json:"frozen"`
}

// KpiReport is the aggregate KPI result across all configured pods.
type KpiReport struct {
	Success       bool          `json:"success"`
	ErrorCode     string        `json:"error_code,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	Quarter       string        `json:"quarter,omitempty"`
	CurrentCycle  CycleKey      `json:"current_cycle,omitempty"`
	FallbackCycle CycleKey      `json:"fallback_cycle,omitempty"`
	FallbackUsed  bool          `json:"fallback_used"`
	Rows          []CycleKpiRow `json:"rows,omitempty"`
	FetchedAt     time.Time     `json:"fetched_at"`
}

// FeatureRow is the normalized state of one project under one pod.
type FeatureRow struct {
	Pod       string       `json:"pod"`
	Project   string       `json:"project"`
	State     FeatureState `json:"state"`
	RawState  string       `json:"raw_state"`
	Lead      string       `json:"lead,omitempty"`
	Target    string       `json:"target,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// FeatureReport is the feature movement result across all configured pods.
type FeatureReport struct {
	Success      bool                 `json:"success"`
	ErrorCode    string               `json:"error_code,omitempty"`
	ErrorMessage string               `json:"error_message,omitempty"`
	Rows         []FeatureRow         `json:"rows,omitempty"`
	PodStatus    map[string]RowStatus `json:"pod_status,omitempty"`
	FetchedAt    time.Time            `json:"fetched_at"`
}

// MatchResult is the winning candidate from fuzzy entity resolution.
type MatchResult struct {
	Pod     string  `json:"pod"`
	Project Project `json:"project"`
	Score   int     `json:"score"`
}

// ResolveReport is the entity resolution result. Match is nil when no
// candidate scored above zero.
type ResolveReport struct {
	Success      bool                 `json:"success"`
	ErrorCode    string               `json:"error_code,omitempty"`
	ErrorMessage string               `json:"error_message,omitempty"`
	Query        string               `json:"query"`
	Match        *MatchResult         `json:"match,omitempty"`
	PodStatus    map[string]RowStatus `json:"pod_status,omitempty"`
	FetchedAt    time.Time            `json:"fetched_at"`
}

// CycleRow describes one pod's resolved cycle position.
type CycleRow struct {
	Pod          string   `json:"pod"`
	CurrentCycle CycleKey `json:"current_cycle"`
	Frozen       bool     `json:"frozen"`
	Refreshable  bool     `json:"refreshable"`
}

// CycleReport is the per-pod cycle resolution result.
type CycleReport struct {
	Success      bool       `json:"success"`
	ErrorCode    string     `json:"error_code,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	PolicyCycle  CycleKey   `json:"policy_cycle"`
	Rows         []CycleRow `json:"rows,omitempty"`
	FetchedAt    time.Time  `json:"fetched_at"`
}
