package types

import "encoding/json"

// RunCost is one run's cost facts from the dbspend360_total_job_spends table.
// Rows are written by the ingestion pipeline and never mutated here; identity
// is (job_id, run_id).
type RunCost struct {
	ClusterID    string  `db:"cluster_id" json:"cluster_id"`
	ComputeCost  float64 `db:"compute_cost" json:"compute_cost"`
	JobID        string  `db:"job_id" json:"job_id"`
	JobName      *string `db:"job_name" json:"job_name,omitempty"`
	RunID        string  `db:"run_id" json:"run_id"`
	UsageDate    Date    `db:"usage_date" json:"usage_date"`
	PlatformCost float64 `db:"platform_cost" json:"platform_cost"`
	Currency     string  `db:"currency" json:"currency"`
}

// TotalCost is the sum of compute and platform cost.
func (r RunCost) TotalCost() float64 {
	return r.ComputeCost + r.PlatformCost
}

// ComputePercentage is the compute share of total cost, 0 when total is 0.
func (r RunCost) ComputePercentage() float64 {
	if r.TotalCost() == 0 {
		return 0
	}
	return r.ComputeCost / r.TotalCost() * 100
}

// PlatformPercentage is the platform share of total cost, 0 when total is 0.
func (r RunCost) PlatformPercentage() float64 {
	if r.TotalCost() == 0 {
		return 0
	}
	return r.PlatformCost / r.TotalCost() * 100
}

// MarshalJSON materializes the computed cost fields alongside the stored ones.
func (r RunCost) MarshalJSON() ([]byte, error) {
	type alias RunCost
	return json.Marshal(struct {
		alias
		TotalCost          float64 `json:"total_cost"`
		ComputePercentage  float64 `json:"compute_percentage"`
		PlatformPercentage float64 `json:"platform_percentage"`
	}{
		alias:              alias(r),
		TotalCost:          r.TotalCost(),
		ComputePercentage:  r.ComputePercentage(),
		PlatformPercentage: r.PlatformPercentage(),
	})
}

// JobRollup is the job-level aggregation of a set of runs sharing a job_id
// within the active date range. Built by the rollup package, never read from
// the warehouse directly.
type JobRollup struct {
	JobID              string    `json:"job_id"`
	JobName            *string   `json:"job_name,omitempty"`
	RunCount           int       `json:"run_count"`
	TotalComputeCost   float64   `json:"total_compute_cost"`
	TotalPlatformCost  float64   `json:"total_platform_cost"`
	TotalCost          float64   `json:"total_cost"`
	ComputePercentage  float64   `json:"compute_percentage"`
	PlatformPercentage float64   `json:"platform_percentage"`
	Currency           string    `json:"currency"`
	Runs               []RunCost `json:"runs"`
}

// SummaryMetrics is the full-range aggregate behind the dashboard cards.
type SummaryMetrics struct {
	TotalJobs         int     `json:"total_jobs"`
	TotalSpend        float64 `json:"total_spend"`
	AverageCost       float64 `json:"average_cost"`
	MaxCost           float64 `json:"max_cost"`
	MinCost           float64 `json:"min_cost"`
	TotalComputeCost  float64 `json:"total_compute_cost"`
	TotalPlatformCost float64 `json:"total_platform_cost"`
	Currency          string  `json:"currency"`
	DateRangeDays     int     `json:"date_range_days"`
}

// SplitEntry is one slice of a cost-split chart. The split is a closed,
// fixed-arity structure: exactly compute then platform, with a stable
// label-to-color assignment.
type SplitEntry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// CostBreakdown is the drill-down view of a single run.
type CostBreakdown struct {
	JobID        string       `json:"job_id"`
	RunID        string       `json:"run_id"`
	ClusterID    string       `json:"cluster_id"`
	UsageDate    Date         `json:"usage_date"`
	ComputeCost  float64      `json:"compute_cost"`
	PlatformCost float64      `json:"platform_cost"`
	TotalCost    float64      `json:"total_cost"`
	Currency     string       `json:"currency"`
	CostSplit    []SplitEntry `json:"cost_split"`
}
