// Package rollup implements the pure aggregation functions behind the
// dashboard: job-level rollups, range summaries, and the cost-split chart
// data. Functions here are stateless and never touch the store.
package rollup

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/dbspend360/dbspend360/internal/config"
	"github.com/dbspend360/dbspend360/pkg/types"
)

// Stable chart colors for the two cost components.
const (
	computeColor  = "#3b82f6"
	platformColor = "#ef4444"
)

var apdCtx = apd.BaseContext.WithPrecision(34)

// accumulator sums float64 money values through exact decimals so repeated
// addition cannot drift.
type accumulator struct {
	total apd.Decimal
}

func (a *accumulator) add(v float64) error {
	var d apd.Decimal
	if _, err := d.SetFloat64(v); err != nil {
		return fmt.Errorf("decimal from %v: %w", v, err)
	}
	if _, err := apdCtx.Add(&a.total, &a.total, &d); err != nil {
		return fmt.Errorf("decimal add: %w", err)
	}
	return nil
}

func (a *accumulator) value() (float64, error) {
	f, err := a.total.Float64()
	if err != nil {
		return 0, fmt.Errorf("decimal to float: %w", err)
	}
	return f, nil
}

// singleCurrency returns the one currency shared by all runs, or
// ErrMixedCurrency when the runs span more than one. Runs without a currency
// inherit the others'.
func singleCurrency(runs []types.RunCost) (string, error) {
	currency := ""
	for _, r := range runs {
		if r.Currency == "" {
			continue
		}
		if currency == "" {
			currency = r.Currency
			continue
		}
		if r.Currency != currency {
			return "", fmt.Errorf("%w: %s and %s", types.ErrMixedCurrency, currency, r.Currency)
		}
	}
	return currency, nil
}

// Rollup aggregates runs sharing a job_id into a JobRollup. The job id and
// name are taken from the first run; percentages are 0 when the total is 0.
func Rollup(runs []types.RunCost) (types.JobRollup, error) {
	out := types.JobRollup{
		RunCount: len(runs),
		Runs:     runs,
	}
	if len(runs) == 0 {
		out.Runs = []types.RunCost{}
		return out, nil
	}

	currency, err := singleCurrency(runs)
	if err != nil {
		return types.JobRollup{}, err
	}

	var compute, platform accumulator
	for _, r := range runs {
		if err := compute.add(r.ComputeCost); err != nil {
			return types.JobRollup{}, err
		}
		if err := platform.add(r.PlatformCost); err != nil {
			return types.JobRollup{}, err
		}
	}

	out.JobID = runs[0].JobID
	out.JobName = runs[0].JobName
	out.Currency = currency

	if out.TotalComputeCost, err = compute.value(); err != nil {
		return types.JobRollup{}, err
	}
	if out.TotalPlatformCost, err = platform.value(); err != nil {
		return types.JobRollup{}, err
	}
	out.TotalCost = out.TotalComputeCost + out.TotalPlatformCost

	if out.TotalCost > 0 {
		out.ComputePercentage = out.TotalComputeCost / out.TotalCost * 100
		out.PlatformPercentage = out.TotalPlatformCost / out.TotalCost * 100
	}

	return out, nil
}

// Summarize computes the range summary in a single pass. Empty input yields
// all-zero metrics with total_jobs = 0 and never fails.
func Summarize(runs []types.RunCost, rangeDays int) (types.SummaryMetrics, error) {
	out := types.SummaryMetrics{DateRangeDays: rangeDays}
	if len(runs) == 0 {
		return out, nil
	}

	currency, err := singleCurrency(runs)
	if err != nil {
		return types.SummaryMetrics{}, err
	}

	var spend, compute, platform accumulator
	maxCost := runs[0].TotalCost()
	minCost := runs[0].TotalCost()

	for _, r := range runs {
		total := r.TotalCost()
		if err := spend.add(total); err != nil {
			return types.SummaryMetrics{}, err
		}
		if err := compute.add(r.ComputeCost); err != nil {
			return types.SummaryMetrics{}, err
		}
		if err := platform.add(r.PlatformCost); err != nil {
			return types.SummaryMetrics{}, err
		}
		if total > maxCost {
			maxCost = total
		}
		if total < minCost {
			minCost = total
		}
	}

	out.TotalJobs = len(runs)
	out.Currency = currency
	out.MaxCost = maxCost
	out.MinCost = minCost

	if out.TotalSpend, err = spend.value(); err != nil {
		return types.SummaryMetrics{}, err
	}
	if out.TotalComputeCost, err = compute.value(); err != nil {
		return types.SummaryMetrics{}, err
	}
	if out.TotalPlatformCost, err = platform.value(); err != nil {
		return types.SummaryMetrics{}, err
	}
	out.AverageCost = out.TotalSpend / float64(out.TotalJobs)

	return out, nil
}

// SplitCost returns the run's cost components for the split chart: exactly
// two entries, compute first, each with its fixed color.
func SplitCost(run types.RunCost, labels config.CostLabels) []types.SplitEntry {
	return []types.SplitEntry{
		{Label: labels.Compute, Value: run.ComputeCost, Color: computeColor},
		{Label: labels.Platform, Value: run.PlatformCost, Color: platformColor},
	}
}

// Breakdown assembles the drill-down view of a single run.
func Breakdown(run types.RunCost, labels config.CostLabels) types.CostBreakdown {
	return types.CostBreakdown{
		JobID:        run.JobID,
		RunID:        run.RunID,
		ClusterID:    run.ClusterID,
		UsageDate:    run.UsageDate,
		ComputeCost:  run.ComputeCost,
		PlatformCost: run.PlatformCost,
		TotalCost:    run.TotalCost(),
		Currency:     run.Currency,
		CostSplit:    SplitCost(run, labels),
	}
}
