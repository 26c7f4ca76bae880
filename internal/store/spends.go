package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dbspend360/dbspend360/pkg/types"
)

// spendTable is the serving table the ingestion pipeline lands run-level
// cost facts into.
const spendTable = "dbspend360_total_job_spends"

// spendColumns is the select list shared by every run-cost query.
const spendColumns = "cluster_id, compute_cost, job_id, job_name, run_id, usage_date, platform_cost, currency"

// SpendStore handles run-cost read operations
type SpendStore struct {
	pool *pgxpool.Pool
}

func scanRunCost(row pgx.Row) (types.RunCost, error) {
	var (
		run       types.RunCost
		usageDate time.Time
	)
	err := row.Scan(
		&run.ClusterID,
		&run.ComputeCost,
		&run.JobID,
		&run.JobName,
		&run.RunID,
		&usageDate,
		&run.PlatformCost,
		&run.Currency,
	)
	if err != nil {
		return types.RunCost{}, err
	}
	run.UsageDate = types.DateOf(usageDate)
	return run, nil
}

func collectRunCosts(rows pgx.Rows) ([]types.RunCost, error) {
	defer rows.Close()

	runs := []types.RunCost{}
	for rows.Next() {
		run, err := scanRunCost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run cost: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run costs: %w", err)
	}

	return runs, nil
}

// rangeFilter builds the shared WHERE clause for a filter. Returned args line
// up with $1.. placeholders.
func rangeFilter(f types.SpendFilter) (string, []interface{}) {
	where := "WHERE usage_date >= $1 AND usage_date <= $2"
	args := []interface{}{f.Range.StartDate.Time(), f.Range.EndDate.Time()}

	if f.JobName != "" {
		where += fmt.Sprintf(" AND (job_name ILIKE $%d OR job_id ILIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+f.JobName+"%")
	}

	return where, args
}

// List retrieves one page of run costs matching the filter, sorted by total
// cost descending with (job_id, run_id) as the deterministic tie-break.
// Returns the page rows and the total matching row count.
func (s *SpendStore) List(ctx context.Context, f types.SpendFilter) ([]types.RunCost, int, error) {
	where, args := rangeFilter(f)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", spendTable, where)

	var total int
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count run costs: %w", err)
	}

	dataQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		ORDER BY (compute_cost + platform_cost) DESC, job_id ASC, run_id ASC
		LIMIT $%d OFFSET $%d
	`, spendColumns, spendTable, where, len(args)+1, len(args)+2)
	args = append(args, f.PerPage, f.Offset())

	rows, err := s.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query run costs: %w", err)
	}

	runs, err := collectRunCosts(rows)
	if err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}

// ListGrouped pages over jobs instead of runs: it returns the page's job IDs
// in total-cost-descending order, every matching run for those jobs, and the
// count of distinct matching jobs. A job's run list is never split across
// pages.
func (s *SpendStore) ListGrouped(ctx context.Context, f types.SpendFilter) ([]string, map[string][]types.RunCost, int, error) {
	where, args := rangeFilter(f)

	countQuery := fmt.Sprintf("SELECT COUNT(DISTINCT job_id) FROM %s %s", spendTable, where)

	var total int
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, nil, 0, fmt.Errorf("count grouped jobs: %w", err)
	}

	idsQuery := fmt.Sprintf(`
		SELECT job_id
		FROM %s
		%s
		GROUP BY job_id
		ORDER BY SUM(compute_cost + platform_cost) DESC, job_id ASC
		LIMIT $%d OFFSET $%d
	`, spendTable, where, len(args)+1, len(args)+2)
	idArgs := append(append([]interface{}{}, args...), f.PerPage, f.Offset())

	rows, err := s.pool.Query(ctx, idsQuery, idArgs...)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("query grouped job ids: %w", err)
	}

	jobIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, nil, 0, fmt.Errorf("scan job id: %w", err)
		}
		jobIDs = append(jobIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, 0, fmt.Errorf("iterate job ids: %w", err)
	}

	runsByJob := map[string][]types.RunCost{}
	if len(jobIDs) == 0 {
		return jobIDs, runsByJob, total, nil
	}

	runsQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s AND job_id = ANY($%d)
		ORDER BY job_id ASC, (compute_cost + platform_cost) DESC, run_id ASC
	`, spendColumns, spendTable, where, len(args)+1)
	runArgs := append(append([]interface{}{}, args...), jobIDs)

	runRows, err := s.pool.Query(ctx, runsQuery, runArgs...)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("query grouped runs: %w", err)
	}

	runs, err := collectRunCosts(runRows)
	if err != nil {
		return nil, nil, 0, err
	}

	for _, run := range runs {
		runsByJob[run.JobID] = append(runsByJob[run.JobID], run)
	}

	return jobIDs, runsByJob, total, nil
}

// ListRange retrieves every run cost inside the date range, unpaged. Feeds
// the summary aggregation and CSV export.
func (s *SpendStore) ListRange(ctx context.Context, dr types.DateRange) ([]types.RunCost, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE usage_date >= $1 AND usage_date <= $2
		ORDER BY (compute_cost + platform_cost) DESC, job_id ASC, run_id ASC
	`, spendColumns, spendTable)

	rows, err := s.pool.Query(ctx, query, dr.StartDate.Time(), dr.EndDate.Time())
	if err != nil {
		return nil, fmt.Errorf("query run costs for range: %w", err)
	}

	return collectRunCosts(rows)
}

// Get retrieves the cost facts for one run identified by (job_id, run_id).
func (s *SpendStore) Get(ctx context.Context, jobID, runID string) (*types.RunCost, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE job_id = $1 AND run_id = $2
	`, spendColumns, spendTable)

	run, err := scanRunCost(s.pool.QueryRow(ctx, query, jobID, runID))
	if err == pgx.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query run cost: %w", err)
	}

	return &run, nil
}

// TopJobs retrieves the most expensive runs in the range, total-cost
// descending, truncated to limit.
func (s *SpendStore) TopJobs(ctx context.Context, dr types.DateRange, limit int) ([]types.RunCost, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE usage_date >= $1 AND usage_date <= $2
		ORDER BY (compute_cost + platform_cost) DESC, job_id ASC, run_id ASC
		LIMIT $3
	`, spendColumns, spendTable)

	rows, err := s.pool.Query(ctx, query, dr.StartDate.Time(), dr.EndDate.Time(), limit)
	if err != nil {
		return nil, fmt.Errorf("query top jobs: %w", err)
	}

	return collectRunCosts(rows)
}
