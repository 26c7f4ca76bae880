package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dbspend360/dbspend360/pkg/types"
)

// AuditStore reads the ingestion pipeline's audit and error logs. Both
// tables are written exclusively by the pipeline; this service only reports
// on them.
type AuditStore struct {
	pool *pgxpool.Pool
}

// ListAudit retrieves the most recent ingestion audit rows, newest first.
func (s *AuditStore) ListAudit(ctx context.Context, limit int) ([]types.AuditRecord, error) {
	query := `
		SELECT id, pipeline_name, target_table, status, rows_ingested,
			started_at, completed_at, message
		FROM dbspend360_audit_log
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	records := []types.AuditRecord{}
	for rows.Next() {
		var rec types.AuditRecord
		err := rows.Scan(
			&rec.ID,
			&rec.PipelineName,
			&rec.TargetTable,
			&rec.Status,
			&rec.RowsIngested,
			&rec.StartedAt,
			&rec.CompletedAt,
			&rec.Message,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit log: %w", err)
	}

	return records, nil
}

// ListErrors retrieves the most recent ingestion error rows, newest first.
func (s *AuditStore) ListErrors(ctx context.Context, limit int) ([]types.ErrorRecord, error) {
	query := `
		SELECT id, pipeline_name, error_type, message, occurred_at
		FROM dbspend360_error_log
		ORDER BY occurred_at DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query error log: %w", err)
	}
	defer rows.Close()

	records := []types.ErrorRecord{}
	for rows.Next() {
		var rec types.ErrorRecord
		err := rows.Scan(
			&rec.ID,
			&rec.PipelineName,
			&rec.ErrorType,
			&rec.Message,
			&rec.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan error record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate error log: %w", err)
	}

	return records, nil
}
