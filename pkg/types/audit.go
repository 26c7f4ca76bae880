package types

import "time"

// IngestionStatus is the outcome of one ingestion pipeline run.
type IngestionStatus string

const (
	IngestionStatusSucceeded IngestionStatus = "SUCCEEDED"
	IngestionStatusFailed    IngestionStatus = "FAILED"
	IngestionStatusPartial   IngestionStatus = "PARTIAL"
)

// AuditRecord is a row of dbspend360_audit_log, written by the ingestion
// pipeline for every load into the cost tables. Read-only here.
type AuditRecord struct {
	ID           string          `db:"id" json:"id"`
	PipelineName string          `db:"pipeline_name" json:"pipeline_name"`
	TargetTable  string          `db:"target_table" json:"target_table"`
	Status       IngestionStatus `db:"status" json:"status"`
	RowsIngested int64           `db:"rows_ingested" json:"rows_ingested"`
	StartedAt    time.Time       `db:"started_at" json:"started_at"`
	CompletedAt  *time.Time      `db:"completed_at" json:"completed_at"`
	Message      *string         `db:"message" json:"message,omitempty"`
}

// ErrorRecord is a row of dbspend360_error_log. Read-only here.
type ErrorRecord struct {
	ID           string    `db:"id" json:"id"`
	PipelineName string    `db:"pipeline_name" json:"pipeline_name"`
	ErrorType    string    `db:"error_type" json:"error_type"`
	Message      string    `db:"message" json:"message"`
	OccurredAt   time.Time `db:"occurred_at" json:"occurred_at"`
}
