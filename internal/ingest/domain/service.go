package domain

import (
	"context"
	"io"

	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
)

// Service runs the ingestion pipeline and keeps the audit trail of
// ingestion passes. Parsing has no side effects; merging the result
// into the running store is the caller's job.
type Service interface {
	// ParseFile reads and parses an uploaded export. CSV and plain-text
	// exports go through the delimited-text pipeline; .xlsx workbooks are
	// decoded first and share the same header and row handling.
	ParseFile(ctx context.Context, name string, r io.Reader) (*Result, error)

	// ParseText runs the pipeline over raw delimited text.
	ParseText(ctx context.Context, name, text string) (*Result, error)

	// RecordRun persists the audit record of a completed pass.
	RecordRun(ctx context.Context, name string, fileBytes int64, summary Summary, merge txdomain.MergeResult) (*IngestionRun, error)

	// RecentRuns returns the latest ingestion runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]IngestionRun, error)
}
