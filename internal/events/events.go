package events

// Pipeline event types recorded for downstream consumers.
const (
	EventIngestCompleted = "ingest.completed"
	EventDatasetReset    = "dataset.reset"
)

// IngestCompletedPayload captures the outcome of one file import.
type IngestCompletedPayload struct {
	RunID      string `json:"run_id"`
	FileName   string `json:"file_name"`
	RowsSeen   int    `json:"rows_seen"`
	Accepted   int    `json:"accepted"`
	Inserted   int    `json:"inserted"`
	Duplicates int    `json:"duplicates"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p IngestCompletedPayload) ToMap() map[string]any {
	return map[string]any{
		"run_id":     p.RunID,
		"file_name":  p.FileName,
		"rows_seen":  p.RowsSeen,
		"accepted":   p.Accepted,
		"inserted":   p.Inserted,
		"duplicates": p.Duplicates,
	}
}

// DatasetResetPayload records a full transaction store wipe.
type DatasetResetPayload struct {
	RowsDeleted int64 `json:"rows_deleted"`
}

func (p DatasetResetPayload) ToMap() map[string]any {
	return map[string]any{
		"rows_deleted": p.RowsDeleted,
	}
}
