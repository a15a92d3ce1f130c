// Package domain defines the ingestion pipeline's results, errors, and
// the persistent record of each ingestion pass.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Summary counts every row outcome of one ingestion pass. The rejection
// buckets are mutually exclusive: each rejected row lands in exactly one.
type Summary struct {
	RowsSeen          int `json:"rows_seen"`
	Accepted          int `json:"accepted"`
	MissingFields     int `json:"missing_fields"`
	Duplicates        int `json:"duplicates"`
	FailedPayment     int `json:"failed_payment"`
	NonPositiveAmount int `json:"non_positive_amount"`

	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	UniqueCustomers int             `json:"unique_customers"`
}

// Rejected is the total number of rows excluded from the batch.
func (s Summary) Rejected() int {
	return s.MissingFields + s.Duplicates + s.FailedPayment + s.NonPositiveAmount
}

// Result is a completed ingestion pass: the validated transactions in
// source row order plus the processing summary. Completion is not
// all-or-nothing; a result with zero transactions is still a success.
type Result struct {
	Transactions []txdomain.Transaction `json:"transactions"`
	Summary      Summary                `json:"summary"`
}

// IngestionRun is the stored audit record of one ingestion pass,
// written after the batch has been merged into the running store.
type IngestionRun struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	FileName   string            `gorm:"type:text;not null" json:"file_name"`
	FileBytes  int64             `gorm:"not null" json:"file_bytes"`
	RowsSeen   int               `gorm:"not null" json:"rows_seen"`
	Accepted   int               `gorm:"not null" json:"accepted"`
	Inserted   int               `gorm:"not null" json:"inserted"`
	Duplicates int               `gorm:"not null" json:"duplicates"`
	Detail     datatypes.JSONMap `gorm:"type:jsonb" json:"detail"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// TableName sets the database table name.
func (IngestionRun) TableName() string { return "ingestion_runs" }

// DetailFromSummary flattens a summary into the run's JSON detail column.
func DetailFromSummary(s Summary) datatypes.JSONMap {
	return datatypes.JSONMap{
		"rows_seen":           s.RowsSeen,
		"accepted":            s.Accepted,
		"missing_fields":      s.MissingFields,
		"duplicates":          s.Duplicates,
		"failed_payment":      s.FailedPayment,
		"non_positive_amount": s.NonPositiveAmount,
		"total_revenue":       s.TotalRevenue.StringFixed(2),
		"unique_customers":    s.UniqueCustomers,
	}
}
