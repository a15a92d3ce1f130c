// Package domain holds the persistent transaction model. Transactions
// are created only by the ingestion pipeline and are immutable once
// stored.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/classify"
	"github.com/shopspring/decimal"
)

// PaymentStatusSucceeded is the only payment status the pipeline accepts.
const PaymentStatusSucceeded = "Succeeded"

// Transaction is one accepted, validated purchase record.
type Transaction struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`

	// OrderID is the natural dedup key across every ingestion pass.
	OrderID       string          `gorm:"type:text;not null;uniqueIndex:ux_transactions_order_id" json:"order_id"`
	OrderDate     time.Time       `gorm:"not null;index" json:"order_date"`
	CustomerEmail string          `gorm:"type:text;not null;index" json:"customer_email"`
	NetAmount     decimal.Decimal `gorm:"type:numeric;not null" json:"net_amount"`
	PaymentStatus string          `gorm:"type:text;not null" json:"payment_status"`

	ItemTypes    string `gorm:"type:text" json:"item_types"`
	ActivityName string `gorm:"type:text" json:"activity_name"`
	ProviderName string `gorm:"type:text" json:"provider_name"`

	// Location is the canonical tag, or the original text when no rule
	// matched.
	Location        string                   `gorm:"type:text;not null;index" json:"location"`
	ProgramCategory classify.ProgramCategory `gorm:"type:text;not null;index" json:"program_category"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Transaction) TableName() string { return "transactions" }

// MergeResult reports the outcome of merging an ingestion batch into
// the running store.
type MergeResult struct {
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
}

// NoNewRecords reports whether a non-empty batch produced no inserts,
// which the UI must surface distinctly from a normal import.
func (r MergeResult) NoNewRecords() bool {
	return r.Inserted == 0 && r.Duplicates > 0
}
