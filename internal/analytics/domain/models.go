// Package domain defines the metrics snapshot and filter types the
// dashboard consumes.
package domain

import (
	"time"

	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/classify"
)

// DateRange selects a preset or custom window over order dates.
type DateRange string

const (
	RangeAll    DateRange = "all"
	Range7d     DateRange = "7d"
	Range30d    DateRange = "30d"
	Range90d    DateRange = "90d"
	Range6m     DateRange = "6m"
	Range12m    DateRange = "12m"
	RangeYTD    DateRange = "ytd"
	RangeCustom DateRange = "custom"
)

// ValidRange reports whether value names a known date range.
func ValidRange(value DateRange) bool {
	switch value {
	case "", RangeAll, Range7d, Range30d, Range90d, Range6m, Range12m, RangeYTD, RangeCustom:
		return true
	default:
		return false
	}
}

// Filter narrows the transaction set before aggregation. Active fields
// combine with logical AND. Zero value means "everything".
type Filter struct {
	DateRange DateRange  `json:"date_range"`
	Start     *time.Time `json:"start,omitempty"` // custom range only
	End       *time.Time `json:"end,omitempty"`   // custom range only
	Location  string     `json:"location"`        // exact normalized tag, "" or "all" to skip
	Program   string     `json:"program"`         // exact category, "" or "all" to skip
}

// Overview holds the headline KPIs. Monetary values are whole currency
// units; per-transaction amounts keep their 2-decimal precision
// upstream.
type Overview struct {
	TotalRevenue      int64 `json:"total_revenue"`
	UniqueCustomers   int   `json:"unique_customers"`
	TransactionCount  int   `json:"transaction_count"`
	AverageOrderValue int64 `json:"average_order_value"`
	CustomerRetention int   `json:"customer_retention"` // percent, rounded
}

// ProgramStat is one row of the by-program table.
type ProgramStat struct {
	Program         classify.ProgramCategory `json:"program"`
	Revenue         int64                    `json:"revenue"`
	Count           int                      `json:"count"`
	UniqueCustomers int                      `json:"unique_customers"`
	AvgTransaction  int64                    `json:"avg_transaction"`
}

// LocationStat is one row of the by-location table.
type LocationStat struct {
	Location string `json:"location"`
	Revenue  int64  `json:"revenue"`
	Count    int    `json:"count"`
}

// MonthStat is one row of the by-month table; Month is "YYYY-MM".
type MonthStat struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
	Count   int    `json:"count"`
}

// Forecast is a simple linear projection of next month's revenue.
type Forecast struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// Snapshot is the full metrics object the dashboard renders. It is
// recomputed from the transaction list on demand and replaced, never
// mutated.
type Snapshot struct {
	Overview    Overview       `json:"overview"`
	ByProgram   []ProgramStat  `json:"by_program"`
	ByLocation  []LocationStat `json:"by_location"`
	ByMonth     []MonthStat    `json:"by_month"`
	Forecast    *Forecast      `json:"forecast,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
}
