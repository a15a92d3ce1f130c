// Package analytics filters transaction lists and aggregates them into
// the dashboard's metrics snapshot. Everything here is a pure function
// of its inputs; the service wrapper adds storage access and caching.
package analytics

import (
	"time"

	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics/domain"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
)

var relativeDays = map[domain.DateRange]int{
	domain.Range7d:  7,
	domain.Range30d: 30,
	domain.Range90d: 90,
	domain.Range6m:  180,
	domain.Range12m: 365,
}

// ApplyFilter returns the transactions matching the filter. now anchors
// the relative and year-to-date ranges.
func ApplyFilter(txns []txdomain.Transaction, f domain.Filter, now time.Time) []txdomain.Transaction {
	matches := make([]txdomain.Transaction, 0, len(txns))
	for _, txn := range txns {
		if matchDate(txn.OrderDate, f, now) && matchLocation(txn, f) && matchProgram(txn, f) {
			matches = append(matches, txn)
		}
	}
	return matches
}

func matchDate(orderDate time.Time, f domain.Filter, now time.Time) bool {
	switch f.DateRange {
	case "", domain.RangeAll:
		return true
	case domain.RangeCustom:
		if f.Start != nil {
			start := startOfDay(*f.Start)
			if orderDate.Before(start) {
				return false
			}
		}
		if f.End != nil {
			end := endOfDay(*f.End)
			if orderDate.After(end) {
				return false
			}
		}
		return true
	case domain.RangeYTD:
		janFirst := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return !orderDate.Before(janFirst)
	default:
		days, ok := relativeDays[f.DateRange]
		if !ok {
			return true
		}
		cutoff := now.AddDate(0, 0, -days)
		return !orderDate.Before(cutoff)
	}
}

func matchLocation(txn txdomain.Transaction, f domain.Filter) bool {
	if f.Location == "" || f.Location == "all" {
		return true
	}
	return txn.Location == f.Location
}

func matchProgram(txn txdomain.Transaction, f domain.Filter) bool {
	if f.Program == "" || f.Program == "all" {
		return true
	}
	return string(txn.ProgramCategory) == f.Program
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay is inclusive through 23:59:59.999, matching how a user reads
// an end-date picker.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}
