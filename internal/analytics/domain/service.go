package domain

import (
	"context"
	"errors"

	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
)

// Service computes dashboard metrics over the running transaction store.
type Service interface {
	// Snapshot aggregates the transactions matching the filter.
	Snapshot(ctx context.Context, f Filter) (*Snapshot, error)

	// Transactions returns the filtered list itself, capped at limit
	// when limit > 0.
	Transactions(ctx context.Context, f Filter, limit int) ([]txdomain.Transaction, error)

	// Invalidate drops any cached snapshots after the store changes.
	Invalidate()
}

var ErrInvalidRange = errors.New("invalid_date_range")
