package domain

import (
	"context"
	"errors"
)

// Service owns the running transaction store: cross-batch merging,
// listing, and the destructive full reset.
type Service interface {
	// Merge appends transactions whose order IDs are not already stored.
	// Duplicate detection runs against the full existing set inside one
	// database transaction, so concurrent merges serialize there.
	Merge(ctx context.Context, txns []Transaction) (MergeResult, error)

	// List returns every stored transaction in order-date order.
	List(ctx context.Context) ([]Transaction, error)

	Count(ctx context.Context) (int64, error)

	// DeleteAll removes every stored transaction and returns the number
	// of rows dropped.
	DeleteAll(ctx context.Context) (int64, error)
}

var (
	ErrEmptyBatch = errors.New("empty_batch")
)
