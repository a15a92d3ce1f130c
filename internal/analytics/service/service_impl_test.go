package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics/domain"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/clock"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/config"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var svcTestNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeStore implements txdomain.Service with canned data and a List
// call counter for cache assertions.
type fakeStore struct {
	txns      []txdomain.Transaction
	listCalls int
}

func (f *fakeStore) Merge(ctx context.Context, txns []txdomain.Transaction) (txdomain.MergeResult, error) {
	return txdomain.MergeResult{}, errors.New("not implemented")
}

func (f *fakeStore) List(ctx context.Context) ([]txdomain.Transaction, error) {
	f.listCalls++
	return f.txns, nil
}

func (f *fakeStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.txns)), nil
}

func (f *fakeStore) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(f.txns))
	f.txns = nil
	return n, nil
}

func setupAnalytics(t *testing.T, store *fakeStore) domain.Service {
	t.Helper()
	return NewService(ServiceParam{
		Config:       config.Default(),
		Log:          zap.NewNop(),
		Clock:        clock.FixedClock{At: svcTestNow},
		Transactions: store,
	})
}

func storeWith(orderIDs ...string) *fakeStore {
	store := &fakeStore{}
	for i, id := range orderIDs {
		store.txns = append(store.txns, txdomain.Transaction{
			OrderID:       id,
			OrderDate:     svcTestNow.AddDate(0, 0, -i),
			CustomerEmail: id + "@example.com",
			NetAmount:     decimal.NewFromInt(100),
			PaymentStatus: txdomain.PaymentStatusSucceeded,
			Location:      "NYC",
		})
	}
	return store
}

func TestSnapshotServesFromCache(t *testing.T) {
	store := storeWith("a", "b")
	svc := setupAnalytics(t, store)

	filter := domain.Filter{DateRange: domain.RangeAll}
	first, err := svc.Snapshot(context.Background(), filter)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	second, err := svc.Snapshot(context.Background(), filter)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if store.listCalls != 1 {
		t.Fatalf("expected one store read, got %d", store.listCalls)
	}
	if first != second {
		t.Fatalf("expected the cached snapshot instance back")
	}
}

func TestSnapshotCacheKeyedByFilter(t *testing.T) {
	store := storeWith("a", "b")
	svc := setupAnalytics(t, store)

	if _, err := svc.Snapshot(context.Background(), domain.Filter{DateRange: domain.RangeAll}); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if _, err := svc.Snapshot(context.Background(), domain.Filter{DateRange: domain.Range7d}); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if store.listCalls != 2 {
		t.Fatalf("different filters must not share cache entries, got %d reads", store.listCalls)
	}
}

func TestInvalidateDropsCache(t *testing.T) {
	store := storeWith("a")
	svc := setupAnalytics(t, store)

	filter := domain.Filter{DateRange: domain.RangeAll}
	if _, err := svc.Snapshot(context.Background(), filter); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	svc.Invalidate()
	if _, err := svc.Snapshot(context.Background(), filter); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if store.listCalls != 2 {
		t.Fatalf("expected a fresh read after invalidate, got %d", store.listCalls)
	}
}

func TestSnapshotRejectsUnknownRange(t *testing.T) {
	svc := setupAnalytics(t, storeWith("a"))

	_, err := svc.Snapshot(context.Background(), domain.Filter{DateRange: "fortnight"})
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	_, err = svc.Transactions(context.Background(), domain.Filter{DateRange: "fortnight"}, 10)
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestTransactionsAppliesLimit(t *testing.T) {
	svc := setupAnalytics(t, storeWith("a", "b", "c"))

	txns, err := svc.Transactions(context.Background(), domain.Filter{}, 2)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}

	txns, err = svc.Transactions(context.Background(), domain.Filter{}, 0)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("limit 0 means unlimited, got %d", len(txns))
	}
}
