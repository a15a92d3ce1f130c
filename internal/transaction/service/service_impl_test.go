package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/classify"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) txdomain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&txdomain.Transaction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
}

func sampleTxn(orderID string) txdomain.Transaction {
	return txdomain.Transaction{
		OrderID:         orderID,
		OrderDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CustomerEmail:   "parent@example.com",
		NetAmount:       decimal.RequireFromString("150.00"),
		PaymentStatus:   txdomain.PaymentStatusSucceeded,
		Location:        classify.LocationMamaroneck,
		ProgramCategory: classify.ProgramSemester,
	}
}

func TestMergeInsertsNewRecords(t *testing.T) {
	svc := setupStore(t)
	ctx := context.Background()

	result, err := svc.Merge(ctx, []txdomain.Transaction{sampleTxn("A-1"), sampleTxn("A-2")})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if result.Inserted != 2 || result.Duplicates != 0 {
		t.Fatalf("expected 2 inserted, got %+v", result)
	}
	count, err := svc.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 stored, got %d", count)
	}
}

// Re-merging the same batch must identify every row as a duplicate
// against the existing store, leaving the count unchanged.
func TestMergeIsIdempotent(t *testing.T) {
	svc := setupStore(t)
	ctx := context.Background()
	batch := []txdomain.Transaction{sampleTxn("B-1"), sampleTxn("B-2"), sampleTxn("B-3")}

	if _, err := svc.Merge(ctx, batch); err != nil {
		t.Fatalf("first merge: %v", err)
	}
	result, err := svc.Merge(ctx, batch)
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if result.Inserted != 0 || result.Duplicates != 3 {
		t.Fatalf("expected all duplicates, got %+v", result)
	}
	if !result.NoNewRecords() {
		t.Fatalf("expected NoNewRecords for an all-duplicate merge")
	}
	count, _ := svc.Count(ctx)
	if count != 3 {
		t.Fatalf("expected count unchanged at 3, got %d", count)
	}
}

func TestMergeSkipsInBatchDuplicates(t *testing.T) {
	svc := setupStore(t)
	ctx := context.Background()

	result, err := svc.Merge(ctx, []txdomain.Transaction{sampleTxn("C-1"), sampleTxn("C-1")})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if result.Inserted != 1 || result.Duplicates != 1 {
		t.Fatalf("expected 1 inserted 1 duplicate, got %+v", result)
	}
}

func TestMergeEmptyBatch(t *testing.T) {
	svc := setupStore(t)
	if _, err := svc.Merge(context.Background(), nil); err != txdomain.ErrEmptyBatch {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	svc := setupStore(t)
	ctx := context.Background()
	if _, err := svc.Merge(ctx, []txdomain.Transaction{sampleTxn("D-1"), sampleTxn("D-2")}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	dropped, err := svc.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if dropped != 2 {
		t.Fatalf("expected 2 rows dropped, got %d", dropped)
	}
	count, _ := svc.Count(ctx)
	if count != 0 {
		t.Fatalf("expected empty store, got %d", count)
	}
}
