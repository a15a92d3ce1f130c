package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/classify"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/clock"
	ingestdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/ingest/domain"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

const sampleHeader = "Order ID,Order Date,Customer Email,Net Amount to Provider,Payment Status,Item Types,Order Activity Names,Order Locations,Provider Name"

func setupIngest(t *testing.T) ingestdomain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&ingestdomain.IngestionRun{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.FixedClock{At: testNow},
	})
}

func parse(t *testing.T, svc ingestdomain.Service, lines ...string) *ingestdomain.Result {
	t.Helper()
	result, err := svc.ParseText(context.Background(), "export.csv", strings.Join(lines, "\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return result
}

func TestParseTextAcceptsValidRows(t *testing.T) {
	svc := setupIngest(t)
	result := parse(t, svc,
		sampleHeader,
		"MI-1,2024-06-01,Parent@Example.com,$150.00,Succeeded,semester,LEGO Engineering,Mamaroneck,MakeInspires",
		`MI-2,2024-06-02,other@example.com,"1,250.50",Succeeded,party,Birthday Bash,NYC,MakeInspires`,
	)

	if result.Summary.Accepted != 2 || result.Summary.Rejected() != 0 {
		t.Fatalf("unexpected summary: %+v", result.Summary)
	}
	first := result.Transactions[0]
	if first.CustomerEmail != "parent@example.com" {
		t.Fatalf("email must be lower-cased, got %q", first.CustomerEmail)
	}
	if first.ProgramCategory != classify.ProgramSemester {
		t.Fatalf("expected Semester, got %q", first.ProgramCategory)
	}
	if first.Location != classify.LocationMamaroneck {
		t.Fatalf("expected Mamaroneck, got %q", first.Location)
	}
	second := result.Transactions[1]
	if got := second.NetAmount.StringFixed(2); got != "1250.50" {
		t.Fatalf("quoted thousands amount parsed as %s", got)
	}
	if got := result.Summary.TotalRevenue.StringFixed(2); got != "1400.50" {
		t.Fatalf("total revenue = %s", got)
	}
}

func TestParseTextEmptyFile(t *testing.T) {
	svc := setupIngest(t)
	for _, text := range []string{"", sampleHeader, sampleHeader + "\n\n\n"} {
		_, err := svc.ParseText(context.Background(), "empty.csv", text)
		if !errors.Is(err, ingestdomain.ErrEmptyFile) {
			t.Fatalf("expected ErrEmptyFile for %q, got %v", text, err)
		}
	}
}

func TestParseTextMissingColumns(t *testing.T) {
	svc := setupIngest(t)
	_, err := svc.ParseText(context.Background(), "bad.csv",
		"Order ID,Customer Email\nMI-1,parent@example.com")

	var missing *ingestdomain.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	want := []string{"Order Date", "Net Amount to Provider", "Payment Status"}
	if len(missing.Columns) != len(want) {
		t.Fatalf("expected %v missing, got %v", want, missing.Columns)
	}
	for i, name := range want {
		if missing.Columns[i] != name {
			t.Fatalf("expected %v missing, got %v", want, missing.Columns)
		}
	}
}

// Header matching is by substring, not exact text: a renamed export
// with equivalent headers still resolves.
func TestHeaderSubstringMatching(t *testing.T) {
	svc := setupIngest(t)
	result := parse(t, svc,
		"order id (external),date of order,buyer email,net amount ($),payment status,item types,activity,location,provider name",
		"MI-9,2024-05-04,kid@example.com,99.50,Succeeded,drop-in,Open Studio,NYC,MakeInspires",
	)
	if result.Summary.Accepted != 1 {
		t.Fatalf("expected renamed headers to resolve, got %+v", result.Summary)
	}
	if result.Transactions[0].ProgramCategory != classify.ProgramWorkshops {
		t.Fatalf("expected Workshops, got %q", result.Transactions[0].ProgramCategory)
	}
}

func TestOptionalColumnsTolerated(t *testing.T) {
	svc := setupIngest(t)
	result := parse(t, svc,
		"Order ID,Order Date,Customer Email,Net Amount to Provider,Payment Status",
		"MI-3,2024-06-05,parent@example.com,75,Succeeded",
	)
	if result.Summary.Accepted != 1 {
		t.Fatalf("expected 1 accepted, got %+v", result.Summary)
	}
	txn := result.Transactions[0]
	if txn.ItemTypes != "" || txn.ActivityName != "" || txn.ProviderName != "" {
		t.Fatalf("optional fields must default to empty, got %+v", txn)
	}
	if txn.Location != classify.LocationOther {
		t.Fatalf("empty location must normalize to Other, got %q", txn.Location)
	}
	if txn.ProgramCategory != classify.ProgramOther {
		t.Fatalf("expected Other, got %q", txn.ProgramCategory)
	}
}

func TestShortRowsArePadded(t *testing.T) {
	svc := setupIngest(t)
	result := parse(t, svc,
		sampleHeader,
		// Trailing optional fields omitted entirely.
		"MI-4,2024-06-06,parent@example.com,50,Succeeded",
	)
	if result.Summary.Accepted != 1 {
		t.Fatalf("expected short row to be padded and accepted, got %+v", result.Summary)
	}
}

func TestRejectionReasonsAreOrderedAndExclusive(t *testing.T) {
	svc := setupIngest(t)
	result := parse(t, svc,
		sampleHeader,
		",2024-06-01,parent@example.com,100,Succeeded,,,,",      // missing order id
		"MI-5,2024-06-01,,100,Succeeded,,,,",                    // missing email
		"MI-6,2024-06-01,parent@example.com,100,Succeeded,,,,",  // accepted
		"MI-6,2024-06-01,parent@example.com,100,Succeeded,,,,",  // duplicate
		"MI-7,2024-06-01,parent@example.com,100,Refunded,,,,",   // failed payment
		"MI-7,2024-06-01,parent@example.com,100,Succeeded,,,,",  // duplicate beats payment retry
		"MI-8,2024-06-01,parent@example.com,0,Succeeded,,,,",    // zero amount
		"MI-10,2024-06-01,parent@example.com,-5,Succeeded,,,,",  // negative amount
		"MI-11,2024-06-01,parent@example.com,abc,Succeeded,,,,", // unparseable amount becomes 0
	)

	s := result.Summary
	if s.RowsSeen != 9 {
		t.Fatalf("rows seen = %d", s.RowsSeen)
	}
	if s.Accepted != 1 || s.MissingFields != 2 || s.Duplicates != 2 || s.FailedPayment != 1 || s.NonPositiveAmount != 3 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.RowsSeen != s.Accepted+s.Rejected() {
		t.Fatalf("buckets must partition rows: %+v", s)
	}
	for _, txn := range result.Transactions {
		if txn.NetAmount.Sign() <= 0 {
			t.Fatalf("non-positive amount leaked into output: %+v", txn)
		}
		if txn.PaymentStatus != txdomain.PaymentStatusSucceeded {
			t.Fatalf("non-succeeded payment leaked into output: %+v", txn)
		}
	}
}

func TestUnparseableDateFallsBackToNow(t *testing.T) {
	svc := setupIngest(t)
	result := parse(t, svc,
		sampleHeader,
		"MI-12,not a date,parent@example.com,10,Succeeded,,,,",
	)
	if !result.Transactions[0].OrderDate.Equal(testNow) {
		t.Fatalf("expected clock fallback, got %v", result.Transactions[0].OrderDate)
	}
}

func TestSummaryRevenueAndCustomers(t *testing.T) {
	svc := setupIngest(t)
	result := parse(t, svc,
		sampleHeader,
		"MI-20,2024-06-01,a@example.com,100,Succeeded,,,,",
		"MI-21,2024-06-01,A@EXAMPLE.COM,50,Succeeded,,,,",
		"MI-22,2024-06-01,b@example.com,25,Succeeded,,,,",
	)
	if result.Summary.UniqueCustomers != 2 {
		t.Fatalf("case-folded emails must group: %+v", result.Summary)
	}
	if got := result.Summary.TotalRevenue.StringFixed(2); got != "175.00" {
		t.Fatalf("total revenue = %s", got)
	}
}

func TestRecordAndListRuns(t *testing.T) {
	svc := setupIngest(t)
	ctx := context.Background()

	summary := ingestdomain.Summary{RowsSeen: 3, Accepted: 2}
	run, err := svc.RecordRun(ctx, "export.csv", 1024, summary, txdomain.MergeResult{Inserted: 2})
	if err != nil {
		t.Fatalf("record run: %v", err)
	}
	if run.ID == 0 {
		t.Fatalf("expected generated run id")
	}

	runs, err := svc.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 || runs[0].FileName != "export.csv" || runs[0].Inserted != 2 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}
