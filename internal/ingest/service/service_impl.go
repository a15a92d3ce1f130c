package service

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/classify"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/clock"
	ingestdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/ingest/domain"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/ingest/dates"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/ingest/lineparser"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/observability/metrics"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const delimiter = ','

// columnSpec locates a column by case-insensitive substring match: a
// header matches when it contains every key. Source column
// order is irrelevant; only header text matters.
type columnSpec struct {
	name string
	keys []string
}

var requiredColumns = []columnSpec{
	{name: "Order ID", keys: []string{"order", "id"}},
	{name: "Order Date", keys: []string{"order", "date"}},
	{name: "Customer Email", keys: []string{"email"}},
	{name: "Net Amount to Provider", keys: []string{"net", "amount"}},
	{name: "Payment Status", keys: []string{"payment", "status"}},
}

var optionalColumns = []columnSpec{
	{name: "Item Types", keys: []string{"item", "type"}},
	{name: "Order Activity Names", keys: []string{"activity"}},
	{name: "Order Locations", keys: []string{"location"}},
	{name: "Provider Name", keys: []string{"provider", "name"}},
}

// Indexes into the resolved column table, required first.
const (
	colOrderID = iota
	colOrderDate
	colEmail
	colNetAmount
	colPaymentStatus
	colItemTypes
	colActivity
	colLocation
	colProvider
	colCount
)

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Metrics *metrics.PipelineMetrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	metrics *metrics.PipelineMetrics
}

func NewService(p ServiceParam) ingestdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("ingest.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		metrics: p.Metrics,
	}
}

func (s *Service) ParseFile(ctx context.Context, name string, r io.Reader) (*ingestdomain.Result, error) {
	if strings.EqualFold(path.Ext(name), ".xlsx") {
		return s.parseWorkbook(ctx, name, r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		s.metrics.IncIngestRun("failed")
		return nil, &ingestdomain.UnreadableFileError{Name: name, Err: err}
	}
	return s.ParseText(ctx, name, string(data))
}

func (s *Service) ParseText(ctx context.Context, name, text string) (*ingestdomain.Result, error) {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, lineparser.Split(line, delimiter))
	}
	return s.process(ctx, name, rows)
}

func (s *Service) parseWorkbook(ctx context.Context, name string, r io.Reader) (*ingestdomain.Result, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		s.metrics.IncIngestRun("failed")
		return nil, &ingestdomain.UnreadableFileError{Name: name, Err: err}
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		s.metrics.IncIngestRun("failed")
		return nil, ingestdomain.ErrEmptyFile
	}
	raw, err := workbook.GetRows(sheets[0])
	if err != nil {
		s.metrics.IncIngestRun("failed")
		return nil, &ingestdomain.UnreadableFileError{Name: name, Err: err}
	}

	var rows [][]string
	for _, cells := range raw {
		trimmed := make([]string, len(cells))
		blank := true
		for i, cell := range cells {
			trimmed[i] = strings.TrimSpace(cell)
			if trimmed[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, trimmed)
	}
	return s.process(ctx, name, rows)
}

// process is the shared pipeline core: header resolution, per-row
// validation, classification, and summary accounting. Row-level
// failures never abort the batch.
func (s *Service) process(ctx context.Context, name string, rows [][]string) (*ingestdomain.Result, error) {
	if len(rows) < 2 {
		s.metrics.IncIngestRun("failed")
		return nil, ingestdomain.ErrEmptyFile
	}

	columns, missing := resolveColumns(rows[0])
	if len(missing) > 0 {
		s.metrics.IncIngestRun("failed")
		return nil, &ingestdomain.MissingColumnError{Columns: missing}
	}

	headerWidth := len(rows[0])
	result := &ingestdomain.Result{}
	result.Summary.TotalRevenue = decimal.Zero
	seen := make(map[string]struct{})
	customers := make(map[string]struct{})

	for _, fields := range rows[1:] {
		result.Summary.RowsSeen++

		// Exports omitting trailing delimiters produce short rows.
		for len(fields) < headerWidth {
			fields = append(fields, "")
		}

		orderID := field(fields, columns[colOrderID])
		email := strings.ToLower(field(fields, columns[colEmail]))
		if orderID == "" || email == "" {
			result.Summary.MissingFields++
			continue
		}
		if _, dup := seen[orderID]; dup {
			result.Summary.Duplicates++
			continue
		}
		seen[orderID] = struct{}{}

		if field(fields, columns[colPaymentStatus]) != txdomain.PaymentStatusSucceeded {
			result.Summary.FailedPayment++
			continue
		}
		amount := parseAmount(field(fields, columns[colNetAmount]))
		if amount.Sign() <= 0 {
			result.Summary.NonPositiveAmount++
			continue
		}
		amount = amount.Round(2)

		itemTypes := field(fields, columns[colItemTypes])
		activity := field(fields, columns[colActivity])
		txn := txdomain.Transaction{
			OrderID:         orderID,
			OrderDate:       dates.Parse(field(fields, columns[colOrderDate]), s.clock.Now()),
			CustomerEmail:   email,
			NetAmount:       amount,
			PaymentStatus:   txdomain.PaymentStatusSucceeded,
			ItemTypes:       itemTypes,
			ActivityName:    activity,
			ProviderName:    field(fields, columns[colProvider]),
			Location:        classify.Location(field(fields, columns[colLocation])),
			ProgramCategory: classify.Program(itemTypes, activity),
		}

		result.Transactions = append(result.Transactions, txn)
		result.Summary.Accepted++
		result.Summary.TotalRevenue = result.Summary.TotalRevenue.Add(amount)
		customers[email] = struct{}{}
	}
	result.Summary.UniqueCustomers = len(customers)

	s.metrics.AddIngestRows("accepted", result.Summary.Accepted)
	s.metrics.AddIngestRows("missing_fields", result.Summary.MissingFields)
	s.metrics.AddIngestRows("duplicate", result.Summary.Duplicates)
	s.metrics.AddIngestRows("failed_payment", result.Summary.FailedPayment)
	s.metrics.AddIngestRows("non_positive_amount", result.Summary.NonPositiveAmount)
	s.metrics.IncIngestRun("success")

	s.log.Info("ingestion pass complete",
		zap.String("file", name),
		zap.Int("rows_seen", result.Summary.RowsSeen),
		zap.Int("accepted", result.Summary.Accepted),
		zap.Int("rejected", result.Summary.Rejected()),
	)
	return result, nil
}

func (s *Service) RecordRun(ctx context.Context, name string, fileBytes int64, summary ingestdomain.Summary, merge txdomain.MergeResult) (*ingestdomain.IngestionRun, error) {
	run := &ingestdomain.IngestionRun{
		ID:         s.genID.Generate(),
		FileName:   name,
		FileBytes:  fileBytes,
		RowsSeen:   summary.RowsSeen,
		Accepted:   summary.Accepted,
		Inserted:   merge.Inserted,
		Duplicates: merge.Duplicates,
		Detail:     ingestdomain.DetailFromSummary(summary),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, err
	}
	s.metrics.AddMergeRecords("inserted", merge.Inserted)
	s.metrics.AddMergeRecords("duplicate", merge.Duplicates)
	return run, nil
}

func (s *Service) RecentRuns(ctx context.Context, limit int) ([]ingestdomain.IngestionRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []ingestdomain.IngestionRun
	if err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// resolveColumns maps every known column to its header index, -1 when
// absent. Missing required columns are all reported together.
func resolveColumns(header []string) ([colCount]int, []string) {
	var columns [colCount]int
	var missing []string

	for i, spec := range requiredColumns {
		columns[i] = findColumn(header, spec)
		if columns[i] < 0 {
			missing = append(missing, spec.name)
		}
	}
	for i, spec := range optionalColumns {
		columns[len(requiredColumns)+i] = findColumn(header, spec)
	}
	return columns, missing
}

func findColumn(header []string, spec columnSpec) int {
	for i, cell := range header {
		lowered := strings.ToLower(cell)
		matched := true
		for _, key := range spec.keys {
			if !strings.Contains(lowered, key) {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}

func field(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

// parseAmount strips currency symbols and thousands separators, then
// parses the remainder. Unparseable amounts become zero, which the
// caller rejects as non-positive.
func parseAmount(raw string) decimal.Decimal {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(raw)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
