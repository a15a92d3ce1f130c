package analytics

import (
	"sort"
	"time"

	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics/domain"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/classify"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	"github.com/shopspring/decimal"
)

const monthKeyLayout = "2006-01"

// Aggregate computes a full metrics snapshot from a transaction list.
// An empty list yields zeroed KPIs and empty tables, not an error.
func Aggregate(txns []txdomain.Transaction, now time.Time) *domain.Snapshot {
	snapshot := &domain.Snapshot{
		ByProgram:   []domain.ProgramStat{},
		ByLocation:  []domain.LocationStat{},
		ByMonth:     []domain.MonthStat{},
		GeneratedAt: now,
	}
	if len(txns) == 0 {
		return snapshot
	}

	total := decimal.Zero
	perCustomer := make(map[string]int)

	type programAgg struct {
		revenue   decimal.Decimal
		count     int
		customers map[string]struct{}
	}
	programs := make(map[classify.ProgramCategory]*programAgg)
	locations := make(map[string]decimal.Decimal)
	locationCounts := make(map[string]int)
	months := make(map[string]decimal.Decimal)
	monthCounts := make(map[string]int)

	for _, txn := range txns {
		total = total.Add(txn.NetAmount)
		perCustomer[txn.CustomerEmail]++

		agg := programs[txn.ProgramCategory]
		if agg == nil {
			agg = &programAgg{revenue: decimal.Zero, customers: make(map[string]struct{})}
			programs[txn.ProgramCategory] = agg
		}
		agg.revenue = agg.revenue.Add(txn.NetAmount)
		agg.count++
		agg.customers[txn.CustomerEmail] = struct{}{}

		locations[txn.Location] = locations[txn.Location].Add(txn.NetAmount)
		locationCounts[txn.Location]++

		key := txn.OrderDate.Format(monthKeyLayout)
		months[key] = months[key].Add(txn.NetAmount)
		monthCounts[key]++
	}

	count := len(txns)
	snapshot.Overview = domain.Overview{
		TotalRevenue:      wholeUnits(total),
		UniqueCustomers:   len(perCustomer),
		TransactionCount:  count,
		AverageOrderValue: wholeUnits(total.Div(decimal.NewFromInt(int64(count)))),
		CustomerRetention: retentionPercent(perCustomer),
	}

	for category, agg := range programs {
		avg := agg.revenue.Div(decimal.NewFromInt(int64(agg.count)))
		snapshot.ByProgram = append(snapshot.ByProgram, domain.ProgramStat{
			Program:         category,
			Revenue:         wholeUnits(agg.revenue),
			Count:           agg.count,
			UniqueCustomers: len(agg.customers),
			AvgTransaction:  wholeUnits(avg),
		})
	}
	sort.SliceStable(snapshot.ByProgram, func(i, j int) bool {
		return snapshot.ByProgram[i].Revenue > snapshot.ByProgram[j].Revenue
	})

	for location, revenue := range locations {
		snapshot.ByLocation = append(snapshot.ByLocation, domain.LocationStat{
			Location: location,
			Revenue:  wholeUnits(revenue),
			Count:    locationCounts[location],
		})
	}
	sort.SliceStable(snapshot.ByLocation, func(i, j int) bool {
		return snapshot.ByLocation[i].Revenue > snapshot.ByLocation[j].Revenue
	})

	for month, revenue := range months {
		snapshot.ByMonth = append(snapshot.ByMonth, domain.MonthStat{
			Month:   month,
			Revenue: wholeUnits(revenue),
			Count:   monthCounts[month],
		})
	}
	sort.Slice(snapshot.ByMonth, func(i, j int) bool {
		return snapshot.ByMonth[i].Month < snapshot.ByMonth[j].Month
	})

	snapshot.Forecast = forecastNextMonth(snapshot.ByMonth)
	return snapshot
}

// retentionPercent is the share of customers with more than one
// transaction, as a rounded percentage.
func retentionPercent(perCustomer map[string]int) int {
	if len(perCustomer) == 0 {
		return 0
	}
	repeat := 0
	for _, n := range perCustomer {
		if n > 1 {
			repeat++
		}
	}
	ratio := decimal.NewFromInt(int64(repeat)).
		Div(decimal.NewFromInt(int64(len(perCustomer)))).
		Mul(decimal.NewFromInt(100))
	return int(ratio.Round(0).IntPart())
}

// forecastNextMonth fits a least-squares line through the monthly
// revenue series and projects one month ahead. Needs at least two
// months of history; projections are clamped at zero.
func forecastNextMonth(series []domain.MonthStat) *domain.Forecast {
	n := len(series)
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, stat := range series {
		x := float64(i)
		y := float64(stat.Revenue)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	projected := slope*float64(n) + intercept
	if projected < 0 {
		projected = 0
	}

	last, err := time.Parse(monthKeyLayout, series[n-1].Month)
	if err != nil {
		return nil
	}
	return &domain.Forecast{
		Month:   last.AddDate(0, 1, 0).Format(monthKeyLayout),
		Revenue: int64(projected + 0.5),
	}
}

// wholeUnits rounds a monetary value to whole currency units for the
// aggregate display fields.
func wholeUnits(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
