package server

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics/domain"
)

// GetMetrics returns the aggregated dashboard snapshot for the
// requested filter. ?format=csv streams the same numbers as a flat
// export.
func (s *Server) GetMetrics(c *gin.Context) {
	if s.analyticsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	filter, err := parseMetricsFilter(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	snap, err := s.analyticsSvc.Snapshot(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		writeSnapshotCSV(c, "metrics.csv", snap)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snap})
}

func parseMetricsFilter(c *gin.Context) (analyticsdomain.Filter, error) {
	rangeValue := analyticsdomain.DateRange(strings.ToLower(strings.TrimSpace(c.Query("range"))))
	if !analyticsdomain.ValidRange(rangeValue) {
		return analyticsdomain.Filter{}, analyticsdomain.ErrInvalidRange
	}

	start, err := parseOptionalTime(c.Query("start"), false)
	if err != nil {
		return analyticsdomain.Filter{}, newValidationError("start", "invalid_time", "invalid start date")
	}
	end, err := parseOptionalTime(c.Query("end"), false)
	if err != nil {
		return analyticsdomain.Filter{}, newValidationError("end", "invalid_time", "invalid end date")
	}
	if start != nil && end != nil && start.After(*end) {
		return analyticsdomain.Filter{}, newValidationError("range", "invalid_range", "start must be before end")
	}

	return analyticsdomain.Filter{
		DateRange: rangeValue,
		Start:     start,
		End:       end,
		Location:  strings.TrimSpace(c.Query("location")),
		Program:   strings.TrimSpace(c.Query("program")),
	}, nil
}

func writeSnapshotCSV(c *gin.Context, filename string, snap *analyticsdomain.Snapshot) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write([]string{"Metric", "Value"})
	_ = writer.Write([]string{"Total Revenue", fmt.Sprintf("%d", snap.Overview.TotalRevenue)})
	_ = writer.Write([]string{"Unique Customers", fmt.Sprintf("%d", snap.Overview.UniqueCustomers)})
	_ = writer.Write([]string{"Transactions", fmt.Sprintf("%d", snap.Overview.TransactionCount)})
	_ = writer.Write([]string{"Average Order Value", fmt.Sprintf("%d", snap.Overview.AverageOrderValue)})
	_ = writer.Write([]string{"Customer Retention %", fmt.Sprintf("%d", snap.Overview.CustomerRetention)})
	_ = writer.Write(nil)

	_ = writer.Write([]string{"Program", "Revenue", "Transactions", "Unique Customers", "Avg Transaction"})
	for _, row := range snap.ByProgram {
		_ = writer.Write([]string{
			string(row.Program),
			fmt.Sprintf("%d", row.Revenue),
			fmt.Sprintf("%d", row.Count),
			fmt.Sprintf("%d", row.UniqueCustomers),
			fmt.Sprintf("%d", row.AvgTransaction),
		})
	}
	_ = writer.Write(nil)

	_ = writer.Write([]string{"Location", "Revenue", "Transactions"})
	for _, row := range snap.ByLocation {
		_ = writer.Write([]string{row.Location, fmt.Sprintf("%d", row.Revenue), fmt.Sprintf("%d", row.Count)})
	}
	_ = writer.Write(nil)

	_ = writer.Write([]string{"Month", "Revenue", "Transactions"})
	for _, row := range snap.ByMonth {
		_ = writer.Write([]string{row.Month, fmt.Sprintf("%d", row.Revenue), fmt.Sprintf("%d", row.Count)})
	}

	if snap.Forecast != nil {
		_ = writer.Write(nil)
		_ = writer.Write([]string{"Forecast Month", "Projected Revenue"})
		_ = writer.Write([]string{snap.Forecast.Month, fmt.Sprintf("%d", snap.Forecast.Revenue)})
	}
}
