package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics"
	analyticsdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics/domain"
	"github.com/spf13/cobra"
)

func newMetricsCommand() *cobra.Command {
	var (
		rangeFlag string
		startFlag string
		endFlag   string
		location  string
		program   string
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Print the metrics snapshot for the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := buildMetricsFilter(rangeFlag, startFlag, endFlag, location, program)
			if err != nil {
				return err
			}
			return runMetrics(cmd.Context(), filter)
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "range", "all", "date range: all, 7d, 30d, 90d, 6m, 12m, ytd, custom")
	cmd.Flags().StringVar(&startFlag, "start", "", "custom range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endFlag, "end", "", "custom range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&location, "location", "", "location tag filter")
	cmd.Flags().StringVar(&program, "program", "", "program category filter")
	return cmd
}

func buildMetricsFilter(rangeFlag, startFlag, endFlag, location, program string) (analyticsdomain.Filter, error) {
	rangeValue := analyticsdomain.DateRange(strings.ToLower(strings.TrimSpace(rangeFlag)))
	if !analyticsdomain.ValidRange(rangeValue) {
		return analyticsdomain.Filter{}, fmt.Errorf("unknown range %q", rangeFlag)
	}

	filter := analyticsdomain.Filter{
		DateRange: rangeValue,
		Location:  strings.TrimSpace(location),
		Program:   strings.TrimSpace(program),
	}
	if startFlag != "" {
		start, err := time.Parse("2006-01-02", startFlag)
		if err != nil {
			return analyticsdomain.Filter{}, fmt.Errorf("invalid start date %q", startFlag)
		}
		filter.Start = &start
	}
	if endFlag != "" {
		end, err := time.Parse("2006-01-02", endFlag)
		if err != nil {
			return analyticsdomain.Filter{}, fmt.Errorf("invalid end date %q", endFlag)
		}
		filter.End = &end
	}
	return filter, nil
}

func runMetrics(ctx context.Context, filter analyticsdomain.Filter) error {
	env, err := openEnvironment(ctx)
	if err != nil {
		return err
	}

	txns, err := env.transactions.List(ctx)
	if err != nil {
		return err
	}

	now := env.clk.Now()
	snap := analytics.Aggregate(analytics.ApplyFilter(txns, filter, now), now)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}
