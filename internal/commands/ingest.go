package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/app"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/clock"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/config"
	ingestdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/ingest/domain"
	ingestservice "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/ingest/service"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/migration"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/observability/logger"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	txservice "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/service"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/pkg/db"
	"github.com/spf13/cobra"
)

func newIngestCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Parse an export file and merge it into the local database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), args[0], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and report without writing to the database")
	return cmd
}

func runIngest(ctx context.Context, path string, dryRun bool) error {
	env, err := openEnvironment(ctx)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening export: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat export: %w", err)
	}

	result, err := env.ingest.ParseFile(ctx, filepath.Base(path), file)
	if err != nil {
		return err
	}

	summary := result.Summary
	fmt.Printf("rows seen: %d\n", summary.RowsSeen)
	fmt.Printf("accepted: %d\n", summary.Accepted)
	fmt.Printf("rejected: %d (missing fields %d, duplicates %d, failed payment %d, non-positive %d)\n",
		summary.Rejected(), summary.MissingFields, summary.Duplicates,
		summary.FailedPayment, summary.NonPositiveAmount)
	fmt.Printf("batch revenue: %s\n", summary.TotalRevenue.StringFixed(2))

	if dryRun {
		fmt.Println("dry run, nothing written")
		return nil
	}

	var merge txdomain.MergeResult
	if len(result.Transactions) > 0 {
		merge, err = env.transactions.Merge(ctx, result.Transactions)
		if err != nil {
			return err
		}
	}
	if _, err := env.ingest.RecordRun(ctx, filepath.Base(path), info.Size(), summary, merge); err != nil {
		return err
	}

	fmt.Printf("merged: %d inserted, %d already stored\n", merge.Inserted, merge.Duplicates)
	if merge.NoNewRecords() {
		fmt.Println("every row was already in the store")
	}
	return nil
}

// cliEnv bundles the services the offline commands need.
type cliEnv struct {
	clk          clock.Clock
	ingest       ingestdomain.Service
	transactions txdomain.Service
}

func openEnvironment(ctx context.Context) (*cliEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Environment)
	if err != nil {
		return nil, err
	}
	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := migration.Run(ctx, conn, log.Named("migration")); err != nil {
		return nil, err
	}

	node := app.NewSnowflakeNode()
	clk := clock.SystemClock{}
	txSvc := txservice.NewService(txservice.ServiceParam{DB: conn, Log: log, GenID: node})
	ingestSvc := ingestservice.NewService(ingestservice.ServiceParam{
		DB: conn, Log: log, GenID: node, Clock: clk,
	})

	return &cliEnv{
		clk:          clk,
		ingest:       ingestSvc,
		transactions: txSvc,
	}, nil
}
