// Package app assembles the fx graph shared by the API binary and the
// CLI's serve command.
package app

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics/snapshot"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/clock"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/config"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/events"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/ingest"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/migration"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/observability"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/seed"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/server"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Options builds the full API application graph.
func Options() fx.Option {
	return fx.Options(
		config.Module,
		observability.Module,
		fx.Provide(NewSnowflakeNode),
		db.Module,
		clock.Module,
		migration.Module,

		transaction.Module,
		ingest.Module,
		analytics.Module,
		snapshot.Module,
		fx.Provide(events.NewOutbox),

		fx.Invoke(func(lc fx.Lifecycle, conn *gorm.DB, cfg config.Config) {
			if !cfg.Bootstrap.SeedDemoData {
				return
			}
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return seed.EnsureDemoData(conn)
				},
			})
		}),

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
	)
}

func NewSnowflakeNode() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
