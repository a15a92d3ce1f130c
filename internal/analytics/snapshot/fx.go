package snapshot

import (
	"context"

	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics.snapshot",
	fx.Provide(newConfig),
	fx.Provide(NewWorker),
	fx.Invoke(runWorker),
)

func newConfig(cfg config.Config) Config {
	return Config{PollInterval: cfg.Snapshot.PollInterval}.withDefaults()
}

func runWorker(lc fx.Lifecycle, worker *Worker) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go worker.RunForever(ctx)
			return nil
		},
	})
}
