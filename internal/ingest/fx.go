package ingest

import (
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/ingest/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ingest.service",
	fx.Provide(service.NewService),
)
