package analytics

import (
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics.service",
	fx.Provide(service.NewService),
)
