package transaction

import (
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/service"
	"go.uber.org/fx"
)

var Module = fx.Module("transaction.service",
	fx.Provide(service.NewService),
)
