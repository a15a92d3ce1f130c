// @title           MakeInspires Dashboard API
// @version         1.0
// @description     Transaction ingestion and business metrics API

// @host      localhost:8080
// @BasePath  /api
// @Schemes 	http https

package main

import (
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/app"
	"go.uber.org/fx"
)

func main() {
	fx.New(app.Options()).Run()
}
