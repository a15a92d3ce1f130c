package commands

import (
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			fx.New(app.Options()).Run()
			return nil
		},
	}
}
