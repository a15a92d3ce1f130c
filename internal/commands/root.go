// Package commands implements the dashboard CLI: a long-running server
// plus offline ingestion and metrics for working against a local
// database without the HTTP layer.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Transaction ingestion and business metrics",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newMetricsCommand())

	return rootCmd
}
