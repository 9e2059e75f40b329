package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"autocfo/internal/viewer"
)

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Browse client ledgers interactively",
		Long: `Open the interactive terminal dashboard. Pick a client, filter by year
and month, and explore KPIs, the expense breakdown, and individual
transactions without generating a workbook.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return viewer.Run(viper.GetString("clients.dir"), slog.Default())
		},
	}
}
