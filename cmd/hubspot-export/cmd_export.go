package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/salesops/hubspot-export/pkg/export"
	"github.com/salesops/hubspot-export/pkg/hubspot"
)

var (
	exportLimit       int
	exportOutput      string
	exportConcurrency int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export year-to-date open deals to CSV",
	Long: `Export fetches deals created since the start of the current year (UTC),
excluding closedwon and closedlost stages, sorted by creation time
descending. Each deal is enriched with its first associated contact's
name, its first associated company's name, and the owner's display name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildClient()
		if err != nil {
			return err
		}

		api := hubspot.NewAPI(c)
		pipeline := export.New(api, export.Options{
			Concurrency: exportConcurrency,
		})

		rows, err := pipeline.Run(cmd.Context(), hubspot.YearToDate(time.Now()), exportLimit)
		if err != nil {
			return err
		}

		if err := export.WriteCSV(exportOutput, rows); err != nil {
			return err
		}

		fmt.Printf("Wrote %d rows to %s\n", len(rows), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "Number of deals to fetch (0 = all)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "latest_deals.csv", "Output CSV file path")
	exportCmd.Flags().IntVar(&exportConcurrency, "concurrency", 1, "Association resolution workers (1 = sequential)")
}
