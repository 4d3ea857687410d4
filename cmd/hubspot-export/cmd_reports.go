package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salesops/hubspot-export/pkg/export"
	"github.com/salesops/hubspot-export/pkg/report"
)

var (
	ownersInput  string
	ownersOutput string

	missingInput   string
	missingOutput  string
	missingColumns string
)

var reportOwnersCmd = &cobra.Command{
	Use:   "report-owners",
	Short: "Summarize an exported deals CSV per owner",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := export.ReadCSV(ownersInput)
		if err != nil {
			return err
		}

		summaries := report.SummarizeByOwner(rows)
		if err := report.WriteOwnerSummaryCSV(ownersOutput, summaries); err != nil {
			return err
		}

		fmt.Printf("Wrote %d rows to %s\n", len(summaries), ownersOutput)
		return nil
	},
}

var reportMissingCmd = &cobra.Command{
	Use:   "report-missing",
	Short: "Report rows with missing values and list affected companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := export.ReadCSV(missingInput)
		if err != nil {
			return err
		}

		var columns []string
		for _, col := range strings.Split(missingColumns, ",") {
			if col = strings.TrimSpace(col); col != "" {
				columns = append(columns, col)
			}
		}

		missing := report.FindMissing(rows, columns)
		if err := report.WriteMissingCSV(missingOutput, missing); err != nil {
			return err
		}

		companies := report.AffectedCompanies(missing)
		fmt.Printf("Scanned rows: %d\n", len(rows))
		fmt.Printf("Rows with missing values: %d\n", len(missing))
		fmt.Printf("Unique companies (with missing values): %d\n", len(companies))
		for _, name := range companies {
			fmt.Printf("- %s\n", name)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(missing), missingOutput)
		return nil
	},
}

func init() {
	reportOwnersCmd.Flags().StringVar(&ownersInput, "input", "latest_deals.csv", "Input CSV path")
	reportOwnersCmd.Flags().StringVar(&ownersOutput, "output", "summary_by_owner.csv", "Output CSV path")

	reportMissingCmd.Flags().StringVar(&missingInput, "input", "latest_deals.csv", "Input CSV path")
	reportMissingCmd.Flags().StringVar(&missingOutput, "output", "deals_missing.csv", "Output CSV path")
	reportMissingCmd.Flags().StringVar(&missingColumns, "columns", "", "Comma-separated columns to check (default: all)")
}
