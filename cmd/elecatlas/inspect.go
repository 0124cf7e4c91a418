package main

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/elecatlas/elecatlas/internal/dataset"
	"github.com/elecatlas/elecatlas/internal/source"
)

var inspectRemote bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect the pipeline sources without writing output",
	Long: `Loads each source and prints row counts, year bounds and distinct
country counts. By default only the local sources (CSV and SQLite) are
read; --remote also fetches the consumption indicator from the API.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectRemote, "remote", false, "Also fetch the consumption indicator from the World Bank API")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Renewable CSV
	renewable, err := source.Renewable(cfg.GetRenewableCSV())
	if err != nil {
		return fmt.Errorf("loading renewable data: %w", err)
	}

	printSourceSummary("renewable ("+cfg.GetRenewableCSV()+")", dataset.FromFrame(renewable))

	// Losses SQLite table
	db, err := source.OpenLosses(cfg.GetLossesDB())
	if err != nil {
		return fmt.Errorf("opening losses store: %w", err)
	}
	defer db.Close()

	losses, err := db.Losses(cfg.GetLossesTable())
	if err != nil {
		return fmt.Errorf("loading losses data: %w", err)
	}

	printSourceSummary("losses ("+cfg.GetLossesDB()+")", dataset.FromFrame(losses))

	if !inspectRemote {
		return nil
	}

	// Consumption API
	client := resty.New().SetTimeout(cfg.GetTimeout())
	wb := source.NewWorldBankClient(cfg.GetBaseURL(), cfg.GetIndicator(), cfg.GetPerPage(), client)

	consumption, err := wb.Consumption(context.Background())
	if err != nil {
		return fmt.Errorf("fetching consumption: %w", err)
	}

	printSourceSummary("consumption ("+cfg.GetIndicator()+")", dataset.FromFrame(consumption.Frame))
	fmt.Printf("  fetched: %d, dropped (no country mapping): %d, dropped (null value): %d\n",
		consumption.Fetched, consumption.DroppedNoCode, consumption.DroppedNull)

	return nil
}

func printSourceSummary(name string, tbl *dataset.Table) {
	fmt.Printf("\n%s:\n", name)
	fmt.Printf("  rows: %d\n", tbl.Nrow())

	if minYear, maxYear, ok := tbl.YearBounds(); ok {
		fmt.Printf("  years: %d–%d\n", minYear, maxYear)
	}

	fmt.Printf("  countries: %d\n", len(tbl.Countries(source.ColCountryCode)))
}
