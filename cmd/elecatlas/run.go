package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/elecatlas/elecatlas/internal/dataset"
	"github.com/elecatlas/elecatlas/internal/integrate"
	"github.com/elecatlas/elecatlas/internal/publisher"
	"github.com/elecatlas/elecatlas/internal/source"
)

var runPublish bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full integration pipeline",
	Long: `Fetches electricity consumption from the World Bank API, loads the
renewable share CSV and the losses SQLite table, inner-joins the three
sources on (country_code, year) and writes the integrated dataset CSV.
The output file is fully overwritten on every run.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().BoolVar(&runPublish, "publish", false, "Publish a refresh summary over MQTT after writing the dataset")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Pipeline run started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	// Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()

	// Fetch consumption from the World Bank API
	fmt.Printf("Fetching consumption indicator %s...\n", cfg.GetIndicator())

	client := resty.New().SetTimeout(cfg.GetTimeout())
	wb := source.NewWorldBankClient(cfg.GetBaseURL(), cfg.GetIndicator(), cfg.GetPerPage(), client)

	consumption, err := wb.Consumption(ctx)
	if err != nil {
		return fmt.Errorf("fetching consumption: %w", err)
	}

	fmt.Printf("✓ Consumption: %d rows kept (%d fetched, %d without country mapping, %d null values)\n",
		consumption.Kept(), consumption.Fetched, consumption.DroppedNoCode, consumption.DroppedNull)

	// Load renewable share CSV
	renewable, err := source.Renewable(cfg.GetRenewableCSV())
	if err != nil {
		return fmt.Errorf("loading renewable data: %w", err)
	}

	fmt.Printf("✓ Renewable: %d rows from %s\n", renewable.Nrow(), cfg.GetRenewableCSV())

	// Load losses table from SQLite
	db, err := source.OpenLosses(cfg.GetLossesDB())
	if err != nil {
		return fmt.Errorf("opening losses store: %w", err)
	}
	defer db.Close()

	losses, err := db.Losses(cfg.GetLossesTable())
	if err != nil {
		return fmt.Errorf("loading losses data: %w", err)
	}

	fmt.Printf("✓ Losses: %d rows from %s\n", losses.Nrow(), cfg.GetLossesDB())

	// Integrate and write
	integrated, err := integrate.Integrate(consumption.Frame, renewable, losses)
	if err != nil {
		return fmt.Errorf("integrating sources: %w", err)
	}

	if integrated.Nrow() == 0 {
		fmt.Println("⚠ Integration produced no rows (no (country, year) pair present in all three sources)")
	}

	if err := integrate.WriteDataset(integrated, cfg.GetDatasetCSV()); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	fmt.Printf("✓ Wrote %d rows to %s\n", integrated.Nrow(), cfg.GetDatasetCSV())

	if !runPublish {
		return nil
	}

	// Announce the refresh over MQTT
	pub, err := publisher.New(cfg)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	summary := dataset.FromFrame(integrated).Summary()
	if err := pub.PublishRefresh(summary); err != nil {
		return fmt.Errorf("publishing refresh summary: %w", err)
	}

	fmt.Println("✓ Published refresh summary")

	return nil
}
