package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elecatlas/elecatlas/internal/dataset"
)

var (
	listCountry string
	listFrom    int
	listTo      int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the integrated dataset",
	Long:  `Displays rows of the integrated electricity dataset as a table.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listCountry, "country", "", "Filter by ISO-3 country code")
	listCmd.Flags().IntVar(&listFrom, "from", 0, "First year (default: earliest in dataset)")
	listCmd.Flags().IntVar(&listTo, "to", 0, "Last year (default: latest in dataset)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	tbl, err := dataset.Load(cfg.GetDatasetCSV())
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	minYear, maxYear, ok := tbl.YearBounds()
	if !ok {
		fmt.Println("Dataset is empty")
		return nil
	}

	from, to := listFrom, listTo
	if from == 0 {
		from = minYear
	}
	if to == 0 {
		to = maxYear
	}

	if listCountry != "" {
		tbl = tbl.Filter(dataset.ByCode(listCountry), from, to)
	} else {
		tbl = tbl.Filter(dataset.Selector{}, from, to)
	}

	records := tbl.SortByYear().Records()
	if len(records) == 0 {
		fmt.Println("No data found for the given filters")
		return nil
	}

	fmt.Println("--------------------------------------------------------------------------------")
	fmt.Printf("%-5s  %-28s  %5s  %12s  %10s  %8s\n", "Code", "Country", "Year", "Use (kWh/pc)", "Renew (%)", "Loss (%)")
	fmt.Println("--------------------------------------------------------------------------------")

	for _, rec := range records {
		fmt.Printf("%-5s  %-28s  %5d  %12.2f  %10.2f  %8.2f\n",
			rec.CountryCode, rec.CountryName, rec.Year, rec.UseKWh, rec.RenewablePct, rec.LossesPct)
	}

	fmt.Println("--------------------------------------------------------------------------------")
	fmt.Printf("%d records\n", len(records))

	return nil
}
