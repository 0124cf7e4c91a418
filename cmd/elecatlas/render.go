package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/elecatlas/elecatlas/internal/dashboard"
	"github.com/elecatlas/elecatlas/internal/dataset"
)

var (
	renderProfile string
	renderCountry string
	renderFrom    int
	renderTo      int
	renderYear    int
	renderOut     string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a dashboard's charts to PNG files",
	Long: `Renders every chart of a dashboard profile for the given country and
year range into a directory, without starting a server.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderProfile, "profile", "", "Dashboard profile (default from config, then explorer)")
	renderCmd.Flags().StringVar(&renderCountry, "country", "", "Country to filter on (default: first in dataset)")
	renderCmd.Flags().IntVar(&renderFrom, "from", 0, "First year (default: earliest in dataset)")
	renderCmd.Flags().IntVar(&renderTo, "to", 0, "Last year (default: latest in dataset)")
	renderCmd.Flags().IntVar(&renderYear, "year", 0, "Map/ranking year (default: latest in dataset)")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "Output directory (default from config, then ./charts)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	profileName := renderProfile
	if profileName == "" {
		profileName = cfg.GetProfile()
	}

	profile, err := dashboard.Lookup(profileName)
	if err != nil {
		return err
	}

	tbl, err := dataset.Load(cfg.GetDatasetCSV())
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	minYear, maxYear, ok := tbl.YearBounds()
	if !ok {
		return fmt.Errorf("dataset %s is empty", cfg.GetDatasetCSV())
	}

	country := renderCountry
	if country == "" {
		if countries := tbl.Countries(profile.KeyColumn); len(countries) > 0 {
			country = countries[0]
		}
	}

	from, to, year := renderFrom, renderTo, renderYear
	if from == 0 {
		from = minYear
	}
	if to == 0 {
		to = maxYear
	}
	if year == 0 {
		year = maxYear
	}

	outDir := renderOut
	if outDir == "" {
		outDir = cfg.GetChartsDir()
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	server := dashboard.New(cfg.GetDatasetCSV(), cfg.GetGeoJSON(), profile)

	fmt.Printf("Rendering %d charts for %s (%d-%d, map year %d) to %s/\n",
		len(profile.Charts), country, from, to, year, outDir)

	rendered := 0

	for _, name := range profile.Charts {
		png, err := server.RenderChart(name, country, from, to, year)
		if errors.Is(err, dashboard.ErrNoData) {
			fmt.Printf("⚠ %s: no data for the selected filters, skipped\n", name)
			continue
		}
		if err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}

		path := filepath.Join(outDir, name+".png")
		if err := os.WriteFile(path, png, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Printf("✓ %s\n", path)
		rendered++
	}

	fmt.Printf("Rendered %d/%d charts\n", rendered, len(profile.Charts))

	return nil
}
