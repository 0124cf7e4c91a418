package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elecatlas/elecatlas/internal/dashboard"
)

var (
	serveAddr    string
	serveProfile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an interactive dashboard over the integrated dataset",
	Long: fmt.Sprintf(`Starts an HTTP server rendering one dashboard variant over the
integrated dataset. Charts render server-side to PNG; a JSON API exposes
the same views.

Available profiles: %s`, strings.Join(dashboard.Names(), ", ")),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, then :8080)")
	serveCmd.Flags().StringVar(&serveProfile, "profile", "", "Dashboard profile (default from config, then explorer)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	profileName := serveProfile
	if profileName == "" {
		profileName = cfg.GetProfile()
	}

	profile, err := dashboard.Lookup(profileName)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.GetServerAddr()
	}

	server := dashboard.New(cfg.GetDatasetCSV(), cfg.GetGeoJSON(), profile)

	fmt.Printf("Serving %q dashboard on %s (dataset: %s)\n", profile.Name, addr, cfg.GetDatasetCSV())

	return server.Run(addr)
}
