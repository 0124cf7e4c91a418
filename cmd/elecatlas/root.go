package main

import (
	"github.com/elecatlas/elecatlas/internal/config"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "elecatlas",
	Short: "Integrate and explore World Bank electricity indicators",
	Long: `Elecatlas integrates three World Bank electricity indicators (consumption
per capita, renewable share, transmission losses) from a remote API, a CSV
file and a SQLite store into one dataset, and serves interactive dashboards
over it.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}
