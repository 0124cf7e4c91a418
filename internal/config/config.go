package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	WorldBank WorldBankConfig `yaml:"worldbank,omitempty"`
	Sources   SourcesConfig   `yaml:"sources,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
	MQTT      MQTTConfig      `yaml:"mqtt,omitempty"`
}

// WorldBankConfig holds settings for the World Bank indicator API
type WorldBankConfig struct {
	BaseURL        string `yaml:"base_url,omitempty"`        // API root (fallback: https://api.worldbank.org/v2)
	Indicator      string `yaml:"indicator,omitempty"`       // Consumption indicator code (fallback: EG.USE.ELEC.KH.PC)
	PerPage        int    `yaml:"per_page,omitempty"`        // Records per page (fallback: 20000)
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"` // HTTP timeout (fallback: 60)
}

// SourcesConfig holds paths for the renewable and losses inputs
type SourcesConfig struct {
	RenewableCSV string `yaml:"renewable_csv,omitempty"` // fallback: renewable_electricity_processed.csv
	LossesDB     string `yaml:"losses_db,omitempty"`     // fallback: electricity.db
	LossesTable  string `yaml:"losses_table,omitempty"`  // fallback: electricity_losses_pct
}

// OutputConfig holds output artifact paths
type OutputConfig struct {
	DatasetCSV string `yaml:"dataset_csv,omitempty"` // fallback: integrated_electricity_dataset.csv
	GeoJSON    string `yaml:"geojson,omitempty"`     // fallback: world_countries.geojson
	ChartsDir  string `yaml:"charts_dir,omitempty"`  // fallback: charts
}

// ServerConfig holds dashboard server settings
type ServerConfig struct {
	Addr    string `yaml:"addr,omitempty"`    // fallback: :8080
	Profile string `yaml:"profile,omitempty"` // fallback: explorer
}

// MQTTConfig holds settings for publishing dataset refresh summaries
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker,omitempty"` // host:port
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
	ClientID    string `yaml:"client_id,omitempty"`
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetBaseURL returns the World Bank API root
func (c *Config) GetBaseURL() string {
	if c.WorldBank.BaseURL != "" {
		return c.WorldBank.BaseURL
	}
	return "https://api.worldbank.org/v2"
}

// GetIndicator returns the consumption indicator code
func (c *Config) GetIndicator() string {
	if c.WorldBank.Indicator != "" {
		return c.WorldBank.Indicator
	}
	return "EG.USE.ELEC.KH.PC"
}

// GetPerPage returns the API page size, large enough for the full series
func (c *Config) GetPerPage() int {
	if c.WorldBank.PerPage > 0 {
		return c.WorldBank.PerPage
	}
	return 20000
}

// GetTimeout returns the HTTP client timeout
func (c *Config) GetTimeout() time.Duration {
	if c.WorldBank.TimeoutSeconds > 0 {
		return time.Duration(c.WorldBank.TimeoutSeconds) * time.Second
	}
	return 60 * time.Second
}

// GetRenewableCSV returns the renewable-share input file path
func (c *Config) GetRenewableCSV() string {
	if c.Sources.RenewableCSV != "" {
		return c.Sources.RenewableCSV
	}
	return "renewable_electricity_processed.csv"
}

// GetLossesDB returns the losses sqlite store path
func (c *Config) GetLossesDB() string {
	if c.Sources.LossesDB != "" {
		return c.Sources.LossesDB
	}
	return "electricity.db"
}

// GetLossesTable returns the losses table name
func (c *Config) GetLossesTable() string {
	if c.Sources.LossesTable != "" {
		return c.Sources.LossesTable
	}
	return "electricity_losses_pct"
}

// GetDatasetCSV returns the integrated dataset output path
func (c *Config) GetDatasetCSV() string {
	if c.Output.DatasetCSV != "" {
		return c.Output.DatasetCSV
	}
	return "integrated_electricity_dataset.csv"
}

// GetGeoJSON returns the world boundaries file path
func (c *Config) GetGeoJSON() string {
	if c.Output.GeoJSON != "" {
		return c.Output.GeoJSON
	}
	return "world_countries.geojson"
}

// GetChartsDir returns the directory for rendered chart files
func (c *Config) GetChartsDir() string {
	if c.Output.ChartsDir != "" {
		return c.Output.ChartsDir
	}
	return "charts"
}

// GetServerAddr returns the dashboard listen address
func (c *Config) GetServerAddr() string {
	if c.Server.Addr != "" {
		return c.Server.Addr
	}
	return ":8080"
}

// GetProfile returns the default dashboard profile name
func (c *Config) GetProfile() string {
	if c.Server.Profile != "" {
		return c.Server.Profile
	}
	return "explorer"
}

// GetTopicPrefix returns the MQTT topic prefix
func (c *Config) GetTopicPrefix() string {
	if c.MQTT.TopicPrefix != "" {
		return c.MQTT.TopicPrefix
	}
	return "elecatlas"
}

// GetClientID returns the MQTT client identifier
func (c *Config) GetClientID() string {
	if c.MQTT.ClientID != "" {
		return c.MQTT.ClientID
	}
	return "elecatlas"
}
