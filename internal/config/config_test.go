package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://api.worldbank.org/v2", cfg.GetBaseURL())
	assert.Equal(t, "EG.USE.ELEC.KH.PC", cfg.GetIndicator())
	assert.Equal(t, 20000, cfg.GetPerPage())
	assert.Equal(t, 60*time.Second, cfg.GetTimeout())
	assert.Equal(t, "renewable_electricity_processed.csv", cfg.GetRenewableCSV())
	assert.Equal(t, "electricity.db", cfg.GetLossesDB())
	assert.Equal(t, "electricity_losses_pct", cfg.GetLossesTable())
	assert.Equal(t, "integrated_electricity_dataset.csv", cfg.GetDatasetCSV())
	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, "explorer", cfg.GetProfile())
	assert.Equal(t, "elecatlas", cfg.GetTopicPrefix())
	assert.False(t, cfg.MQTT.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `worldbank:
  base_url: http://localhost:9999/v2
  per_page: 500
sources:
  losses_db: /data/losses.db
server:
  addr: :9090
  profile: deployed
mqtt:
  enabled: true
  broker: broker.local:1883
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v2", cfg.GetBaseURL())
	assert.Equal(t, 500, cfg.GetPerPage())
	assert.Equal(t, "/data/losses.db", cfg.GetLossesDB())
	assert.Equal(t, ":9090", cfg.GetServerAddr())
	assert.Equal(t, "deployed", cfg.GetProfile())
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, "broker.local:1883", cfg.MQTT.Broker)

	// Unset sections keep their fallbacks.
	assert.Equal(t, "EG.USE.ELEC.KH.PC", cfg.GetIndicator())
	assert.Equal(t, "charts", cfg.GetChartsDir())
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("worldbank: [not a mapping"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := &Config{}
	cfg.Server.Profile = "ranking"
	cfg.WorldBank.PerPage = 1000

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ranking", loaded.GetProfile())
	assert.Equal(t, 1000, loaded.GetPerPage())
}
