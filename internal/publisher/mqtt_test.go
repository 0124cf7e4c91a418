package publisher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elecatlas/elecatlas/internal/config"
)

func TestNewRequiresEnabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.MQTT.Broker = "localhost:1883"

	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enabled")
}

func TestNewRequiresBroker(t *testing.T) {
	cfg := &config.Config{}
	cfg.MQTT.Enabled = true

	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker address is required")
}
