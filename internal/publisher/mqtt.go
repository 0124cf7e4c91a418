package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/elecatlas/elecatlas/internal/config"
	"github.com/elecatlas/elecatlas/pkg/models"
)

// Publisher announces dataset refreshes over MQTT
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// New connects to the configured MQTT broker
func New(cfg *config.Config) (*Publisher, error) {
	if !cfg.MQTT.Enabled {
		return nil, fmt.Errorf("MQTT publishing is not enabled in config")
	}

	if cfg.MQTT.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	// Configure MQTT client options
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.MQTT.Broker))
	opts.SetClientID(cfg.GetClientID())
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.MQTT.Username != "" {
		opts.SetUsername(cfg.MQTT.Username)
	}
	if cfg.MQTT.Password != "" {
		opts.SetPassword(cfg.MQTT.Password)
	}

	// Create and connect client
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:      client,
		topicPrefix: cfg.GetTopicPrefix(),
	}, nil
}

// PublishRefresh sends a retained dataset refresh summary to
// <topic_prefix>/dataset
func (p *Publisher) PublishRefresh(summary models.RefreshSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encoding refresh summary: %w", err)
	}

	topic := fmt.Sprintf("%s/dataset", p.topicPrefix)

	token := p.client.Publish(topic, 1, true, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publishing refresh summary: %w", token.Error())
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
