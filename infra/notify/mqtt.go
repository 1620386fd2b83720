package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/mtakeda/annealsched/infra/logger"
)

const (
	connectTimeout = 5 * time.Second
	publishTimeout = 10 * time.Second
)

// MQTTPublisher implements Publisher using Eclipse Paho.
type MQTTPublisher struct {
	cli   paho.Client
	topic string
	qos   byte
	log   logger.Logger
}

var newMQTTClient = func(opts *paho.ClientOptions) paho.Client {
	return paho.NewClient(opts)
}

// NewMQTTPublisher connects to the MQTT broker described by cfg.
func NewMQTTPublisher(cfg Config) (*MQTTPublisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "annealsched-" + uuid.NewString()
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username).SetPassword(cfg.Password)
	}

	cli := newMQTTClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect timeout: %s", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTPublisher{
		cli:   cli,
		topic: cfg.Topic,
		qos:   cfg.QoS,
		log:   logger.New("mqtt-notify"),
	}, nil
}

// PublishResult marshals the result as JSON and publishes it on the
// configured topic.
func (p *MQTTPublisher) PublishResult(ctx context.Context, res Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	tok := p.cli.Publish(p.topic, p.qos, false, payload)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tok.Done():
		if err := tok.Error(); err != nil {
			return fmt.Errorf("publish result: %w", err)
		}
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish timeout on %s", p.topic)
	}
	p.log.Debugw("result published", map[string]any{"topic": p.topic, "run_id": res.RunID})
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.cli.Disconnect(250)
}
