// Package notify delivers solved schedules to external consumers over
// MQTT. It includes a mock publisher used in tests.
package notify

import (
	"context"
	"fmt"
	"time"
)

// Result is the payload published after each solve.
type Result struct {
	RunID     string              `json:"run_id"`
	Energy    float64             `json:"energy"`
	Assigned  int                 `json:"assigned"`
	Total     int                 `json:"total"`
	Conflicts int                 `json:"conflicts"`
	Slots     int                 `json:"slots"`
	Schedule  map[string][]string `json:"schedule"`
	Time      time.Time           `json:"time"`
}

// Publisher sends solve results to an external channel.
type Publisher interface {
	PublishResult(ctx context.Context, res Result) error
	Close()
}

// Config defines the connection parameters for the MQTT publisher.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// Validate checks mandatory fields when publishing is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	if c.Topic == "" {
		return fmt.Errorf("mqtt topic is required")
	}
	return nil
}

// MockPublisher records published results for tests.
type MockPublisher struct {
	Results []Result
	Fail    bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishResult records the result or returns an error if configured to
// fail.
func (m *MockPublisher) PublishResult(_ context.Context, res Result) error {
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Results = append(m.Results, res)
	return nil
}

// Close is a no-op.
func (m *MockPublisher) Close() {}
