package telemetry

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Client is the subset of the MQTT client the collector uses.
type Client interface {
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
	Unsubscribe(topics ...string) mqtt.Token
	Disconnect(quiesce uint)
}

type message struct {
	topic   string
	payload []byte
}

// Collector aggregates connector-count reports for a fixed window.
//
// The MQTT handler only forwards messages over a channel; the map of counts
// is written exclusively by the goroutine running Collect. No message that
// arrives after the window closes is applied, because nothing reads the
// channel anymore once the deadline fires.
type Collector struct {
	client Client
	cfg    Config
	log    *zap.Logger
}

// New creates a collector over an already connected client.
func New(client Client, cfg Config, log *zap.Logger) *Collector {
	return &Collector{client: client, cfg: cfg, log: log}
}

// Collect subscribes to the configured topic pattern, records the latest
// count per topic until the window elapses, then detaches the subscription,
// disconnects and returns the accumulated counts.
//
// Malformed payloads (non-numeric or negative) are logged and skipped; the
// rest of the window proceeds. An error on the lost channel means the broker
// connection died mid-window and aborts the run.
func (c *Collector) Collect(ctx context.Context, lost <-chan error) (map[string]int, error) {
	msgs := make(chan message, 256)
	handler := func(_ mqtt.Client, m mqtt.Message) {
		select {
		case msgs <- message{topic: m.Topic(), payload: m.Payload()}:
		default:
			// Window is closing or the consumer is saturated; dropping is
			// safe because delivery is at-least-once and counts are retained.
		}
	}

	if token := c.client.Subscribe(c.cfg.TopicPattern, byte(c.cfg.QoS), handler); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("subscribe %s: %w", c.cfg.TopicPattern, token.Error())
	}

	window := time.Duration(c.cfg.DurationSeconds) * time.Second
	c.log.Info("collecting connector counts",
		zap.String("pattern", c.cfg.TopicPattern),
		zap.Duration("window", window))

	counts := make(map[string]int)
	deadline := time.NewTimer(window)
	defer deadline.Stop()

	for {
		select {
		case m := <-msgs:
			count, err := strconv.Atoi(strings.TrimSpace(string(m.payload)))
			if err != nil || count < 0 {
				c.log.Warn("skipping malformed connector-count payload",
					zap.String("topic", m.topic),
					zap.ByteString("payload", m.payload))
				continue
			}
			// Last report wins per topic.
			counts[m.topic] = count
		case err := <-lost:
			c.detach()
			return nil, fmt.Errorf("broker connection lost during collection: %w", err)
		case <-ctx.Done():
			c.detach()
			return nil, ctx.Err()
		case <-deadline.C:
			c.detach()
			c.log.Info("collection window closed", zap.Int("topics", len(counts)))
			return counts, nil
		}
	}
}

// detach stops message delivery before the connection is torn down.
func (c *Collector) detach() {
	if token := c.client.Unsubscribe(c.cfg.TopicPattern); token.Wait() && token.Error() != nil {
		c.log.Warn("unsubscribe failed", zap.Error(token.Error()))
	}
	c.client.Disconnect(250)
}
