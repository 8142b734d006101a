package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 1 }
func (m *fakeMessage) Retained() bool    { return true }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

type fakeClient struct {
	mu           sync.Mutex
	handler      mqtt.MessageHandler
	subscribeErr error
	unsubscribed bool
	disconnected bool
}

func (c *fakeClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = callback
	return &fakeToken{err: c.subscribeErr}
}

func (c *fakeClient) Unsubscribe(topics ...string) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unsubscribed = true
	return &fakeToken{}
}

func (c *fakeClient) Disconnect(quiesce uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnected = true
}

func (c *fakeClient) deliver(topic, payload string) {
	c.mu.Lock()
	handler := c.handler
	c.mu.Unlock()
	handler(nil, &fakeMessage{topic: topic, payload: []byte(payload)})
}

func testConfig() Config {
	return Config{
		TopicPattern:    "+/sweet-home/+/status-control/connectors-count",
		DurationSeconds: 1,
		QoS:             1,
	}
}

func TestCollector_LastMessageWinsPerTopic(t *testing.T) {
	client := &fakeClient{}
	collector := New(client, testConfig(), zap.NewNop())

	done := make(chan struct{})
	var counts map[string]int
	var err error
	go func() {
		defer close(done)
		counts, err = collector.Collect(context.Background(), nil)
	}()

	// Give Collect a moment to subscribe.
	time.Sleep(50 * time.Millisecond)
	client.deliver("a/sweet-home/X1/status-control/connectors-count", "1")
	client.deliver("a/sweet-home/X1/status-control/connectors-count", "2")
	client.deliver("b/sweet-home/X1/status-control/connectors-count", "5")
	client.deliver("a/sweet-home/X2/status-control/connectors-count", " 3 ") // whitespace tolerated
	client.deliver("a/sweet-home/X2/status-control/connectors-count", "oops")
	client.deliver("a/sweet-home/X3/status-control/connectors-count", "-1")

	<-done
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{
		"a/sweet-home/X1/status-control/connectors-count": 2,
		"b/sweet-home/X1/status-control/connectors-count": 5,
		"a/sweet-home/X2/status-control/connectors-count": 3,
	}, counts)

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.True(t, client.unsubscribed, "collector should detach the subscription")
	assert.True(t, client.disconnected, "collector should close the connection")
}

func TestCollector_ConnectionLostIsFatal(t *testing.T) {
	client := &fakeClient{}
	collector := New(client, testConfig(), zap.NewNop())

	lost := make(chan error, 1)
	lost <- errors.New("broken pipe")

	counts, err := collector.Collect(context.Background(), lost)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection lost")
	assert.Nil(t, counts)
}

func TestCollector_SubscribeFailure(t *testing.T) {
	client := &fakeClient{subscribeErr: errors.New("not authorized")}
	collector := New(client, testConfig(), zap.NewNop())

	counts, err := collector.Collect(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, counts)
}

func TestCollector_ContextCancel(t *testing.T) {
	client := &fakeClient{}
	collector := New(client, testConfig(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	counts, err := collector.Collect(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, counts)
}
