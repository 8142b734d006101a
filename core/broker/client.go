package broker

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Connect establishes a connection to the MQTT broker.
//
// The initial connection is retried with capped exponential backoff. Once
// connected, auto-reconnect stays disabled: a dropped connection must surface
// through onLost and abort the run instead of silently resuming mid-window.
func Connect(cfg Config, log *zap.Logger, onLost mqtt.ConnectionLostHandler) (mqtt.Client, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(timeout).
		SetAutoReconnect(false).
		SetCleanSession(true)
	if onLost != nil {
		opts.SetConnectionLostHandler(onLost)
	}

	client := mqtt.NewClient(opts)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 15 * time.Second

	attempt := func() error {
		token := client.Connect()
		if token.Wait() && token.Error() != nil {
			log.Warn("broker connect attempt failed", zap.String("url", cfg.URL), zap.Error(token.Error()))
			return token.Error()
		}
		return nil
	}
	if err := backoff.Retry(attempt, backoff.WithMaxRetries(bo, cfg.ConnectRetries)); err != nil {
		return nil, fmt.Errorf("failed to connect to broker %s: %w", cfg.URL, err)
	}

	log.Info("connected to broker", zap.String("url", cfg.URL), zap.String("client_id", cfg.ClientID))
	return client, nil
}
