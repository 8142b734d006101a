// Package broker wraps the Eclipse Paho MQTT client.
//
// It owns connection establishment against the cloud broker: credentials,
// per-attempt timeouts and capped exponential backoff for the initial
// connect. Auto-reconnect is deliberately disabled — the telemetry collector
// runs a fixed window and a connection lost inside it is fatal to the run,
// so a silent reconnect would only hide lost messages.
package broker
