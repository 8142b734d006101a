package telemetry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedTopic reports a status topic with too few segments to carry a
// device identifier.
var ErrMalformedTopic = errors.New("malformed status topic")

// DeviceID extracts the device identifier from a status topic.
// Topics look like <prefix>/<scope>/<deviceID>/<status-scope>/connectors-count,
// so the identifier is the third slash-delimited segment.
func DeviceID(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 {
		return "", fmt.Errorf("%w: %q", ErrMalformedTopic, topic)
	}
	return parts[2], nil
}
