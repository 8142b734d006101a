package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceID(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		want    string
		wantErr bool
	}{
		{"Standard Topic", "A/sweet-home/DEV123/status-control/connectors-count", "DEV123", false},
		{"Minimal Segments", "a/b/DEV-9", "DEV-9", false},
		{"Two Segments", "a/b", "", true},
		{"One Segment", "connectors-count", "", true},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeviceID(tt.topic)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedTopic)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
