package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("Valid Config", func(t *testing.T) {
		// Minio connects lazily, so construction succeeds without a server.
		client, err := NewClient(Config{Endpoint: "http://localhost:9000"})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("Invalid Endpoint", func(t *testing.T) {
		client, err := NewClient(Config{Endpoint: "://not an endpoint"})
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}
