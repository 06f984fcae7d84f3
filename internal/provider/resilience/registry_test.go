package resilience

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndHealth(t *testing.T) {
	registry := NewRegistry()
	client := NewClient(DefaultClientConfig("maps"))

	registry.Register("maps", client)

	health := registry.GetHealth("maps")
	require.NotNil(t, health)
	assert.Equal(t, "maps", health.Name)
	assert.True(t, health.IsHealthy())
	assert.Nil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)
}

func TestRegistryUnknownProvider(t *testing.T) {
	registry := NewRegistry()
	assert.Nil(t, registry.GetHealth("missing"))
}

func TestRegistryRecordsFailures(t *testing.T) {
	registry := NewRegistry()
	registry.Register("nnpc", NewClient(DefaultClientConfig("nnpc")))

	registry.RecordFailure("nnpc", errors.New("timeout"))

	health := registry.GetHealth("nnpc")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastFailureAt)
	assert.Equal(t, "timeout", health.LastError)
}

func TestRegistryGetAllHealth(t *testing.T) {
	registry := NewRegistry()
	registry.Register("maps", NewClient(DefaultClientConfig("maps")))
	registry.Register("nnpc", NewClient(DefaultClientConfig("nnpc")))

	all := registry.GetAllHealth()
	assert.Len(t, all, 2)
	assert.Equal(t, 2, registry.ProviderCount())
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewRegistry()
	registry.Register("maps", NewClient(DefaultClientConfig("maps")))
	registry.Unregister("maps")

	assert.Nil(t, registry.GetHealth("maps"))
	assert.Equal(t, 0, registry.ProviderCount())
}
