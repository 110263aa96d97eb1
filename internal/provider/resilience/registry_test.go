package resilience_test

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsight/airsight/internal/provider/resilience"
)

func TestRegistry_GetHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("openaq", resilience.NewClient(resilience.DefaultClientConfig("openaq")))

	health := registry.GetHealth("openaq")
	require.NotNil(t, health)

	assert.Equal(t, "openaq", health.Name)
	assert.Equal(t, gobreaker.StateClosed, health.CircuitState)
	assert.True(t, health.IsHealthy())
	assert.False(t, health.IsDegraded())
	assert.Nil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)
	assert.Empty(t, health.LastError)
}

func TestRegistry_UnknownProvider(t *testing.T) {
	registry := resilience.NewRegistry()

	assert.Nil(t, registry.GetHealth("nope"))
	assert.Empty(t, registry.GetAllHealth())
}

func TestRegistry_RecordSuccess(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("openaq", resilience.NewClient(resilience.DefaultClientConfig("openaq")))

	registry.RecordSuccess("openaq")

	health := registry.GetHealth("openaq")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)
}

func TestRegistry_RecordFailure(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("openaq", resilience.NewClient(resilience.DefaultClientConfig("openaq")))

	registry.RecordFailure("openaq", errors.New("upstream timeout"))

	health := registry.GetHealth("openaq")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastFailureAt)
	assert.Equal(t, "upstream timeout", health.LastError)

	// Recording against an unregistered name is a no-op.
	registry.RecordFailure("nope", errors.New("ignored"))
	registry.RecordSuccess("nope")
	assert.Nil(t, registry.GetHealth("nope"))
}

func TestRegistry_GetAllHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("openaq", resilience.NewClient(resilience.DefaultClientConfig("openaq")))
	registry.Register("backup", resilience.NewClient(resilience.DefaultClientConfig("backup")))

	all := registry.GetAllHealth()
	assert.Len(t, all, 2)

	names := make(map[string]bool, len(all))
	for _, h := range all {
		names[h.Name] = true
	}
	assert.True(t, names["openaq"])
	assert.True(t, names["backup"])
}
