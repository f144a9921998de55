package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dhoini/Admin-panel/internal/artifact"
	"github.com/Dhoini/Admin-panel/internal/config"
	"github.com/Dhoini/Admin-panel/internal/events"
	"github.com/Dhoini/Admin-panel/internal/gateway/memory"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Port = "0"
	cfg.App.Timezone = "UTC"
	cfg.Gateway.Driver = config.DriverMemory
	return cfg
}

func TestNewAppWithMemoryDrivers(t *testing.T) {
	a, err := NewApp(context.Background(), memoryConfig(), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.IsType(t, &artifact.MemoryStore{}, a.Artifacts)
	assert.Equal(t, events.Noop{}, a.Events)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pages/admins", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewAppUsesRedisWhenConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.Redis.Addr = mr.Addr()

	a, err := NewApp(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.IsType(t, &artifact.RedisStore{}, a.Artifacts)
}

func TestNewAppFailsOnUnreachableRedis(t *testing.T) {
	cfg := memoryConfig()
	cfg.Redis.Addr = "127.0.0.1:1"

	_, err := NewApp(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestNewAppRejectsUnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Gateway.Driver = "sqlite"

	_, err := NewApp(context.Background(), cfg, logger.NewNop())
	assert.ErrorContains(t, err, "unknown gateway driver")
}

func TestInstrumentedGatewayWrapsDriver(t *testing.T) {
	a, err := NewApp(context.Background(), memoryConfig(), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	_, isMemory := a.Gateway.(*memory.Gateway)
	assert.False(t, isMemory)
}
