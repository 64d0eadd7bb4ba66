package lifecycle

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternworks/api-template/internal/config"
	"github.com/lanternworks/api-template/internal/logging"
)

func TestManager_NothingEnabled(t *testing.T) {
	lc := NewManager(&config.Config{}, logging.NewDiscard())
	lc.Startup(context.Background())
	defer lc.Shutdown(context.Background())

	assert.True(t, lc.Ready(), "with nothing enabled the service is trivially ready")
	assert.False(t, lc.DBReady())
	assert.False(t, lc.CacheReady())
	assert.Nil(t, lc.Storage())
	assert.Nil(t, lc.Cache())
}

func TestManager_EnabledDBWithoutURLDegrades(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Enabled = true

	lc := NewManager(cfg, logging.NewDiscard())
	lc.Startup(context.Background())
	defer lc.Shutdown(context.Background())

	assert.False(t, lc.Ready())
	assert.False(t, lc.DBReady())
	assert.Nil(t, lc.Storage())
}

func TestManager_CacheComesUp(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.URL = "redis://" + mr.Addr()

	lc := NewManager(cfg, logging.NewDiscard())
	lc.Startup(context.Background())
	defer lc.Shutdown(context.Background())

	assert.True(t, lc.Ready())
	assert.True(t, lc.CacheReady())
	require.NotNil(t, lc.Cache())

	require.NoError(t, lc.Cache().Set(context.Background(), "k", "v"))
	val, found, err := lc.Cache().Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", val)
}

func TestManager_CacheUnreachableDegrades(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.URL = "redis://127.0.0.1:1"

	lc := NewManager(cfg, logging.NewDiscard())
	lc.Startup(context.Background())
	defer lc.Shutdown(context.Background())

	assert.False(t, lc.Ready())
	assert.False(t, lc.CacheReady())
	assert.Nil(t, lc.Cache())
}

func TestManager_ShutdownClearsCollaborators(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.URL = "redis://" + mr.Addr()

	lc := NewManager(cfg, logging.NewDiscard())
	lc.Startup(context.Background())
	require.NotNil(t, lc.Cache())

	lc.Shutdown(context.Background())
	assert.Nil(t, lc.Cache())
	assert.False(t, lc.CacheReady())

	// A second shutdown is a no-op.
	lc.Shutdown(context.Background())
}
