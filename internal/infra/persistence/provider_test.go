package persistence

import (
	"io"
	"log/slog"
	"testing"

	"bridge/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNew_MemoryDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = config.StorageDriverMemory
	cfg.Proximity.GridCellSizeKm = 2

	repos, err := New(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	assert.NotNil(t, repos.TxManager)
	assert.NotNil(t, repos.UserRepo)
	assert.NotNil(t, repos.VendorRepo)
	assert.NotNil(t, repos.ProductRepo)
	assert.NotNil(t, repos.ReviewRepo)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = "sqlite"

	_, err := New(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.ErrorContains(t, err, "unknown storage driver")
}
