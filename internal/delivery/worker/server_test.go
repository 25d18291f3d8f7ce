package worker

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bridge/config"
	"bridge/internal/delivery/worker/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.Port = 8080

	return cfg
}

func TestNewServer_PortFallback(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := newTestConfig()
	push := handler.NewPushHandler(handler.PushHandlerParams{Config: cfg, Logger: logger})

	srv, err := NewServer(ServerParams{Lc: fxtest.NewLifecycle(t), Cfg: cfg, Logger: logger, PushHandler: push})
	require.NoError(t, err)
	assert.Equal(t, 8080, srv.(*workerServer).port)

	cfg.Worker.Port = 8081
	srv, err = NewServer(ServerParams{Lc: fxtest.NewLifecycle(t), Cfg: cfg, Logger: logger, PushHandler: push})
	require.NoError(t, err)
	assert.Equal(t, 8081, srv.(*workerServer).port)
}

func TestWorkerRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := newTestConfig()
	e := newEcho(cfg, logger, handler.NewPushHandler(handler.PushHandlerParams{Config: cfg, Logger: logger}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	// An undecodable message is acknowledged without reaching the use case.
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/push", strings.NewReader("garbage")))
	assert.Equal(t, http.StatusOK, rec.Code)
}
