package context

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRequestID_StableWithinRequest(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	first := GetRequestID(c)
	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, first, GetRequestID(c))

	SetRequestID(c, "abc")
	assert.Equal(t, "abc", GetRequestID(c))
}

func TestNormalizeRequestID(t *testing.T) {
	assert.Equal(t, "req-123", NormalizeRequestID("req-123"))

	for _, bad := range []string{"", "has space", "line\nbreak", strings.Repeat("x", 129)} {
		got := NormalizeRequestID(bad)
		_, err := uuid.Parse(got)
		assert.NoError(t, err, "input %q", bad)
	}
}

func TestRequestScope(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestIDFromContext(ctx))
	assert.Nil(t, GetLogger(ctx))

	fallback := slog.Default()
	assert.Same(t, fallback, GetLoggerOrDefault(ctx, fallback))

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx, logger := WithRequestScope(ctx, base, "req-9")

	assert.Equal(t, "req-9", GetRequestIDFromContext(ctx))
	assert.Same(t, logger, GetLoggerOrDefault(ctx, fallback))

	logger.Info("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-9"`)
}
