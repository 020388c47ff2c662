package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/modular-api/internal/config"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "DEBUG"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/auth/token", "POST", 200, 2*time.Millisecond)
	m.RecordRequest("/auth/token", "POST", 200, 4*time.Millisecond)
	m.RecordError("/auth/token", "POST", "UNAUTHORIZED")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/auth/token|POST|200"])
	assert.Equal(t, int64(1), snap.Errors["/auth/token|POST|UNAUTHORIZED"])
	assert.InDelta(t, 3.0, snap.AverageLatencyMS, 0.001)

	var nilMetrics *Metrics
	nilMetrics.RecordRequest("/", "GET", 200, 0)
	assert.Empty(t, nilMetrics.Snapshot().Requests)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Equal(t, 1, logs.FilterMessage("request").Len())
	assert.Equal(t, int64(1), metrics.Snapshot().Requests["/ping|GET|200"])
}
