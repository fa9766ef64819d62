package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"rate-shopper/internal/core/config"
	"rate-shopper/internal/core/logger"
	"rate-shopper/internal/core/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew verifies that New creates a Server with the correct configuration.
func TestNew(t *testing.T) {
	cfg := &config.AppConfig{
		ServerPort: 8080,
	}

	logger.Init("development", "debug")
	srv := New(cfg, nil)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.App)
	assert.Equal(t, cfg, srv.cfg)
}

// TestHealthz verifies the liveness endpoint and the ray id header.
func TestHealthz(t *testing.T) {
	logger.Init("development", "error")
	srv := New(&config.AppConfig{}, nil)

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RayIDHeader))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

// TestRayIDPropagation verifies a caller supplied ray id is echoed back.
func TestRayIDPropagation(t *testing.T) {
	logger.Init("development", "error")
	srv := New(&config.AppConfig{}, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(RayIDHeader, "ray-123")
	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "ray-123", resp.Header.Get(RayIDHeader))
}

// TestMetrics verifies the Prometheus endpoint is mounted only with a recorder.
func TestMetrics(t *testing.T) {
	logger.Init("development", "error")

	t.Run("WithRecorder", func(t *testing.T) {
		recorder := metrics.NewRecorder()
		recorder.ObserveRequest("PARCEL", "quoted", time.Millisecond)
		srv := New(&config.AppConfig{}, recorder)

		resp, err := srv.App.Test(httptest.NewRequest("GET", "/metrics", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `rate_shopper_quote_requests_total{outcome="quoted",segment="PARCEL"} 1`)
	})

	t.Run("WithoutRecorder", func(t *testing.T) {
		srv := New(&config.AppConfig{}, nil)

		resp, err := srv.App.Test(httptest.NewRequest("GET", "/metrics", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

// TestPanicRecovery verifies a panicking handler yields a JSON 500 without the panic value.
func TestPanicRecovery(t *testing.T) {
	logger.Init("development", "error")
	srv := New(&config.AppConfig{}, nil)
	srv.App.Get("/boom", func(c *fiber.Ctx) error {
		panic("cannot convert Inf to decimal")
	})

	req := httptest.NewRequest("GET", "/boom", nil)
	req.Header.Set(RayIDHeader, "ray-panic")
	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "internal server error", body["message"])
	assert.Equal(t, "ray-panic", body["ray_id"])

	// the server keeps serving
	resp, err = srv.App.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// TestErrorHandler_FiberError verifies fiber errors keep their status and message.
func TestErrorHandler_FiberError(t *testing.T) {
	logger.Init("development", "error")
	srv := New(&config.AppConfig{}, nil)

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Cannot GET /nowhere", body["message"])
}

// TestServer_Run_Error verifies that Run returns an error when binding fails (e.g., privileged port).
func TestServer_Run_Error(t *testing.T) {
	// Privileged port 1 should fail
	cfg := &config.AppConfig{
		ServerPort: 1,
	}
	logger.Init("development", "error")

	srv := New(cfg, nil)

	errCh := make(chan error)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(1 * time.Second):
		srv.Shutdown(time.Second)
		t.Log("Server unexpectedly started or timed out on Error test")
	}
}
