package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider()
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "casevault")
	require.NoError(t, err)
	assert.NotNil(t, bm)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider()
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "casevault")
	require.NoError(t, err)

	bm.RecordOperation(context.Background(), "portal", "get_view", "success")
	bm.RecordOperation(context.Background(), "portal", "get_view", "error")
	bm.RecordOperation(context.Background(), "timeline", "advance", "success")

	// Scrape the registry and check the counter shows up.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "casevault_operations_total")
	assert.Regexp(t, `casevault_operations_total\{[^}]*domain="portal"[^}]*operation="get_view"[^}]*status="success"[^}]*\} 1`, string(body))
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider()
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "casevault")
	require.NoError(t, err)

	bm.RecordDuration(context.Background(), "portal", "get_view", 42*time.Millisecond, "success")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "casevault_operation_duration_seconds")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()

	// Must be safe to call with no provider behind it.
	bm.RecordOperation(context.Background(), "portal", "get_view", "success")
	bm.RecordDuration(context.Background(), "portal", "get_view", time.Second, "error")
}
