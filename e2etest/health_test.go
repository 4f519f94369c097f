package e2etest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoint tests the functionality of the /health endpoint
func TestHealthEndpoint(t *testing.T) {
	env := SetupTest(t)

	var health struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	status := getJSON(t, env, "/health", &health)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "ok", health.Status)
	assert.Len(t, health.Services, 2, "only services with a health check are listed")
	assert.Equal(t, "up", health.Services["markets"], "markets fetched during the initial refresh")
	assert.Equal(t, "up", health.Services["dashboard"])
}

func TestMetricsEndpoint(t *testing.T) {
	env := SetupTest(t)

	resp, body := getBody(t, env, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "solscope_refresh_total")
	assert.Contains(t, body, "solscope_store_operations_total")
}
