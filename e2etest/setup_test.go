package e2etest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/core"
)

// TestEnv represents a test environment
type TestEnv struct {
	App           *core.App
	Config        *config.Config
	MockServer    *MockServer
	Context       context.Context
	Dir           string
	ServerBaseURL string
}

// freePort asks the kernel for an unused TCP port.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// SetupTest starts the whole application against a fresh mock upstream. The
// initial refresh runs before SetupTest returns. Everything is torn down
// through t.Cleanup.
func SetupTest(t *testing.T) *TestEnv {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	mockServer := NewMockServer()
	t.Cleanup(mockServer.Close)

	port := freePort(t)
	// LoadConfig honours PORT, so pin it to the port under test.
	t.Setenv("PORT", strconv.Itoa(port))

	dir := t.TempDir()
	cfg, err := loadTestConfig(dir, mockServer.GetURL(), port)
	require.NoError(t, err, "Failed to load test config")

	app, err := core.Setup(ctx, cfg, core.Options{RefreshOnStart: true, WithServer: true, WatchTokens: true})
	require.NoError(t, err, "Failed to setup services")
	t.Cleanup(func() { _ = app.Close() })

	require.NoError(t, app.Registry.StartAll(ctx), "Failed to start services")
	t.Cleanup(app.Registry.StopAll)

	serverBaseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(serverBaseURL + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond, "Server not responding")

	return &TestEnv{
		App:           app,
		Config:        cfg,
		MockServer:    mockServer,
		Context:       ctx,
		Dir:           dir,
		ServerBaseURL: serverBaseURL,
	}
}
