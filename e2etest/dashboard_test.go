package e2etest

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotEndpoint(t *testing.T) {
	env := SetupTest(t)

	var snap snapshotBody
	status := getJSON(t, env, "/api/v1/snapshot", &snap)
	require.Equal(t, http.StatusOK, status)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "artificial-intelligence", snap.Category)
	assert.Equal(t, "ethereum", snap.Chain)
	assert.Equal(t, 5.0, snap.ScoreThreshold)
	assert.False(t, snap.SentimentEnabled)

	require.Len(t, snap.Results, 2, "dust is below the minimum price")
	assert.Equal(t, "alpha", snap.Results[0].ID)
	assert.Equal(t, 1, snap.Results[0].Rank)
	assert.Equal(t, 8.0, snap.Results[0].Score)
	assert.Equal(t, "beta", snap.Results[1].ID)
	assert.Equal(t, 3.5, snap.Results[1].Score)

	require.Len(t, snap.HotPicks, 1)
	assert.Equal(t, "alpha", snap.HotPicks[0].ID)

	assert.Equal(t, map[string]float64{"volume": 0.5, "change": 2, "supply": 1, "sentiment": 0}, snap.Breakdown["beta"])
}

func TestRefreshEndpoint(t *testing.T) {
	env := SetupTest(t)

	var before snapshotBody
	getJSON(t, env, "/api/v1/snapshot", &before)
	requestsBefore := len(env.MockServer.MarketRequests())

	require.Equal(t, http.StatusOK, refresh(t, env))

	var after snapshotBody
	getJSON(t, env, "/api/v1/snapshot", &after)
	assert.NotEqual(t, before.ID, after.ID)
	assert.Greater(t, len(env.MockServer.MarketRequests()), requestsBefore)

	resp, err := http.Get(env.ServerBaseURL + "/refresh")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "GET is accepted as well")
}

func TestDashboardPage(t *testing.T) {
	env := SetupTest(t)

	resp, body := getBody(t, env, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	assert.Contains(t, body, "Artificial Intelligence")
	assert.Contains(t, body, "Alpha")
	assert.Contains(t, body, "Beta")
	assert.NotContains(t, body, "Dust")
	assert.Contains(t, body, "https://dexscreener.com/search?q=alpha")
}

func TestExportCSVEndpoint(t *testing.T) {
	env := SetupTest(t)

	resp, body := getBody(t, env, "/export-csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `attachment; filename="artificial-intelligence_gems_`)

	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Alpha", records[1][1])
	assert.Equal(t, "8", records[1][len(records[1])-1])
}
