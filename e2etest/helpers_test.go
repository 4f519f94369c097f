package e2etest

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// getJSON fetches path from the server under test and decodes the body into out.
// It returns the status code.
func getJSON(t *testing.T, env *TestEnv, path string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(env.ServerBaseURL + path)
	require.NoError(t, err, "request %s", path)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), "decode %s: %s", path, body)
	}
	return resp.StatusCode
}

// getBody fetches path and returns the response together with its body.
func getBody(t *testing.T, env *TestEnv, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(env.ServerBaseURL + path)
	require.NoError(t, err, "request %s", path)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// refresh triggers a dashboard refresh through the HTTP API.
func refresh(t *testing.T, env *TestEnv) int {
	t.Helper()
	resp, err := http.Post(env.ServerBaseURL+"/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

type snapshotBody struct {
	ID               string  `json:"id"`
	Category         string  `json:"category"`
	Chain            string  `json:"chain"`
	ScoreThreshold   float64 `json:"score_threshold"`
	SentimentEnabled bool    `json:"sentiment_enabled"`
	Results          []struct {
		Rank  int     `json:"rank"`
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	} `json:"results"`
	HotPicks []struct {
		ID string `json:"id"`
	} `json:"hot_picks"`
	Breakdown map[string]map[string]float64 `json:"breakdown"`
}
