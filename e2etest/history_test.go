package e2etest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEndpoints(t *testing.T) {
	env := SetupTest(t)

	require.Equal(t, http.StatusOK, refresh(t, env))
	require.Equal(t, http.StatusOK, refresh(t, env))

	var history []snapshotBody
	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/v1/history", &history))
	require.Len(t, history, 3, "initial refresh plus two")

	var current snapshotBody
	getJSON(t, env, "/api/v1/snapshot", &current)
	assert.Equal(t, current.ID, history[0].ID, "newest first")

	var limited []snapshotBody
	getJSON(t, env, "/api/v1/history?limit=1", &limited)
	require.Len(t, limited, 1)
	assert.Equal(t, current.ID, limited[0].ID)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, env, "/api/v1/history?limit=abc", nil))

	var byID snapshotBody
	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/v1/history/"+history[2].ID, &byID))
	assert.Equal(t, history[2].ID, byID.ID)
	assert.Contains(t, byID.Breakdown, "alpha")

	assert.Equal(t, http.StatusNotFound, getJSON(t, env, "/api/v1/history/does-not-exist", nil))

	var points []struct {
		SnapshotID string  `json:"snapshot_id"`
		Rank       int     `json:"rank"`
		Score      float64 `json:"score"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/v1/coins/beta/scores", &points))
	require.Len(t, points, 3)
	for _, p := range points {
		assert.Equal(t, 2, p.Rank)
		assert.Equal(t, 3.5, p.Score)
	}

	var none []interface{}
	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/v1/coins/dust/scores", &none))
	assert.Empty(t, none)
}
