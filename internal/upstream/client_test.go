package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpstream(t *testing.T, heatmapStatus, graphStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/heatmap", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(heatmapStatus)
		w.Write([]byte(`{"chains":{"eth":0.4,"sol":0.9},"tokens":"broken"}`))
	})
	mux.HandleFunc("/graph", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(graphStatus)
		w.Write([]byte(`{"nodes":[{"id":"a","type":"whale","risk_level":0.8},{"id":"b","risk_level":0.2}],
			"edges":[{"source_id":"a","target_id":"b","strength":0.6}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchAll(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, http.StatusOK)
	c := NewClient(srv.URL+"/", time.Second)

	b := c.FetchAll(context.Background())
	require.NoError(t, b.Err())

	chains := b.Heatmap[models.LayerChains]
	require.Len(t, chains, 2)
	assert.Equal(t, "eth", chains[0].Key)
	assert.Empty(t, b.Heatmap[models.LayerTokens])

	require.Len(t, b.Graph.Nodes, 2)
	assert.Equal(t, models.NodeUnknown, b.Graph.Nodes[1].Type)
	require.Len(t, b.Graph.Edges, 1)
}

func TestFetchAllUpstreamError(t *testing.T) {
	srv := newUpstream(t, http.StatusBadGateway, http.StatusOK)
	c := NewClient(srv.URL, time.Second)

	b := c.FetchAll(context.Background())
	require.Error(t, b.HeatmapErr)
	assert.Contains(t, b.HeatmapErr.Error(), "502")
	assert.ErrorIs(t, b.Err(), b.HeatmapErr)

	require.NoError(t, b.GraphErr)
	assert.Len(t, b.Graph.Nodes, 2)
}

func TestFetchAllGraphErrorKeepsHeatmap(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, http.StatusInternalServerError)
	c := NewClient(srv.URL, time.Second)

	b := c.FetchAll(context.Background())
	require.NoError(t, b.HeatmapErr)
	require.Len(t, b.Heatmap[models.LayerChains], 2)

	require.Error(t, b.GraphErr)
	assert.Contains(t, b.GraphErr.Error(), "500")
	assert.Empty(t, b.Graph.Nodes)
}

func TestFetchDisabled(t *testing.T) {
	c := NewClient("", time.Second)
	assert.False(t, c.Enabled())

	_, err := c.FetchHeatmap(context.Background())
	assert.Error(t, err)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond)
	_, err := c.FetchGraph(context.Background())
	assert.Error(t, err)
}
