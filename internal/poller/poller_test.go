package poller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/jengzang/ghostquant-backend-go/internal/service"
	"github.com/jengzang/ghostquant-backend-go/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	bundle upstream.Bundle
}

func (f *fakeFetcher) FetchAll(ctx context.Context) upstream.Bundle {
	return f.bundle
}

type recorder struct {
	mu           sync.Mutex
	heatmaps     int
	graphs       int
	lastErr      error
	lastGraphErr error
}

func (r *recorder) Ingest(ctx context.Context, raw models.HeatmapRaw, fetchErr error) (*models.HeatmapView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.heatmaps++
	r.lastErr = fetchErr
	return &models.HeatmapView{}, nil
}

func (r *recorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.heatmaps, r.graphs
}

type graphRecorder struct{ r *recorder }

func (g graphRecorder) Ingest(ctx context.Context, graph models.EntityGraph, fetchErr error) error {
	g.r.mu.Lock()
	defer g.r.mu.Unlock()
	g.r.graphs++
	g.r.lastGraphErr = fetchErr
	return nil
}

func TestPollOncePassesFetchError(t *testing.T) {
	rec := &recorder{}
	fetchErr := errors.New("down")
	bundle := upstream.Bundle{HeatmapErr: fetchErr, GraphErr: fetchErr}
	p := NewPoller(&fakeFetcher{bundle: bundle}, rec, graphRecorder{rec}, time.Hour)

	p.PollOnce(context.Background())

	heatmaps, graphs := rec.counts()
	assert.Equal(t, 1, heatmaps)
	assert.Equal(t, 1, graphs)
	assert.ErrorIs(t, rec.lastErr, fetchErr)
	assert.ErrorIs(t, rec.lastGraphErr, fetchErr)
}

func TestPollOnceRoutesErrorsPerPipeline(t *testing.T) {
	rec := &recorder{}
	graphErr := errors.New("graph 500")
	bundle := upstream.Bundle{
		Heatmap:  models.HeatmapRaw{models.LayerChains: models.Scores{{Key: "eth", Score: 0.5}}},
		GraphErr: graphErr,
	}
	p := NewPoller(&fakeFetcher{bundle: bundle}, rec, graphRecorder{rec}, time.Hour)

	p.PollOnce(context.Background())

	assert.NoError(t, rec.lastErr)
	assert.ErrorIs(t, rec.lastGraphErr, graphErr)
}

func TestPollOnceGraphOutageKeepsLiveHeatmap(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/heatmap", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chains":{"eth":0.5}}`))
	})
	mux.HandleFunc("/graph", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := upstream.NewClient(srv.URL, time.Second)
	heatmap := service.NewHeatmapService(nil, client, nil, service.HeatmapOptions{SyntheticSeed: 1})
	constellation := service.NewConstellationService(client, nil, service.ConstellationOptions{Width: 400, Height: 300, SyntheticSeed: 1})
	p := NewPoller(client, heatmap, constellation, time.Hour)

	p.PollOnce(context.Background())

	view, err := heatmap.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SourceLive, view.Source)
	chains := view.Heatmap.Chains.Data
	require.Len(t, chains, 1)
	assert.Equal(t, "eth", chains[0].Key)
	assert.InDelta(t, 0.5, chains[0].Score, 1e-9)

	_, source, err := constellation.Graph()
	require.NoError(t, err)
	assert.Equal(t, models.SourceSynthetic, source)
}

func TestStartRefreshesImmediatelyAndStops(t *testing.T) {
	rec := &recorder{}
	p := NewPoller(&fakeFetcher{}, rec, graphRecorder{rec}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		heatmaps, _ := rec.counts()
		return heatmaps >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}
