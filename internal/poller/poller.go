// Package poller drives periodic refreshes of the heatmap and constellation pipelines.
package poller

import (
	"context"
	"log"
	"time"

	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/jengzang/ghostquant-backend-go/internal/upstream"
)

// Fetcher fetches the heatmap and graph together
type Fetcher interface {
	FetchAll(ctx context.Context) upstream.Bundle
}

// HeatmapIngester accepts heatmap fetch results
type HeatmapIngester interface {
	Ingest(ctx context.Context, raw models.HeatmapRaw, fetchErr error) (*models.HeatmapView, error)
}

// GraphIngester accepts graph fetch results
type GraphIngester interface {
	Ingest(ctx context.Context, graph models.EntityGraph, fetchErr error) error
}

// Poller refreshes both pipelines on a fixed interval
type Poller struct {
	fetcher       Fetcher
	heatmap       HeatmapIngester
	constellation GraphIngester
	interval      time.Duration
}

// NewPoller creates a new poller instance
func NewPoller(fetcher Fetcher, heatmap HeatmapIngester, constellation GraphIngester, interval time.Duration) *Poller {
	return &Poller{
		fetcher:       fetcher,
		heatmap:       heatmap,
		constellation: constellation,
		interval:      interval,
	}
}

// Start refreshes immediately, then once per interval until ctx is cancelled
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Printf("[Poller] Started with interval %s", p.interval)
	p.PollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[Poller] Stopping due to context cancellation")
			return
		case <-ticker.C:
			p.PollOnce(ctx)
		}
	}
}

// PollOnce runs a single fetch and hands each payload to its pipeline.
// A failed payload is still passed on so that pipeline alone can fall back.
func (p *Poller) PollOnce(ctx context.Context) {
	bundle := p.fetcher.FetchAll(ctx)
	if ctx.Err() != nil {
		return
	}

	if _, herr := p.heatmap.Ingest(ctx, bundle.Heatmap, bundle.HeatmapErr); herr != nil {
		log.Printf("[Poller] Heatmap refresh failed: %v", herr)
	}
	if gerr := p.constellation.Ingest(ctx, bundle.Graph, bundle.GraphErr); gerr != nil {
		log.Printf("[Poller] Constellation refresh failed: %v", gerr)
	}
}
