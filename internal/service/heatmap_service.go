package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jengzang/ghostquant-backend-go/internal/cache"
	"github.com/jengzang/ghostquant-backend-go/internal/heatmap"
	"github.com/jengzang/ghostquant-backend-go/internal/metrics"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/jengzang/ghostquant-backend-go/internal/repository"
	"github.com/jengzang/ghostquant-backend-go/internal/synthetic"
)

// HeatmapSource fetches raw heatmap payloads
type HeatmapSource interface {
	FetchHeatmap(ctx context.Context) (models.HeatmapRaw, error)
}

// HeatmapOptions tunes the heatmap pipeline
type HeatmapOptions struct {
	CacheTTL      time.Duration
	Retention     int    // Snapshots kept in the database, 0 keeps all
	SyntheticSeed uint64 // 0 seeds from the clock
}

// HeatmapService owns the latest heatmap view and its history
type HeatmapService struct {
	repo   *repository.SnapshotRepository
	source HeatmapSource
	store  cache.Store
	synth  *synthetic.Generator
	opts   HeatmapOptions
	now    func() time.Time

	refreshMu sync.Mutex // serializes refreshes and guards synth

	mu       sync.RWMutex
	latest   *models.HeatmapView
	previous models.HeatmapRaw
	subs     map[chan models.HeatmapView]struct{}
}

// NewHeatmapService creates a new heatmap service
func NewHeatmapService(repo *repository.SnapshotRepository, source HeatmapSource, store cache.Store, opts HeatmapOptions) *HeatmapService {
	s := &HeatmapService{
		repo:   repo,
		source: source,
		store:  store,
		opts:   opts,
		now:    time.Now,
		subs:   make(map[chan models.HeatmapView]struct{}),
	}
	s.synth = synthetic.NewGenerator(syntheticSeed(opts.SyntheticSeed, s.now))
	return s
}

// Refresh fetches from the upstream source and ingests the result
func (s *HeatmapService) Refresh(ctx context.Context) (*models.HeatmapView, error) {
	var raw models.HeatmapRaw
	var err error
	if s.source != nil {
		raw, err = s.source.FetchHeatmap(ctx)
	} else {
		err = fmt.Errorf("no upstream source")
	}
	return s.Ingest(ctx, raw, err)
}

// Ingest builds a new view from a fetch result.
// When fetchErr is set the last cached payload is used, then synthetic data.
func (s *HeatmapService) Ingest(ctx context.Context, raw models.HeatmapRaw, fetchErr error) (*models.HeatmapView, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := s.now()
	raw, source := s.resolve(ctx, raw, fetchErr)

	live := source == models.SourceLive

	agg := heatmap.Aggregate(raw, start)
	spikes := make([]models.Spike, 0)
	if live {
		previous, err := s.previousRaw(ctx)
		if err != nil {
			log.Printf("[HeatmapService] Failed to load previous snapshot: %v", err)
		}
		if previous != nil {
			spikes = heatmap.DetectLayerSpikes(raw, previous)
		}
	}

	snap := &models.HeatmapSnapshot{
		Source:     source,
		CapturedAt: agg.Timestamp,
		GlobalRisk: agg.GlobalRisk,
		Raw:        raw,
	}
	if s.repo != nil {
		if err := s.repo.Save(ctx, snap); err != nil {
			return nil, fmt.Errorf("failed to save snapshot: %w", err)
		}
		if s.opts.Retention > 0 {
			if n, err := s.repo.Prune(ctx, s.opts.Retention); err != nil {
				log.Printf("[HeatmapService] Failed to prune snapshots: %v", err)
			} else if n > 0 {
				log.Printf("[HeatmapService] Pruned %d old snapshots", n)
			}
		}
	}

	view := &models.HeatmapView{
		SnapshotID:  snap.ID,
		Source:      source,
		Heatmap:     agg,
		GlobalLevel: heatmap.ClassifyRisk(agg.GlobalRisk),
		Spikes:      spikes,
	}

	s.mu.Lock()
	s.latest = view
	if live {
		s.previous = raw
	}
	s.mu.Unlock()

	s.record(view, start)
	s.broadcast(*view)

	log.Printf("[HeatmapService] Refreshed from %s: global risk %.3f (%s), %d spikes",
		source, agg.GlobalRisk, view.GlobalLevel.Level, len(spikes))
	return view, nil
}

func (s *HeatmapService) resolve(ctx context.Context, raw models.HeatmapRaw, fetchErr error) (models.HeatmapRaw, string) {
	if fetchErr == nil {
		if s.store != nil {
			if err := s.store.Set(ctx, cache.KeyHeatmapRaw, raw, s.opts.CacheTTL); err != nil {
				log.Printf("[HeatmapService] Failed to cache heatmap: %v", err)
			}
		}
		return raw, models.SourceLive
	}

	log.Printf("[HeatmapService] Upstream fetch failed: %v", fetchErr)
	if s.store != nil {
		var cached models.HeatmapRaw
		ok, err := s.store.Get(ctx, cache.KeyHeatmapRaw, &cached)
		if err != nil {
			log.Printf("[HeatmapService] Failed to read cache: %v", err)
		}
		if ok {
			return cached, models.SourceCache
		}
	}
	return s.synth.Heatmap(), models.SourceSynthetic
}

// previousRaw is the spike baseline: the last live payload. Cache and
// synthetic payloads never move it.
func (s *HeatmapService) previousRaw(ctx context.Context) (models.HeatmapRaw, error) {
	s.mu.RLock()
	previous := s.previous
	s.mu.RUnlock()
	if previous != nil || s.repo == nil {
		return previous, nil
	}

	snap, err := s.repo.LatestFrom(ctx, models.SourceLive)
	if err != nil || snap == nil {
		return nil, err
	}
	return snap.Raw, nil
}

func (s *HeatmapService) record(view *models.HeatmapView, start time.Time) {
	metrics.GlobalRisk.Set(view.Heatmap.GlobalRisk)
	for _, layer := range view.Heatmap.Layers() {
		metrics.LayerMaxScore.WithLabelValues(layer.Name).Set(layer.MaxScore)
	}
	for _, spike := range view.Spikes {
		metrics.SpikesDetected.WithLabelValues(spike.Layer).Inc()
	}
	metrics.RefreshTotal.WithLabelValues(metrics.PipelineHeatmap, view.Source).Inc()
	metrics.RefreshDuration.WithLabelValues(metrics.PipelineHeatmap).Observe(s.now().Sub(start).Seconds())
}

// Latest returns the current view. After a restart it is rebuilt from the
// newest stored snapshot, without spikes.
func (s *HeatmapService) Latest(ctx context.Context) (*models.HeatmapView, error) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()
	if latest != nil {
		return latest, nil
	}
	if s.repo == nil {
		return nil, ErrNotReady
	}

	snap, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrNotReady
	}

	agg := heatmap.Aggregate(snap.Raw, snap.CapturedAt)
	view := &models.HeatmapView{
		SnapshotID:  snap.ID,
		Source:      snap.Source,
		Heatmap:     agg,
		GlobalLevel: heatmap.ClassifyRisk(agg.GlobalRisk),
		Spikes:      make([]models.Spike, 0),
	}

	s.mu.Lock()
	if s.latest == nil {
		s.latest = view
		if snap.Source == models.SourceLive {
			s.previous = snap.Raw
		}
	}
	s.mu.Unlock()
	return view, nil
}

// History lists stored snapshots, newest first
func (s *HeatmapService) History(ctx context.Context, limit int) ([]models.SnapshotSummary, error) {
	if s.repo == nil {
		return make([]models.SnapshotSummary, 0), nil
	}
	return s.repo.History(ctx, limit)
}

// Subscribe registers for refreshed views. Slow subscribers only see the
// newest view. The returned func unsubscribes.
func (s *HeatmapService) Subscribe() (<-chan models.HeatmapView, func()) {
	ch := make(chan models.HeatmapView, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *HeatmapService) broadcast(view models.HeatmapView) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- view:
		default:
		}
	}
}
