package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jengzang/ghostquant-backend-go/internal/cache"
	"github.com/jengzang/ghostquant-backend-go/internal/constellation"
	"github.com/jengzang/ghostquant-backend-go/internal/metrics"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/jengzang/ghostquant-backend-go/internal/synthetic"
)

// GraphSource fetches entity graphs
type GraphSource interface {
	FetchGraph(ctx context.Context) (models.EntityGraph, error)
}

// ConstellationOptions tunes the constellation pipeline
type ConstellationOptions struct {
	CacheTTL      time.Duration
	Width         float64 // Default canvas width
	Height        float64 // Default canvas height
	Builder       constellation.Options
	SyntheticSeed uint64
	// Shape of the synthetic fallback graph
	SyntheticClusters   int
	SyntheticPerCluster int
}

// ConstellationService holds the latest entity graph and renders it on demand
type ConstellationService struct {
	source  GraphSource
	store   cache.Store
	builder *constellation.Builder
	synth   *synthetic.Generator
	opts    ConstellationOptions
	now     func() time.Time

	refreshMu sync.Mutex

	mu        sync.RWMutex
	graph     *models.EntityGraph
	graphFrom string
}

// NewConstellationService creates a new constellation service
func NewConstellationService(source GraphSource, store cache.Store, opts ConstellationOptions) *ConstellationService {
	if opts.SyntheticClusters <= 0 {
		opts.SyntheticClusters = 4
	}
	if opts.SyntheticPerCluster <= 0 {
		opts.SyntheticPerCluster = 6
	}
	s := &ConstellationService{
		source:  source,
		store:   store,
		builder: constellation.NewBuilder(opts.Builder),
		opts:    opts,
		now:     time.Now,
	}
	s.synth = synthetic.NewGenerator(syntheticSeed(opts.SyntheticSeed, s.now))
	return s
}

// Refresh fetches the graph from the upstream source and ingests it
func (s *ConstellationService) Refresh(ctx context.Context) error {
	var graph models.EntityGraph
	var err error
	if s.source != nil {
		graph, err = s.source.FetchGraph(ctx)
	} else {
		err = fmt.Errorf("no upstream source")
	}
	return s.Ingest(ctx, graph, err)
}

// Ingest replaces the held graph with a fetch result.
// When fetchErr is set the cached graph is used, then a synthetic one.
func (s *ConstellationService) Ingest(ctx context.Context, graph models.EntityGraph, fetchErr error) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := s.now()
	source := models.SourceLive
	if fetchErr == nil {
		graph = graph.Sanitize()
		if s.store != nil {
			if err := s.store.Set(ctx, cache.KeyGraph, graph, s.opts.CacheTTL); err != nil {
				log.Printf("[ConstellationService] Failed to cache graph: %v", err)
			}
		}
	} else {
		log.Printf("[ConstellationService] Upstream fetch failed: %v", fetchErr)
		graph, source = s.fallback(ctx)
	}

	s.mu.Lock()
	s.graph = &graph
	s.graphFrom = source
	s.mu.Unlock()

	metrics.GraphSize.WithLabelValues("nodes").Set(float64(len(graph.Nodes)))
	metrics.GraphSize.WithLabelValues("edges").Set(float64(len(graph.Edges)))
	metrics.RefreshTotal.WithLabelValues(metrics.PipelineConstellation, source).Inc()
	metrics.RefreshDuration.WithLabelValues(metrics.PipelineConstellation).Observe(s.now().Sub(start).Seconds())

	log.Printf("[ConstellationService] Loaded graph from %s: %d nodes, %d edges",
		source, len(graph.Nodes), len(graph.Edges))
	return nil
}

func (s *ConstellationService) fallback(ctx context.Context) (models.EntityGraph, string) {
	if s.store != nil {
		var cached models.EntityGraph
		ok, err := s.store.Get(ctx, cache.KeyGraph, &cached)
		if err != nil {
			log.Printf("[ConstellationService] Failed to read cache: %v", err)
		}
		if ok {
			return cached.Sanitize(), models.SourceCache
		}
	}
	return s.synth.Graph(s.opts.SyntheticClusters, s.opts.SyntheticPerCluster), models.SourceSynthetic
}

// Graph returns the held graph and where it came from
func (s *ConstellationService) Graph() (models.EntityGraph, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.graph == nil {
		return models.EntityGraph{}, "", ErrNotReady
	}
	return *s.graph, s.graphFrom, nil
}

// Visual renders the held graph. Zero dimensions use the configured canvas;
// seed 0 gives a random starfield.
func (s *ConstellationService) Visual(width, height float64, seed uint64) (models.ConstellationVisual, error) {
	graph, _, err := s.Graph()
	if err != nil {
		return models.ConstellationVisual{}, err
	}
	return s.Build(graph.Nodes, graph.Edges, width, height, seed), nil
}

// MaxNodes is the largest graph Build accepts from callers
func (s *ConstellationService) MaxNodes() int {
	return s.builder.Options().MaxNodes
}

// Build renders an arbitrary graph with the service's builder settings
func (s *ConstellationService) Build(nodes []models.GraphNode, edges []models.GraphEdge, width, height float64, seed uint64) models.ConstellationVisual {
	if width <= 0 {
		width = s.opts.Width
	}
	if height <= 0 {
		height = s.opts.Height
	}
	return s.builder.Build(nodes, edges, width, height, constellation.NewSeededSource(seed))
}

// Globe projects the held graph onto the threat globe
func (s *ConstellationService) Globe() (models.ThreatGlobe, error) {
	graph, _, err := s.Graph()
	if err != nil {
		return models.ThreatGlobe{}, err
	}
	return constellation.BuildThreatGlobe(graph.Nodes, graph.Edges), nil
}
