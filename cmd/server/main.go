package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jengzang/ghostquant-backend-go/internal/api"
	"github.com/jengzang/ghostquant-backend-go/internal/cache"
	"github.com/jengzang/ghostquant-backend-go/internal/config"
	"github.com/jengzang/ghostquant-backend-go/internal/constellation"
	"github.com/jengzang/ghostquant-backend-go/internal/database"
	"github.com/jengzang/ghostquant-backend-go/internal/handler"
	"github.com/jengzang/ghostquant-backend-go/internal/middleware"
	"github.com/jengzang/ghostquant-backend-go/internal/poller"
	"github.com/jengzang/ghostquant-backend-go/internal/repository"
	"github.com/jengzang/ghostquant-backend-go/internal/service"
	"github.com/jengzang/ghostquant-backend-go/internal/upstream"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	store := openCache(ctx, cfg)
	defer store.Close()

	client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout)
	if !client.Enabled() {
		log.Println("[Server] No upstream URL configured, serving synthetic data")
	}

	heatmapService := service.NewHeatmapService(
		repository.NewSnapshotRepository(db), client, store,
		service.HeatmapOptions{
			CacheTTL:      cfg.CacheTTL,
			Retention:     cfg.SnapshotRetention,
			SyntheticSeed: cfg.SyntheticSeed,
		},
	)
	constellationService := service.NewConstellationService(client, store, service.ConstellationOptions{
		CacheTTL: cfg.CacheTTL,
		Width:    cfg.CanvasWidth,
		Height:   cfg.CanvasHeight,
		Builder: constellation.Options{
			StarfieldSize:    cfg.StarfieldSize,
			LayoutIterations: cfg.LayoutIterations,
			MaxNodes:         cfg.MaxNodes,
		},
		SyntheticSeed: cfg.SyntheticSeed,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	go limiter.Run(ctx)

	go poller.NewPoller(client, heatmapService, constellationService, cfg.PollInterval).Start(ctx)

	router := api.SetupRouter(api.Handlers{
		Heatmap:       handler.NewHeatmapHandler(heatmapService),
		Constellation: handler.NewConstellationHandler(constellationService),
		Stream:        handler.NewStreamHandler(heatmapService),
	}, limiter)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// openCache connects to redis when configured and falls back to memory
func openCache(ctx context.Context, cfg *config.Config) cache.Store {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryStore()
	}

	store, err := cache.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Printf("[Server] Redis unavailable (%v), using in-memory cache", err)
		return cache.NewMemoryStore()
	}
	log.Printf("[Server] Using redis cache at %s", cfg.RedisAddr)
	return store
}
