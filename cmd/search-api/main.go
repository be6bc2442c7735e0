// cmd/search-api/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"price-scout/internal/common/config"
	"price-scout/internal/common/database"
	"price-scout/internal/common/logger"
	"price-scout/internal/common/observability"
	"price-scout/internal/discovery"
	"price-scout/internal/fetch"
	"price-scout/internal/genai"
	"price-scout/internal/httpapi"
	"price-scout/internal/intent"
	"price-scout/internal/location"
	"price-scout/internal/normalize"
	"price-scout/internal/search"
	"price-scout/internal/vendor"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting search API...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	// History is optional; searches still work without it.
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "PostgreSQL connection")

	var history *search.HistoryStore
	if err != nil {
		zapLog.Warn("postgres unavailable, search history disabled", zap.Error(err))
	} else {
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
		history = search.NewHistoryStore(pg, log)
	}

	// --- Init Redis with retry ---
	// Discovery caching falls back to an in-process LRU when Redis is down.
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "Redis connection")

	cacheTTL := time.Duration(cfg.Search.DiscoveryCacheTTL) * time.Second
	var discoveryCache discovery.Cache
	if err != nil {
		zapLog.Warn("redis unavailable, using in-process discovery cache", zap.Error(err))
		discoveryCache = discovery.NewLRUCache(cfg.Search.DiscoveryCacheSize, cacheTTL)
	} else {
		defer redis.Close()
		zapLog.Info("Redis connected successfully")
		discoveryCache = discovery.NewRedisCache(redis, cacheTTL)
	}

	// --- Init AI Client ---
	aiClient := genai.NewClient(cfg, log)
	var ai *genai.Client
	if aiClient.Available() {
		ai = aiClient
		zapLog.Info("GenAI client initialized", zap.String("model", cfg.APIs.GenAI.Model))
	} else {
		zapLog.Warn("GenAI credentials missing, running with heuristic intent extraction only")
	}

	// --- Build Intent Extraction Chain ---
	heuristic := intent.NewHeuristicExtractor(log)
	var extractor intent.Extractor = heuristic
	if ai != nil {
		aiExtractor, err := intent.NewAIExtractor(ai, log)
		if err != nil {
			zapLog.Fatal("intent extractor init failed", zap.Error(err))
		}
		extractor = intent.NewFallbackExtractor(aiExtractor, heuristic, log)
	}

	// --- Register Fetchers ---
	var fetchers []fetch.Fetcher

	directSite, err := fetch.NewDirectSiteFetcher(cfg, log)
	if err != nil {
		zapLog.Fatal("direct-site fetcher init failed", zap.Error(err))
	}
	fetchers = append(fetchers,
		fetch.NewProductAPIFetcher(cfg, log),
		fetch.NewShoppingAPIFetcher(cfg, log),
		directSite,
		fetch.NewWebSearchFetcher(cfg, log),
		fetch.NewLocalStoresFetcher(cfg, log),
	)
	for _, f := range fetchers {
		zapLog.Info("fetcher registered",
			zap.String("fetcher", f.Name()),
			zap.Bool("available", f.Available()),
		)
	}

	// --- Assemble the Search Pipeline ---
	orchestrator := search.NewOrchestrator(search.Deps{
		Config:     cfg.Search,
		Resolver:   location.NewResolver(log),
		Extractor:  extractor,
		Discovery:  discovery.NewService(discoveryCache, ai, log),
		Fetchers:   fetchers,
		Normalizer: normalize.New(log),
		Enricher:   vendor.NewEnricher(log),
		Summarizer: search.NewSummarizer(cfg.Search),
		History:    history,
		Obs:        obs,
		AIModel:    aiClient.Model(),
		Logger:     log,
	})
	recommender := search.NewRecommender(ai, log)

	apiServer := httpapi.NewServer(cfg, orchestrator, recommender, aiClient.Model(), log)

	// --- Start Metrics Server ---
	go func() {
		// DefaultServeMux also carries the pprof handlers registered by the
		// blank import above.
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("metrics server listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress, nil); err != nil {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()

	// --- Start API Server ---
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      apiServer.Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("API server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Search API stopped gracefully")
}
