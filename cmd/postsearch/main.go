package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/postsearch/internal/config"
	"github.com/kailas-cloud/postsearch/internal/db"
	dbPostgres "github.com/kailas-cloud/postsearch/internal/db/postgres"
	dbPostgREST "github.com/kailas-cloud/postsearch/internal/db/postgrest"
	dbRedis "github.com/kailas-cloud/postsearch/internal/db/redis"
	"github.com/kailas-cloud/postsearch/internal/domain"
	logpkg "github.com/kailas-cloud/postsearch/internal/logger"
	"github.com/kailas-cloud/postsearch/internal/metrics"
	"github.com/kailas-cloud/postsearch/internal/repository/embcache"
	postrepo "github.com/kailas-cloud/postsearch/internal/repository/post"
	chiTransport "github.com/kailas-cloud/postsearch/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/postsearch/internal/transport/openai"
	"github.com/kailas-cloud/postsearch/internal/transport/web"
	embeddinguc "github.com/kailas-cloud/postsearch/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/postsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/postsearch/internal/usecase/search"
	"github.com/kailas-cloud/postsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level, logpkg.WithFileSink(logpkg.FileSink{
		Path:       cfg.Logging.File.Path,
		MaxSizeMB:  cfg.Logging.File.MaxSizeMB,
		MaxBackups: cfg.Logging.File.MaxBackups,
		MaxAgeDays: cfg.Logging.File.MaxAgeDays,
		Compress:   cfg.Logging.File.Compress,
	}))
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting postsearch server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("procedure", cfg.Database.Procedure),
		zap.Bool("cache", cfg.Cache.Enabled()),
	)

	store, err := newMatcher(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database backend", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("backend", store.Backend()))

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterMatchMetrics()

	var cache *dbRedis.Store
	if cfg.Cache.Enabled() {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    nonEmpty(cfg.Cache.Addrs),
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()
		if err := cache.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	embedder := buildEmbedder(cfg, cache, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
	)

	searchSvc := searchuc.New(
		postrepo.New(store),
		embedder,
		searchuc.WithTimeout(time.Duration(cfg.Search.TimeoutSec)*time.Second),
	)

	// Only add the cache check when enabled: a nil *dbRedis.Store would still be a non-nil Pinger.
	var healthOpts []healthuc.Option
	if cache != nil {
		healthOpts = append(healthOpts, healthuc.WithCache(cache))
	}
	healthSvc := healthuc.New(store, embedder, healthOpts...)

	api := chiTransport.NewServer(searchSvc, healthSvc, logger)
	page := web.NewHandler(searchSvc, logger)
	r := chiTransport.NewRouter(api, page, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// newMatcher creates the similarity backend selected by database.driver.
func newMatcher(cfg config.DatabaseConfig) (db.Matcher, error) {
	switch cfg.Driver {
	case config.DriverPostgREST:
		c, err := dbPostgREST.NewClient(dbPostgREST.Config{
			URL:        cfg.URL,
			AnonKey:    cfg.AnonKey,
			Procedure:  cfg.Procedure,
			Schema:     cfg.Schema,
			HTTPClient: &http.Client{Timeout: 30 * time.Second},
		})
		if err != nil {
			return nil, fmt.Errorf("create postgrest client: %w", err)
		}
		return c, nil
	case config.DriverPostgres:
		s, err := dbPostgres.NewStore(dbPostgres.Config{
			DSN:       cfg.DSN,
			Schema:    cfg.Schema,
			Procedure: cfg.Procedure,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// checkedEmbedder is an embedder that also reports provider health.
type checkedEmbedder interface {
	domain.Embedder
	domain.HealthChecker
}

// buildEmbedder assembles the decorator chain: OpenAI -> Instrumented -> Cached.
// The cache is outermost so a hit records no provider usage.
func buildEmbedder(cfg config.Config, cache *dbRedis.Store, logger *zap.Logger) checkedEmbedder {
	// Base provider (with transport metrics built-in)
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:   cfg.Embedding.APIKey,
		BaseURL:  cfg.Embedding.BaseURL,
		Model:    cfg.Embedding.Model,
		Provider: cfg.Embedding.Provider,
		Logger:   logger,
	})

	var embedder checkedEmbedder = embeddinguc.NewInstrumentedEmbedder(
		base, cfg.Embedding.Provider, cfg.Embedding.Model, logger,
	)

	if cache != nil {
		embedder = embcache.New(
			embedder, cache, cfg.Embedding.Model,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.EmbeddingCacheTotal, logger,
		)
	}

	return embedder
}

func nonEmpty(addrs []string) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
