package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"rate-shopper/internal/core/cache"
	"rate-shopper/internal/core/config"
	"rate-shopper/internal/core/database"
	"rate-shopper/internal/core/httpclient"
	"rate-shopper/internal/core/logger"
	"rate-shopper/internal/core/metrics"
	"rate-shopper/internal/core/server"
	quotehandler "rate-shopper/internal/features/quotes/handler"
	quoteservice "rate-shopper/internal/features/quotes/service"
	rateadapter "rate-shopper/internal/features/ratecards/adapters"
	"rate-shopper/internal/features/ratecards/ports"

	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests may finish after a signal.
const shutdownTimeout = 10 * time.Second

// repositories groups the rate data sources the engine reads from.
type repositories struct {
	contracts   ports.RateContractRepository
	zones       ports.ZoneMappingRepository
	performance ports.CarrierPerformanceRepository
	close       func()
}

// @title Rate Shopper API
// @version 1.0
// @description This API quotes, ranks and allocates carriers for parcel, palletized and full truckload shipments.
// @contact.name API Support
// @contact.email support@rateshopper.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("rate_store", cfg.RateStore.Kind),
		zap.String("performance_source", cfg.Performance.Source),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := buildRepositories(ctx, cfg)
	if err != nil {
		l.Fatal("Rate data initialization failed", zap.Error(err))
	}
	defer repos.close()

	recorder := metrics.NewRecorder()
	quoteSvc := quoteservice.NewQuoteService(repos.contracts, repos.zones, repos.performance, quoteservice.Options{
		Workers:  cfg.Engine.Workers,
		PageSize: cfg.Engine.ContractPageSize,
		Metrics:  recorder,
	})
	quoteHdl := quotehandler.NewQuoteHandler(quoteSvc, cfg.Engine.QuoteTimeout())

	srv := server.New(cfg, recorder)

	// Register Routes
	v1 := srv.App.Group("/v1")
	v1.Post("/quotes", quoteHdl.GetQuotes)
	v1.Post("/allocations", quoteHdl.Allocate)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	case <-ctx.Done():
		if err := srv.Shutdown(shutdownTimeout); err != nil {
			l.Error("Graceful shutdown failed", zap.Error(err))
		}
	}
}

// buildRepositories opens the configured rate store, wraps it in the Redis cache when enabled and
// selects the performance source.
func buildRepositories(ctx context.Context, cfg *config.AppConfig) (*repositories, error) {
	l := logger.Get()
	var closers []func()
	repos := &repositories{
		close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}

	switch cfg.RateStore.Kind {
	case config.StorePostgres:
		pool, err := database.NewPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			return nil, err
		}
		closers = append(closers, pool.Close)
		store := rateadapter.NewPostgresRepository(pool)
		repos.contracts, repos.zones, repos.performance = store, store, store
		l.Info("PostgreSQL connection verified")
	default:
		store := rateadapter.NewMemoryStore(rateadapter.Dataset{})
		if cfg.RateStore.FixturePath != "" {
			loaded, err := rateadapter.LoadMemoryStore(cfg.RateStore.FixturePath)
			if err != nil {
				return nil, err
			}
			store = loaded
		} else {
			l.Warn("RATE_FIXTURE_PATH is empty, serving an empty rate store")
		}
		repos.contracts, repos.zones, repos.performance = store, store, store
	}

	if cfg.Performance.Source == config.PerformanceFromHTTP {
		repos.performance = rateadapter.NewHTTPPerformanceRepository(
			cfg.Performance.URL,
			httpclient.NewClient(cfg.Engine.QuoteTimeout()),
		)
	}

	if cfg.Cache.RedisURL != "" {
		redis, err := cache.NewRedisAdapter(cfg.Cache.RedisURL, "rates:")
		if err != nil {
			repos.close()
			return nil, err
		}
		if err := redis.Ping(ctx); err != nil {
			// Reads fall through to the store while Redis is down.
			l.Warn("Redis ping failed, continuing with a cold cache", zap.Error(err))
		}
		closers = append(closers, func() { _ = redis.Close() })

		ttl := cfg.Cache.TTL()
		repos.contracts = rateadapter.NewCachedRateContractRepository(repos.contracts, redis, ttl)
		repos.zones = rateadapter.NewCachedZoneMappingRepository(repos.zones, redis, ttl)
		repos.performance = rateadapter.NewCachedPerformanceRepository(repos.performance, redis, ttl)
		l.Info("Redis rate cache enabled", zap.Duration("ttl", ttl))
	}

	return repos, nil
}
