package di

import (
    "fmt"

    "QuantDesk/internal/domain/repository"
    "QuantDesk/internal/handler/api"
    icache "QuantDesk/internal/service/cache"
    "QuantDesk/internal/service/marketdata"
    "QuantDesk/internal/service/strategy"
    "QuantDesk/internal/usecase"
    pkgcache "QuantDesk/pkg/cache"
    "QuantDesk/pkg/config"
    xhttp "QuantDesk/pkg/http"
    applogger "QuantDesk/pkg/logger"
    "QuantDesk/pkg/metrics"
    pkgqueue "QuantDesk/pkg/queue"
    "QuantDesk/pkg/server"

    "github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	l, err := applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSnapshotCache creates the catalog snapshot cache: layered
// memory+Redis when Redis is enabled, in-process memory otherwise.
func ProvideSnapshotCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(pkgcache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize)), nil
	}

	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc, pkgcache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize)), nil
}

// ProvideResponseCache creates the short-lived handler response cache.
func ProvideResponseCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     fmt.Sprintf("%s:%d", cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideMarketData creates the upstream market data client.
func ProvideMarketData(cfg *config.Config, logger *applogger.Logger, m repository.Metrics) repository.MarketData {
	return marketdata.New(
		cfg.MarketData.BaseURL,
		cfg.MarketData.APIToken,
		cfg.MarketData.Timeout,
		marketdata.WithRateLimit(cfg.MarketData.RequestsPerSec, cfg.MarketData.Burst),
		marketdata.WithExchanges(cfg.MarketData.FutureExchange, cfg.MarketData.OptionExchange),
		marketdata.WithLogger(logger),
		marketdata.WithMetrics(m),
	)
}

// ProvideCatalog creates the catalog service.
func ProvideCatalog(source repository.MarketData, cache pkgcache.Service, cfg *config.Config, logger *applogger.Logger) *usecase.Catalog {
	return usecase.NewCatalog(source, cache, cfg.MarketData.SnapshotTTL, logger)
}

// ProvideExplorerSessions creates the explorer session manager.
func ProvideExplorerSessions(catalog *usecase.Catalog, cfg *config.Config, logger *applogger.Logger) *usecase.ExplorerSessions {
	return usecase.NewExplorerSessions(catalog, cfg.Explorer.SessionTTL, cfg.Explorer.DefaultPageSize, logger)
}

// ProvideTokenStore creates the strategy bearer token store.
func ProvideTokenStore(cfg *config.Config) repository.TokenStore {
	return strategy.NewFileTokenStore(cfg.Strategy.TokenFile)
}

// ProvideStrategyRunner creates the strategy service client.
func ProvideStrategyRunner(cfg *config.Config, tokens repository.TokenStore, logger *applogger.Logger, m repository.Metrics) repository.StrategyRunner {
	return strategy.New(
		cfg.Strategy.BaseURL,
		cfg.Strategy.Timeout,
		tokens,
		strategy.WithLogger(logger),
		strategy.WithMetrics(m),
	)
}

// ProvideOrchestrator creates the analysis orchestrator.
func ProvideOrchestrator(runner repository.StrategyRunner, cfg *config.Config, logger *applogger.Logger) *usecase.Orchestrator {
	return usecase.NewOrchestrator(runner, cfg.Strategy.ModelName, cfg.Strategy.ModelProvider, logger)
}

// ProvideRouter assembles the API handlers.
func ProvideRouter(
	logger *applogger.Logger,
	catalog *usecase.Catalog,
	sessions *usecase.ExplorerSessions,
	orch *usecase.Orchestrator,
	respCache icache.BytesCache,
) xhttp.Handler {
	ch := api.NewCatalogHandler(logger, catalog)
	ch.SetCache(respCache)
	eh := api.NewExplorerHandler(logger, sessions)
	ah := api.NewAnalysisHandler(logger, orch)
	return api.NewRouter(ch, eh, ah)
}

// ProvideQueue creates the Redis refresh queue, or nil when Redis is
// disabled.
func ProvideQueue(cfg *config.Config, logger *applogger.Logger) *pkgqueue.RedisQueue {
	if !cfg.Cache.Redis.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	return pkgqueue.NewRedisQueue(logger, &pkgqueue.QueueConfig{
		Workers:   2,
		QueueSize: 64,
	}, client, pkgqueue.ModeProducerConsumer)
}

// ProvideRefreshJob creates the snapshot refresh job.
func ProvideRefreshJob(catalog *usecase.Catalog, logger *applogger.Logger) *usecase.CatalogRefreshJob {
	return usecase.NewCatalogRefreshJob(catalog, logger)
}

// ProvideRefresher creates the periodic refresher.
func ProvideRefresher(job *usecase.CatalogRefreshJob, q *pkgqueue.RedisQueue, cfg *config.Config, logger *applogger.Logger) *usecase.CatalogRefresher {
	var svc pkgqueue.QueueService
	if q != nil {
		svc = q
	}
	return usecase.NewCatalogRefresher(job, svc, cfg.MarketData.RefreshInterval, logger)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	refresher *usecase.CatalogRefresher,
	job *usecase.CatalogRefreshJob,
	q *pkgqueue.RedisQueue,
) *server.App {
	return server.New(cfg, logger, handler, refresher, job, q)
}
