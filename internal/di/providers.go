package di

import (
	"context"
	"fmt"
	"time"

	"DataHub/internal/domain/repository"
	"DataHub/internal/handler/api"
	mid "DataHub/internal/middleware"
	internalrepo "DataHub/internal/repository"
	providercache "DataHub/internal/service/cache"
	"DataHub/internal/service/finnhub"
	"DataHub/internal/service/ratelimit"
	"DataHub/internal/service/yahoo"
	"DataHub/internal/usecase"
	pkgcache "DataHub/pkg/cache"
	pkgch "DataHub/pkg/clickhouse"
	"DataHub/pkg/config"
	xhttp "DataHub/pkg/http"
	"DataHub/pkg/http/middleware"
	pkgkafka "DataHub/pkg/kafka"
	applogger "DataHub/pkg/logger"
	"DataHub/pkg/metrics"
	"DataHub/pkg/queue"
	"DataHub/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

const storeInitTimeout = 15 * time.Second

// BaseStore is the undecorated database store.
type BaseStore interface {
	repository.Store
}

// ProvideLogger builds the service logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("service", cfg.ServiceName), applogger.String("env", cfg.Environment)), nil
}

// ProvideRegistry returns the registry behind /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
// The error-log collector publishes through it when enabled.
func ProvideKafkaProducer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithProducerLogger(l),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}

	if cfg.Logger.Collector.Enabled {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Logger.Collector.Interval,
			CountThreshold: cfg.Logger.Collector.Threshold,
			Topic:          cfg.Logger.Collector.Topic,
			Publisher:      producer,
			Source:         cfg.ServiceName,
		})
	}

	cleanup := func() {
		l.RemoveCollector()
		if err := producer.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	return producer, cleanup, nil
}

// ProvideRedisCache connects to Redis when the cache driver needs it.
func ProvideRedisCache(cfg *config.Config, l *applogger.Logger) (*pkgcache.RedisCache, func(), error) {
	if cfg.Cache.Driver != "redis" && cfg.Cache.Driver != "layered" {
		return nil, func() {}, nil
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.PoolSize/4, 30*time.Second),
		pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	cleanup := func() {
		if err := rc.Close(); err != nil {
			l.Warn("redis close error", applogger.Error(err))
		}
	}
	return rc, cleanup, nil
}

// ProvideCache selects the cache backend. It returns nil for driver "none".
func ProvideCache(cfg *config.Config, rc *pkgcache.RedisCache) (pkgcache.Service, func()) {
	switch cfg.Cache.Driver {
	case "memory":
		mc := pkgcache.NewMemoryCache(
			pkgcache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
			pkgcache.WithMemoryCleanup(cfg.Cache.MemoryCleanup),
		)
		return mc, func() { _ = mc.Close() }
	case "redis":
		return rc, func() {}
	case "layered":
		lc := pkgcache.NewLayeredCache(rc,
			pkgcache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
			pkgcache.WithLayeredMemoryTTL(cfg.Cache.TTL),
		)
		return lc, func() { _ = lc.Close() }
	default:
		return nil, func() {}
	}
}

// ProvideBaseStore opens the configured database once. Migrations run when auto_migrate is set.
func ProvideBaseStore(cfg *config.Config, l *applogger.Logger) (BaseStore, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeInitTimeout)
	defer cancel()

	var store BaseStore
	switch cfg.Store.Driver {
	case "clickhouse":
		client, err := pkgch.NewClient(ctx,
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithMaxConnections(10, 5),
			pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
			pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
			pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("clickhouse client: %w", err)
		}
		ch := internalrepo.NewCHStore(client)
		ch.SetLogger(l)
		if cfg.Store.AutoMigrate {
			if err := ch.InitSchema(ctx); err != nil {
				_ = ch.Close()
				return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
			}
		}
		store = ch
	default:
		sqlStore, err := internalrepo.OpenSQLStore(ctx, internalrepo.Dialect(cfg.Store.Driver), cfg.Store.DSN,
			internalrepo.WithMaxOpenConns(cfg.Store.MaxOpenConns),
			internalrepo.WithConnMaxLifetime(cfg.Store.ConnMaxLifetime),
			internalrepo.WithStoreLogger(l),
		)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Store.AutoMigrate {
			res, err := sqlStore.Migrate()
			if err != nil {
				_ = sqlStore.Close()
				return nil, nil, err
			}
			l.Info("store migrated", applogger.String("driver", cfg.Store.Driver), applogger.Any("result", res))
		}
		store = sqlStore
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			l.Warn("store close error", applogger.Error(err))
		}
	}
	return store, cleanup, nil
}

// ProvideStore decorates the base store: change events when Kafka is on, then the read cache.
func ProvideStore(cfg *config.Config, base BaseStore, producer *pkgkafka.Producer, c pkgcache.Service, m repository.Metrics, l *applogger.Logger) repository.Store {
	var store repository.Store = base
	if producer != nil {
		store = internalrepo.NewPublishingStore(store, internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topics.Changes), l)
	}
	if c != nil {
		store = internalrepo.NewCachedStore(store, c,
			internalrepo.WithCacheTTL(cfg.Cache.TTL),
			internalrepo.WithCacheMetrics(m),
			internalrepo.WithCacheLogger(l),
		)
	}
	return store
}

// ProvideMarketProvider builds the quotes provider client, cached when a cache is configured.
func ProvideMarketProvider(cfg *config.Config, c pkgcache.Service, m repository.Metrics, l *applogger.Logger) repository.MarketProvider {
	hc := xhttp.NewClient(
		xhttp.WithBaseURL(cfg.Provider.BaseURL),
		xhttp.WithTimeout(cfg.Provider.Timeout),
		xhttp.WithUserAgent(cfg.Provider.UserAgent),
	)
	var p repository.MarketProvider = yahoo.New(hc, yahoo.WithLogger(l))
	if c != nil {
		p = providercache.NewCachedProvider(p, c,
			providercache.WithTTL(cfg.Provider.CacheTTL),
			providercache.WithMetrics(m),
			providercache.WithLogger(l),
		)
	}
	return p
}

func ProvideAdapterConfig(cfg *config.Config, store repository.Store, p repository.MarketProvider, m repository.Metrics, l *applogger.Logger) usecase.AdapterConfig {
	return usecase.AdapterConfig{
		Store:    store,
		Provider: p,
		Metrics:  m,
		Logger:   l,
		Windows: usecase.Windows{
			Quote:        cfg.Freshness.Quote,
			History:      cfg.Freshness.History,
			Fundamentals: cfg.Freshness.Fundamentals,
			Research:     cfg.Freshness.Research,
		},
	}
}

func ProvideStockPage(cfg *config.Config, f *usecase.FundamentalsSource, q *usecase.QuoteSource, h *usecase.HistorySource, r *usecase.ResearchSource) *usecase.StockPageService {
	return usecase.NewStockPageService(f, q, h, r, cfg.Pages.StockPageTimeout)
}

func ProvideMarketOverview(cfg *config.Config, p repository.MarketProvider, m repository.Metrics, l *applogger.Logger) *usecase.MarketOverview {
	return usecase.NewMarketOverview(p, cfg.Pages.PortugueseTickers, cfg.Pages.ScreenerCount, m, l)
}

func ProvideHomepage(cfg *config.Config, o *usecase.MarketOverview, f *usecase.FundamentalsSource, p repository.MarketProvider, l *applogger.Logger) *usecase.HomepageService {
	return usecase.NewHomepageService(o, f, p,
		usecase.WithSparklineDays(cfg.Pages.SparklineDays),
		usecase.WithHomepageTimeout(cfg.Pages.HomepageTimeout),
		usecase.WithHomepageLogger(l),
	)
}

// ProvideRateLimiter returns the per-client limiter for upstream-backed routes, or nil when disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

// ProvideHandlers lists every route group.
func ProvideHandlers(
	l *applogger.Logger,
	resolver *usecase.Resolver,
	inventory *usecase.InventoryService,
	quotes *usecase.QuoteSource,
	stock *usecase.StockPageService,
	homepage *usecase.HomepageService,
	overview *usecase.MarketOverview,
	rl *ratelimit.Limiter,
) []xhttp.Handler {
	var limiter middleware.Limiter
	if rl != nil {
		limiter = rl
	}
	return []xhttp.Handler{
		api.NewSystemEchoHandler(l, inventory),
		api.NewDataEchoHandler(l, resolver, inventory),
		api.NewQuoteEchoHandler(l, quotes, limiter),
		api.NewPagesEchoHandler(l, stock, homepage, overview, limiter),
	}
}

func ProvideHTTPServer(cfg *config.Config, handlers []xhttp.Handler, reg *prometheus.Registry, l *applogger.Logger) *xhttp.Server {
	path := ""
	if cfg.Metrics.Enabled {
		path = cfg.Metrics.Path
	}
	return xhttp.NewServer(handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORSOrigins(cfg.Server.CORSOrigins),
		xhttp.WithMetrics(path, reg, reg),
		xhttp.WithServerLogger(l),
	)
}

// ProvideQuoteCollector wires the Finnhub stream into the quote records, or nil when disabled.
func ProvideQuoteCollector(cfg *config.Config, store repository.Store, m repository.Metrics, l *applogger.Logger) *usecase.QuoteCollector {
	if !cfg.Finnhub.Enabled {
		return nil
	}
	stream := finnhub.New(
		cfg.Finnhub.APIKey,
		cfg.Finnhub.WebSocketURL,
		cfg.Finnhub.Symbols,
		cfg.Finnhub.ReconnectDelay,
		cfg.Finnhub.PingInterval,
		finnhub.WithLogger(l),
	)
	writer := usecase.NewQuoteTradeWriter(store, m, time.Now)
	pipe := mid.NewRealtimePipeline(writer, m,
		mid.WithMaxRPS(cfg.Finnhub.MaxRPS),
		mid.WithPipelineLogger(l),
	)
	return usecase.NewQuoteCollector(stream, pipe, m, l)
}

// ProvideKafkaConsumer creates the ingestion consumer, or nil when disabled.
func ProvideKafkaConsumer(cfg *config.Config, reg *prometheus.Registry, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || !cfg.Kafka.Consumer.Enabled {
		return nil, nil
	}
	pkgkafka.SetConsumerMetricsRegisterer(reg)
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
		pkgkafka.WithConsumerLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.NewLoggingHook(l))
	return consumer, nil
}

func ProvideIngestHandler(cfg *config.Config, store repository.Store, m repository.Metrics, l *applogger.Logger) pkgkafka.MessageHandler {
	return usecase.NewSeriesIngestHandler(cfg.Kafka.Topics.Ingest, store, m, l, time.Now)
}

// ProvideRefreshJob builds the ticker refresh job. The cache doubles as the per-ticker lock.
func ProvideRefreshJob(
	cfg *config.Config,
	q *usecase.QuoteSource,
	h *usecase.HistorySource,
	f *usecase.FundamentalsSource,
	r *usecase.ResearchSource,
	c pkgcache.Service,
	l *applogger.Logger,
) *usecase.RefreshJob {
	var lock usecase.Locker
	if c != nil {
		lock = c
	}
	return usecase.NewRefreshJob(q, h, f, r, lock, cfg.Queue.LockTTL, l)
}

// ProvideRefreshQueue builds the Redis refresh queue, or nil when disabled.
func ProvideRefreshQueue(cfg *config.Config, rc *pkgcache.RedisCache, job *usecase.RefreshJob, l *applogger.Logger) *queue.RedisQueue {
	if !cfg.Queue.Enabled || rc == nil {
		return nil
	}
	q := queue.NewRedisQueue(l, &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		QueueSize:  cfg.Queue.QueueSize,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, rc.Client(), queue.ModeProducerConsumer)
	q.RegisterJob(job)
	return q
}

func ProvideRefreshScheduler(cfg *config.Config, q *queue.RedisQueue, l *applogger.Logger) *usecase.RefreshScheduler {
	if q == nil {
		return nil
	}
	return usecase.NewRefreshScheduler(q, cfg.Queue.RefreshTickers, cfg.Queue.RefreshInterval, l)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	collector *usecase.QuoteCollector,
	consumer *pkgkafka.Consumer,
	ingest pkgkafka.MessageHandler,
	workers *queue.RedisQueue,
	scheduler *usecase.RefreshScheduler,
	rl *ratelimit.Limiter,
) *server.App {
	return server.New(server.Components{
		HTTP:      srv,
		Collector: collector,
		Consumer:  consumer,
		Ingest:    ingest,
		Workers:   workers,
		Scheduler: scheduler,
		Limiter:   rl,
	}, l, cfg.Server.ShutdownTimeout)
}
