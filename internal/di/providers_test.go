package di

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	internalrepo "DataHub/internal/repository"
	"DataHub/internal/usecase"
	pkgcache "DataHub/pkg/cache"
	"DataHub/pkg/config"
	applogger "DataHub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Store.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	return cfg
}

func testBaseStore(t *testing.T, cfg *config.Config) BaseStore {
	t.Helper()
	store, cleanup, err := ProvideBaseStore(cfg, applogger.Nop())
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return store
}

func TestProvideCache(t *testing.T) {
	cfg := testConfig(t)

	cfg.Cache.Driver = "none"
	c, cleanup := ProvideCache(cfg, nil)
	cleanup()
	assert.Nil(t, c)

	cfg.Cache.Driver = "memory"
	c, cleanup = ProvideCache(cfg, nil)
	defer cleanup()
	assert.IsType(t, &pkgcache.MemoryCache{}, c)
}

func TestProvideBaseStore_SQLiteMigrates(t *testing.T) {
	cfg := testConfig(t)
	store := testBaseStore(t, cfg)

	require.NoError(t, store.Ping(context.Background()))
	inds, err := store.ListIndicators(context.Background())
	require.NoError(t, err)
	assert.Empty(t, inds)
}

func TestProvideBaseStore_RejectsUnknownDialect(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Driver = "oracle"

	_, _, err := ProvideBaseStore(cfg, applogger.Nop())
	assert.Error(t, err)
}

func TestProvideStore_Decorators(t *testing.T) {
	cfg := testConfig(t)
	base := testBaseStore(t, cfg)
	m := ProvideMetrics(ProvideRegistry())

	plain := ProvideStore(cfg, base, nil, nil, m, applogger.Nop())
	assert.Equal(t, base, plain)

	c, cleanup := ProvideCache(cfg, nil)
	defer cleanup()
	cached := ProvideStore(cfg, base, nil, c, m, applogger.Nop())
	assert.IsType(t, &internalrepo.CachedStore{}, cached)
}

func TestOptionalComponentsDisabledByDefault(t *testing.T) {
	cfg := testConfig(t)
	l := applogger.Nop()
	cfg.RateLimit.Enabled = false

	assert.Nil(t, ProvideRateLimiter(cfg))

	producer, cleanup, err := ProvideKafkaProducer(cfg, l)
	require.NoError(t, err)
	cleanup()
	assert.Nil(t, producer)

	consumer, err := ProvideKafkaConsumer(cfg, ProvideRegistry(), l)
	require.NoError(t, err)
	assert.Nil(t, consumer)

	rc, cleanup, err := ProvideRedisCache(cfg, l)
	require.NoError(t, err)
	cleanup()
	assert.Nil(t, rc)

	assert.Nil(t, ProvideQuoteCollector(cfg, nil, nil, l))
	assert.Nil(t, ProvideRefreshQueue(cfg, nil, nil, l))
	assert.Nil(t, ProvideRefreshScheduler(cfg, nil, l))
}

func TestHTTPServerRoutes(t *testing.T) {
	cfg := testConfig(t)
	l := applogger.Nop()
	reg := ProvideRegistry()
	m := ProvideMetrics(reg)
	store := ProvideStore(cfg, testBaseStore(t, cfg), nil, nil, m, l)
	provider := ProvideMarketProvider(cfg, nil, m, l)
	ac := ProvideAdapterConfig(cfg, store, provider, m, l)

	fundamentals := usecase.NewFundamentalsSource(ac)
	quotes := usecase.NewQuoteSource(ac)
	overview := ProvideMarketOverview(cfg, provider, m, l)
	handlers := ProvideHandlers(l,
		usecase.NewResolver(store, m, l),
		usecase.NewInventoryService(store),
		quotes,
		ProvideStockPage(cfg, fundamentals, quotes, usecase.NewHistorySource(ac), usecase.NewResearchSource(ac)),
		ProvideHomepage(cfg, overview, fundamentals, provider, l),
		overview,
		ProvideRateLimiter(cfg),
	)
	srv := ProvideHTTPServer(cfg, handlers, reg, l)

	tests := []struct {
		path string
		code int
	}{
		{"/api/health", http.StatusOK},
		{"/api/ready", http.StatusOK},
		{"/api/data/debug", http.StatusOK},
		{"/api/data/missing_key", http.StatusNotFound},
		{"/api/quote/ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFGHIJ", http.StatusBadRequest},
		{"/metrics", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}
