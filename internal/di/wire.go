//go:build wireinject
// +build wireinject

package di

import (
	"DataHub/internal/usecase"
	"DataHub/pkg/config"
	"DataHub/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideRedisCache,
		ProvideCache,

		// Storage
		ProvideBaseStore,
		ProvideStore,

		// Upstream
		ProvideMarketProvider,
		ProvideAdapterConfig,

		// Use cases
		usecase.NewQuoteSource,
		usecase.NewHistorySource,
		usecase.NewFundamentalsSource,
		usecase.NewResearchSource,
		usecase.NewResolver,
		usecase.NewInventoryService,
		ProvideStockPage,
		ProvideMarketOverview,
		ProvideHomepage,

		// Background work
		ProvideQuoteCollector,
		ProvideIngestHandler,
		ProvideRefreshJob,
		ProvideRefreshQueue,
		ProvideRefreshScheduler,

		// HTTP
		ProvideRateLimiter,
		ProvideHandlers,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
