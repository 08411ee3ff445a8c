package repository

import (
	"context"
	"time"

	"DataHub/internal/domain/models"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks -source=interfaces.go

// Store persists indicator records and dated series points. Every I/O failure is returned as an
// errs.CacheIOError.
type Store interface {
	// GetIndicator returns (nil, nil) when key has no record.
	GetIndicator(ctx context.Context, key string) (*models.IndicatorRecord, error)
	PutIndicator(ctx context.Context, rec *models.IndicatorRecord) error
	// GetSeries returns points ascending by date. A positive q.Limit keeps the earliest rows.
	GetSeries(ctx context.Context, key string, q models.SeriesQuery) ([]models.SeriesPoint, error)
	// PutSeriesPoints upserts all points or none.
	PutSeriesPoints(ctx context.Context, seriesKey string, points []models.SeriesPoint) error
	LatestSeriesDate(ctx context.Context, key string) (string, bool, error)
	ListIndicators(ctx context.Context) ([]models.IndicatorSummary, error)
	ListSeriesStats(ctx context.Context) ([]models.SeriesStats, error)
	Ping(ctx context.Context) error
	Close() error
}

// MarketProvider is the narrow contract over the quotes, fundamentals and research provider.
type MarketProvider interface {
	Quote(ctx context.Context, ticker string) (*models.ProviderQuote, error)
	Quotes(ctx context.Context, tickers []string) ([]models.ProviderQuote, error)
	Chart(ctx context.Context, ticker string, from time.Time) ([]models.PriceBar, error)
	QuoteSummary(ctx context.Context, ticker string, modules []string) (*models.QuoteSummary, error)
	Screener(ctx context.Context, id string, count int, region string) ([]models.ProviderQuote, error)
}

// MarketStream is a live trade feed.
type MarketStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Trade, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// EventPublisher announces committed store writes.
type EventPublisher interface {
	PublishChange(ctx context.Context, ev *models.ChangeEvent) error
	Close() error
}

type Metrics interface {
	RecordCacheHit(adapter string)
	RecordCacheMiss(adapter string)
	RecordUpstreamError(op string)
	RecordResolution(kind string)
	RecordIngested(kind string, n int)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
