package usecase

import (
	"context"
	"time"

	"DataHub/internal/domain/models"
)

const defaultCurrency = "USD"

// QuoteSource serves the latest price snapshot of a ticker, cached for the quote window.
type QuoteSource struct {
	*adapter
	window time.Duration
}

func NewQuoteSource(cfg AdapterConfig) *QuoteSource {
	return &QuoteSource{adapter: newAdapter("quote", cfg), window: cfg.Windows.Quote}
}

// Get returns the quote for ticker. Provider failures are not masked by stale data.
func (s *QuoteSource) Get(ctx context.Context, ticker string) (*models.Quote, error) {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	key := QuoteKey(t)
	return loadRecord(ctx, s.adapter, key, s.window, func(ctx context.Context) (*models.Quote, *models.IndicatorRecord, error) {
		start := time.Now()
		pq, err := s.provider.Quote(ctx, t)
		s.observe("upstream_quote", start)
		if err != nil {
			return nil, nil, s.upstream("quote", t, err)
		}

		now := s.now()
		q := quoteFromProvider(pq, now)
		rec, err := newRecord(key, "quote", q.LatestValue, q.LatestDate, now, q)
		if err != nil {
			return nil, nil, err
		}
		return q, rec, nil
	})
}

func quoteFromProvider(pq *models.ProviderQuote, now time.Time) *models.Quote {
	q := &models.Quote{
		LatestValue:   valueOr(pq.RegularMarketPrice.Ptr(), 0),
		Change:        valueOr(pq.RegularMarketChange.Ptr(), 0),
		ChangePercent: valueOr(pq.RegularMarketChangePercent.Ptr(), 0),
		Currency:      pq.Currency,
		LatestDate:    now.UTC(),
	}
	if q.Currency == "" {
		q.Currency = defaultCurrency
	}
	if ts := pq.RegularMarketTime.Ptr(); ts != nil && *ts > 0 {
		q.LatestDate = time.Unix(int64(*ts), 0).UTC()
	}
	return q
}
