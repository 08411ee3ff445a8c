package cache

import (
	"context"
	"errors"
	"time"

	"DataHub/internal/domain/models"
	drepo "DataHub/internal/domain/repository"
	pkgcache "DataHub/pkg/cache"
	applogger "DataHub/pkg/logger"
	"DataHub/pkg/util"
)

var _ drepo.MarketProvider = (*CachedProvider)(nil)

const adapterLabel = "provider"

// CachedProvider memoizes screener and chart responses for a short TTL.
// Quotes and summaries always go upstream; their freshness is owned by the store.
type CachedProvider struct {
	next    drepo.MarketProvider
	cache   pkgcache.Service
	ttl     time.Duration
	metrics drepo.Metrics
	l       *applogger.Logger
}

type Option func(*CachedProvider)

func WithTTL(ttl time.Duration) Option {
	return func(p *CachedProvider) { p.ttl = ttl }
}

func WithMetrics(m drepo.Metrics) Option {
	return func(p *CachedProvider) { p.metrics = m }
}

func WithLogger(l *applogger.Logger) Option {
	return func(p *CachedProvider) { p.l = l }
}

func NewCachedProvider(next drepo.MarketProvider, c pkgcache.Service, opts ...Option) *CachedProvider {
	p := &CachedProvider{next: next, cache: c, ttl: 5 * time.Minute, l: applogger.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *CachedProvider) Quote(ctx context.Context, ticker string) (*models.ProviderQuote, error) {
	return p.next.Quote(ctx, ticker)
}

func (p *CachedProvider) Quotes(ctx context.Context, tickers []string) ([]models.ProviderQuote, error) {
	return p.next.Quotes(ctx, tickers)
}

func (p *CachedProvider) QuoteSummary(ctx context.Context, ticker string, modules []string) (*models.QuoteSummary, error) {
	return p.next.QuoteSummary(ctx, ticker, modules)
}

// cachedBar mirrors models.PriceBar with exported JSON names.
type cachedBar struct {
	Date     time.Time `json:"d"`
	Close    *float64  `json:"c,omitempty"`
	AdjClose *float64  `json:"a,omitempty"`
}

// Chart is keyed by ticker and start day, so repeated sparkline requests within a day share an entry.
func (p *CachedProvider) Chart(ctx context.Context, ticker string, from time.Time) ([]models.PriceBar, error) {
	key := pkgcache.GenerateKeyWithParams("chart", ticker, util.FormatDate(from))

	var cached []cachedBar
	if p.lookup(ctx, key, &cached) {
		bars := make([]models.PriceBar, len(cached))
		for i, b := range cached {
			bars[i] = models.PriceBar{Date: b.Date, Close: b.Close, AdjClose: b.AdjClose}
		}
		return bars, nil
	}

	bars, err := p.next.Chart(ctx, ticker, from)
	if err != nil {
		return nil, err
	}
	if len(bars) > 0 {
		out := make([]cachedBar, len(bars))
		for i, b := range bars {
			out[i] = cachedBar{Date: b.Date, Close: b.Close, AdjClose: b.AdjClose}
		}
		p.store(ctx, key, out)
	}
	return bars, nil
}

func (p *CachedProvider) Screener(ctx context.Context, id string, count int, region string) ([]models.ProviderQuote, error) {
	key := pkgcache.GenerateKeyWithParams("screener", id, count, region)

	var cached []models.ProviderQuote
	if p.lookup(ctx, key, &cached) {
		return cached, nil
	}

	quotes, err := p.next.Screener(ctx, id, count, region)
	if err != nil {
		return nil, err
	}
	if len(quotes) > 0 {
		p.store(ctx, key, quotes)
	}
	return quotes, nil
}

func (p *CachedProvider) lookup(ctx context.Context, key string, dest interface{}) bool {
	err := p.cache.Get(ctx, key, dest)
	switch {
	case err == nil:
		if p.metrics != nil {
			p.metrics.RecordCacheHit(adapterLabel)
		}
		return true
	case !errors.Is(err, pkgcache.ErrCacheMiss):
		p.l.Warn("provider cache read failed", applogger.String("key", key), applogger.Error(err))
	}
	if p.metrics != nil {
		p.metrics.RecordCacheMiss(adapterLabel)
	}
	return false
}

func (p *CachedProvider) store(ctx context.Context, key string, v interface{}) {
	if err := p.cache.Set(ctx, key, v, p.ttl); err != nil {
		p.l.Warn("provider cache write failed", applogger.String("key", key), applogger.Error(err))
	}
}
