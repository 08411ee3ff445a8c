package usecase

import (
	"context"
	"time"

	"DataHub/internal/domain/datamap"
	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	drepo "DataHub/internal/domain/repository"
	applogger "DataHub/pkg/logger"
	"DataHub/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	screenerGainers = "day_gainers"
	screenerActives = "most_actives"
	regionPortugal  = "PT"
)

// MarketOverview builds the index page from provider screeners and the tracked Portuguese tickers.
type MarketOverview struct {
	provider drepo.MarketProvider
	tickers  []string
	count    int
	metrics  drepo.Metrics
	l        *applogger.Logger
}

func NewMarketOverview(p drepo.MarketProvider, tickers []string, screenerCount int, m drepo.Metrics, l *applogger.Logger) *MarketOverview {
	if m == nil {
		m = metrics.Nop{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	if screenerCount <= 0 {
		screenerCount = 6
	}
	return &MarketOverview{provider: p, tickers: tickers, count: screenerCount, metrics: m, l: l}
}

// IndexPage returns US gainers, trending PT stocks and the tracked PT stocks.
// Screener failures degrade to empty lists; the PT quotes must succeed.
func (s *MarketOverview) IndexPage(ctx context.Context) (*models.IndexPage, error) {
	var gainers, trending, pt []models.ProviderQuote

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		gainers = s.screener(gctx, screenerGainers, "")
		return nil
	})
	g.Go(func() error {
		trending = s.screener(gctx, screenerActives, regionPortugal)
		return nil
	})
	g.Go(func() error {
		q, err := s.provider.Quotes(gctx, s.tickers)
		if err != nil {
			s.metrics.RecordUpstreamError("quotes")
			return err
		}
		pt = q
		return nil
	})
	err := g.Wait()
	s.metrics.RecordLatency("index_page", time.Since(start).Seconds())
	if err != nil {
		return nil, errs.Upstream("quotes", "portuguese_stocks", err)
	}

	page := &models.IndexPage{
		TopGainers:       movers(gainers),
		TrendingPortugal: movers(trending),
		PortugueseStocks: make([]models.PortugueseStock, 0, len(pt)),
	}
	for _, q := range pt {
		page.PortugueseStocks = append(page.PortugueseStocks, models.PortugueseStock{
			Ticker:        q.Symbol,
			Name:          q.DisplayName(false),
			Price:         q.RegularMarketPrice.Ptr(),
			ChangePercent: q.RegularMarketChangePercent.Ptr(),
			LogoURL:       datamap.LogoURL(q.Symbol),
		})
	}
	if len(page.TrendingPortugal) == 0 && len(pt) > 0 {
		s.l.Info("portuguese trending list empty, falling back to tracked stocks")
		page.TrendingPortugal = movers(pt)
	}
	return page, nil
}

func (s *MarketOverview) screener(ctx context.Context, id, region string) []models.ProviderQuote {
	quotes, err := s.provider.Screener(ctx, id, s.count, region)
	if err != nil {
		s.metrics.RecordUpstreamError("screener")
		s.l.Error("screener failed",
			applogger.String("screener", id),
			applogger.String("region", region),
			applogger.Error(err),
		)
		return nil
	}
	return quotes
}

func movers(quotes []models.ProviderQuote) []models.MoverData {
	out := make([]models.MoverData, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, models.MoverData{
			Ticker:        q.Symbol,
			Name:          q.DisplayName(false),
			Price:         q.RegularMarketPrice.Ptr(),
			Change:        q.RegularMarketChange.Ptr(),
			ChangePercent: q.RegularMarketChangePercent.Ptr(),
		})
	}
	return out
}
