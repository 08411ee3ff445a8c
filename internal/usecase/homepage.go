package usecase

import (
	"context"
	"sync"
	"time"

	"DataHub/internal/domain/datamap"
	"DataHub/internal/domain/models"
	drepo "DataHub/internal/domain/repository"
	applogger "DataHub/pkg/logger"
)

// enrichment is what the homepage adds to each stock.
type enrichment struct {
	sparkline Result[[]float64]
	logo      Result[string]
}

// HomepageService decorates the index page stocks with sparklines and logos, best effort per item.
type HomepageService struct {
	overview      *MarketOverview
	fundamentals  *FundamentalsSource
	provider      drepo.MarketProvider
	sparklineDays int
	timeout       time.Duration
	now           Clock
	l             *applogger.Logger
}

type HomepageOption func(*HomepageService)

func WithSparklineDays(days int) HomepageOption {
	return func(s *HomepageService) {
		if days > 0 {
			s.sparklineDays = days
		}
	}
}

func WithHomepageTimeout(d time.Duration) HomepageOption {
	return func(s *HomepageService) { s.timeout = d }
}

func WithHomepageClock(c Clock) HomepageOption {
	return func(s *HomepageService) { s.now = c }
}

func WithHomepageLogger(l *applogger.Logger) HomepageOption {
	return func(s *HomepageService) { s.l = l }
}

func NewHomepageService(o *MarketOverview, f *FundamentalsSource, p drepo.MarketProvider, opts ...HomepageOption) *HomepageService {
	s := &HomepageService{
		overview:      o,
		fundamentals:  f,
		provider:      p,
		sparklineDays: 30,
		now:           time.Now,
		l:             applogger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get builds the homepage. Only a failure of the index page itself fails the call.
func (s *HomepageService) Get(ctx context.Context) (*models.Homepage, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	base, err := s.overview.IndexPage(ctx)
	if err != nil {
		return nil, err
	}

	tickers := make([]string, 0, len(base.PortugueseStocks)+len(base.TopGainers))
	for _, st := range base.PortugueseStocks {
		tickers = append(tickers, st.Ticker)
	}
	for _, m := range base.TopGainers {
		tickers = append(tickers, m.Ticker)
	}
	extra := collect(ctx, len(tickers), func(ctx context.Context, i int) (enrichment, error) {
		return s.enrich(ctx, tickers[i]), nil
	})

	page := &models.Homepage{
		PortugueseStocks: make([]models.HomepageStock, 0, len(base.PortugueseStocks)),
		TopGainers:       make([]models.HomepageStock, 0, len(base.TopGainers)),
	}
	for i, st := range base.PortugueseStocks {
		e := s.degrade(st.Ticker, extra[i].Value)
		logo := e.logo.Value
		if logo == "" {
			logo = st.LogoURL
		}
		page.PortugueseStocks = append(page.PortugueseStocks, models.HomepageStock{
			Ticker:        st.Ticker,
			Name:          st.Name,
			Price:         st.Price,
			ChangePercent: st.ChangePercent,
			LogoURL:       logo,
			Sparkline:     e.sparkline.Value,
		})
	}
	offset := len(base.PortugueseStocks)
	for i, m := range base.TopGainers {
		e := s.degrade(m.Ticker, extra[offset+i].Value)
		page.TopGainers = append(page.TopGainers, models.HomepageStock{
			Ticker:        m.Ticker,
			Name:          m.Name,
			Price:         m.Price,
			Change:        m.Change,
			ChangePercent: m.ChangePercent,
			LogoURL:       e.logo.Value,
			Sparkline:     e.sparkline.Value,
		})
	}
	return page, nil
}

func (s *HomepageService) enrich(ctx context.Context, ticker string) enrichment {
	var (
		e  enrichment
		wg sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		v, err := s.sparkline(ctx, ticker)
		e.sparkline = Result[[]float64]{Value: v, Err: err}
	}()
	go func() {
		defer wg.Done()
		v, err := s.logo(ctx, ticker)
		e.logo = Result[string]{Value: v, Err: err}
	}()
	wg.Wait()
	return e
}

// degrade logs failed enrichments once and replaces them with their fallbacks.
func (s *HomepageService) degrade(ticker string, e enrichment) enrichment {
	if !e.sparkline.OK() {
		s.l.Warn("sparkline unavailable", applogger.String("ticker", ticker), applogger.Error(e.sparkline.Err))
	}
	if !e.logo.OK() {
		s.l.Debug("logo unavailable", applogger.String("ticker", ticker), applogger.Error(e.logo.Err))
	}
	return enrichment{
		sparkline: Result[[]float64]{Value: e.sparkline.Or([]float64{})},
		logo:      Result[string]{Value: e.logo.Or("")},
	}
}

// sparkline returns the positive closes of the last sparklineDays days.
func (s *HomepageService) sparkline(ctx context.Context, ticker string) ([]float64, error) {
	from := s.now().AddDate(0, 0, -s.sparklineDays)
	bars, err := s.provider.Chart(ctx, ticker, from)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(bars))
	for _, b := range bars {
		if b.Close != nil && *b.Close > 0 {
			out = append(out, *b.Close)
		}
	}
	return out, nil
}

func (s *HomepageService) logo(ctx context.Context, ticker string) (string, error) {
	f, err := s.fundamentals.Get(ctx, ticker)
	if err != nil {
		return "", err
	}
	return datamap.LogoFromWebsite(f.Website), nil
}
