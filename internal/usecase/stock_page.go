package usecase

import (
	"context"
	"time"

	"DataHub/internal/domain/models"

	"golang.org/x/sync/errgroup"
)

// StockPageService assembles the stock detail page. It is all-or-nothing.
type StockPageService struct {
	fundamentals *FundamentalsSource
	quotes       *QuoteSource
	history      *HistorySource
	research     *ResearchSource
	timeout      time.Duration
}

func NewStockPageService(f *FundamentalsSource, q *QuoteSource, h *HistorySource, r *ResearchSource, timeout time.Duration) *StockPageService {
	return &StockPageService{fundamentals: f, quotes: q, history: h, research: r, timeout: timeout}
}

// Get fetches the four parts concurrently; the first failure cancels the rest and is returned.
func (s *StockPageService) Get(ctx context.Context, ticker string) (*models.StockPage, error) {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	page := &models.StockPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.Financials, err = s.fundamentals.Get(gctx, t)
		return err
	})
	g.Go(func() (err error) {
		page.Quote, err = s.quotes.Get(gctx, t)
		return err
	})
	g.Go(func() (err error) {
		page.Chart, err = s.history.Get(gctx, t)
		return err
	})
	g.Go(func() (err error) {
		page.Research, err = s.research.Get(gctx, t)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}
