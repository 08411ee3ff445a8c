package usecase

import (
	"context"
	"time"

	"DataHub/internal/domain/models"

	"golang.org/x/sync/errgroup"
)

var fundamentalsModules = []string{
	"assetProfile",
	"summaryDetail",
	"defaultKeyStatistics",
	"financialData",
	"balanceSheetHistoryQuarterly",
	"earningsTrend",
}

// FundamentalsSource serves the flattened company fundamentals, cached for the fundamentals window.
type FundamentalsSource struct {
	*adapter
	window time.Duration
}

func NewFundamentalsSource(cfg AdapterConfig) *FundamentalsSource {
	return &FundamentalsSource{adapter: newAdapter("fundamentals", cfg), window: cfg.Windows.Fundamentals}
}

func (s *FundamentalsSource) Get(ctx context.Context, ticker string) (*models.Financials, error) {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	key := FundamentalsKey(t)
	return loadRecord(ctx, s.adapter, key, s.window, func(ctx context.Context) (*models.Financials, *models.IndicatorRecord, error) {
		var (
			pq  *models.ProviderQuote
			sum *models.QuoteSummary
		)
		start := time.Now()
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			q, err := s.provider.Quote(gctx, t)
			if err != nil {
				return s.upstream("quote", t, err)
			}
			pq = q
			return nil
		})
		g.Go(func() error {
			sm, err := s.provider.QuoteSummary(gctx, t, fundamentalsModules)
			if err != nil {
				return s.upstream("quote_summary", t, err)
			}
			sum = sm
			return nil
		})
		err := g.Wait()
		s.observe("upstream_fundamentals", start)
		if err != nil {
			return nil, nil, err
		}

		now := s.now()
		f := buildFinancials(t, pq, sum)
		rec, err := newRecord(key, "financials", valueOr(f.MarketCap, 0), now, now, f)
		if err != nil {
			return nil, nil, err
		}
		return f, rec, nil
	})
}

func buildFinancials(ticker string, q *models.ProviderQuote, sum *models.QuoteSummary) *models.Financials {
	f := &models.Financials{
		Ticker:      q.Symbol,
		Name:        ticker,
		Exchange:    q.Exchange,
		MarketCap:   q.MarketCap.Ptr(),
		TrailingEps: q.EpsTrailingTwelveMonths.Ptr(),
	}
	if f.Ticker == "" {
		f.Ticker = ticker
	}
	if q.LongName != "" {
		f.Name = q.LongName
	} else if q.ShortName != "" {
		f.Name = q.ShortName
	}
	if sum == nil {
		return f
	}

	if p := sum.AssetProfile; p != nil {
		f.Website = p.Website
	}
	if d := sum.SummaryDetail; d != nil {
		f.Beta = d.Beta.Ptr()
		f.TrailingPE = d.TrailingPE.Ptr()
		f.DividendYield = d.DividendYield.Ptr()
		f.FiftyTwoWeekLow = d.FiftyTwoWeekLow.Ptr()
		f.FiftyTwoWeekHigh = d.FiftyTwoWeekHigh.Ptr()
		f.AverageVolume = d.AverageVolume.Ptr()
	}
	if k := sum.DefaultKeyStatistics; k != nil {
		f.PriceToSales = k.PriceToSalesTrailing12Months.Ptr()
		f.PriceToBook = k.PriceToBook.Ptr()
		f.EnterpriseValue = k.EnterpriseValue.Ptr()
		f.EnterpriseToRevenue = k.EnterpriseToRevenue.Ptr()
		f.EnterpriseToEbitda = k.EnterpriseToEbitda.Ptr()
		f.NetIncomeToCommon = k.NetIncomeToCommon.Ptr()
		f.ProfitMargins = k.ProfitMargins.Ptr()
	}
	if fd := sum.FinancialData; fd != nil {
		f.CurrentPrice = fd.CurrentPrice.Ptr()
		f.TotalRevenue = fd.TotalRevenue.Ptr()
		f.RevenuePerShare = fd.RevenuePerShare.Ptr()
		f.GrossProfit = fd.GrossProfits.Ptr()
		f.Ebitda = fd.Ebitda.Ptr()
		f.OperatingMargins = fd.OperatingMargins.Ptr()
		f.ReturnOnAssets = fd.ReturnOnAssets.Ptr()
		f.ReturnOnEquity = fd.ReturnOnEquity.Ptr()
	}
	if et := sum.EarningsTrend; et != nil {
		for _, tr := range et.Trend {
			if tr.Period == "+1y" && tr.RevenueEstimate != nil {
				f.RevenueGrowth = tr.RevenueEstimate.Growth.Ptr()
				break
			}
		}
	}
	if bs := sum.BalanceSheetHistoryQuarterly; bs != nil && len(bs.BalanceSheetStatements) > 0 {
		st := bs.BalanceSheetStatements[0]
		f.TotalDebt = st.TotalLiab.Ptr()
		f.DebtToEquity = ratio(f.TotalDebt, st.TotalStockholderEquity.Ptr())
		f.CurrentRatio = ratio(st.TotalCurrentAssets.Ptr(), st.TotalCurrentLiabilities.Ptr())
	}
	return f
}

// ratio is num/den when both are present and den is non-zero.
func ratio(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	r := *num / *den
	return &r
}
