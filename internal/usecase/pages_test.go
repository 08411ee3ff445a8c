package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var ptTickers = []string{"EDP.LS", "GALP.LS"}

func newStockPage(cfg AdapterConfig) *StockPageService {
	return NewStockPageService(
		NewFundamentalsSource(cfg),
		NewQuoteSource(cfg),
		NewHistorySource(cfg),
		NewResearchSource(cfg),
		time.Second,
	)
}

func TestStockPageService_Get(t *testing.T) {
	cfg, p, _ := newAdapterConfig(t)

	p.EXPECT().Quote(gomock.Any(), "GALP.LS").Return(&models.ProviderQuote{
		Symbol:             "GALP.LS",
		LongName:           "Galp Energia",
		Currency:           "EUR",
		RegularMarketPrice: rv(15.2),
	}, nil).Times(2)
	p.EXPECT().QuoteSummary(gomock.Any(), "GALP.LS", fundamentalsModules).Return(sampleSummary(), nil)
	p.EXPECT().QuoteSummary(gomock.Any(), "GALP.LS", researchModules).Return(&models.QuoteSummary{}, nil)
	p.EXPECT().Chart(gomock.Any(), "GALP.LS", historyStart).Return([]models.PriceBar{
		{Date: day("2026-03-09"), AdjClose: f(15.0)},
	}, nil)

	page, err := newStockPage(cfg).Get(context.Background(), "galp.ls")
	require.NoError(t, err)
	assert.Equal(t, "Galp Energia", page.Financials.Name)
	assert.Equal(t, 15.2, page.Quote.LatestValue)
	assert.Equal(t, "EUR", page.Quote.Currency)
	require.Len(t, page.Chart, 1)
	assert.Equal(t, "2026-03-09", page.Chart[0].Date)
	assert.Equal(t, "USD", page.Research.PriceTarget.Currency)
}

func TestStockPageService_AnyPartFailing(t *testing.T) {
	cfg, p, _ := newAdapterConfig(t)

	p.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(&models.ProviderQuote{Symbol: "GALP.LS"}, nil).AnyTimes()
	p.EXPECT().QuoteSummary(gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.QuoteSummary{}, nil).AnyTimes()
	p.EXPECT().Chart(gomock.Any(), "GALP.LS", gomock.Any()).Return(nil, errors.New("429"))

	page, err := newStockPage(cfg).Get(context.Background(), "GALP.LS")
	assert.Nil(t, page)
	assert.True(t, errs.IsUpstream(err))
}

func TestStockPageService_InvalidTicker(t *testing.T) {
	cfg, _, _ := newAdapterConfig(t)
	_, err := newStockPage(cfg).Get(context.Background(), "undefined")
	assert.True(t, errs.IsValidation(err))
}

func TestMarketOverview_IndexPage(t *testing.T) {
	p := newProvider(t)

	p.EXPECT().Screener(gomock.Any(), "day_gainers", 6, "").Return([]models.ProviderQuote{
		{Symbol: "NVDA", ShortName: "NVIDIA", RegularMarketPrice: rv(900), RegularMarketChange: rv(40)},
	}, nil)
	p.EXPECT().Screener(gomock.Any(), "most_actives", 6, "PT").Return([]models.ProviderQuote{
		{Symbol: "BCP.LS", ShortName: "BCP"},
	}, nil)
	p.EXPECT().Quotes(gomock.Any(), ptTickers).Return([]models.ProviderQuote{
		{Symbol: "EDP.LS", ShortName: "EDP", LongName: "EDP - Energias de Portugal", RegularMarketPrice: rv(3.9)},
		{Symbol: "GALP.LS", LongName: "Galp Energia"},
	}, nil)

	page, err := NewMarketOverview(p, ptTickers, 0, nil, nil).IndexPage(context.Background())
	require.NoError(t, err)

	require.Len(t, page.TopGainers, 1)
	assert.Equal(t, 40.0, *page.TopGainers[0].Change)
	require.Len(t, page.TrendingPortugal, 1)
	assert.Equal(t, "BCP.LS", page.TrendingPortugal[0].Ticker)

	require.Len(t, page.PortugueseStocks, 2)
	assert.Equal(t, "EDP", page.PortugueseStocks[0].Name)
	assert.Equal(t, "https://logo.clearbit.com/edp.com", page.PortugueseStocks[0].LogoURL)
	assert.Equal(t, "Galp Energia", page.PortugueseStocks[1].Name)
	assert.Nil(t, page.PortugueseStocks[1].Price)
}

func TestMarketOverview_ScreenerFailuresDegrade(t *testing.T) {
	p := newProvider(t)

	p.EXPECT().Screener(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("unavailable")).Times(2)
	p.EXPECT().Quotes(gomock.Any(), ptTickers).Return([]models.ProviderQuote{{Symbol: "EDP.LS"}}, nil)

	page, err := NewMarketOverview(p, ptTickers, 6, nil, nil).IndexPage(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, page.TopGainers)
	assert.Empty(t, page.TopGainers)
	require.Len(t, page.TrendingPortugal, 1)
	assert.Equal(t, "EDP.LS", page.TrendingPortugal[0].Ticker)
}

func TestMarketOverview_QuotesFailing(t *testing.T) {
	p := newProvider(t)

	p.EXPECT().Screener(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	p.EXPECT().Quotes(gomock.Any(), ptTickers).Return(nil, errors.New("timeout"))

	_, err := NewMarketOverview(p, ptTickers, 6, nil, nil).IndexPage(context.Background())
	assert.True(t, errs.IsUpstream(err))
}

func TestHomepageService_Get(t *testing.T) {
	cfg, p, _ := newAdapterConfig(t)
	sparkFrom := testNow.AddDate(0, 0, -30)

	p.EXPECT().Screener(gomock.Any(), "day_gainers", 6, "").Return([]models.ProviderQuote{{Symbol: "NVDA"}}, nil)
	p.EXPECT().Screener(gomock.Any(), "most_actives", 6, "PT").Return(nil, nil)
	p.EXPECT().Quotes(gomock.Any(), ptTickers).Return([]models.ProviderQuote{{Symbol: "EDP.LS"}, {Symbol: "GALP.LS"}}, nil)

	p.EXPECT().Chart(gomock.Any(), "EDP.LS", sparkFrom).Return([]models.PriceBar{
		{Close: f(3.8)}, {Close: nil}, {Close: f(0)}, {Close: f(3.9)},
	}, nil)
	p.EXPECT().Chart(gomock.Any(), "GALP.LS", sparkFrom).Return(nil, errors.New("chart down"))
	p.EXPECT().Chart(gomock.Any(), "NVDA", sparkFrom).Return([]models.PriceBar{{Close: f(900)}}, nil)

	p.EXPECT().Quote(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sym string) (*models.ProviderQuote, error) {
		return &models.ProviderQuote{Symbol: sym}, nil
	}).AnyTimes()
	p.EXPECT().QuoteSummary(gomock.Any(), "EDP.LS", fundamentalsModules).Return(&models.QuoteSummary{}, nil)
	p.EXPECT().QuoteSummary(gomock.Any(), "GALP.LS", fundamentalsModules).Return(&models.QuoteSummary{
		AssetProfile: &models.AssetProfile{Website: "https://www.galp.com/corp"},
	}, nil)
	p.EXPECT().QuoteSummary(gomock.Any(), "NVDA", fundamentalsModules).Return(nil, errors.New("no fundamentals"))

	svc := NewHomepageService(
		NewMarketOverview(p, ptTickers, 6, nil, nil),
		NewFundamentalsSource(cfg),
		p,
		WithHomepageClock(func() time.Time { return testNow }),
	)
	page, err := svc.Get(context.Background())
	require.NoError(t, err)

	require.Len(t, page.PortugueseStocks, 2)
	edp, galp := page.PortugueseStocks[0], page.PortugueseStocks[1]
	assert.Equal(t, []float64{3.8, 3.9}, edp.Sparkline)
	assert.Equal(t, "https://logo.clearbit.com/edp.com", edp.LogoURL)
	assert.Equal(t, []float64{}, galp.Sparkline)
	assert.Equal(t, "https://logo.clearbit.com/www.galp.com", galp.LogoURL)

	require.Len(t, page.TopGainers, 1)
	assert.Equal(t, []float64{900}, page.TopGainers[0].Sparkline)
	assert.Equal(t, "", page.TopGainers[0].LogoURL)
}

func TestHomepageService_IndexFailureFails(t *testing.T) {
	p := newProvider(t)
	p.EXPECT().Screener(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	p.EXPECT().Quotes(gomock.Any(), gomock.Any()).Return(nil, errors.New("down"))

	svc := NewHomepageService(NewMarketOverview(p, ptTickers, 6, nil, nil), nil, p)
	_, err := svc.Get(context.Background())
	assert.Error(t, err)
}
