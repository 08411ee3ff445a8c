package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"DataHub/internal/domain/models"
	"DataHub/internal/domain/repository/mocks"
	pkgcache "DataHub/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func f(v float64) *float64 { return &v }

func newProvider(t *testing.T) (*CachedProvider, *mocks.MockMarketProvider) {
	t.Helper()
	next := mocks.NewMockMarketProvider(gomock.NewController(t))
	mc := pkgcache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	return NewCachedProvider(next, mc, WithTTL(time.Minute)), next
}

func TestChartServedFromCache(t *testing.T) {
	ctx := context.Background()
	p, next := newProvider(t)
	from := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	next.EXPECT().Chart(gomock.Any(), "EDP.LS", from).
		Return([]models.PriceBar{{Date: day, Close: f(4.1), AdjClose: f(4.0)}}, nil).Times(1)

	first, err := p.Chart(ctx, "EDP.LS", from)
	require.NoError(t, err)
	second, err := p.Chart(ctx, "EDP.LS", from)
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.True(t, day.Equal(second[0].Date))
	assert.Equal(t, *first[0].Close, *second[0].Close)
	assert.Equal(t, 4.0, *second[0].AdjClose)
}

func TestScreenerRoundTripKeepsRawValues(t *testing.T) {
	ctx := context.Background()
	p, next := newProvider(t)

	quotes := []models.ProviderQuote{{
		Symbol:                     "NVDA",
		ShortName:                  "NVIDIA",
		RegularMarketChangePercent: &models.RawValue{Value: 6.2, Valid: true},
	}}
	next.EXPECT().Screener(gomock.Any(), "day_gainers", 5, "US").Return(quotes, nil).Times(1)

	_, err := p.Screener(ctx, "day_gainers", 5, "US")
	require.NoError(t, err)
	got, err := p.Screener(ctx, "day_gainers", 5, "US")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "NVIDIA", got[0].ShortName)
	assert.Equal(t, 6.2, *got[0].RegularMarketChangePercent.Ptr())
	assert.Nil(t, got[0].MarketCap.Ptr())
}

func TestErrorsAndEmptyResultsAreNotCached(t *testing.T) {
	ctx := context.Background()
	p, next := newProvider(t)

	next.EXPECT().Screener(gomock.Any(), "most_actives", 5, "PT").Return(nil, errors.New("boom"))
	next.EXPECT().Screener(gomock.Any(), "most_actives", 5, "PT").Return(nil, nil)
	next.EXPECT().Screener(gomock.Any(), "most_actives", 5, "PT").Return([]models.ProviderQuote{{Symbol: "EDP.LS"}}, nil)

	_, err := p.Screener(ctx, "most_actives", 5, "PT")
	require.Error(t, err)
	out, err := p.Screener(ctx, "most_actives", 5, "PT")
	require.NoError(t, err)
	assert.Empty(t, out)
	out, err = p.Screener(ctx, "most_actives", 5, "PT")
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestQuotesPassThrough(t *testing.T) {
	p, next := newProvider(t)
	next.EXPECT().Quote(gomock.Any(), "AAPL").Return(&models.ProviderQuote{Symbol: "AAPL"}, nil).Times(2)

	for i := 0; i < 2; i++ {
		q, err := p.Quote(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, "AAPL", q.Symbol)
	}
}
