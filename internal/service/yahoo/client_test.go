package yahoo

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	xhttp "DataHub/pkg/http"
	"DataHub/pkg/http/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(t *testing.T) (*Client, *mocks.MockHTTPDoer) {
	t.Helper()
	doer := mocks.NewMockHTTPDoer(gomock.NewController(t))
	hc := xhttp.NewClient(xhttp.WithDoer(doer), xhttp.WithBaseURL("https://yahoo.test"))
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return New(hc, WithClock(func() time.Time { return now })), doer
}

func TestQuote(t *testing.T) {
	c, doer := newTestClient(t)
	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/v7/finance/quote", req.URL.Path)
		assert.Equal(t, "EDP.LS", req.URL.Query().Get("symbols"))
		return respond(200, `{"quoteResponse":{"result":[{"symbol":"EDP.LS","shortName":"EDP","currency":"EUR","regularMarketPrice":4.1,"regularMarketChange":{"raw":0.05,"fmt":"0.05"}}],"error":null}}`), nil
	})

	q, err := c.Quote(context.Background(), "EDP.LS")
	require.NoError(t, err)
	assert.Equal(t, "EUR", q.Currency)
	assert.Equal(t, 4.1, *q.RegularMarketPrice.Ptr())
	assert.Equal(t, 0.05, *q.RegularMarketChange.Ptr())
	assert.Nil(t, q.MarketCap.Ptr())
}

func TestQuoteMissingSymbol(t *testing.T) {
	c, doer := newTestClient(t)
	doer.EXPECT().Do(gomock.Any()).Return(respond(200, `{"quoteResponse":{"result":[],"error":null}}`), nil)

	_, err := c.Quote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestQuotesEmptyInputSkipsRequest(t *testing.T) {
	c, _ := newTestClient(t)
	out, err := c.Quotes(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestChart(t *testing.T) {
	c, doer := newTestClient(t)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/v8/finance/chart/GALP.LS", req.URL.Path)
		assert.Equal(t, "1704067200", req.URL.Query().Get("period1"))
		assert.Equal(t, "1709251200", req.URL.Query().Get("period2"))
		assert.Equal(t, "1d", req.URL.Query().Get("interval"))
		return respond(200, `{"chart":{"result":[{"timestamp":[1704153600,1704240000],
			"indicators":{"quote":[{"close":[15.2,null]}],"adjclose":[{"adjclose":[15.0,null]}]}}],"error":null}}`), nil
	})

	bars, err := c.Chart(context.Background(), "GALP.LS", from)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, "2024-01-02", bars[0].Date.Format("2006-01-02"))
	assert.Equal(t, 15.2, *bars[0].Close)
	assert.Equal(t, 15.0, *bars[0].AdjClose)
	assert.Nil(t, bars[1].Close)
	assert.Nil(t, bars[1].AdjClose)
}

func TestChartProviderError(t *testing.T) {
	c, doer := newTestClient(t)
	doer.EXPECT().Do(gomock.Any()).Return(respond(200, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`), nil)

	_, err := c.Chart(context.Background(), "XX", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestQuoteSummary(t *testing.T) {
	c, doer := newTestClient(t)
	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/v10/finance/quoteSummary/AAPL", req.URL.Path)
		assert.Equal(t, "assetProfile,summaryDetail", req.URL.Query().Get("modules"))
		return respond(200, `{"quoteSummary":{"result":[{"assetProfile":{"website":"https://www.apple.com"},"summaryDetail":{"beta":{"raw":1.2,"fmt":"1.20"}}}],"error":null}}`), nil
	})

	s, err := c.QuoteSummary(context.Background(), "AAPL", []string{"assetProfile", "summaryDetail"})
	require.NoError(t, err)
	require.NotNil(t, s.AssetProfile)
	assert.Equal(t, "https://www.apple.com", s.AssetProfile.Website)
	assert.Equal(t, 1.2, *s.SummaryDetail.Beta.Ptr())
	assert.Nil(t, s.FinancialData)
}

func TestScreener(t *testing.T) {
	c, doer := newTestClient(t)
	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "day_gainers", req.URL.Query().Get("scrIds"))
		assert.Equal(t, "5", req.URL.Query().Get("count"))
		assert.Equal(t, "US", req.URL.Query().Get("region"))
		return respond(200, `{"finance":{"result":[{"quotes":[{"symbol":"NVDA","regularMarketChangePercent":7.5}]}],"error":null}}`), nil
	})

	quotes, err := c.Screener(context.Background(), "day_gainers", 5, "US")
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "NVDA", quotes[0].Symbol)
}

func TestUpstreamStatusError(t *testing.T) {
	c, doer := newTestClient(t)
	doer.EXPECT().Do(gomock.Any()).Return(respond(503, "unavailable"), nil)

	_, err := c.Screener(context.Background(), "most_actives", 5, "PT")
	require.Error(t, err)
	assert.True(t, xhttp.IsStatus(err, 503))
}
