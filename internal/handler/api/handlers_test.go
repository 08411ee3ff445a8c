package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	xhttp "DataHub/pkg/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	known    map[string]models.Resolution
	err      error
	lastKeys []string
	lastQ    models.SeriesQuery
}

func (f *fakeResolver) Resolve(_ context.Context, key string, q models.SeriesQuery) (models.Resolution, error) {
	f.lastQ = q
	if f.err != nil {
		return models.Resolution{}, f.err
	}
	if res, ok := f.known[key]; ok {
		return res, nil
	}
	return models.Resolution{Kind: models.KindNotFound, Key: key}, nil
}

func (f *fakeResolver) ResolveBatch(ctx context.Context, keys []string, q models.SeriesQuery) (models.BatchResolution, error) {
	f.lastKeys = keys
	out := models.BatchResolution{Found: map[string]models.Resolution{}, NotFound: []string{}}
	for _, k := range keys {
		res, err := f.Resolve(ctx, k, q)
		if err != nil {
			return models.BatchResolution{}, err
		}
		if res.Found() {
			out.Found[k] = res
		} else {
			out.NotFound = append(out.NotFound, k)
		}
	}
	return out, nil
}

type fakeInventory struct{ inv *models.Inventory }

func (f fakeInventory) Inventory(context.Context) (*models.Inventory, error) { return f.inv, nil }

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

type quoteFunc func(ctx context.Context, ticker string) (*models.Quote, error)

func (f quoteFunc) Get(ctx context.Context, ticker string) (*models.Quote, error) { return f(ctx, ticker) }

func newEcho(t *testing.T, handlers ...xhttp.Handler) *echo.Echo {
	t.Helper()
	reg := prometheus.NewRegistry()
	return xhttp.NewServer(handlers, xhttp.WithMetrics("/metrics", reg, reg)).Echo()
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func seededResolver() *fakeResolver {
	return &fakeResolver{known: map[string]models.Resolution{
		"euribor_3m": {Kind: models.KindIndicator, Key: "euribor_3m", Data: &models.IndicatorRecord{Key: "euribor_3m", Value: 2.1}},
		"latestInflation": {
			Kind: models.KindIndicator,
			Key:  "latest_inflation_bportugal_headline_yoy_monthly",
			Data: &models.IndicatorRecord{Key: "latest_inflation_bportugal_headline_yoy_monthly", Value: 2.4},
		},
		"exchange_rate_eur_usd": {Kind: models.KindSeries, Key: "exchange_rate_eur_usd", Data: []models.SeriesPoint{{Date: "2026-01-01", Value: 1.1}}},
	}}
}

func TestDataEchoHandler_Single(t *testing.T) {
	r := seededResolver()
	e := newEcho(t, NewDataEchoHandler(nil, r, fakeInventory{}))

	rec := get(e, "/api/data/latestInflation")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xhttp.CacheControlPublic, rec.Header().Get(echo.HeaderCacheControl))
	body := decode(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "indicator", body["kind"])
	assert.Equal(t, "latest_inflation_bportugal_headline_yoy_monthly", body["key"])

	rec = get(e, "/api/data/exchange_rate_eur_usd?since=2026-01-01&limit=10")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.SeriesQuery{Since: "2026-01-01", Limit: 10}, r.lastQ)
	assert.Equal(t, "series", decode(t, rec)["kind"])

	get(e, "/api/data/exchange_rate_eur_usd?limit=-3")
	assert.Equal(t, 0, r.lastQ.Limit)
	get(e, "/api/data/exchange_rate_eur_usd?limit=abc")
	assert.Equal(t, 0, r.lastQ.Limit)
}

func TestDataEchoHandler_SingleNotFound(t *testing.T) {
	e := newEcho(t, NewDataEchoHandler(nil, seededResolver(), fakeInventory{}))

	rec := get(e, "/api/data/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "not found: nope", body["error"])
	assert.Equal(t, "ERR_NOT_FOUND", body["code"])
	assert.NotContains(t, body, "ok")
}

func TestDataEchoHandler_SinceMustBeADate(t *testing.T) {
	r := seededResolver()
	e := newEcho(t, NewDataEchoHandler(nil, r, fakeInventory{}))

	for _, since := range []string{"2024/12/31", "yesterday", "2024-13-01"} {
		rec := get(e, "/api/data/exchange_rate_eur_usd?since="+since)
		assert.Equal(t, http.StatusBadRequest, rec.Code, since)
		assert.Contains(t, decode(t, rec)["error"], "since")
	}
	rec := get(e, "/api/data/any?keys=euribor_3m&since=2024/12/31")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(e, "/api/data/exchange_rate_eur_usd?since=2026-01-01T10:00:00Z")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-01-01", r.lastQ.Since)
}

func TestDataEchoHandler_Batch(t *testing.T) {
	r := seededResolver()
	e := newEcho(t, NewDataEchoHandler(nil, r, fakeInventory{}))

	rec := get(e, "/api/data/any?keys=euribor_3m,%20exchange_rate_eur_usd,,")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"euribor_3m", "exchange_rate_eur_usd"}, r.lastKeys)
	body := decode(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Len(t, body["data"], 2)
	assert.NotContains(t, body, "notFound")

	rec = get(e, "/api/data/any?keys=euribor_3m,missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, xhttp.CacheControlPublic, rec.Header().Get(echo.HeaderCacheControl))
	body = decode(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, []any{"missing"}, body["notFound"])
	assert.Contains(t, body["data"], "euribor_3m")

	rec = get(e, "/api/data/any?keys=,%20,")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDataEchoHandler_Errors(t *testing.T) {
	r := &fakeResolver{err: errs.CacheIO("get_indicator", "k", assert.AnError)}
	e := newEcho(t, NewDataEchoHandler(nil, r, fakeInventory{}))

	rec := get(e, "/api/data/k")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "data store unavailable", body["error"])
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())

	r.err = errs.Validation("dataKey", "is required")
	rec = get(e, "/api/data/%20")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDataEchoHandler_Debug(t *testing.T) {
	inv := &models.Inventory{
		Indicators: []models.IndicatorSummary{{Key: "euribor_3m", Value: 2.1}},
		Series:     []models.SeriesStats{{SeriesKey: "exchange_rate_eur_usd", Rows: 3}},
	}
	e := newEcho(t, NewDataEchoHandler(nil, seededResolver(), fakeInventory{inv: inv}))

	rec := get(e, "/api/data/debug")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["indicators"], 1)
	assert.Len(t, body["series"], 1)
}

func TestQuoteEchoHandler(t *testing.T) {
	quotes := quoteFunc(func(_ context.Context, ticker string) (*models.Quote, error) {
		switch ticker {
		case "EDP.LS":
			return &models.Quote{LatestValue: 3.9, Currency: "EUR"}, nil
		case "undefined":
			return nil, errs.Validation("ticker", "is required")
		default:
			return nil, errs.Upstream("quote", ticker, assert.AnError)
		}
	})
	e := newEcho(t, NewQuoteEchoHandler(nil, quotes, nil))

	rec := get(e, "/api/quote/EDP.LS")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.9, decode(t, rec)["latestValue"])

	rec = get(e, "/api/quote/undefined")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(e, "/api/quote/ZZZZ")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "upstream data provider unavailable", decode(t, rec)["error"])

	rec = get(e, "/api/quote/ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFGHIJ")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteEchoHandler_RateLimited(t *testing.T) {
	quotes := quoteFunc(func(context.Context, string) (*models.Quote, error) { return &models.Quote{}, nil })
	e := newEcho(t, NewQuoteEchoHandler(nil, quotes, denyAll{}), NewSystemEchoHandler(nil, nil))

	assert.Equal(t, http.StatusTooManyRequests, get(e, "/api/quote/EDP.LS").Code)
	assert.Equal(t, http.StatusOK, get(e, "/api/health").Code)
}

type pages struct {
	stockErr error
}

func (p pages) Get(_ context.Context, ticker string) (*models.StockPage, error) {
	if p.stockErr != nil {
		return nil, p.stockErr
	}
	return &models.StockPage{Financials: &models.Financials{Ticker: ticker}}, nil
}

type homepageFunc func(context.Context) (*models.Homepage, error)

func (f homepageFunc) Get(ctx context.Context) (*models.Homepage, error) { return f(ctx) }

type indexFunc func(context.Context) (*models.IndexPage, error)

func (f indexFunc) IndexPage(ctx context.Context) (*models.IndexPage, error) { return f(ctx) }

func TestPagesEchoHandler(t *testing.T) {
	home := homepageFunc(func(context.Context) (*models.Homepage, error) {
		return &models.Homepage{PortugueseStocks: []models.HomepageStock{{Ticker: "EDP.LS", Sparkline: []float64{}}}}, nil
	})
	index := indexFunc(func(context.Context) (*models.IndexPage, error) {
		return nil, errs.Upstream("quotes", "portuguese_stocks", assert.AnError)
	})
	e := newEcho(t, NewPagesEchoHandler(nil, pages{}, home, index, nil))

	rec := get(e, "/api/stock/GALP.LS")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xhttp.CacheControlPublic, rec.Header().Get(echo.HeaderCacheControl))
	assert.Equal(t, "GALP.LS", decode(t, rec)["financials"].(map[string]any)["ticker"])

	rec = get(e, "/api/homepage")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sparkline":[]`)

	rec = get(e, "/api/index")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPagesEchoHandler_StockFailure(t *testing.T) {
	e := newEcho(t, NewPagesEchoHandler(nil, pages{stockErr: errs.Upstream("chart", "GALP.LS", assert.AnError)}, nil, nil, denyAll{}))
	assert.Equal(t, http.StatusTooManyRequests, get(e, "/api/stock/GALP.LS").Code)

	e = newEcho(t, NewPagesEchoHandler(nil, pages{stockErr: errs.Upstream("chart", "GALP.LS", assert.AnError)}, nil, nil, nil))
	assert.Equal(t, http.StatusInternalServerError, get(e, "/api/stock/GALP.LS").Code)
}

type pingFunc func(context.Context) error

func (f pingFunc) Health(ctx context.Context) error { return f(ctx) }

func TestSystemEchoHandler(t *testing.T) {
	down := pingFunc(func(context.Context) error { return assert.AnError })
	e := newEcho(t, NewSystemEchoHandler(nil, down))

	rec := get(e, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = get(e, "/api/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
